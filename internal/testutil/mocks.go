package testutil

import (
	"context"
	"fmt"
)

// MockDefiner mocks the dictionary lookup
type MockDefiner struct {
	Definitions map[string][]string
	Errors      map[string]error
	Calls       []string
}

// Define returns the canned definitions for a word, or none
func (m *MockDefiner) Define(ctx context.Context, word string) ([]string, error) {
	m.Calls = append(m.Calls, word)

	if err, ok := m.Errors[word]; ok {
		return nil, err
	}

	if defs, ok := m.Definitions[word]; ok {
		return defs, nil
	}

	return []string{}, nil
}

// MockTranslator mocks translation service
type MockTranslator struct {
	Translations map[string]string
	Errors       map[string]error
	Calls        []string
}

// Translate mocks translating text
func (m *MockTranslator) Translate(ctx context.Context, text, fromLang, toLang string) (string, error) {
	call := fmt.Sprintf("Translate: %s (%s->%s)", text, fromLang, toLang)
	m.Calls = append(m.Calls, call)

	if err, ok := m.Errors[text]; ok {
		return "", err
	}

	if translation, ok := m.Translations[text]; ok {
		return translation, nil
	}

	// Default mock translation
	return fmt.Sprintf("mock translation of %s", text), nil
}

// Name returns the mock provider name
func (m *MockTranslator) Name() string {
	return "mock"
}
