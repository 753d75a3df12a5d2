package translation

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultGeminiModel is the Gemini model used for translations
const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiTranslator translates using the Gemini API
type GeminiTranslator struct {
	client *genai.Client
	model  string
}

// NewGeminiTranslator creates a new Gemini translator
func NewGeminiTranslator(ctx context.Context, apiKey, model string) (*GeminiTranslator, error) {
	return NewGeminiTranslatorWithConfig(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}, model)
}

// NewGeminiTranslatorWithConfig creates a Gemini translator with a custom
// client configuration
func NewGeminiTranslatorWithConfig(ctx context.Context, config *genai.ClientConfig, model string) (*GeminiTranslator, error) {
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiTranslator{client: client, model: model}, nil
}

// Translate translates a phrase from sourceLang to targetLang
func (t *GeminiTranslator) Translate(ctx context.Context, phrase, sourceLang, targetLang string) (string, error) {
	resp, err := t.client.Models.GenerateContent(ctx, t.model,
		genai.Text(translationPrompt(phrase, sourceLang, targetLang)),
		&genai.GenerateContentConfig{
			Temperature: genai.Ptr[float32](0.3),
		})
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	translation := strings.TrimSpace(resp.Text())
	if translation == "" {
		return "", fmt.Errorf("no translation returned")
	}

	return translation, nil
}

// Name returns the provider name
func (t *GeminiTranslator) Name() string { return "gemini" }
