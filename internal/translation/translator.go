package translation

import (
	"context"
	"fmt"
	"strings"
)

// Translator translates a phrase between two languages given as ISO 639-1 codes
type Translator interface {
	Translate(ctx context.Context, phrase, sourceLang, targetLang string) (string, error)

	// Name returns the provider name
	Name() string
}

// Config selects and configures a translation provider
type Config struct {
	Provider    string // "openai", "gemini" or "none"
	OpenAIKey   string
	OpenAIModel string
	GeminiKey   string
	GeminiModel string
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Provider:    "openai",
		OpenAIModel: DefaultOpenAIModel,
		GeminiModel: DefaultGeminiModel,
	}
}

// NewTranslator creates the translator for the configured provider
func NewTranslator(ctx context.Context, config *Config) (Translator, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case "openai":
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key not found")
		}
		return NewOpenAITranslator(config.OpenAIKey, config.OpenAIModel), nil

	case "gemini":
		if config.GeminiKey == "" {
			return nil, fmt.Errorf("Gemini API key not found")
		}
		return NewGeminiTranslator(ctx, config.GeminiKey, config.GeminiModel)

	case "none", "":
		return NewStub(), nil

	default:
		return nil, fmt.Errorf("unknown translation provider: %s", config.Provider)
	}
}

// languageNames lists the languages Kindle dictionaries commonly cover
var languageNames = map[string]string{
	"de": "German",
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"it": "Italian",
	"ja": "Japanese",
	"nl": "Dutch",
	"pt": "Portuguese",
	"zh": "Chinese",
}

// languageName returns the English name of a language code, or the code
// itself when unknown
func languageName(code string) string {
	if name, ok := languageNames[strings.ToLower(code)]; ok {
		return name
	}
	return code
}

func translationPrompt(phrase, sourceLang, targetLang string) string {
	return fmt.Sprintf("Translate the following %s sentence to %s. Respond with only the translation, nothing else.\n\n%s",
		languageName(sourceLang), languageName(targetLang), phrase)
}

// Stub is a translator that never translates. It is used when translation
// is disabled.
type Stub struct{}

// NewStub creates a new no-op translator
func NewStub() *Stub { return &Stub{} }

// Translate always returns an empty translation
func (s *Stub) Translate(ctx context.Context, phrase, sourceLang, targetLang string) (string, error) {
	return "", nil
}

// Name returns the provider name
func (s *Stub) Name() string { return "none" }

// TranslationCache stores translations in memory for batch operations
type TranslationCache struct {
	translations map[string]string
}

// NewTranslationCache creates a new translation cache
func NewTranslationCache() *TranslationCache {
	return &TranslationCache{
		translations: make(map[string]string),
	}
}

// Add adds a translation to the cache
func (tc *TranslationCache) Add(phrase, translation string) {
	tc.translations[phrase] = translation
}

// Get retrieves a translation from the cache
func (tc *TranslationCache) Get(phrase string) (string, bool) {
	translation, ok := tc.translations[phrase]
	return translation, ok
}

// GetAll returns all cached translations
func (tc *TranslationCache) GetAll() map[string]string {
	// Return a copy to prevent external modification
	result := make(map[string]string)
	for k, v := range tc.translations {
		result[k] = v
	}
	return result
}

// Len returns the number of cached translations
func (tc *TranslationCache) Len() int {
	return len(tc.translations)
}

// CachedTranslator wraps a translator with a TranslationCache
type CachedTranslator struct {
	translator Translator
	cache      *TranslationCache
}

// NewCachedTranslator creates a translator that asks the wrapped one at most
// once per phrase and language pair
func NewCachedTranslator(translator Translator, cache *TranslationCache) *CachedTranslator {
	if cache == nil {
		cache = NewTranslationCache()
	}
	return &CachedTranslator{translator: translator, cache: cache}
}

// Translate returns the cached translation or asks the wrapped translator.
// Empty phrases are not translated.
func (c *CachedTranslator) Translate(ctx context.Context, phrase, sourceLang, targetLang string) (string, error) {
	if strings.TrimSpace(phrase) == "" {
		return "", nil
	}

	key := sourceLang + ">" + targetLang + ":" + phrase
	if translation, ok := c.cache.Get(key); ok {
		return translation, nil
	}

	translation, err := c.translator.Translate(ctx, phrase, sourceLang, targetLang)
	if err != nil {
		return "", err
	}

	c.cache.Add(key, translation)
	return translation, nil
}

// Name returns the wrapped provider name
func (c *CachedTranslator) Name() string {
	return c.translator.Name()
}
