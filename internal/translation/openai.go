package translation

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// DefaultOpenAIModel is the chat model used for translations
const DefaultOpenAIModel = openai.GPT4oMini

// OpenAITranslator translates using the OpenAI chat completion API
type OpenAITranslator struct {
	client *openai.Client
	model  string
}

// NewOpenAITranslator creates a new OpenAI translator
func NewOpenAITranslator(apiKey, model string) *OpenAITranslator {
	return NewOpenAITranslatorWithConfig(openai.DefaultConfig(apiKey), model)
}

// NewOpenAITranslatorWithConfig creates an OpenAI translator with a custom
// client configuration, e.g. another base URL
func NewOpenAITranslatorWithConfig(config openai.ClientConfig, model string) *OpenAITranslator {
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAITranslator{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

// Translate translates a phrase from sourceLang to targetLang
func (t *OpenAITranslator) Translate(ctx context.Context, phrase, sourceLang, targetLang string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: t.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a translator for language learners. Translate faithfully and keep the sentence structure where possible.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: translationPrompt(phrase, sourceLang, targetLang),
			},
		},
		MaxTokens:   500,
		Temperature: 0.3,
	}

	resp, err := t.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no translation returned")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Name returns the provider name
func (t *OpenAITranslator) Name() string { return "openai" }
