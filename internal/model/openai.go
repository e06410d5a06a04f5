package model

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const correctionSystemPrompt = `You are a grammar correction assistant. Correct the grammatical errors in the user's text. Only respond with the corrected text, nothing else. If the text is already correct, return it unchanged.`

// OpenAIGenerator runs grammar correction through an OpenAI-compatible chat
// completions API.
type OpenAIGenerator struct {
	apiKey string
	client *openai.Client
}

// NewOpenAIGenerator creates a generator for the given API key. baseURL may
// point at any OpenAI-compatible server; empty means api.openai.com.
func NewOpenAIGenerator(apiKey, baseURL string) *OpenAIGenerator {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIGenerator{
		apiKey: apiKey,
		client: openai.NewClientWithConfig(cfg),
	}
}

func (g *OpenAIGenerator) Name() string {
	return "openai"
}

func (g *OpenAIGenerator) Generate(ctx context.Context, cfg GenerationConfig, text string) (string, error) {
	temperature := float32(cfg.Temperature)
	if !cfg.DoSample {
		temperature = 0
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: correctionSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		MaxTokens:   cfg.MaxLength,
		Temperature: temperature,
		TopP:        float32(cfg.TopP),
		N:           1,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from API")
	}
	return resp.Choices[0].Message.Content, nil
}

func (g *OpenAIGenerator) IsAvailable(ctx context.Context) error {
	if g.apiKey == "" {
		return fmt.Errorf("OpenAI API key not configured")
	}
	return nil
}
