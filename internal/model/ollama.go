package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultOllamaURL is the standard local Ollama endpoint.
const DefaultOllamaURL = "http://localhost:11434"

// OllamaGenerator runs grammar correction through a local Ollama model with
// an instruction prompt.
type OllamaGenerator struct {
	baseURL string
	client  *http.Client
}

// NewOllamaGenerator creates a generator against the given Ollama base URL.
func NewOllamaGenerator(baseURL string) *OllamaGenerator {
	if baseURL == "" {
		baseURL = DefaultOllamaURL
	}
	return &OllamaGenerator{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

func (g *OllamaGenerator) Name() string {
	return "ollama"
}

type ollamaRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

func (g *OllamaGenerator) Generate(ctx context.Context, cfg GenerationConfig, text string) (string, error) {
	prompt := fmt.Sprintf(`Correct the grammar in this text: "%s"

Only respond with the corrected text, nothing else. If the text is already correct, return it unchanged.`, text)

	options := map[string]any{
		"num_predict":    cfg.MaxLength,
		"top_p":          cfg.TopP,
		"repeat_penalty": cfg.RepetitionPenalty,
	}
	if cfg.DoSample {
		options["temperature"] = cfg.Temperature
	} else {
		options["temperature"] = 0.0
	}

	reqBody := ollamaRequest{
		Model:   cfg.Model,
		Prompt:  prompt,
		Stream:  false,
		Options: options,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/api/generate", g.baseURL), bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Ollama returned status %d", resp.StatusCode)
	}

	var out ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return out.Response, nil
}

func (g *OllamaGenerator) IsAvailable(ctx context.Context) error {
	req, _ := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/api/tags", g.baseURL), nil)
	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("Ollama not available: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Ollama returned status %d", resp.StatusCode)
	}
	return nil
}
