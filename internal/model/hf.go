package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultHFRemoteURL is the hosted inference endpoint used when no local
// server answers.
const DefaultHFRemoteURL = "https://api-inference.huggingface.co/models"

// HFGenerator talks to a Hugging Face text2text-generation endpoint. A local
// inference server is preferred when one is configured and reachable;
// otherwise the hosted API is used with the configured model identifier.
type HFGenerator struct {
	localURL  string
	remoteURL string
	model     string
	apiKey    string
	endpoint  string
	client    *http.Client
}

// NewHFGenerator creates a generator for the given model identifier.
// localURL may be empty to go straight to the hosted API; remoteURL falls
// back to DefaultHFRemoteURL.
func NewHFGenerator(localURL, remoteURL, modelID, apiKey string) *HFGenerator {
	if remoteURL == "" {
		remoteURL = DefaultHFRemoteURL
	}
	return &HFGenerator{
		localURL:  localURL,
		remoteURL: remoteURL,
		model:     modelID,
		apiKey:    apiKey,
		client:    &http.Client{Timeout: 120 * time.Second},
	}
}

func (g *HFGenerator) Name() string {
	return "huggingface"
}

// IsAvailable resolves the endpoint: the local server wins when it answers
// the health probe, else the hosted API is used (which requires an API key).
// The resolution sticks for the lifetime of the generator.
func (g *HFGenerator) IsAvailable(ctx context.Context) error {
	if g.localURL != "" {
		req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/health", g.localURL), nil)
		if err == nil {
			resp, err := g.client.Do(req)
			if err == nil {
				resp.Body.Close()
				if resp.StatusCode == http.StatusOK {
					g.endpoint = fmt.Sprintf("%s/generate", g.localURL)
					return nil
				}
			}
		}
	}

	if g.apiKey == "" {
		return fmt.Errorf("no local inference server at %q and no API key for hosted inference", g.localURL)
	}
	g.endpoint = fmt.Sprintf("%s/%s", g.remoteURL, g.model)
	return nil
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	MaxNewTokens      int     `json:"max_new_tokens"`
	Temperature       float64 `json:"temperature"`
	TopP              float64 `json:"top_p"`
	RepetitionPenalty float64 `json:"repetition_penalty"`
	DoSample          bool    `json:"do_sample"`
}

// Generate posts the text to the resolved endpoint and returns the generated
// sequence. IsAvailable must have succeeded first.
func (g *HFGenerator) Generate(ctx context.Context, cfg GenerationConfig, text string) (string, error) {
	if g.endpoint == "" {
		return "", fmt.Errorf("endpoint not resolved, call IsAvailable first")
	}

	hfReq := hfRequest{
		Inputs: text,
		Parameters: hfParameters{
			MaxNewTokens:      cfg.MaxLength,
			Temperature:       cfg.Temperature,
			TopP:              cfg.TopP,
			RepetitionPenalty: cfg.RepetitionPenalty,
			DoSample:          cfg.DoSample,
		},
	}

	jsonData, err := json.Marshal(hfReq)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", g.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", g.apiKey))
	}

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("inference API returned status %d", resp.StatusCode)
	}

	return decodeGenerated(resp.Body)
}

// decodeGenerated handles both response shapes: the hosted API returns a
// list of candidates, a local text-generation-inference server returns a
// single object.
func decodeGenerated(body io.Reader) (string, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	type generated struct {
		GeneratedText string `json:"generated_text"`
	}

	var list []generated
	if err := json.Unmarshal(raw, &list); err == nil {
		if len(list) == 0 {
			return "", fmt.Errorf("empty response from inference API")
		}
		return list[0].GeneratedText, nil
	}

	var single generated
	if err := json.Unmarshal(raw, &single); err != nil {
		return "", fmt.Errorf("unexpected response shape: %w", err)
	}
	return single.GeneratedText, nil
}
