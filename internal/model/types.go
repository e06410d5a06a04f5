package model

import (
	"context"
	"time"
)

// GenerationConfig describes decoding behavior. It is immutable after
// construction; identical input must produce identical output, so sampling
// is disabled by default.
type GenerationConfig struct {
	Model             string        `mapstructure:"name" json:"model"`
	MaxLength         int           `mapstructure:"max_length" json:"max_length"`
	Temperature       float64       `mapstructure:"temperature" json:"temperature"`
	TopP              float64       `mapstructure:"top_p" json:"top_p"`
	RepetitionPenalty float64       `mapstructure:"repetition_penalty" json:"repetition_penalty"`
	DoSample          bool          `mapstructure:"do_sample" json:"do_sample"`
	Timeout           time.Duration `mapstructure:"timeout" json:"timeout"`
}

// DefaultGenerationConfig returns the decoding parameters used when none are
// configured.
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		Model:             "vennify/t5-base-grammar-correction",
		MaxLength:         512,
		Temperature:       0.1,
		TopP:              0.9,
		RepetitionPenalty: 1.1,
		DoSample:          false,
		Timeout:           120 * time.Second,
	}
}

// Generator is a sequence-to-sequence text-generation backend. Generate
// returns the single best generated sequence for the given input text.
type Generator interface {
	Name() string
	Generate(ctx context.Context, cfg GenerationConfig, text string) (string, error)
	IsAvailable(ctx context.Context) error
}
