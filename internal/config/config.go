// Package config loads engine and service settings from defaults, an
// optional config file, and GRAMMAR_-prefixed environment variables, in
// increasing order of precedence.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/rdtech2020/pratik-grammars/internal/corrector"
	"github.com/rdtech2020/pratik-grammars/internal/model"
)

// ModelSettings selects and parameterizes the generative backend.
type ModelSettings struct {
	Backend           string        `mapstructure:"backend"`
	Name              string        `mapstructure:"name"`
	LocalURL          string        `mapstructure:"local_url"`
	RemoteURL         string        `mapstructure:"remote_url"`
	APIKey            string        `mapstructure:"api_key"`
	OllamaURL         string        `mapstructure:"ollama_url"`
	OpenAIBaseURL     string        `mapstructure:"openai_base_url"`
	MaxLength         int           `mapstructure:"max_length"`
	Temperature       float64       `mapstructure:"temperature"`
	TopP              float64       `mapstructure:"top_p"`
	RepetitionPenalty float64       `mapstructure:"repetition_penalty"`
	DoSample          bool          `mapstructure:"do_sample"`
	Timeout           time.Duration `mapstructure:"timeout"`
}

// ServerSettings configures the HTTP API.
type ServerSettings struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	PageSize    int    `mapstructure:"page_size"`
	MaxPageSize int    `mapstructure:"max_page_size"`
}

// Settings is the full configuration surface.
type Settings struct {
	RulesFirst          bool           `mapstructure:"rules_first"`
	ModelFallback       bool           `mapstructure:"model_fallback"`
	ConfidenceThreshold float64        `mapstructure:"confidence_threshold"`
	Model               ModelSettings  `mapstructure:"model"`
	Server              ServerSettings `mapstructure:"server"`
	DBPath              string         `mapstructure:"db_path"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("rules_first", true)
	v.SetDefault("model_fallback", true)
	v.SetDefault("confidence_threshold", 0.7)

	v.SetDefault("model.backend", "huggingface")
	v.SetDefault("model.name", "vennify/t5-base-grammar-correction")
	v.SetDefault("model.local_url", "http://localhost:8080")
	v.SetDefault("model.remote_url", model.DefaultHFRemoteURL)
	v.SetDefault("model.ollama_url", model.DefaultOllamaURL)
	v.SetDefault("model.max_length", 512)
	v.SetDefault("model.temperature", 0.1)
	v.SetDefault("model.top_p", 0.9)
	v.SetDefault("model.repetition_penalty", 1.1)
	v.SetDefault("model.do_sample", false)
	v.SetDefault("model.timeout", 120*time.Second)

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.page_size", 20)
	v.SetDefault("server.max_page_size", 100)

	v.SetDefault("db_path", "./data/grammar.db")
}

// Load reads settings from the optional config file at cfgFile (empty means
// none) merged with GRAMMAR_-prefixed environment variables over defaults.
func Load(cfgFile string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("GRAMMAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &s, nil
}

// Default returns the built-in settings without consulting files or the
// environment.
func Default() *Settings {
	v := viper.New()
	setDefaults(v)
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		panic(err)
	}
	return &s
}

// GenerationConfig converts the model settings to the adapter's decoding
// configuration.
func (s *Settings) GenerationConfig() model.GenerationConfig {
	return model.GenerationConfig{
		Model:             s.Model.Name,
		MaxLength:         s.Model.MaxLength,
		Temperature:       s.Model.Temperature,
		TopP:              s.Model.TopP,
		RepetitionPenalty: s.Model.RepetitionPenalty,
		DoSample:          s.Model.DoSample,
		Timeout:           s.Model.Timeout,
	}
}

// Policy converts the strategy flags to the orchestrator's policy.
func (s *Settings) Policy() corrector.Policy {
	return corrector.Policy{
		RulesFirst:          s.RulesFirst,
		ModelFallback:       s.ModelFallback,
		ConfidenceThreshold: s.ConfidenceThreshold,
	}
}
