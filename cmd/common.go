/*
Copyright © 2025 Ram Dayal

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/rdtech2020/pratik-grammars/internal/config"
	"github.com/rdtech2020/pratik-grammars/internal/model"
)

// buildAdapter constructs the generative-model adapter for the configured
// backend. Returns nil when the model arm is disabled.
func buildAdapter(settings *config.Settings, log *zap.Logger) (*model.Adapter, error) {
	if !settings.ModelFallback {
		return nil, nil
	}

	var gen model.Generator
	switch settings.Model.Backend {
	case "huggingface", "hf":
		gen = model.NewHFGenerator(settings.Model.LocalURL, settings.Model.RemoteURL, settings.Model.Name, settings.Model.APIKey)
	case "ollama":
		gen = model.NewOllamaGenerator(settings.Model.OllamaURL)
	case "openai":
		gen = model.NewOpenAIGenerator(settings.Model.APIKey, settings.Model.OpenAIBaseURL)
	case "none", "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown model backend: %s", settings.Model.Backend)
	}

	return model.NewAdapter(gen, settings.GenerationConfig(), log), nil
}

// buildLogger returns a development logger at debug level when verbose, else
// a production logger.
func buildLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
