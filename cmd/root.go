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
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "1.0.0"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "grammars",
	Short: "Grammar correction engine and service",
	Long: `Corrects grammatical errors in English text using a fast deterministic
rule cascade with a fallback to a generative text-to-text model.

Use "grammars correct" for one-shot correction, "grammars serve" to run the
HTTP API, and "grammars history" to inspect saved corrections.`,
	Version: version,
}

func Execute() {
	// A .env file is optional; the environment wins either way.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to config file (optional)")
}
