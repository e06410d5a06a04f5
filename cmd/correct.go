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
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rdtech2020/pratik-grammars/internal"
	"github.com/rdtech2020/pratik-grammars/internal/config"
	"github.com/rdtech2020/pratik-grammars/internal/corrector"
	"github.com/rdtech2020/pratik-grammars/internal/detector"
	"github.com/rdtech2020/pratik-grammars/internal/markdown"
	"github.com/rdtech2020/pratik-grammars/internal/rules"
	"github.com/rdtech2020/pratik-grammars/internal/store"
)

var (
	correctText    string
	inputFile      string
	outputFile     string
	asMarkdown     bool
	correctDBPath  string
	noCache        bool
	rulesOnly      bool
	correctVerbose bool
)

var correctCmd = &cobra.Command{
	Use:   "correct",
	Short: "Correct grammar in text or a file",
	Long: `Correct grammatical errors in English text.

The deterministic rule cascade runs first; when it finds nothing to fix, the
configured generative model is consulted. Input comes from --text or --input;
output goes to stdout or --output.

Repeat inputs are answered from the correction memory unless --no-cache is
given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if correctText == "" && inputFile == "" {
			return fmt.Errorf("either --text or --input is required")
		}
		if correctText != "" && inputFile != "" {
			return fmt.Errorf("--text and --input are mutually exclusive")
		}

		text := correctText
		if inputFile != "" {
			raw, err := os.ReadFile(inputFile)
			if err != nil {
				return fmt.Errorf("failed to read input file: %w", err)
			}
			text = string(raw)
			if asMarkdown || strings.HasSuffix(inputFile, ".md") {
				text = markdown.ToPlainText(raw)
			}
		}

		settings, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if rulesOnly {
			settings.ModelFallback = false
		}

		log, err := buildLogger(correctVerbose)
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		defer log.Sync()

		ctx := context.Background()

		det := detector.New()
		if !det.IsEnglish(text) {
			fmt.Fprintln(os.Stderr, "Input does not look like English; returning it unchanged")
			return writeResult(text, text)
		}

		dbPath := correctDBPath
		if dbPath == "" {
			dbPath = settings.DBPath
		}

		var db *store.Store
		if !noCache && dbPath != "" {
			if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err == nil {
				db, err = store.New(dbPath)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Correction memory unavailable: %v\n", err)
					db = nil
				}
			}
		}
		if db != nil {
			defer db.Close()

			if cached, found, cacheErr := db.GetCached(ctx, text); cacheErr == nil && found {
				fmt.Fprintln(os.Stderr, "Using remembered correction")
				return writeResult(text, cached)
			}
		}

		adapter, err := buildAdapter(settings, log)
		if err != nil {
			return err
		}

		var m corrector.Model
		if adapter != nil {
			m = adapter
		}
		corr := corrector.New(rules.Default(), m, settings.Policy(), log)

		corrected := corr.Correct(ctx, text)

		if db != nil {
			rec := internal.CorrectionRecord{
				ID:            uuid.New().String(),
				OriginalText:  text,
				CorrectedText: corrected,
				Changed:       corrected != text,
				CreatedAt:     time.Now(),
			}
			if err := db.SaveCorrection(ctx, rec); err != nil {
				log.Warn("failed to save correction", zap.Error(err))
			}
			if err := db.SaveToMemory(ctx, text, corrected); err != nil {
				log.Warn("failed to update correction memory", zap.Error(err))
			}
		}

		return writeResult(text, corrected)
	},
}

// writeResult prints the corrected text to stdout or --output, and notes on
// stderr whether anything changed.
func writeResult(original, corrected string) error {
	if outputFile != "" {
		if err := os.MkdirAll(filepath.Dir(outputFile), 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := os.WriteFile(outputFile, []byte(corrected), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
	} else {
		fmt.Println(corrected)
	}

	if corrected == original {
		fmt.Fprintln(os.Stderr, "No correction made")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(correctCmd)

	correctCmd.Flags().StringVarP(&correctText, "text", "t", "", "Text to correct")
	correctCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input file to correct")
	correctCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	correctCmd.Flags().BoolVar(&asMarkdown, "markdown", false, "Treat the input file as Markdown and correct its prose")
	correctCmd.Flags().StringVar(&correctDBPath, "db", "", "Database path for correction memory (default from config)")
	correctCmd.Flags().BoolVar(&noCache, "no-cache", false, "Disable the correction memory")
	correctCmd.Flags().BoolVar(&rulesOnly, "rules-only", false, "Disable the generative-model arm")
	correctCmd.Flags().BoolVarP(&correctVerbose, "verbose", "v", false, "Verbose logging")
}
