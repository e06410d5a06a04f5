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
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rdtech2020/pratik-grammars/internal/config"
	"github.com/rdtech2020/pratik-grammars/internal/corrector"
	"github.com/rdtech2020/pratik-grammars/internal/detector"
	"github.com/rdtech2020/pratik-grammars/internal/rules"
	"github.com/rdtech2020/pratik-grammars/internal/server"
	"github.com/rdtech2020/pratik-grammars/internal/store"
)

var (
	serveHost    string
	servePort    int
	serveDBPath  string
	serveNoStore bool
	serveVerbose bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the grammar correction HTTP API",
	Long: `Run the HTTP API.

Endpoints:
  POST /correct          correct a single text
  POST /correct/batch    correct a list of texts
  GET  /history          paginated correction history
  GET  /analytics/stats  correction statistics
  GET  /health           service and model health`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if serveHost != "" {
			settings.Server.Host = serveHost
		}
		if servePort != 0 {
			settings.Server.Port = servePort
		}
		if serveDBPath != "" {
			settings.DBPath = serveDBPath
		}

		log, err := buildLogger(serveVerbose)
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		defer log.Sync()

		adapter, err := buildAdapter(settings, log)
		if err != nil {
			return err
		}

		var m corrector.Model
		if adapter != nil {
			m = adapter
		}
		corr := corrector.New(rules.Default(), m, settings.Policy(), log)

		var db *store.Store
		if !serveNoStore && settings.DBPath != "" {
			if err := os.MkdirAll(filepath.Dir(settings.DBPath), 0755); err != nil {
				return fmt.Errorf("failed to create data directory: %w", err)
			}
			db, err = store.New(settings.DBPath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close()
		}

		log.Info("starting grammar correction service",
			zap.String("backend", settings.Model.Backend),
			zap.Bool("rules_first", settings.RulesFirst),
			zap.Bool("model_fallback", settings.ModelFallback))

		srv := server.New(corr, adapter, db, detector.New(), log, settings.Server)
		return srv.Run()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveHost, "host", "", "Bind host (default from config)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Bind port (default from config)")
	serveCmd.Flags().StringVar(&serveDBPath, "db", "", "Database path for correction history (default from config)")
	serveCmd.Flags().BoolVar(&serveNoStore, "no-store", false, "Disable correction history persistence")
	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Verbose logging")
}
