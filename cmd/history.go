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
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rdtech2020/pratik-grammars/internal/config"
	"github.com/rdtech2020/pratik-grammars/internal/store"
)

var historyDBPath string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage saved corrections",
	Long:  `List, inspect, and clear the SQLite correction history and memory.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent corrections",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openHistoryDB()
		if err != nil {
			return err
		}
		defer db.Close()

		records, err := db.ListCorrections(context.Background(), 50, 0)
		if err != nil {
			return fmt.Errorf("failed to list corrections: %w", err)
		}

		if len(records) == 0 {
			fmt.Println("No corrections in history.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "WHEN\tCHANGED\tORIGINAL\tCORRECTED")
		for _, r := range records {
			fmt.Fprintf(w, "%s\t%v\t%s\t%s\n",
				r.CreatedAt.Format("2006-01-02 15:04"),
				r.Changed,
				snippet(r.OriginalText, 40),
				snippet(r.CorrectedText, 40))
		}
		return w.Flush()
	},
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show correction statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openHistoryDB()
		if err != nil {
			return err
		}
		defer db.Close()

		stats, err := db.GetStats(context.Background())
		if err != nil {
			return fmt.Errorf("failed to load stats: %w", err)
		}

		fmt.Printf("Total corrections: %d\n", stats.TotalCorrections)
		fmt.Printf("  Changed:         %d\n", stats.ChangedCount)
		fmt.Printf("  Unchanged:       %d\n", stats.UnchangedCount)
		fmt.Printf("Memory entries:    %d\n", stats.MemoryEntries)
		fmt.Printf("Memory hits:       %d\n", stats.MemoryHits)
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the correction memory",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openHistoryDB()
		if err != nil {
			return err
		}
		defer db.Close()

		n, err := db.ClearMemory(context.Background())
		if err != nil {
			return fmt.Errorf("failed to clear memory: %w", err)
		}
		fmt.Printf("Removed %d memory entries.\n", n)
		return nil
	},
}

func openHistoryDB() (*store.Store, error) {
	path := historyDBPath
	if path == "" {
		settings, err := config.Load(cfgFile)
		if err != nil {
			return nil, err
		}
		path = settings.DBPath
	}

	db, err := store.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func snippet(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd, historyStatsCmd, historyClearCmd)

	historyCmd.PersistentFlags().StringVar(&historyDBPath, "db", "", "Database path (default from config)")
}
