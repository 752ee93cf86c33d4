package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kestrel-lab/reap/internal/config"
	"github.com/kestrel-lab/reap/internal/storage"
)

var indexDBPath string

func init() {
	indexCmd.Flags().StringVar(&indexDBPath, "db", "refs.db", "SQLite database path")
	rootCmd.AddCommand(indexCmd)
}

var indexCmd = &cobra.Command{
	Use:   "index <jsonl>",
	Short: "Rebuild the SQLite search index from a JSONL store",
	Long: `Rebuild the SQLite search index from a JSONL store.

The JSONL store is the durable record; the database is a disposable
query cache and is cleared before rebuilding.

Examples:
  reap index all.jsonl
  reap index ~/refs/all.jsonl --db ~/refs/refs.db`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

// IndexResult is the response for the index command.
type IndexResult struct {
	Status         string `json:"status"`
	RecordsIndexed int    `json:"records_indexed"`
	DatabasePath   string `json:"database_path"`
}

func runIndex(cmd *cobra.Command, args []string) error {
	dbPath := config.ExpandPath(indexDBPath)

	db, err := storage.OpenDB(dbPath)
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	defer db.Close()

	n, err := db.RebuildFromJSONL(config.ExpandPath(args[0]))
	if err != nil {
		exitWithError(ExitDataError, "rebuilding index: %v", err)
	}

	if humanOutput {
		fmt.Printf("Indexed %d records into %s\n", n, dbPath)
	} else {
		outputJSON(IndexResult{
			Status:         "complete",
			RecordsIndexed: n,
			DatabasePath:   dbPath,
		})
	}

	return nil
}
