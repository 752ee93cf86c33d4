package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kestrel-lab/reap/internal/config"
	"github.com/kestrel-lab/reap/internal/storage"
)

// DefaultSearchLimit caps search results unless overridden.
const DefaultSearchLimit = 20

var (
	searchDBPath   string
	searchLimit    int
	searchDocument string
)

func init() {
	searchCmd.Flags().StringVar(&searchDBPath, "db", "refs.db", "SQLite database path")
	searchCmd.Flags().IntVar(&searchLimit, "limit", DefaultSearchLimit, "Maximum results to return")
	searchCmd.Flags().StringVar(&searchDocument, "document", "", "List all references for a document instead of searching")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search indexed references by keyword",
	Long: `Search indexed references by keyword.

Runs a full-text query over titles, authors and full reference text in
the SQLite index. Build the index first with 'reap index'.

Examples:
  reap search "machine learning"
  reap search transformer --limit 5
  reap search --document paper.pdf`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	db, err := storage.OpenDB(config.ExpandPath(searchDBPath))
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	defer db.Close()

	var records []storage.Record
	if searchDocument != "" {
		records, err = db.ListByDocument(searchDocument)
	} else {
		if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
			exitWithError(ExitError, "query required (or use --document)")
		}
		records, err = db.Search(args[0], searchLimit)
	}
	if err != nil {
		exitWithError(ExitError, "searching: %v", err)
	}

	// Empty result is not an error
	if records == nil {
		records = []storage.Record{}
	}

	if humanOutput {
		if len(records) == 0 {
			fmt.Println("No references found")
			return nil
		}
		fmt.Printf("Found %d references:\n\n", len(records))
		for i, rec := range records {
			printRecordSummary(i+1, rec)
		}
	} else {
		outputJSON(records)
	}

	return nil
}

func printRecordSummary(num int, rec storage.Record) {
	title := rec.Title
	if title == "" {
		title = truncateString(rec.FullText, listTitleMaxLen)
	}
	fmt.Printf("[%d] %s\n", num, truncateString(title, listTitleMaxLen))
	fmt.Printf("    Document: %s\n", rec.Document)
	if len(rec.Authors) > 0 {
		fmt.Printf("    Authors: %s\n", strings.Join(rec.Authors, "; "))
	}
	if rec.Venue != "" && rec.Year != 0 {
		fmt.Printf("    %s (%d)\n", rec.Venue, rec.Year)
	} else if rec.Year != 0 {
		fmt.Printf("    (%d)\n", rec.Year)
	}
	fmt.Printf("    Confidence: %.2f\n", rec.Confidence)
	fmt.Println()
}
