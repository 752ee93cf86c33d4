// Package main provides the reap CLI entry point.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "reap",
	Short: "Extract academic references from documents",
	Long: `reap extracts bibliographic references from PDF and text documents.

It runs competing text-extraction backends and keeps the best result,
segments the bibliography into candidate references, parses each candidate
against APA/MLA/Chicago/IEEE grammars, enriches it with DOI/URL/ISBN and
volume/issue/pages metadata, deduplicates, and assigns a completeness-based
confidence score. All commands output JSON by default for easy integration
with other tools.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}
