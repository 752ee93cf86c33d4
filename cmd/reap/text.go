package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kestrel-lab/reap/internal/config"
	"github.com/kestrel-lab/reap/internal/pipeline"
)

var (
	textOut           string
	textFormats       []string
	textMinConfidence float64
)

func init() {
	textCmd.Flags().StringVar(&textOut, "out", "", "Output base path (no files written when unset)")
	textCmd.Flags().StringSliceVar(&textFormats, "formats", nil, "Output formats: json, csv, md, bib, jsonl")
	textCmd.Flags().Float64Var(&textMinConfidence, "min-confidence", -1, "Minimum confidence score (default from config)")
	rootCmd.AddCommand(textCmd)
}

var textCmd = &cobra.Command{
	Use:   "text <file>",
	Short: "Extract references from plain text",
	Long: `Extract references from a plain-text file.

Skips the PDF backends and runs the parsing pipeline directly on the
file contents. Use "-" to read from stdin.

Examples:
  reap text bibliography.txt
  pdftotext paper.pdf - | reap text -`,
	Args: cobra.ExactArgs(1),
	RunE: runText,
}

func runText(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	minConfidence := textMinConfidence
	if minConfidence < 0 {
		minConfidence = cfg.MinConfidenceThreshold
	}

	raw, err := readInput(args[0])
	if err != nil {
		exitWithError(ExitError, "reading input: %v", err)
	}

	refs, err := pipeline.ExtractReferences(raw)
	if err != nil {
		exitProcessError(err)
	}
	accepted := pipeline.FilterByConfidence(refs, minConfidence)

	files := map[string]string{}
	if textOut != "" {
		formats := textFormats
		if len(formats) == 0 {
			formats = cfg.OutputFormats
		}
		files, err = writeOutputsFor(textOut, args[0], formats, accepted)
		if err != nil {
			exitWithError(ExitError, "writing outputs: %v", err)
		}
	}

	if humanOutput {
		fmt.Printf("Extracted %d references (%d found before filtering)\n\n", len(accepted), len(refs))
		printReferencesHuman(accepted)
		for _, path := range files {
			fmt.Printf("Wrote %s\n", path)
		}
	} else {
		outputJSON(ExtractResult{
			DocumentResult: &pipeline.DocumentResult{
				Path:       args[0],
				Backend:    "text",
				TextLength: len(raw),
				TotalFound: len(refs),
				References: accepted,
			},
			OutputFiles: files,
		})
	}

	return nil
}

func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}
