package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/kestrel-lab/reap/internal/config"
	"github.com/kestrel-lab/reap/internal/extract"
	"github.com/kestrel-lab/reap/internal/pipeline"
)

var (
	extractOut           string
	extractFormats       []string
	extractMinConfidence float64
	extractJSONL         string
	extractNoOCR         bool
)

func init() {
	extractCmd.Flags().StringVar(&extractOut, "out", "", "Output base path (default references_<stem>)")
	extractCmd.Flags().StringSliceVar(&extractFormats, "formats", nil, "Output formats: json, csv, md, bib, jsonl")
	extractCmd.Flags().Float64Var(&extractMinConfidence, "min-confidence", -1, "Minimum confidence score (default from config)")
	extractCmd.Flags().StringVar(&extractJSONL, "jsonl", "", "Append flat records to this JSONL store")
	extractCmd.Flags().BoolVar(&extractNoOCR, "no-ocr", false, "Disable the OCR fallback backend")
	rootCmd.AddCommand(extractCmd)
}

var extractCmd = &cobra.Command{
	Use:   "extract <pdf>",
	Short: "Extract references from a PDF document",
	Long: `Extract references from a PDF document.

Runs the available text-extraction backends (native, pdftotext, OCR),
keeps the highest-quality text, and parses the bibliography into
structured references.

Examples:
  reap extract paper.pdf
  reap extract paper.pdf --formats json,bib --min-confidence 0.5
  reap extract paper.pdf --jsonl ~/refs/all.jsonl`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

// ExtractResult is the response for the extract command.
type ExtractResult struct {
	*pipeline.DocumentResult
	OutputFiles map[string]string `json:"output_files,omitempty"`
}

func runExtract(cmd *cobra.Command, args []string) error {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	if extractNoOCR {
		cfg.OCREnabled = false
	}

	minConfidence := extractMinConfidence
	if minConfidence < 0 {
		minConfidence = cfg.MinConfidenceThreshold
	}
	formats := extractFormats
	if len(formats) == 0 {
		formats = cfg.OutputFormats
	}

	processor := newProcessor(cfg, minConfidence)
	doc, err := processor.ProcessDocument(context.Background(), args[0])
	if err != nil {
		exitProcessError(err)
	}

	base := extractOut
	if base == "" {
		base = defaultOutputBase(args[0])
	}

	files, err := writeOutputsFor(base, args[0], formats, doc.References)
	if err != nil {
		exitWithError(ExitError, "writing outputs: %v", err)
	}
	if extractJSONL != "" {
		if err := appendToStore(extractJSONL, args[0], doc); err != nil {
			exitWithError(ExitError, "appending to store: %v", err)
		}
		files["store"] = config.ExpandPath(extractJSONL)
	}

	if humanOutput {
		fmt.Printf("Extracted %d references from %s (backend: %s, quality: %.2f)\n\n",
			len(doc.References), doc.Path, doc.Backend, doc.Quality)
		printReferencesHuman(doc.References)
		for _, path := range files {
			fmt.Printf("Wrote %s\n", path)
		}
	} else {
		outputJSON(ExtractResult{DocumentResult: doc, OutputFiles: files})
	}

	return nil
}

// exitProcessError maps pipeline failures to their exit codes.
func exitProcessError(err error) {
	switch {
	case errors.Is(err, extract.ErrNoTextExtracted):
		exitWithError(ExitNoText, "%v", err)
	case errors.Is(err, pipeline.ErrMalformedInput):
		exitWithError(ExitDataError, "%v", err)
	case errors.Is(err, pipeline.ErrNoReferences):
		exitWithError(ExitNoReferences, "%v", err)
	default:
		exitWithError(ExitError, "%v", err)
	}
}
