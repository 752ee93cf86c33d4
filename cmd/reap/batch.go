package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/kestrel-lab/reap/internal/config"
)

var (
	batchOutDir        string
	batchFormats       []string
	batchMinConfidence float64
	batchJSONL         string
	batchNoOCR         bool
)

// BatchSummaryFile is written into the output directory after a batch run.
const BatchSummaryFile = "batch_summary.json"

func init() {
	batchCmd.Flags().StringVar(&batchOutDir, "out-dir", ".", "Directory for per-document outputs and the batch summary")
	batchCmd.Flags().StringSliceVar(&batchFormats, "formats", nil, "Output formats: json, csv, md, bib, jsonl")
	batchCmd.Flags().Float64Var(&batchMinConfidence, "min-confidence", -1, "Minimum confidence score (default from config)")
	batchCmd.Flags().StringVar(&batchJSONL, "jsonl", "", "Append all accepted references to this JSONL store")
	batchCmd.Flags().BoolVar(&batchNoOCR, "no-ocr", false, "Disable the OCR fallback backend")
	rootCmd.AddCommand(batchCmd)
}

var batchCmd = &cobra.Command{
	Use:   "batch <dir|pdf...>",
	Short: "Extract references from multiple PDFs",
	Long: `Extract references from multiple PDF documents.

Directories are expanded to the PDFs they contain (non-recursive).
Documents are processed sequentially; a failing document is recorded in
the summary and the batch continues.

Examples:
  reap batch papers/
  reap batch a.pdf b.pdf --out-dir results --formats json,csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func runBatch(cmd *cobra.Command, args []string) error {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	if batchNoOCR {
		cfg.OCREnabled = false
	}

	minConfidence := batchMinConfidence
	if minConfidence < 0 {
		minConfidence = cfg.MinConfidenceThreshold
	}
	formats := batchFormats
	if len(formats) == 0 {
		formats = cfg.OutputFormats
	}

	paths, err := collectPDFs(args)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if len(paths) == 0 {
		exitWithError(ExitDataError, "no PDF files found")
	}

	if err := os.MkdirAll(batchOutDir, 0755); err != nil {
		exitWithError(ExitError, "creating output dir: %v", err)
	}

	processor := newProcessor(cfg, minConfidence)
	result, err := processor.ProcessBatch(context.Background(), paths)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	for _, doc := range result.Documents {
		base := filepath.Join(batchOutDir, defaultOutputBase(doc.Path))
		if _, err := writeOutputsFor(base, doc.Path, formats, doc.References); err != nil {
			exitWithError(ExitError, "writing outputs for %s: %v", doc.Path, err)
		}
		if batchJSONL != "" {
			if err := appendToStore(batchJSONL, doc.Path, doc); err != nil {
				exitWithError(ExitError, "appending to store: %v", err)
			}
		}
	}

	summaryPath := filepath.Join(batchOutDir, BatchSummaryFile)
	if err := writeSummary(summaryPath, result); err != nil {
		exitWithError(ExitError, "writing batch summary: %v", err)
	}

	if humanOutput {
		fmt.Printf("Processed %d files: %d succeeded, %d failed, %d references\n",
			result.TotalFiles, result.Successful, result.Failed, result.TotalReferences)
		for _, item := range result.Items {
			if item.Status == "success" {
				fmt.Printf("  %s: %d references\n", item.Path, item.References)
			} else {
				fmt.Printf("  %s: error: %s\n", item.Path, item.Error)
			}
		}
		fmt.Printf("Summary: %s\n", summaryPath)
	} else {
		outputJSON(result)
	}

	if result.Successful == 0 {
		os.Exit(ExitError)
	}
	return nil
}

// collectPDFs expands directory arguments to the .pdf files they contain and
// passes explicit file arguments through.
func collectPDFs(args []string) ([]string, error) {
	var paths []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}

		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("reading dir %s: %w", arg, err)
		}

		var found []string
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
				found = append(found, filepath.Join(arg, entry.Name()))
			}
		}
		sort.Strings(found)
		paths = append(paths, found...)
	}

	return paths, nil
}

func writeSummary(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
