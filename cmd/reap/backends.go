package main

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/time/rate"

	"github.com/kestrel-lab/reap/internal/config"
	"github.com/kestrel-lab/reap/internal/export"
	"github.com/kestrel-lab/reap/internal/extract"
	"github.com/kestrel-lab/reap/internal/pipeline"
	"github.com/kestrel-lab/reap/internal/reference"
	"github.com/kestrel-lab/reap/internal/storage"
)

// BackendRate paces subprocess-heavy backends (pdftotext, OCR).
const BackendRate = 2.0 // invocations per second

// newProcessor assembles the document processor from config and env
// overrides. Backend order is the arbiter's tie-break priority: native
// first, then pdftotext, OCR last.
func newProcessor(cfg *config.Config, minConfidence float64) *pipeline.Processor {
	pdftotext := envOr("REAP_PDFTOTEXT", cfg.PdftotextPath)
	pdftoppm := envOr("REAP_PDFTOPPM", cfg.PdftoppmPath)
	tesseract := envOr("REAP_TESSERACT", cfg.TesseractPath)

	backends := []extract.Backend{
		extract.NativeBackend{},
		extract.PopplerBackend{BinPath: pdftotext},
	}
	if cfg.OCREnabled {
		backends = append(backends, extract.OCRBackend{
			PdftoppmBin:  pdftoppm,
			TesseractBin: tesseract,
			Language:     cfg.OCRLanguage,
		})
	}

	arbiter := extract.NewArbiter(backends,
		extract.WithIndicators(cfg.QualityIndicators),
		extract.WithLimiter(rate.NewLimiter(rate.Limit(BackendRate), 1)),
	)

	return &pipeline.Processor{
		Arbiter:       arbiter,
		MinConfidence: minConfidence,
		MaxFileSizeMB: cfg.MaxFileSizeMB,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// writeOutputs writes the reference list in each requested format next to
// the base path (without extension). Returns format -> file path.
func writeOutputs(base string, formats []string, refs []reference.ExtractedReference) (map[string]string, error) {
	return writeOutputsFor(base, "", formats, refs)
}

// writeOutputsFor additionally appends flat records to a JSONL file when the
// "jsonl" format is requested; document names the source in those records.
func writeOutputsFor(base, document string, formats []string, refs []reference.ExtractedReference) (map[string]string, error) {
	files := make(map[string]string)

	for _, format := range formats {
		var path string
		var err error

		switch format {
		case "json":
			path = base + ".json"
			err = export.WriteJSON(path, refs)
		case "csv":
			path = base + ".csv"
			err = export.WriteCSVFile(path, refs)
		case "md":
			path = base + ".md"
			err = export.WriteMarkdown(path, refs)
		case "bib":
			path = base + ".bib"
			err = export.WriteBibTeX(path, refs)
		case "jsonl":
			path = base + ".jsonl"
			err = storage.AppendAll(path, document, refs)
		default:
			continue
		}

		if err != nil {
			return files, err
		}
		files[format] = path
	}

	return files, nil
}

// appendToStore appends one document's accepted references to the central
// JSONL store.
func appendToStore(path, document string, doc *pipeline.DocumentResult) error {
	return storage.AppendAll(config.ExpandPath(path), document, doc.References)
}

// defaultOutputBase derives an output base path from the input document:
// references_<stem> in the current directory.
func defaultOutputBase(inputPath string) string {
	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	return "references_" + stem
}
