package extract

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// OCRBackend rasterizes a PDF with pdftoppm and runs tesseract on each page
// image. It is the fallback for scanned documents; its results carry the OCR
// flag so the arbiter applies the fidelity penalty.
type OCRBackend struct {
	PdftoppmBin  string // Empty means $PATH lookup
	TesseractBin string
	Language     string // Tesseract language, defaults to "eng"
}

// Name implements Backend.
func (OCRBackend) Name() string { return "ocr" }

// Extract implements Backend.
func (b OCRBackend) Extract(ctx context.Context, path string) (Result, error) {
	pdftoppm := b.PdftoppmBin
	if pdftoppm == "" {
		pdftoppm = "pdftoppm"
	}
	tesseract := b.TesseractBin
	if tesseract == "" {
		tesseract = "tesseract"
	}
	lang := b.Language
	if lang == "" {
		lang = "eng"
	}

	tmpDir, err := os.MkdirTemp("", "reap-ocr-")
	if err != nil {
		return Result{}, fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	prefix := filepath.Join(tmpDir, "page")
	convert := exec.CommandContext(ctx, pdftoppm, "-png", "-r", "300", path, prefix)
	if out, err := convert.CombinedOutput(); err != nil {
		return Result{}, fmt.Errorf("rasterizing pdf: %w (%s)", err, strings.TrimSpace(string(out)))
	}

	images, err := filepath.Glob(prefix + "*.png")
	if err != nil {
		return Result{}, fmt.Errorf("listing page images: %w", err)
	}
	if len(images) == 0 {
		return Result{}, fmt.Errorf("pdftoppm produced no page images")
	}
	sort.Strings(images) // pdftoppm zero-pads page numbers

	var builder strings.Builder
	var pages []Page

	for i, img := range images {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		var stdout, stderr bytes.Buffer
		ocr := exec.CommandContext(ctx, tesseract, img, "stdout", "-l", lang)
		ocr.Stdout = &stdout
		ocr.Stderr = &stderr
		if err := ocr.Run(); err != nil {
			return Result{}, fmt.Errorf("running tesseract on page %d: %w (%s)", i+1, err, strings.TrimSpace(stderr.String()))
		}

		text := stdout.String()
		if strings.TrimSpace(text) == "" {
			continue
		}
		builder.WriteString(text)
		builder.WriteString("\n")
		pages = append(pages, Page{Number: i + 1, Text: text, CharCount: len(text)})
	}

	return Result{Text: builder.String(), Pages: pages, OCR: true}, nil
}
