package extract

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// PopplerBackend shells out to poppler's pdftotext. It handles layouts the
// native reader mangles (multi-column text, odd encodings).
type PopplerBackend struct {
	// BinPath overrides the pdftotext binary location. Empty means $PATH lookup.
	BinPath string
}

// Name implements Backend.
func (PopplerBackend) Name() string { return "pdftotext" }

// Extract implements Backend.
func (b PopplerBackend) Extract(ctx context.Context, path string) (Result, error) {
	bin := b.BinPath
	if bin == "" {
		bin = "pdftotext"
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "-enc", "UTF-8", path, "-")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return Result{}, fmt.Errorf("running pdftotext: %w (%s)", err, strings.TrimSpace(stderr.String()))
	}

	text := stdout.String()
	return Result{Text: text, Pages: splitFormFeeds(text)}, nil
}

// splitFormFeeds derives a per-page breakdown from pdftotext output, which
// separates pages with form-feed characters.
func splitFormFeeds(text string) []Page {
	var pages []Page
	for i, chunk := range strings.Split(text, "\f") {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		pages = append(pages, Page{Number: i + 1, Text: chunk, CharCount: len(chunk)})
	}
	return pages
}
