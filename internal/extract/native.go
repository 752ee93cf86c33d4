package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// NativeBackend extracts PDF text in-process. This is the primary backend
// for digitally-produced PDFs.
type NativeBackend struct{}

// Name implements Backend.
func (NativeBackend) Name() string { return "native" }

// Extract implements Backend.
func (NativeBackend) Extract(ctx context.Context, path string) (Result, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("opening pdf: %w", err)
	}
	defer f.Close()

	var builder strings.Builder
	var pages []Page

	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue // Skip unreadable pages rather than failing the document
		}
		if strings.TrimSpace(text) == "" {
			continue
		}

		builder.WriteString(text)
		builder.WriteString("\n")
		pages = append(pages, Page{Number: i, Text: text, CharCount: len(text)})
	}

	return Result{Text: builder.String(), Pages: pages}, nil
}
