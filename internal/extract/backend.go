// Package extract runs competing text-extraction backends over a document
// and selects the best result by quality score.
package extract

import "context"

// Page is the per-page breakdown of an extraction result.
type Page struct {
	Number    int    `json:"page_number"`
	Text      string `json:"text"`
	CharCount int    `json:"char_count"`
}

// Result is one backend's raw-text extraction of a document.
type Result struct {
	Text  string
	Pages []Page
	OCR   bool // OCR-derived text scores lower during arbitration
}

// Backend extracts raw text from a document on disk. Implementations may
// block on file I/O or subprocess invocation; the arbiter calls them
// strictly sequentially.
type Backend interface {
	Name() string
	Extract(ctx context.Context, path string) (Result, error)
}
