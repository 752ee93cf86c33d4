// Package export writes extracted references to the supported output
// formats: JSON, CSV, Markdown and BibTeX.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/kestrel-lab/reap/internal/reference"
)

// FormatVersion identifies the JSON document layout.
const FormatVersion = "1.0"

// Metadata describes an extraction run in the JSON document.
type Metadata struct {
	TotalReferences     int    `json:"total_references"`
	ExtractionTimestamp string `json:"extraction_timestamp"`
	FormatVersion       string `json:"format_version"`
}

// Document is the top-level JSON export structure.
type Document struct {
	Metadata   Metadata                       `json:"extraction_metadata"`
	References []reference.ExtractedReference `json:"references"`
}

// NewDocument wraps references with extraction metadata.
func NewDocument(refs []reference.ExtractedReference) Document {
	return Document{
		Metadata: Metadata{
			TotalReferences:     len(refs),
			ExtractionTimestamp: time.Now().Format("2006-01-02 15:04:05"),
			FormatVersion:       FormatVersion,
		},
		References: refs,
	}
}

// WriteJSON writes references as an indented JSON document.
func WriteJSON(path string, refs []reference.ExtractedReference) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating json file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(refs)); err != nil {
		return fmt.Errorf("encoding references: %w", err)
	}

	return nil
}
