package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/kestrel-lab/reap/internal/reference"
)

func TestWriteJSON_DocumentLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refs.json")

	refs := []reference.ExtractedReference{
		{
			SequenceNumber: 1,
			FullText:       "[1] Smith, J. A. (2023). Machine learning in research. AI Journal, 15(3), 45-62",
			Title:          "Machine learning in research",
			Year:           2023,
			Type:           reference.TypeJournal,
			Style:          reference.StyleAPA,
			Confidence:     1.0,
		},
	}

	if err := WriteJSON(path, refs); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}

	var doc struct {
		Metadata struct {
			TotalReferences     int    `json:"total_references"`
			ExtractionTimestamp string `json:"extraction_timestamp"`
			FormatVersion       string `json:"format_version"`
		} `json:"extraction_metadata"`
		References []map[string]interface{} `json:"references"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("parsing output: %v", err)
	}

	if doc.Metadata.TotalReferences != 1 {
		t.Errorf("total_references = %d, want 1", doc.Metadata.TotalReferences)
	}
	if doc.Metadata.FormatVersion != FormatVersion {
		t.Errorf("format_version = %q, want %q", doc.Metadata.FormatVersion, FormatVersion)
	}
	if doc.Metadata.ExtractionTimestamp == "" {
		t.Error("extraction_timestamp should be set")
	}
	if len(doc.References) != 1 {
		t.Fatalf("got %d references, want 1", len(doc.References))
	}

	ref := doc.References[0]
	if ref["citation_style"] != "apa" {
		t.Errorf("citation_style = %v, want apa", ref["citation_style"])
	}
	if ref["reference_type"] != "journal" {
		t.Errorf("reference_type = %v, want journal", ref["reference_type"])
	}

	// Zero-valued optional fields are omitted entirely
	if _, ok := ref["doi"]; ok {
		t.Error("empty doi should be omitted from JSON")
	}
}
