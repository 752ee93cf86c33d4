package storage

import (
	"path/filepath"
	"testing"

	"github.com/kestrel-lab/reap/internal/reference"
)

func sampleRefs() []reference.ExtractedReference {
	return []reference.ExtractedReference{
		{
			SequenceNumber: 1,
			FullText:       "[1] Smith, J. A. (2023). Machine learning in research. AI Journal, 15(3), 45-62",
			Authors:        []string{"Smith, J. A."},
			Title:          "Machine learning in research",
			Year:           2023,
			Venue:          "AI Journal",
			Type:           reference.TypeJournal,
			Style:          reference.StyleAPA,
			Confidence:     1.0,
		},
		{
			SequenceNumber: 2,
			FullText:       "[2] Johnson, M., & Brown, K. (2022). Data analysis methods. Cambridge Press",
			Authors:        []string{"Johnson, M.", "Brown, K."},
			Title:          "Data analysis methods",
			Year:           2022,
			Venue:          "Cambridge Press",
			Type:           reference.TypeBook,
			Style:          reference.StyleAPA,
			Confidence:     1.0,
		},
	}
}

func TestAppendAllReadAll_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refs.jsonl")

	if err := AppendAll(path, "paper.pdf", sampleRefs()); err != nil {
		t.Fatalf("AppendAll() error: %v", err)
	}

	records, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll() error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	if records[0].Document != "paper.pdf" {
		t.Errorf("document = %q, want paper.pdf", records[0].Document)
	}
	if records[0].Title != "Machine learning in research" {
		t.Errorf("title = %q", records[0].Title)
	}
	if len(records[1].Authors) != 2 {
		t.Errorf("authors = %v, want two", records[1].Authors)
	}
}

func TestAppendAll_Accumulates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refs.jsonl")

	if err := AppendAll(path, "a.pdf", sampleRefs()[:1]); err != nil {
		t.Fatalf("AppendAll() error: %v", err)
	}
	if err := AppendAll(path, "b.pdf", sampleRefs()[1:]); err != nil {
		t.Fatalf("AppendAll() error: %v", err)
	}

	records, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll() error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].Document != "a.pdf" || records[1].Document != "b.pdf" {
		t.Errorf("documents = %q, %q", records[0].Document, records[1].Document)
	}
}

func TestReadAll_MissingFile(t *testing.T) {
	records, err := ReadAll(filepath.Join(t.TempDir(), "nope.jsonl"))
	if err != nil {
		t.Fatalf("ReadAll() on a missing file should not error, got: %v", err)
	}
	if records != nil {
		t.Errorf("records = %v, want nil", records)
	}
}

func TestWriteAll_ReplacesContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refs.jsonl")

	if err := AppendAll(path, "old.pdf", sampleRefs()); err != nil {
		t.Fatalf("AppendAll() error: %v", err)
	}

	replacement := []Record{{Document: "new.pdf", ExtractedReference: sampleRefs()[0]}}
	if err := WriteAll(path, replacement); err != nil {
		t.Fatalf("WriteAll() error: %v", err)
	}

	records, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll() error: %v", err)
	}
	if len(records) != 1 || records[0].Document != "new.pdf" {
		t.Errorf("records = %+v, want single new.pdf record", records)
	}
}
