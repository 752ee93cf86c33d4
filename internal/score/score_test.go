package score

import (
	"math"
	"strings"
	"testing"

	"github.com/kestrel-lab/reap/internal/reference"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCompleteness_EmptyRecord(t *testing.T) {
	if got := Completeness(reference.ExtractedReference{}); got != 0 {
		t.Errorf("Completeness() = %v, want 0", got)
	}
}

func TestCompleteness_RequiredFields(t *testing.T) {
	ref := reference.ExtractedReference{
		Authors: []string{"Smith, J."},
		Title:   "A title",
		Year:    2023,
		Venue:   "A venue",
	}
	if got := Completeness(ref); !almostEqual(got, 1.0) {
		t.Errorf("Completeness() = %v, want 1.0", got)
	}
}

func TestCompleteness_PartialOptional(t *testing.T) {
	// Title only (0.3) plus two of five optional identifiers (2/5 * 0.2)
	ref := reference.ExtractedReference{
		Title: "A title",
		DOI:   "10.1/x",
		Pages: "1-10",
	}
	if got := Completeness(ref); !almostEqual(got, 0.3+0.08) {
		t.Errorf("Completeness() = %v, want 0.38", got)
	}
}

func TestCompleteness_Clamped(t *testing.T) {
	ref := reference.ExtractedReference{
		Authors: []string{"Smith, J."},
		Title:   "A title",
		Year:    2023,
		Venue:   "A venue",
		DOI:     "10.1/x",
		URL:     "https://example.org",
		Volume:  "1",
		Issue:   "2",
		Pages:   "3-4",
	}
	if got := Completeness(ref); got != 1.0 {
		t.Errorf("Completeness() = %v, want clamped 1.0", got)
	}
}

func TestCompleteness_Monotonic(t *testing.T) {
	base := reference.ExtractedReference{Title: "A title"}
	more := base
	more.Year = 2023

	if Completeness(more) <= Completeness(base) {
		t.Error("adding a field should not lower the score")
	}
}

func TestFinalize_InvalidYearCleared(t *testing.T) {
	refs := []reference.ExtractedReference{
		{Title: "Future work", Year: 2125},
	}

	got := Finalize(refs)
	if got[0].Year != 0 {
		t.Errorf("year = %d, want 0 (cleared)", got[0].Year)
	}
	if !strings.Contains(got[0].Notes, "invalid year") {
		t.Errorf("notes = %q, want invalid year note", got[0].Notes)
	}

	// Confidence is computed after clearing, so the year contributes nothing
	if !almostEqual(got[0].Confidence, 0.3) {
		t.Errorf("confidence = %v, want 0.3", got[0].Confidence)
	}
}

func TestFinalize_BoundaryYearsKept(t *testing.T) {
	refs := []reference.ExtractedReference{
		{Title: "Old", Year: 1900},
		{Title: "New", Year: 2030},
	}

	got := Finalize(refs)
	if got[0].Year != 1900 || got[1].Year != 2030 {
		t.Errorf("boundary years should be kept, got %d and %d", got[0].Year, got[1].Year)
	}
}

func TestFinalize_CleansTextFields(t *testing.T) {
	refs := []reference.ExtractedReference{
		{
			FullText: "  Smith,   J.  (2023).  A   title. ;",
			Title:    " A   title.. ",
			Venue:    " The  Venue ,",
		},
	}

	got := Finalize(refs)
	if got[0].FullText != "Smith, J. (2023). A title" {
		t.Errorf("full text = %q", got[0].FullText)
	}
	if got[0].Title != "A title" {
		t.Errorf("title = %q, want A title", got[0].Title)
	}
	if got[0].Venue != "The Venue" {
		t.Errorf("venue = %q, want The Venue", got[0].Venue)
	}
}

func TestFinalize_OverwritesStyleConfidence(t *testing.T) {
	refs := []reference.ExtractedReference{
		{Title: "Only a title", Confidence: 0.8},
	}

	got := Finalize(refs)
	if !almostEqual(got[0].Confidence, 0.3) {
		t.Errorf("confidence = %v, want completeness 0.3", got[0].Confidence)
	}
}
