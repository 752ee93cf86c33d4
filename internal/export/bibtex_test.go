package export

import (
	"strings"
	"testing"

	"github.com/kestrel-lab/reap/internal/reference"
)

func TestToBibTeX_JournalArticle(t *testing.T) {
	ref := reference.ExtractedReference{
		Authors:    []string{"Smith, J. A."},
		Title:      "Machine learning in research",
		Year:       2023,
		Venue:      "AI Journal",
		Volume:     "15",
		Issue:      "3",
		Pages:      "45-62",
		DOI:        "10.1234/test",
		Type:       reference.TypeJournal,
		Style:      reference.StyleAPA,
		Confidence: 1.0,
	}

	got := ToBibTeX(ref)

	if !strings.HasPrefix(got, "@article{Smith2023,") {
		t.Errorf("should start with @article{Smith2023, got:\n%s", got)
	}
	if !strings.Contains(got, "author = {Smith, J. A.}") {
		t.Errorf("should contain author, got:\n%s", got)
	}
	if !strings.Contains(got, "journal = {AI Journal}") {
		t.Errorf("journal article venue maps to journal field, got:\n%s", got)
	}
	if !strings.Contains(got, "volume = {15}") || !strings.Contains(got, "number = {3}") {
		t.Errorf("should contain volume and number, got:\n%s", got)
	}
	if !strings.Contains(got, "pages = {45-62}") {
		t.Errorf("should contain pages, got:\n%s", got)
	}
	if !strings.Contains(got, "doi = {10.1234/test}") {
		t.Errorf("should contain doi, got:\n%s", got)
	}
}

func TestToBibTeX_EntryTypeMapping(t *testing.T) {
	tests := []struct {
		typ   reference.Type
		want  string
		field string
	}{
		{reference.TypeJournal, "@article", "journal"},
		{reference.TypeConference, "@inproceedings", "booktitle"},
		{reference.TypeBook, "@book", "publisher"},
		{reference.TypeThesis, "@phdthesis", "publisher"},
		{reference.TypeUnknown, "@misc", "publisher"},
		{reference.TypeWebsite, "@misc", "publisher"},
	}

	for _, tt := range tests {
		ref := reference.ExtractedReference{Type: tt.typ, Venue: "Some Venue"}
		got := ToBibTeX(ref)

		if !strings.HasPrefix(got, tt.want+"{") {
			t.Errorf("type %q: got %q, want prefix %s", tt.typ, strings.SplitN(got, "{", 2)[0], tt.want)
		}
		if !strings.Contains(got, tt.field+" = {Some Venue}") {
			t.Errorf("type %q: venue should map to %s field, got:\n%s", tt.typ, tt.field, got)
		}
	}
}

func TestToBibTeX_CitekeyFallbacks(t *testing.T) {
	// No author, no year: sequence number
	ref := reference.ExtractedReference{SequenceNumber: 4}
	if got := ToBibTeX(ref); !strings.HasPrefix(got, "@misc{ref-4,") {
		t.Errorf("citekey should fall back to sequence number, got:\n%s", got)
	}

	// Author without year
	ref = reference.ExtractedReference{Authors: []string{"Brown, K."}}
	if got := ToBibTeX(ref); !strings.HasPrefix(got, "@misc{Brown,") {
		t.Errorf("citekey should use the family name alone, got:\n%s", got)
	}
}

func TestToBibTeX_EscapesLatex(t *testing.T) {
	ref := reference.ExtractedReference{
		Title: "Profit & Loss: 100% of the $ story",
		Type:  reference.TypeJournal,
	}

	got := ToBibTeX(ref)
	if !strings.Contains(got, `Profit \& Loss: 100\% of the \$ story`) {
		t.Errorf("special characters should be escaped, got:\n%s", got)
	}
}

func TestToBibTeXList_SeparatesEntries(t *testing.T) {
	refs := []reference.ExtractedReference{
		{Authors: []string{"Smith, J."}, Year: 2023, Type: reference.TypeJournal},
		{Authors: []string{"Brown, K."}, Year: 2022, Type: reference.TypeBook},
	}

	got := ToBibTeXList(refs)
	if strings.Count(got, "@") != 2 {
		t.Errorf("expected two entries, got:\n%s", got)
	}
	if !strings.Contains(got, "}\n\n@book") {
		t.Errorf("entries should be blank-line separated, got:\n%s", got)
	}
}
