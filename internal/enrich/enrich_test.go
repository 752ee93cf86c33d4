package enrich

import (
	"testing"

	"github.com/kestrel-lab/reap/internal/reference"
)

func TestApply_DOI(t *testing.T) {
	rec := reference.ExtractedReference{FullText: "Smith, J. (2023). A paper. Journal. doi: 10.1234/abcd.5678."}
	Apply(&rec)

	if rec.DOI != "10.1234/abcd.5678" {
		t.Errorf("DOI = %q, want 10.1234/abcd.5678 (trailing period trimmed)", rec.DOI)
	}
}

func TestApply_URL(t *testing.T) {
	rec := reference.ExtractedReference{FullText: "Available at https://example.org/paper, accessed 2023."}
	Apply(&rec)

	if rec.URL != "https://example.org/paper" {
		t.Errorf("URL = %q, want https://example.org/paper", rec.URL)
	}
}

func TestApply_ISBN(t *testing.T) {
	rec := reference.ExtractedReference{FullText: "A book. Publisher, 2020. ISBN: 978-0-306-40615-7"}
	Apply(&rec)

	if rec.ISBN != "978-0-306-40615-7" {
		t.Errorf("ISBN = %q, want 978-0-306-40615-7", rec.ISBN)
	}
}

func TestApply_VolumeIssuePages(t *testing.T) {
	rec := reference.ExtractedReference{FullText: "Something something, vol. 12, no. 4, pp. 100-110, 2021."}
	Apply(&rec)

	if rec.Volume != "12" {
		t.Errorf("volume = %q, want 12", rec.Volume)
	}
	if rec.Issue != "4" {
		t.Errorf("issue = %q, want 4", rec.Issue)
	}
	if rec.Pages != "100-110" {
		t.Errorf("pages = %q, want 100-110", rec.Pages)
	}
}

func TestApply_KeepsGrammarCapturedFields(t *testing.T) {
	rec := reference.ExtractedReference{
		FullText: "Something, vol. 99, no. 8, pp. 1-2.",
		Volume:   "15",
		Issue:    "3",
		Pages:    "45-62",
	}
	Apply(&rec)

	if rec.Volume != "15" || rec.Issue != "3" || rec.Pages != "45-62" {
		t.Errorf("grammar-captured fields were overwritten: %q/%q/%q", rec.Volume, rec.Issue, rec.Pages)
	}
}

func TestClassify_Priority(t *testing.T) {
	tests := []struct {
		text string
		want reference.Type
	}{
		{"Published in the AI Journal, 15(3)", reference.TypeJournal},
		{"Proceedings of the 10th Conference on Things", reference.TypeConference},
		{"Cambridge University Press", reference.TypeBook},
		{"Available at https://example.org", reference.TypeWebsite},
		{"PhD dissertation, Some University", reference.TypeThesis},
		{"Nothing recognizable here", reference.TypeUnknown},
		// journal outranks conference when both appear
		{"Journal of Conference Studies", reference.TypeJournal},
		// book outranks website
		{"Publisher site at https://press.example.org", reference.TypeBook},
	}

	for _, tt := range tests {
		if got := Classify(tt.text); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}
