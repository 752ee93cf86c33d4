// Package reference defines the core domain types for extracted references.
package reference

// Type classifies what kind of publication a reference points at.
type Type string

// Reference types, checked in keyword-priority order during enrichment.
const (
	TypeJournal    Type = "journal"
	TypeConference Type = "conference"
	TypeBook       Type = "book"
	TypeWebsite    Type = "website"
	TypeThesis     Type = "thesis"
	TypeUnknown    Type = "unknown"
)

// Style identifies the citation-style grammar a reference matched.
type Style string

// Citation styles, in grammar evaluation order.
const (
	StyleAPA     Style = "apa"
	StyleMLA     Style = "mla"
	StyleChicago Style = "chicago"
	StyleIEEE    Style = "ieee"
	StyleUnknown Style = "unknown"
)

// ExtractedReference is one bibliographic reference pulled out of document
// text. Records are mutated in place by the enricher and scorer and are
// final once the pipeline returns them.
type ExtractedReference struct {
	SequenceNumber int      `json:"sequence_number,omitempty"` // Bracket number from the source, or positional fallback
	FullText       string   `json:"full_text"`
	Authors        []string `json:"authors"`
	Title          string   `json:"title"`
	Year           int      `json:"year,omitempty"` // 0 when absent or cleared as invalid
	Venue          string   `json:"venue"`          // Journal, conference, or publisher
	Volume         string   `json:"volume,omitempty"`
	Issue          string   `json:"issue,omitempty"`
	Pages          string   `json:"pages,omitempty"`
	DOI            string   `json:"doi,omitempty"`
	URL            string   `json:"url,omitempty"`
	ISBN           string   `json:"isbn,omitempty"`
	Type           Type     `json:"reference_type"`
	Style          Style    `json:"citation_style"`
	Confidence     float64  `json:"confidence_score"` // Always in [0,1]
	Notes          string   `json:"notes,omitempty"`  // Per-record anomaly annotations
}

// AppendNote adds a free-text annotation to the record.
func (r *ExtractedReference) AppendNote(msg string) {
	if r.Notes == "" {
		r.Notes = msg
		return
	}
	r.Notes += "; " + msg
}
