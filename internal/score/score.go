// Package score assigns each surviving reference a completeness-based
// confidence score and normalizes its text fields.
package score

import (
	"math"

	"github.com/kestrel-lab/reap/internal/reference"
)

// Valid publication-year range; years outside it are cleared with a note.
const (
	MinYear = 1900
	MaxYear = 2030
)

const invalidYearNote = "invalid year detected"

// Completeness computes the confidence score from which fields are filled,
// clamped to [0,1]. Required fields carry most of the weight; the five
// optional identifiers share the remainder.
func Completeness(ref reference.ExtractedReference) float64 {
	s := 0.0
	if len(ref.Authors) > 0 {
		s += 0.3
	}
	if ref.Title != "" {
		s += 0.3
	}
	if ref.Year != 0 {
		s += 0.2
	}
	if ref.Venue != "" {
		s += 0.2
	}

	optional := []string{ref.DOI, ref.URL, ref.Volume, ref.Issue, ref.Pages}
	filled := 0
	for _, f := range optional {
		if f != "" {
			filled++
		}
	}
	s += float64(filled) / float64(len(optional)) * 0.2

	return math.Min(1.0, s)
}

// Finalize cleans text fields, validates years, and overwrites each record's
// style-match confidence with its completeness score. Completeness, not
// style recognition, is the caller-facing filtering signal; the matched
// style stays on the record for provenance.
func Finalize(refs []reference.ExtractedReference) []reference.ExtractedReference {
	for i := range refs {
		ref := &refs[i]

		ref.FullText = reference.Clean(ref.FullText)
		ref.Title = reference.Clean(ref.Title)
		ref.Venue = reference.Clean(ref.Venue)

		if ref.Year != 0 && (ref.Year < MinYear || ref.Year > MaxYear) {
			ref.Year = 0
			ref.AppendNote(invalidYearNote)
		}

		ref.Confidence = Completeness(*ref)
	}
	return refs
}
