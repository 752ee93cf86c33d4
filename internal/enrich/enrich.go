// Package enrich extracts auxiliary identifiers and classifies reference
// types via dedicated patterns, independent of style matching.
package enrich

import (
	"regexp"
	"strings"

	"github.com/kestrel-lab/reap/internal/reference"
)

var (
	doiPattern    = regexp.MustCompile(`(?i)doi:\s*(10\.\d+/\S+)`)
	urlPattern    = regexp.MustCompile(`https?://\S+`)
	isbnPattern   = regexp.MustCompile(`(?i)ISBN:?\s*((?:\d{3}-)?\d{1,5}-\d{1,7}-\d{1,7}-[\dX])`)
	volumePattern = regexp.MustCompile(`(?i)(?:vol\.?\s*|volume\s*)(\d+)`)
	issuePattern  = regexp.MustCompile(`(?i)(?:no\.?\s*|issue\s*|number\s*)(\d+)`)
	pagesPattern  = regexp.MustCompile(`(?i)(?:pp?\.?\s*|pages?\s*)([\d-]+)`)
)

// Keyword groups for type classification, checked in priority order.
var typeKeywords = []struct {
	typ      reference.Type
	keywords []string
}{
	{reference.TypeJournal, []string{"journal", "vol.", "volume", "issue"}},
	{reference.TypeConference, []string{"proceedings", "conference", "symposium"}},
	{reference.TypeBook, []string{"book", "publisher", "press"}},
	{reference.TypeWebsite, []string{"http://", "https://", "www."}},
	{reference.TypeThesis, []string{"thesis", "dissertation"}},
}

// Apply extracts DOI, URL, ISBN, volume, issue and pages from the candidate
// text and classifies the reference type. Each pattern is independent and
// non-exclusive; fields a grammar already captured are left alone.
func Apply(rec *reference.ExtractedReference) {
	text := rec.FullText

	if m := doiPattern.FindStringSubmatch(text); m != nil {
		rec.DOI = strings.TrimRight(m[1], ".,;:)")
	}
	if m := urlPattern.FindString(text); m != "" {
		rec.URL = strings.TrimRight(m, ".,;:)")
	}
	if m := isbnPattern.FindStringSubmatch(text); m != nil {
		rec.ISBN = m[1]
	}
	if rec.Volume == "" {
		if m := volumePattern.FindStringSubmatch(text); m != nil {
			rec.Volume = m[1]
		}
	}
	if rec.Issue == "" {
		if m := issuePattern.FindStringSubmatch(text); m != nil {
			rec.Issue = m[1]
		}
	}
	if rec.Pages == "" {
		if m := pagesPattern.FindStringSubmatch(text); m != nil {
			rec.Pages = m[1]
		}
	}

	rec.Type = Classify(text)
}

// Classify determines the reference type by keyword priority; the first
// matching group wins.
func Classify(text string) reference.Type {
	lower := strings.ToLower(text)
	for _, group := range typeKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(lower, kw) {
				return group.typ
			}
		}
	}
	return reference.TypeUnknown
}
