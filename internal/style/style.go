// Package style matches candidate reference strings against an ordered list
// of citation-style grammars.
//
// Each grammar pairs a compiled pattern with a field mapper; grammars and
// patterns are tried in fixed order and the first match wins. There is no
// best-of-all-styles scoring.
package style

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/kestrel-lab/reap/internal/reference"
)

const (
	// MatchConfidence is assigned when a grammar pattern matches.
	MatchConfidence = 0.8
	// FallbackConfidence is assigned to minimal records when no pattern matches.
	FallbackConfidence = 0.3
)

// fallbackNote annotates records that no grammar could parse.
const fallbackNote = "pattern matching failed, basic extraction only"

// mapper populates structured fields from a pattern's submatches.
type mapper func(m []string, rec *reference.ExtractedReference)

type pattern struct {
	re    *regexp.Regexp
	apply mapper
}

type grammar struct {
	style    reference.Style
	patterns []pattern
}

// grammars in evaluation order: apa > mla > chicago > ieee.
var grammars = []grammar{
	{
		style: reference.StyleAPA,
		patterns: []pattern{
			{
				// Author, A. A. (Year). Title. Journal, Volume(Issue), pages.
				re: regexp.MustCompile(`([A-Z][a-z]+(?:,\s*[A-Z]\.(?:\s*[A-Z]\.)?)*)\s*\((\d{4})\)\.\s*([^.]+)\.\s*([^,]+),\s*(\d+)(?:\((\d+)\))?(?:,\s*([\d-]+))?`),
				apply: func(m []string, rec *reference.ExtractedReference) {
					rec.Authors = splitAuthors(m[1])
					rec.Year = atoi(m[2])
					rec.Title = strings.TrimSpace(m[3])
					rec.Venue = strings.TrimSpace(m[4])
					rec.Volume = m[5]
					rec.Issue = m[6]
					rec.Pages = m[7]
				},
			},
			{
				// Author, A. A., & Author, B. B. (Year). Book title. Publisher.
				re: regexp.MustCompile(`([A-Z][a-z]+(?:,\s*[A-Z]\.(?:\s*[A-Z]\.)?)*(?:,?\s*&\s*[A-Z][a-z]+(?:,\s*[A-Z]\.(?:\s*[A-Z]\.)?)*)*)\s*\((\d{4})\)\.\s*([^.]+)\.\s*([^.]+)\.`),
				apply: func(m []string, rec *reference.ExtractedReference) {
					rec.Authors = splitAuthors(m[1])
					rec.Year = atoi(m[2])
					rec.Title = strings.TrimSpace(m[3])
					rec.Venue = strings.TrimSpace(m[4])
				},
			},
		},
	},
	{
		style: reference.StyleMLA,
		patterns: []pattern{
			{
				// Author, First. "Title." Journal, vol. #, no. #, Year, pp. #-#.
				re: regexp.MustCompile(`([A-Z][a-z]+,\s*[A-Z][a-z]+)\.\s*"([^"]+)"\.?\s*([^,]+),\s*vol\.\s*(\d+)(?:,\s*no\.\s*(\d+))?,\s*(\d{4}),\s*pp\.\s*([\d-]+)`),
				apply: func(m []string, rec *reference.ExtractedReference) {
					rec.Authors = splitAuthors(m[1])
					rec.Title = strings.TrimSpace(m[2])
					rec.Venue = strings.TrimSpace(m[3])
					rec.Volume = m[4]
					rec.Issue = m[5]
					rec.Year = atoi(m[6])
					rec.Pages = m[7]
				},
			},
			{
				// Author, First. Book Title. Publisher, Year.
				re: regexp.MustCompile(`([A-Z][a-z]+,\s*[A-Z][a-z]+)\.\s*([^.]+)\.\s*([^,]+),\s*(\d{4})\.`),
				apply: func(m []string, rec *reference.ExtractedReference) {
					rec.Authors = splitAuthors(m[1])
					rec.Title = strings.TrimSpace(m[2])
					rec.Venue = strings.TrimSpace(m[3])
					rec.Year = atoi(m[4])
				},
			},
		},
	},
	{
		style: reference.StyleChicago,
		patterns: []pattern{
			{
				// Author, First Last. "Title." Journal Volume, no. Issue (Year): pages.
				re: regexp.MustCompile(`([A-Z][a-z]+,\s*[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\.\s*"([^"]+)"\.?\s*([^0-9]+)\s*(\d+)(?:,\s*no\.\s*(\d+))?\s*\((\d{4})\):\s*([\d-]+)`),
				apply: func(m []string, rec *reference.ExtractedReference) {
					rec.Authors = splitAuthors(m[1])
					rec.Title = strings.TrimSpace(m[2])
					rec.Venue = strings.TrimSpace(m[3])
					rec.Volume = m[4]
					rec.Issue = m[5]
					rec.Year = atoi(m[6])
					rec.Pages = m[7]
				},
			},
			{
				// Author, First Last. Book Title. Place: Publisher, Year.
				re: regexp.MustCompile(`([A-Z][a-z]+,\s*[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\.\s*([^.]+)\.\s*[^:]+:\s*([^,]+),\s*(\d{4})\.`),
				apply: func(m []string, rec *reference.ExtractedReference) {
					rec.Authors = splitAuthors(m[1])
					rec.Title = strings.TrimSpace(m[2])
					rec.Venue = strings.TrimSpace(m[3])
					rec.Year = atoi(m[4])
				},
			},
		},
	},
	{
		style: reference.StyleIEEE,
		patterns: []pattern{
			{
				// [1] A. Author, "Title," Journal, vol. #, no. #, pp. #-#, Year.
				re: regexp.MustCompile(`\[(\d+)\]\s*([A-Z]\.\s*[A-Z][a-z]+(?:,\s*[A-Z]\.\s*[A-Z][a-z]+)*),\s*"([^"]+)",\s*([^,]+),\s*vol\.\s*(\d+)(?:,\s*no\.\s*(\d+))?,\s*pp\.\s*([\d-]+),\s*(\d{4})`),
				apply: func(m []string, rec *reference.ExtractedReference) {
					rec.SequenceNumber = atoi(m[1])
					rec.Authors = splitAuthors(m[2])
					rec.Title = strings.TrimSpace(m[3])
					rec.Venue = strings.TrimSpace(m[4])
					rec.Volume = m[5]
					rec.Issue = m[6]
					rec.Pages = m[7]
					rec.Year = atoi(m[8])
				},
			},
			{
				// [1] A. Author, Book Title. Publisher, Year.
				re: regexp.MustCompile(`\[(\d+)\]\s*([A-Z]\.\s*[A-Z][a-z]+(?:,\s*[A-Z]\.\s*[A-Z][a-z]+)*),\s*([^.]+)\.\s*([^,]+),\s*(\d{4})\.`),
				apply: func(m []string, rec *reference.ExtractedReference) {
					rec.SequenceNumber = atoi(m[1])
					rec.Authors = splitAuthors(m[2])
					rec.Title = strings.TrimSpace(m[3])
					rec.Venue = strings.TrimSpace(m[4])
					rec.Year = atoi(m[5])
				},
			},
		},
	},
}

// Order reports the grammar evaluation order.
func Order() []reference.Style {
	styles := make([]reference.Style, len(grammars))
	for i, g := range grammars {
		styles[i] = g.style
	}
	return styles
}

// Match parses a candidate against every grammar in order. The first pattern
// to match populates the record and sets the style; no match yields a minimal
// record with only the full text and a low confidence.
func Match(text string, number int) reference.ExtractedReference {
	rec := reference.ExtractedReference{
		SequenceNumber: number,
		FullText:       strings.TrimSpace(text),
		Type:           reference.TypeUnknown,
		Style:          reference.StyleUnknown,
	}

	for _, g := range grammars {
		for _, p := range g.patterns {
			m := p.re.FindStringSubmatch(rec.FullText)
			if m == nil {
				continue
			}
			rec.Style = g.style
			rec.Confidence = MatchConfidence
			p.apply(m, &rec)
			return rec
		}
	}

	rec.Confidence = FallbackConfidence
	rec.AppendNote(fallbackNote)
	return rec
}

var authorSeparator = regexp.MustCompile(`,?\s*&\s*`)

// splitAuthors breaks an author-list capture into individual names, splitting
// on ampersand joins ("Johnson, M., & Brown, K.").
func splitAuthors(s string) []string {
	var authors []string
	for _, part := range authorSeparator.Split(s, -1) {
		if part = strings.TrimSpace(part); part != "" {
			authors = append(authors, part)
		}
	}
	return authors
}

// atoi parses digits already validated by a pattern; out-of-range years are
// handled later by the scorer.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
