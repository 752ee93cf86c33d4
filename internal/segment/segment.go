// Package segment splits raw document text into candidate reference strings.
//
// Two passes run over every document: a region-based pass scoped to the
// bibliography section, and a whole-document scan for bracket-numbered
// entries. The passes deliberately overlap; deduplication downstream merges
// the duplicates rather than either pass trying to be exclusive.
package segment

import (
	"fmt"
	"regexp"
	"strings"
)

// MinCandidateLength is the shortest text span accepted as a reference
// candidate. Anything shorter is discarded at segmentation time.
const MinCandidateLength = 20

// Strategy records which segmentation pass produced a candidate.
type Strategy string

const (
	StrategyBracket Strategy = "bracket" // Region split on [n] markers
	StrategyLine    Strategy = "line"    // Region line-based with continuation
	StrategyScan    Strategy = "scan"    // Whole-document numbered scan
)

// Candidate is a contiguous text span hypothesized to be one reference.
type Candidate struct {
	Text     string
	Number   int // Bracket number when present, positional otherwise
	Strategy Strategy
}

var sectionHeaders = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\n\s*references\s*\n`),
	regexp.MustCompile(`(?i)\n\s*bibliography\s*\n`),
	regexp.MustCompile(`(?i)\n\s*works\s+cited\s*\n`),
	regexp.MustCompile(`(?i)\n\s*literature\s+cited\s*\n`),
	regexp.MustCompile(`(?i)\n\s*citations\s*\n`),
}

var trailingHeaders = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\n\s*appendix`),
	regexp.MustCompile(`(?i)\n\s*acknowledgments?`),
	regexp.MustCompile(`(?i)\n\s*author\s+information`),
	regexp.MustCompile(`(?i)\n\s*about\s+the\s+authors?`),
}

var (
	bracketMarker = regexp.MustCompile(`\[(\d+)\]`)
	blankLine     = regexp.MustCompile(`\n\s*\n`)
)

// Line prefixes that start a new reference in the line-based strategy.
var referenceStarts = []*regexp.Regexp{
	regexp.MustCompile(`^\[\d+\]`),                    // [1]
	regexp.MustCompile(`^\d+\.`),                      // 1.
	regexp.MustCompile(`^[A-Z][a-z]+,\s*[A-Z]`),       // Author, A.
	regexp.MustCompile(`^[A-Z][a-z]+,\s*[A-Z][a-z]+`), // Author, First
}

// Bibliography locates the reference section of the document. It returns the
// section text and whether a header was found; without a header the whole
// document is the region.
func Bibliography(text string) (string, bool) {
	for _, header := range sectionHeaders {
		loc := header.FindStringIndex(text)
		if loc == nil {
			continue
		}

		start := loc[1]
		end := len(text)
		for _, trailer := range trailingHeaders {
			if m := trailer.FindStringIndex(text[start:]); m != nil && start+m[0] < end {
				end = start + m[0]
			}
		}

		return strings.TrimSpace(text[start:end]), true
	}

	return text, false
}

// Split segments the bibliography region into candidates. Bracket-numbered
// text splits strictly on the markers; everything else falls back to the
// line-based strategy.
func Split(region string) []Candidate {
	if bracketMarker.MatchString(region) {
		return splitBracketed(region)
	}
	return splitLines(region)
}

// splitBracketed splits on [n] markers; the span between one marker and the
// next becomes a candidate tagged with its bracket number.
func splitBracketed(region string) []Candidate {
	markers := bracketMarker.FindAllStringSubmatchIndex(region, -1)

	var candidates []Candidate
	for i, m := range markers {
		number := atoi(region[m[2]:m[3]])

		end := len(region)
		if i+1 < len(markers) {
			end = markers[i+1][0]
		}

		span := strings.TrimSpace(region[m[1]:end])
		if len(span) < MinCandidateLength {
			continue
		}

		candidates = append(candidates, Candidate{
			Text:     fmt.Sprintf("[%d] %s", number, span),
			Number:   number,
			Strategy: StrategyBracket,
		})
	}

	return candidates
}

// splitLines iterates lines, opening a new candidate at recognizable
// reference starts and space-joining continuation lines. Blank lines close
// the open candidate.
func splitLines(region string) []Candidate {
	var spans []string
	var current string

	flush := func() {
		if current != "" {
			spans = append(spans, current)
			current = ""
		}
	}

	for _, line := range strings.Split(region, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}

		if startsReference(line) {
			flush()
			current = line
		} else if current != "" {
			current += " " + line
		} else {
			current = line
		}
	}
	flush()

	var candidates []Candidate
	for _, span := range spans {
		if len(strings.TrimSpace(span)) < MinCandidateLength {
			continue
		}
		candidates = append(candidates, Candidate{
			Text:     span,
			Number:   len(candidates) + 1, // Positional
			Strategy: StrategyLine,
		})
	}

	return candidates
}

func startsReference(line string) bool {
	for _, re := range referenceStarts {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// ScanNumbered finds bracket-numbered references anywhere in the document,
// ignoring section boundaries. Each span runs from its marker to the next
// marker or the first blank-line boundary.
func ScanNumbered(text string) []Candidate {
	markers := bracketMarker.FindAllStringSubmatchIndex(text, -1)

	var candidates []Candidate
	for i, m := range markers {
		number := atoi(text[m[2]:m[3]])

		end := len(text)
		if i+1 < len(markers) {
			end = markers[i+1][0]
		}
		span := text[m[1]:end]
		if blank := blankLine.FindStringIndex(span); blank != nil {
			span = span[:blank[0]]
		}

		span = strings.TrimSpace(span)
		if len(span) <= MinCandidateLength {
			continue
		}

		candidates = append(candidates, Candidate{
			Text:     span,
			Number:   number,
			Strategy: StrategyScan,
		})
	}

	return candidates
}

// atoi converts marker digits already validated by the regexp.
func atoi(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}
