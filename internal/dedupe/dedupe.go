// Package dedupe merges near-duplicate reference candidates by Jaccard word
// similarity, keeping the higher-confidence copy of each collision.
package dedupe

import (
	"strings"

	"github.com/kestrel-lab/reap/internal/reference"
)

// Similarity thresholds. Titles compare more loosely than full text because
// titles are short and already structured.
const (
	TitleThreshold = 0.8
	TextThreshold  = 0.9
)

// Merge processes candidates in order against an accumulating accepted set.
// A colliding pair keeps whichever side has higher confidence; ties keep the
// already-accepted entry. O(n²) in candidate count, acceptable at reference
// list sizes.
func Merge(refs []reference.ExtractedReference) []reference.ExtractedReference {
	var kept []reference.ExtractedReference

	for _, ref := range refs {
		duplicate := false
		for i, existing := range kept {
			if !Similar(ref, existing) {
				continue
			}
			if ref.Confidence > existing.Confidence {
				// Incoming wins: drop the accepted entry, append the
				// incoming one at the end (order-sensitive by design).
				kept = append(kept[:i], kept[i+1:]...)
				kept = append(kept, ref)
			}
			duplicate = true
			break
		}
		if !duplicate {
			kept = append(kept, ref)
		}
	}

	return kept
}

// Similar reports whether two references are likely duplicates: title
// similarity when both titles are present, full-text similarity otherwise.
func Similar(a, b reference.ExtractedReference) bool {
	if a.Title != "" && b.Title != "" {
		if Jaccard(a.Title, b.Title) > TitleThreshold {
			return true
		}
	}
	return Jaccard(a.FullText, b.FullText) > TextThreshold
}

// Jaccard computes word-set similarity between two strings: intersection
// size over union size of their lower-cased, punctuation-trimmed word sets.
func Jaccard(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}

	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la == lb {
		return 1
	}

	setA, setB := wordSet(la), wordSet(lb)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for w := range setA {
		if _, ok := setB[w]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection

	return float64(intersection) / float64(union)
}

// wordSet tokenizes on whitespace and trims surrounding punctuation so that
// case- and punctuation-only variants compare equal.
func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		w = strings.Trim(w, `.,;:"'()[]`)
		if w != "" {
			set[w] = struct{}{}
		}
	}
	return set
}
