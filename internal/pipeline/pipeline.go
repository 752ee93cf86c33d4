// Package pipeline wires segmentation, style matching, enrichment,
// deduplication and scoring into the reference-extraction entry points.
package pipeline

import (
	"errors"
	"strings"

	"github.com/kestrel-lab/reap/internal/dedupe"
	"github.com/kestrel-lab/reap/internal/enrich"
	"github.com/kestrel-lab/reap/internal/reference"
	"github.com/kestrel-lab/reap/internal/score"
	"github.com/kestrel-lab/reap/internal/segment"
	"github.com/kestrel-lab/reap/internal/style"
)

// Document-level failures. Per-candidate anomalies never surface as errors;
// they are recorded on the records themselves.
var (
	ErrMalformedInput = errors.New("input text is empty or whitespace-only")
	ErrNoReferences   = errors.New("no reference candidates found")
)

// ExtractReferences runs the full parsing pipeline over raw document text
// and returns the canonical, scored reference list. Callers apply their own
// confidence threshold before export.
func ExtractReferences(raw string) ([]reference.ExtractedReference, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrMalformedInput
	}

	// Region-based pass, then the whole-document numbered scan. The passes
	// overlap on purpose; dedup converges them.
	region, _ := segment.Bibliography(raw)
	candidates := segment.Split(region)
	candidates = append(candidates, segment.ScanNumbered(raw)...)

	if len(candidates) == 0 {
		return nil, ErrNoReferences
	}

	refs := make([]reference.ExtractedReference, 0, len(candidates))
	for _, c := range candidates {
		rec := style.Match(c.Text, c.Number)
		enrich.Apply(&rec)
		refs = append(refs, rec)
	}

	refs = dedupe.Merge(refs)
	refs = score.Finalize(refs)

	return refs, nil
}

// FilterByConfidence returns the references at or above the threshold.
// Filtering is the caller's concern; the pipeline always returns the full
// scored list.
func FilterByConfidence(refs []reference.ExtractedReference, min float64) []reference.ExtractedReference {
	filtered := make([]reference.ExtractedReference, 0, len(refs))
	for _, ref := range refs {
		if ref.Confidence >= min {
			filtered = append(filtered, ref)
		}
	}
	return filtered
}
