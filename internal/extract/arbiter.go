package extract

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"golang.org/x/time/rate"
)

// ErrNoTextExtracted is returned when every configured backend fails or
// produces empty text.
var ErrNoTextExtracted = errors.New("no text extracted by any backend")

// OCRPenalty scales quality scores for OCR-derived text.
const OCRPenalty = 0.8

// DefaultIndicators is the academic-document marker vocabulary used for
// quality scoring. Callers may override it with WithIndicators.
var DefaultIndicators = []string{
	"abstract", "introduction", "methodology", "results", "conclusion",
	"references", "bibliography", "doi:", "http://", "https://",
	"journal", "conference", "proceedings", "volume", "issue",
}

// Selection is the winning extraction picked by the arbiter.
type Selection struct {
	Result
	Backend string
	Quality float64
}

// Arbiter invokes each backend in priority order and keeps the single
// highest-scoring successful result. Ordering backends non-OCR first makes
// score ties resolve in favor of non-OCR text.
type Arbiter struct {
	backends   []Backend
	indicators []string
	limiter    *rate.Limiter // Paces subprocess-heavy backends, nil disables
	failures   []string      // Per-backend failure messages from the last run
}

// Option configures an Arbiter.
type Option func(*Arbiter)

// WithIndicators overrides the quality-indicator vocabulary.
func WithIndicators(indicators []string) Option {
	return func(a *Arbiter) {
		if len(indicators) > 0 {
			a.indicators = indicators
		}
	}
}

// WithLimiter paces backend invocations with the given rate limiter.
func WithLimiter(l *rate.Limiter) Option {
	return func(a *Arbiter) {
		a.limiter = l
	}
}

// NewArbiter creates an arbiter over the given backends. Backend order is
// the tie-break priority order.
func NewArbiter(backends []Backend, opts ...Option) *Arbiter {
	a := &Arbiter{
		backends:   backends,
		indicators: DefaultIndicators,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Best runs every backend against the document and returns the highest
// scoring successful result. A backend failure is recorded and skipped;
// only total failure is an error.
func (a *Arbiter) Best(ctx context.Context, path string) (Selection, error) {
	a.failures = nil

	best := Selection{Quality: 0}
	found := false

	for _, backend := range a.backends {
		if a.limiter != nil {
			if err := a.limiter.Wait(ctx); err != nil {
				return Selection{}, err
			}
		}

		result, err := backend.Extract(ctx, path)
		if err != nil {
			a.failures = append(a.failures, fmt.Sprintf("%s: %v", backend.Name(), err))
			continue
		}
		if strings.TrimSpace(result.Text) == "" {
			a.failures = append(a.failures, fmt.Sprintf("%s: empty text", backend.Name()))
			continue
		}

		quality := a.Score(result.Text)
		if result.OCR {
			quality *= OCRPenalty
		}

		// Strictly greater: ties keep the earlier (higher priority) backend.
		if !found || quality > best.Quality {
			best = Selection{Result: result, Backend: backend.Name(), Quality: quality}
			found = true
		}
	}

	if !found {
		if len(a.failures) > 0 {
			return Selection{}, fmt.Errorf("%w: %s", ErrNoTextExtracted, strings.Join(a.failures, "; "))
		}
		return Selection{}, ErrNoTextExtracted
	}

	return best, nil
}

// Failures reports the per-backend failure messages from the last Best call.
func (a *Arbiter) Failures() []string {
	return a.failures
}

// Score estimates how much the text resembles an academic document, in [0,1].
// Each vocabulary indicator contributes at most once regardless of how often
// it occurs.
func (a *Arbiter) Score(text string) float64 {
	if text == "" {
		return 0
	}

	charCount := float64(len(text))
	wordCount := float64(len(strings.Fields(text)))

	lower := strings.ToLower(text)
	hits := 0
	for _, indicator := range a.indicators {
		if strings.Contains(lower, indicator) {
			hits++
		}
	}

	score := 0.3*charCount/10000 +
		0.3*wordCount/2000 +
		0.4*float64(hits)/float64(len(a.indicators))

	return math.Min(1.0, score)
}
