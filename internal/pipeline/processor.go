package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/kestrel-lab/reap/internal/extract"
	"github.com/kestrel-lab/reap/internal/reference"
)

// Processor runs the document-level flow: arbitrated text extraction
// followed by the reference pipeline.
type Processor struct {
	Arbiter       *extract.Arbiter
	MinConfidence float64 // Threshold applied to returned references
	MaxFileSizeMB int     // 0 disables the size check
}

// DocumentResult is the outcome of processing one document.
type DocumentResult struct {
	Path       string                         `json:"path"`
	Backend    string                         `json:"backend"`
	Quality    float64                        `json:"extraction_quality"`
	TextLength int                            `json:"text_length"`
	TotalFound int                            `json:"total_found"`
	References []reference.ExtractedReference `json:"references"` // At or above MinConfidence
}

// ProcessDocument extracts the best raw text for a document and parses its
// references.
func (p *Processor) ProcessDocument(ctx context.Context, path string) (*DocumentResult, error) {
	if p.MaxFileSizeMB > 0 {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		if sizeMB := float64(info.Size()) / (1 << 20); sizeMB > float64(p.MaxFileSizeMB) {
			return nil, fmt.Errorf("file too large: %.1fMB (max %dMB)", sizeMB, p.MaxFileSizeMB)
		}
	}

	sel, err := p.Arbiter.Best(ctx, path)
	if err != nil {
		return nil, err
	}

	refs, err := ExtractReferences(sel.Text)
	if err != nil {
		return nil, err
	}

	return &DocumentResult{
		Path:       path,
		Backend:    sel.Backend,
		Quality:    sel.Quality,
		TextLength: len(sel.Text),
		TotalFound: len(refs),
		References: FilterByConfidence(refs, p.MinConfidence),
	}, nil
}

// BatchItem is the per-document entry in a batch summary.
type BatchItem struct {
	Path       string `json:"path"`
	Status     string `json:"status"` // success, error
	References int    `json:"references_count"`
	Error      string `json:"error,omitempty"`
}

// BatchResult summarizes a sequential batch run.
type BatchResult struct {
	TotalFiles      int               `json:"total_files"`
	Successful      int               `json:"successful_extractions"`
	Failed          int               `json:"failed_extractions"`
	TotalReferences int               `json:"total_references_extracted"`
	Items           []BatchItem       `json:"items"`
	Documents       []*DocumentResult `json:"-"`
}

// ProcessBatch processes documents strictly sequentially. A failing document
// is recorded and the batch continues; per-document results for successful
// files are retained for export.
func (p *Processor) ProcessBatch(ctx context.Context, paths []string) (*BatchResult, error) {
	result := &BatchResult{TotalFiles: len(paths)}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		doc, err := p.ProcessDocument(ctx, path)
		if err != nil {
			result.Failed++
			result.Items = append(result.Items, BatchItem{
				Path:   path,
				Status: "error",
				Error:  err.Error(),
			})
			continue
		}

		result.Successful++
		result.TotalReferences += len(doc.References)
		result.Items = append(result.Items, BatchItem{
			Path:       path,
			Status:     "success",
			References: len(doc.References),
		})
		result.Documents = append(result.Documents, doc)
	}

	return result, nil
}
