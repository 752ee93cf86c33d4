package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/kestrel-lab/reap/internal/reference"
)

// Columns is the flat-record column set, in output order. List fields
// (authors) serialize as a "; "-joined string.
var Columns = []string{
	"sequence_number", "full_text", "authors", "title", "year", "venue",
	"volume", "issue", "pages", "doi", "url", "isbn",
	"reference_type", "citation_style", "confidence_score", "notes",
}

// WriteCSV writes references as CSV with a header row.
func WriteCSV(w io.Writer, refs []reference.ExtractedReference) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, ref := range refs {
		if err := cw.Write(flatRow(ref)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes references as a CSV file.
func WriteCSVFile(path string, refs []reference.ExtractedReference) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating csv file: %w", err)
	}
	defer f.Close()

	return WriteCSV(f, refs)
}

func flatRow(ref reference.ExtractedReference) []string {
	seq := ""
	if ref.SequenceNumber != 0 {
		seq = strconv.Itoa(ref.SequenceNumber)
	}
	year := ""
	if ref.Year != 0 {
		year = strconv.Itoa(ref.Year)
	}

	return []string{
		seq,
		ref.FullText,
		reference.JoinAuthors(ref.Authors),
		ref.Title,
		year,
		ref.Venue,
		ref.Volume,
		ref.Issue,
		ref.Pages,
		ref.DOI,
		ref.URL,
		ref.ISBN,
		string(ref.Type),
		string(ref.Style),
		strconv.FormatFloat(ref.Confidence, 'f', 2, 64),
		ref.Notes,
	}
}
