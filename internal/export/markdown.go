package export

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/kestrel-lab/reap/internal/reference"
)

// WriteMarkdown writes a human-readable extraction report: summary
// statistics followed by a per-reference field table.
func WriteMarkdown(path string, refs []reference.ExtractedReference) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating markdown file: %w", err)
	}
	defer f.Close()

	var b strings.Builder

	b.WriteString("# Extracted References Report\n\n")
	fmt.Fprintf(&b, "**Total References:** %d  \n", len(refs))
	fmt.Fprintf(&b, "**Extraction Date:** %s  \n\n", time.Now().Format("2006-01-02 15:04:05"))

	if len(refs) > 0 {
		total := 0.0
		typeCounts := make(map[reference.Type]int)
		for _, ref := range refs {
			total += ref.Confidence
			typeCounts[ref.Type]++
		}
		fmt.Fprintf(&b, "**Average Confidence Score:** %.2f  \n\n", total/float64(len(refs)))

		b.WriteString("## Reference Types Summary\n\n")
		types := make([]string, 0, len(typeCounts))
		for t := range typeCounts {
			types = append(types, string(t))
		}
		sort.Strings(types)
		for _, t := range types {
			fmt.Fprintf(&b, "- **%s:** %d\n", titleCase(t), typeCounts[reference.Type(t)])
		}
		b.WriteString("\n")
	}

	b.WriteString("## Detailed References\n\n")

	for i, ref := range refs {
		fmt.Fprintf(&b, "### Reference %d\n\n", i+1)
		if ref.SequenceNumber != 0 {
			fmt.Fprintf(&b, "**Reference Number:** %d  \n", ref.SequenceNumber)
		}
		fmt.Fprintf(&b, "**Full Text:** %s  \n\n", ref.FullText)

		b.WriteString("| Field | Value |\n")
		b.WriteString("|-------|-------|\n")
		writeRow(&b, "Authors", reference.JoinAuthors(ref.Authors))
		writeRow(&b, "Title", ref.Title)
		if ref.Year != 0 {
			fmt.Fprintf(&b, "| Year | %d |\n", ref.Year)
		}
		writeRow(&b, "Venue", ref.Venue)
		writeRow(&b, "Volume", ref.Volume)
		writeRow(&b, "Issue", ref.Issue)
		writeRow(&b, "Pages", ref.Pages)
		writeRow(&b, "DOI", ref.DOI)
		writeRow(&b, "URL", ref.URL)
		writeRow(&b, "ISBN", ref.ISBN)
		writeRow(&b, "Type", string(ref.Type))
		writeRow(&b, "Citation Style", string(ref.Style))
		fmt.Fprintf(&b, "| Confidence Score | %.2f |\n", ref.Confidence)
		writeRow(&b, "Notes", ref.Notes)

		b.WriteString("\n---\n\n")
	}

	if _, err := f.WriteString(b.String()); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	return nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func writeRow(b *strings.Builder, field, value string) {
	if value != "" {
		fmt.Fprintf(b, "| %s | %s |\n", field, value)
	}
}
