package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/kestrel-lab/reap/internal/reference"
)

// ToBibTeX converts an extracted reference to BibTeX format. The citekey is
// derived from the first author's family name and the year.
func ToBibTeX(ref reference.ExtractedReference) string {
	entryType := bibtexEntryType(ref.Type)
	var b strings.Builder

	b.WriteString(fmt.Sprintf("@%s{%s,\n", entryType, citekey(ref)))

	if len(ref.Authors) > 0 {
		b.WriteString(fmt.Sprintf("  author = {%s},\n", escapeLatex(strings.Join(ref.Authors, " and "))))
	}
	if ref.Title != "" {
		b.WriteString(fmt.Sprintf("  title = {%s},\n", escapeLatex(ref.Title)))
	}
	if ref.Venue != "" {
		fieldName := "journal"
		switch entryType {
		case "inproceedings":
			fieldName = "booktitle"
		case "book", "misc", "phdthesis":
			fieldName = "publisher"
		}
		b.WriteString(fmt.Sprintf("  %s = {%s},\n", fieldName, escapeLatex(ref.Venue)))
	}
	if ref.Year != 0 {
		b.WriteString(fmt.Sprintf("  year = {%d},\n", ref.Year))
	}
	if ref.Volume != "" {
		b.WriteString(fmt.Sprintf("  volume = {%s},\n", ref.Volume))
	}
	if ref.Issue != "" {
		b.WriteString(fmt.Sprintf("  number = {%s},\n", ref.Issue))
	}
	if ref.Pages != "" {
		b.WriteString(fmt.Sprintf("  pages = {%s},\n", ref.Pages))
	}
	if ref.DOI != "" {
		b.WriteString(fmt.Sprintf("  doi = {%s},\n", ref.DOI))
	}
	if ref.URL != "" {
		b.WriteString(fmt.Sprintf("  url = {%s},\n", ref.URL))
	}
	if ref.ISBN != "" {
		b.WriteString(fmt.Sprintf("  isbn = {%s},\n", ref.ISBN))
	}

	b.WriteString("}\n")

	return b.String()
}

// ToBibTeXList converts multiple references to BibTeX format.
func ToBibTeXList(refs []reference.ExtractedReference) string {
	var entries []string
	for _, ref := range refs {
		entries = append(entries, ToBibTeX(ref))
	}
	return strings.Join(entries, "\n")
}

// WriteBibTeX writes references as a .bib file.
func WriteBibTeX(path string, refs []reference.ExtractedReference) error {
	if err := os.WriteFile(path, []byte(ToBibTeXList(refs)), 0644); err != nil {
		return fmt.Errorf("writing bibtex file: %w", err)
	}
	return nil
}

// bibtexEntryType maps reference types to BibTeX entry types.
func bibtexEntryType(t reference.Type) string {
	switch t {
	case reference.TypeJournal:
		return "article"
	case reference.TypeConference:
		return "inproceedings"
	case reference.TypeBook:
		return "book"
	case reference.TypeThesis:
		return "phdthesis"
	default:
		return "misc"
	}
}

// citekey builds a stable-ish BibTeX key: family name of the first author
// plus the year, falling back to the sequence number.
func citekey(ref reference.ExtractedReference) string {
	name := "ref"
	if len(ref.Authors) > 0 {
		family := ref.Authors[0]
		if idx := strings.IndexAny(family, ", "); idx > 0 {
			family = family[:idx]
		}
		if family != "" {
			name = family
		}
	}

	if ref.Year != 0 {
		return fmt.Sprintf("%s%d", name, ref.Year)
	}
	if ref.SequenceNumber != 0 {
		return fmt.Sprintf("%s-%d", name, ref.SequenceNumber)
	}
	return name
}

// escapeLatex escapes special LaTeX characters.
func escapeLatex(s string) string {
	// Order matters: & must be first (before other escapes that might produce &)
	replacer := strings.NewReplacer(
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
		"{", `\{`,
		"}", `\}`,
		"~", `\textasciitilde{}`,
		"^", `\textasciicircum{}`,
	)
	return replacer.Replace(s)
}
