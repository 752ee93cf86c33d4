package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/kestrel-lab/reap/internal/reference"
)

// Title truncation length for human-readable listings.
const listTitleMaxLen = 70

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitWithError outputs an error in the appropriate format (human or JSON)
// and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// printReferencesHuman prints an extracted reference list for terminals.
func printReferencesHuman(refs []reference.ExtractedReference) {
	for i, ref := range refs {
		number := ref.SequenceNumber
		if number == 0 {
			number = i + 1
		}

		title := ref.Title
		if title == "" {
			title = truncateString(ref.FullText, listTitleMaxLen)
		}
		fmt.Printf("[%d] %s\n", number, truncateString(title, listTitleMaxLen))

		if len(ref.Authors) > 0 {
			fmt.Printf("    Authors: %s\n", strings.Join(ref.Authors, "; "))
		}
		if ref.Year != 0 {
			fmt.Printf("    Year: %d\n", ref.Year)
		}
		if ref.Venue != "" {
			fmt.Printf("    Venue: %s\n", ref.Venue)
		}
		if ref.DOI != "" {
			fmt.Printf("    DOI: %s\n", ref.DOI)
		}
		fmt.Printf("    Type: %s  Style: %s  Confidence: %.2f\n", ref.Type, ref.Style, ref.Confidence)
		if ref.Notes != "" {
			fmt.Printf("    Notes: %s\n", ref.Notes)
		}
		fmt.Println()
	}
}
