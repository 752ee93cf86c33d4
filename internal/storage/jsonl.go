// Package storage persists extracted references in JSONL and SQLite formats.
// JSONL is the durable, append-friendly record of extraction runs; SQLite is
// an ephemeral query cache rebuilt from it.
package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/kestrel-lab/reap/internal/reference"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL lines
// (1MB per line).
const MaxJSONLLineCapacity = 1024 * 1024

// Record pairs an extracted reference with its source document.
type Record struct {
	Document string `json:"document"`
	reference.ExtractedReference
}

// ReadAll reads all records from a JSONL file. A missing file yields an
// empty slice, not an error.
func ReadAll(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening refs file: %w", err)
	}
	defer f.Close()

	var records []Record
	scanner := bufio.NewScanner(f)

	buf := make([]byte, MaxJSONLLineCapacity)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		records = append(records, rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading refs file: %w", err)
	}

	return records, nil
}

// AppendAll appends one document's references to the end of a JSONL file.
func AppendAll(path, document string, refs []reference.ExtractedReference) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening refs file for append: %w", err)
	}
	defer f.Close()

	for i, ref := range refs {
		data, err := json.Marshal(Record{Document: document, ExtractedReference: ref})
		if err != nil {
			return fmt.Errorf("encoding reference %d: %w", i, err)
		}
		if _, err := f.Write(data); err != nil {
			return fmt.Errorf("writing reference %d: %w", i, err)
		}
		if _, err := f.WriteString("\n"); err != nil {
			return fmt.Errorf("writing newline: %w", err)
		}
	}

	return nil
}

// WriteAll writes all records to a JSONL file, replacing existing content.
func WriteAll(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating refs file: %w", err)
	}
	defer f.Close()

	for i, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encoding record %d: %w", i, err)
		}
		if _, err := f.Write(data); err != nil {
			return fmt.Errorf("writing record %d: %w", i, err)
		}
		if _, err := f.WriteString("\n"); err != nil {
			return fmt.Errorf("writing newline: %w", err)
		}
	}

	return nil
}
