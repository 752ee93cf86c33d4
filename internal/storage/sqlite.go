package storage

import (
	"database/sql"
	"fmt"

	"github.com/kestrel-lab/reap/internal/reference"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// selectRecordFields is the standard field list for SELECT queries.
const selectRecordFields = `document, sequence_number, full_text, authors,
	title, year, venue, volume, issue, pages,
	doi, url, isbn, reference_type, citation_style,
	confidence_score, notes`

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS refs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			document TEXT NOT NULL,
			sequence_number INTEGER,
			full_text TEXT NOT NULL,
			authors TEXT,
			title TEXT,
			year INTEGER,
			venue TEXT,
			volume TEXT,
			issue TEXT,
			pages TEXT,
			doi TEXT,
			url TEXT,
			isbn TEXT,
			reference_type TEXT NOT NULL,
			citation_style TEXT NOT NULL,
			confidence_score REAL NOT NULL,
			notes TEXT
		);

		-- Index for DOI lookups
		CREATE INDEX IF NOT EXISTS idx_refs_doi ON refs(doi) WHERE doi IS NOT NULL AND doi != '';
		CREATE INDEX IF NOT EXISTS idx_refs_document ON refs(document);

		-- Full-text search virtual table (standalone, not external content)
		CREATE VIRTUAL TABLE IF NOT EXISTS refs_fts USING fts5(
			ref_id,
			title,
			authors_text,
			full_text
		);
	`

	_, err := db.Exec(schema)
	return err
}

// RebuildFromJSONL clears the database and rebuilds it from a JSONL file.
func (d *DB) RebuildFromJSONL(jsonlPath string) (int, error) {
	records, err := ReadAll(jsonlPath)
	if err != nil {
		return 0, fmt.Errorf("reading JSONL: %w", err)
	}

	if _, err := d.db.Exec("DELETE FROM refs"); err != nil {
		return 0, fmt.Errorf("clearing refs table: %w", err)
	}
	if _, err := d.db.Exec("DELETE FROM refs_fts"); err != nil {
		return 0, fmt.Errorf("clearing refs_fts table: %w", err)
	}

	for i, rec := range records {
		if err := d.Insert(rec); err != nil {
			return i, fmt.Errorf("inserting record %d: %w", i, err)
		}
	}

	return len(records), nil
}

// Insert adds one record to the refs table and its FTS index.
func (d *DB) Insert(rec Record) error {
	res, err := d.db.Exec(`
		INSERT INTO refs (
			document, sequence_number, full_text, authors,
			title, year, venue, volume, issue, pages,
			doi, url, isbn, reference_type, citation_style,
			confidence_score, notes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Document, rec.SequenceNumber, rec.FullText, reference.JoinAuthors(rec.Authors),
		rec.Title, rec.Year, rec.Venue, rec.Volume, rec.Issue, rec.Pages,
		rec.DOI, rec.URL, rec.ISBN, string(rec.Type), string(rec.Style),
		rec.Confidence, rec.Notes,
	)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	_, err = d.db.Exec(`
		INSERT INTO refs_fts (ref_id, title, authors_text, full_text)
		VALUES (?, ?, ?, ?)`,
		id, rec.Title, reference.JoinAuthors(rec.Authors), rec.FullText,
	)
	return err
}

// Count returns the total number of stored records.
func (d *DB) Count() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM refs").Scan(&n)
	return n, err
}

// ListByDocument returns all records for a document, in insertion order.
func (d *DB) ListByDocument(document string) ([]Record, error) {
	rows, err := d.db.Query(
		"SELECT "+selectRecordFields+" FROM refs WHERE document = ? ORDER BY id", document)
	if err != nil {
		return nil, fmt.Errorf("querying refs: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// Search runs a full-text query over titles, authors and full text.
func (d *DB) Search(query string, limit int) ([]Record, error) {
	rows, err := d.db.Query(`
		SELECT `+selectRecordFields+`
		FROM refs
		WHERE id IN (
			SELECT ref_id FROM refs_fts WHERE refs_fts MATCH ? LIMIT ?
		)
		ORDER BY confidence_score DESC`,
		query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching refs: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		var rec Record
		var authors, refType, style string
		if err := rows.Scan(
			&rec.Document, &rec.SequenceNumber, &rec.FullText, &authors,
			&rec.Title, &rec.Year, &rec.Venue, &rec.Volume, &rec.Issue, &rec.Pages,
			&rec.DOI, &rec.URL, &rec.ISBN, &refType, &style,
			&rec.Confidence, &rec.Notes,
		); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		rec.Authors = reference.SplitAuthors(authors)
		rec.Type = reference.Type(refType)
		rec.Style = reference.Style(style)
		records = append(records, rec)
	}
	return records, rows.Err()
}
