// Package index maintains an ephemeral SQLite query cache rebuilt from the
// YAML catalog. The catalog file stays the source of truth; the cache only
// speeds up search and is always safe to delete.
package index

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	_ "modernc.org/sqlite"

	"github.com/mrnerf/paperlist/internal/catalog"
)

// DB wraps the SQLite cache connection.
type DB struct {
	db *sql.DB
}

const selectFields = `id, title, authors, year, abstract,
	project_page, paper, code, video,
	tags_json, thumbnail, publication_date, date_source`

// Open opens or creates the cache database at the given path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening index: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating index schema: %w", err)
	}
	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS papers (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			authors TEXT NOT NULL,
			year INTEGER NOT NULL,
			abstract TEXT,
			project_page TEXT,
			paper TEXT,
			code TEXT,
			video TEXT,
			tags_json TEXT NOT NULL,
			thumbnail TEXT,
			publication_date TEXT,
			date_source TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_papers_year ON papers(year);

		-- Catalog file hash recorded at rebuild time, for staleness checks
		CREATE TABLE IF NOT EXISTS sync_meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`
	_, err := db.Exec(schema)
	return err
}

// Rebuild replaces the cache contents with the given records and records
// the catalog hash they came from.
func (d *DB) Rebuild(records []catalog.Record, catalogHash string) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("starting rebuild: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM papers`); err != nil {
		return fmt.Errorf("clearing index: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO papers (` + selectFields + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		tagsJSON, err := json.Marshal(r.Tags)
		if err != nil {
			return fmt.Errorf("encoding tags for %s: %w", r.ID, err)
		}
		if _, err := stmt.Exec(
			r.ID, r.Title, r.Authors, r.Year.Int(), r.Abstract,
			r.ProjectPage, r.Paper, r.Code, r.Video,
			string(tagsJSON), r.Thumbnail, r.PublicationDate, r.DateSource,
		); err != nil {
			return fmt.Errorf("inserting %s: %w", r.ID, err)
		}
	}

	if _, err := tx.Exec(`INSERT OR REPLACE INTO sync_meta (key, value) VALUES ('catalog_hash', ?)`, catalogHash); err != nil {
		return fmt.Errorf("recording catalog hash: %w", err)
	}

	return tx.Commit()
}

// Search returns records whose title, authors, or tags contain the query
// (case-insensitive), in catalog insertion order.
func (d *DB) Search(query, tag string) ([]catalog.Record, error) {
	sqlQuery := `SELECT ` + selectFields + ` FROM papers WHERE 1=1`
	var args []any

	if query != "" {
		sqlQuery += ` AND (title LIKE '%' || ? || '%' COLLATE NOCASE
			OR authors LIKE '%' || ? || '%' COLLATE NOCASE
			OR tags_json LIKE '%' || ? || '%' COLLATE NOCASE)`
		args = append(args, query, query, query)
	}
	if tag != "" {
		sqlQuery += ` AND tags_json LIKE '%' || ? || '%' COLLATE NOCASE`
		args = append(args, tag)
	}
	sqlQuery += ` ORDER BY rowid`

	rows, err := d.db.Query(sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	defer rows.Close()

	var records []catalog.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Count returns the number of indexed records.
func (d *DB) Count() (int, error) {
	var n int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM papers`).Scan(&n)
	return n, err
}

// InSync reports whether the cache was rebuilt from a catalog file with the
// given hash.
func (d *DB) InSync(catalogHash string) (bool, error) {
	var stored string
	err := d.db.QueryRow(`SELECT value FROM sync_meta WHERE key = 'catalog_hash'`).Scan(&stored)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return stored == catalogHash, nil
}

func scanRecord(rows *sql.Rows) (catalog.Record, error) {
	var r catalog.Record
	var year int
	var tagsJSON string
	var abstract, projectPage, paper, code, video, thumbnail, pubDate, dateSource sql.NullString

	err := rows.Scan(
		&r.ID, &r.Title, &r.Authors, &year, &abstract,
		&projectPage, &paper, &code, &video,
		&tagsJSON, &thumbnail, &pubDate, &dateSource,
	)
	if err != nil {
		return r, fmt.Errorf("scanning record: %w", err)
	}

	r.Year = catalog.Year(year)
	r.Abstract = abstract.String
	r.ProjectPage = projectPage.String
	r.Paper = paper.String
	r.Code = code.String
	r.Video = video.String
	r.Thumbnail = thumbnail.String
	r.PublicationDate = pubDate.String
	r.DateSource = dateSource.String

	if err := json.Unmarshal([]byte(tagsJSON), &r.Tags); err != nil {
		return r, fmt.Errorf("decoding tags for %s: %w", r.ID, err)
	}
	return r, nil
}

// ComputeCatalogHash hashes the catalog file contents. A missing file
// hashes as empty, matching an empty catalog.
func ComputeCatalogHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			h := sha256.Sum256(nil)
			return hex.EncodeToString(h[:]), nil
		}
		return "", fmt.Errorf("opening catalog: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("reading catalog: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
