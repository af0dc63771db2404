// Package duckdb caches marker manifests in a DuckDB database.
//
// Parsing a multi-hundred-thousand row manifest from delimited text on
// every run is wasteful; the cache command loads it once into a .duckdb
// file that later convert runs read directly.
package duckdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/rmozafari/illumina2vcf/internal/marker"
)

// Store manages a DuckDB connection holding a marker manifest.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ensureSchema creates the markers table if it doesn't exist.
// ord preserves manifest input order, which is the column-alignment key
// for every sample's genotype code string.
func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS markers (
		ord BIGINT NOT NULL,
		id INTEGER,
		name VARCHAR NOT NULL,
		chromosome VARCHAR,
		position BIGINT,
		gentrain_score VARCHAR,
		snp VARCHAR,
		ilmn_strand VARCHAR,
		customer_strand VARCHAR,
		norm_id VARCHAR,
		PRIMARY KEY (ord)
	)`)
	return err
}

// InsertMarkers appends marker definitions in the given order, continuing
// the ord sequence from any rows already stored.
func (s *Store) InsertMarkers(defs []marker.Definition) error {
	var next int64
	if err := s.db.QueryRow(`SELECT COALESCE(MAX(ord)+1, 0) FROM markers`).Scan(&next); err != nil {
		return fmt.Errorf("query marker count: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO markers
		(ord, id, name, chromosome, position, gentrain_score, snp, ilmn_strand, customer_strand, norm_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, d := range defs {
		if _, err := stmt.Exec(next+int64(i), d.ID, d.Name, d.Chromosome, d.Position,
			d.GenTrainScore, d.SNP, d.IlmnStrand, d.CustomerStrand, d.NormID); err != nil {
			return fmt.Errorf("insert marker %q: %w", d.Name, err)
		}
	}

	return tx.Commit()
}

// LoadMarkers reads every marker definition in manifest order.
//
// The full manifest is always loaded: genotype code strings are aligned
// to manifest row order, so filtering here would silently shift sample
// columns. Chromosome filtering happens during index building, which
// keeps the original column of each retained marker.
func (s *Store) LoadMarkers() ([]marker.Definition, error) {
	rows, err := s.db.Query(`SELECT id, name, chromosome, position, gentrain_score, snp, ilmn_strand, customer_strand, norm_id
		FROM markers ORDER BY ord`)
	if err != nil {
		return nil, fmt.Errorf("query markers: %w", err)
	}
	defer rows.Close()

	var defs []marker.Definition
	for rows.Next() {
		var d marker.Definition
		if err := rows.Scan(&d.ID, &d.Name, &d.Chromosome, &d.Position,
			&d.GenTrainScore, &d.SNP, &d.IlmnStrand, &d.CustomerStrand, &d.NormID); err != nil {
			return nil, fmt.Errorf("scan marker row: %w", err)
		}
		defs = append(defs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read marker rows: %w", err)
	}

	return defs, nil
}

// Count returns the number of stored markers.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM markers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count markers: %w", err)
	}
	return n, nil
}

// IsStorePath reports whether path looks like a DuckDB marker database
// rather than a delimited manifest.
func IsStorePath(path string) bool {
	switch filepath.Ext(path) {
	case ".duckdb", ".db":
		return true
	}
	return false
}
