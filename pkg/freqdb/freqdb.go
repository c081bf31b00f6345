// Package freqdb persists counting runs and their final frequency tables to
// SQLite, so successive corpus runs can be compared without reparsing JSON.
package freqdb

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/kotoba-lab/verbfreq/pkg/freq"
)

type DB struct {
	*sql.DB
	path string
}

// Open opens or creates the results database at path and bootstraps the
// schema when missing.
func Open(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	db := &DB{DB: sqlDB, path: path}
	if err := db.ensureSchemaExists(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return db, nil
}

func (db *DB) ensureSchemaExists() error {
	var tableName string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='runs'").Scan(&tableName)
	if err == sql.ErrNoRows {
		_, err = db.Exec(schema)
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to check schema: %w", err)
	}
	return nil
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// BeginRun records the start of a counting run and returns its ID.
func (db *DB) BeginRun(shardCount, workerCount int) (int64, error) {
	res, err := db.Exec(
		"INSERT INTO runs (shard_count, worker_count) VALUES (?, ?)",
		shardCount, workerCount,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	return res.LastInsertId()
}

// FinishRun stamps the run as complete with its total record count.
func (db *DB) FinishRun(runID, recordCount int64) error {
	_, err := db.Exec(
		"UPDATE runs SET finished_at = CURRENT_TIMESTAMP, record_count = ? WHERE run_id = ?",
		recordCount, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to finish run %d: %w", runID, err)
	}
	return nil
}

// SaveTable writes a run's final frequency table in one transaction.
func (db *DB) SaveTable(runID int64, table *freq.Table) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	verbStmt, err := tx.Prepare(
		"INSERT INTO verb_frequencies (run_id, surface, pos, dictionary_form, frequency) VALUES (?, ?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("failed to prepare verb insert: %w", err)
	}
	defer verbStmt.Close()

	for surface, entry := range table.Verbs {
		if _, err := verbStmt.Exec(runID, surface, entry.POS, entry.Lemma, entry.Frequency); err != nil {
			return fmt.Errorf("failed to insert surface %s: %w", surface, err)
		}
	}

	inflStmt, err := tx.Prepare(
		"INSERT INTO inflection_frequencies (run_id, tag, frequency) VALUES (?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("failed to prepare inflection insert: %w", err)
	}
	defer inflStmt.Close()

	for tag, n := range table.Inflections {
		if _, err := inflStmt.Exec(runID, tag, n); err != nil {
			return fmt.Errorf("failed to insert inflection %s: %w", tag, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run %d: %w", runID, err)
	}
	return nil
}

// LoadTable reads a run's frequency table back out.
func (db *DB) LoadTable(runID int64) (*freq.Table, error) {
	table := freq.NewTable()

	rows, err := db.Query(
		"SELECT surface, pos, dictionary_form, frequency FROM verb_frequencies WHERE run_id = ?",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query verbs for run %d: %w", runID, err)
	}
	defer rows.Close()
	for rows.Next() {
		var surface string
		entry := &freq.VerbEntry{}
		if err := rows.Scan(&surface, &entry.POS, &entry.Lemma, &entry.Frequency); err != nil {
			return nil, fmt.Errorf("failed to scan verb row: %w", err)
		}
		table.Verbs[surface] = entry
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	inflRows, err := db.Query(
		"SELECT tag, frequency FROM inflection_frequencies WHERE run_id = ?",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query inflections for run %d: %w", runID, err)
	}
	defer inflRows.Close()
	for inflRows.Next() {
		var tag string
		var n int
		if err := inflRows.Scan(&tag, &n); err != nil {
			return nil, fmt.Errorf("failed to scan inflection row: %w", err)
		}
		table.Inflections[tag] = n
	}
	return table, inflRows.Err()
}
