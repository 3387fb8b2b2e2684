package basket

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"
)

// Store mirrors audit records into a SQLite database, so observers can query
// the audit trail without replaying a JSONL journal.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if needed) a SQLite record store at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open record store: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate record store: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS records (
		id      TEXT PRIMARY KEY,
		type    TEXT NOT NULL,
		time    TEXT NOT NULL,
		payload TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_records_type ON records(type);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Append inserts one audit record. Records are immutable; appending the same
// record id twice is an error.
func (s *Store) Append(r Record) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode %s record: %w", r.What(), err)
	}
	_, err = s.db.Exec(
		`INSERT INTO records (id, type, time, payload) VALUES (?, ?, ?, ?)`,
		r.Ref(), string(r.What()), r.When().UTC().Format("2006-01-02T15:04:05.999999999Z"), string(payload),
	)
	if err != nil {
		return fmt.Errorf("insert %s record %s: %w", r.What(), r.Ref(), err)
	}
	return nil
}

// Records returns all stored records in insertion order.
func (s *Store) Records() ([]Record, error) {
	return s.query(`SELECT payload FROM records ORDER BY rowid`)
}

// RecordsByType returns all stored records of one kind in insertion order.
func (s *Store) RecordsByType(kind RecordType) ([]Record, error) {
	return s.query(`SELECT payload FROM records WHERE type = ? ORDER BY rowid`, string(kind))
}

func (s *Store) query(q string, args ...any) ([]Record, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("query record store: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		rec, err := decodeRecord([]byte(payload))
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
