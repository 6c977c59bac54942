package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/hirewiz/hirewiz/internal/model"
)

// SQLiteStore persists the candidate pool in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures the
// candidates table exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	createTable := `CREATE TABLE IF NOT EXISTS candidates (
		id      INTEGER PRIMARY KEY AUTOINCREMENT,
		name    TEXT NOT NULL,
		phone   TEXT NOT NULL DEFAULT '',
		country TEXT NOT NULL DEFAULT '',
		open_to TEXT NOT NULL DEFAULT '',
		email   TEXT NOT NULL DEFAULT '',
		resume  TEXT NOT NULL DEFAULT ''
	)`
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating candidates table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Add inserts a candidate and returns its assigned ID.
func (s *SQLiteStore) Add(c model.Candidate) (int64, error) {
	res, err := s.db.Exec(
		"INSERT INTO candidates (name, phone, country, open_to, email, resume) VALUES (?, ?, ?, ?, ?, ?)",
		c.Name, c.Phone, c.Country, c.OpenTo, c.Email, c.Resume,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting candidate %s: %w", c.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading candidate id: %w", err)
	}
	return id, nil
}

// Get returns the candidate with the given ID.
func (s *SQLiteStore) Get(id int64) (model.Candidate, error) {
	var c model.Candidate
	err := s.db.QueryRow(
		"SELECT id, name, phone, country, open_to, email, resume FROM candidates WHERE id = ?", id,
	).Scan(&c.ID, &c.Name, &c.Phone, &c.Country, &c.OpenTo, &c.Email, &c.Resume)
	if err == sql.ErrNoRows {
		return model.Candidate{}, fmt.Errorf("candidate %d not found", id)
	}
	if err != nil {
		return model.Candidate{}, fmt.Errorf("loading candidate %d: %w", id, err)
	}
	return c, nil
}

// List returns all candidates ordered by ID.
func (s *SQLiteStore) List() ([]model.Candidate, error) {
	rows, err := s.db.Query("SELECT id, name, phone, country, open_to, email, resume FROM candidates ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("listing candidates: %w", err)
	}
	defer rows.Close()

	var candidates []model.Candidate
	for rows.Next() {
		var c model.Candidate
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Country, &c.OpenTo, &c.Email, &c.Resume); err != nil {
			return nil, fmt.Errorf("scanning candidate row: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating candidate rows: %w", err)
	}
	return candidates, nil
}

// Countries returns the distinct non-empty countries in the pool, sorted.
func (s *SQLiteStore) Countries() ([]string, error) {
	rows, err := s.db.Query("SELECT DISTINCT country FROM candidates WHERE country != '' ORDER BY country")
	if err != nil {
		return nil, fmt.Errorf("listing countries: %w", err)
	}
	defer rows.Close()

	var countries []string
	for rows.Next() {
		var country string
		if err := rows.Scan(&country); err != nil {
			return nil, fmt.Errorf("scanning country row: %w", err)
		}
		countries = append(countries, country)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating country rows: %w", err)
	}
	return countries, nil
}

// Count returns the number of candidates in the pool.
func (s *SQLiteStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM candidates").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting candidates: %w", err)
	}
	return count, nil
}

// Close closes the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
