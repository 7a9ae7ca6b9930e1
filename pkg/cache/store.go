package cache

import (
	"database/sql"
	"embed"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/mchmarny/trustmeter/pkg/scorer"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

const DataFileName = "ratings.db"

//go:embed sql/*
var f embed.FS

// Store is a file-backed Cache over SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the rating store at path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("path not specified")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database: %s", path)
	}

	b, err := f.ReadFile("sql/ddl.sql")
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to read the schema creation file")
	}
	if _, err := db.Exec(string(b)); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "failed to create database schema in: %s", path)
	}
	slog.Debug("rating store ready", "path", path)

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Get(id string) (*scorer.Rating, bool, error) {
	var raw string
	err := s.db.QueryRow("SELECT rating FROM rating WHERE id = ?", id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "failed to query rating: %s", id)
	}

	var r scorer.Rating
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return nil, false, errors.Wrapf(err, "failed to decode cached rating: %s", id)
	}
	return &r, true, nil
}

func (s *Store) Put(id string, r *scorer.Rating) error {
	if r == nil {
		return errors.New("rating not specified")
	}

	b, err := json.Marshal(r)
	if err != nil {
		return errors.Wrapf(err, "failed to encode rating: %s", id)
	}

	_, err = s.db.Exec(`INSERT INTO rating (id, rating, updated) VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET rating = excluded.rating, updated = excluded.updated`,
		id, string(b), time.Now().UTC().Unix())
	if err != nil {
		return errors.Wrapf(err, "failed to save rating: %s", id)
	}
	return nil
}

func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM rating"); err != nil {
		return errors.Wrap(err, "failed to clear ratings")
	}
	return nil
}
