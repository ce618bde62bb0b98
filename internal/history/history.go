// Package history persists the used-topic record that keeps the pipeline
// from re-selecting subjects it has already published. The store is
// append-only and single-writer; exact-match filtering here is advisory,
// similarity filtering in the harvester is the real dedup mechanism.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"blogpilot/internal/core"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Store represents the SQLite-backed used-topic store
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new store instance with a SQLite database under dataDir
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "blogpilot.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{
		db:   db,
		path: dbPath,
	}

	if err := store.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return store, nil
}

// initialize creates the necessary tables
func (s *Store) initialize() error {
	usedTopicsTable := `
	CREATE TABLE IF NOT EXISTS used_topics (
		id TEXT PRIMARY KEY,
		topic TEXT NOT NULL,
		used_at DATETIME NOT NULL
	);`

	if _, err := s.db.Exec(usedTopicsTable); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Record appends one used-topic entry and returns it. Topic text
// uniqueness is intentionally not enforced by the schema.
func (s *Store) Record(topic string) (core.UsedTopicRecord, error) {
	rec := core.UsedTopicRecord{
		ID:     fmt.Sprintf("%s_%s", slug(topic), uuid.NewString()),
		Topic:  topic,
		UsedAt: time.Now().UTC(),
	}

	query := `INSERT INTO used_topics (id, topic, used_at) VALUES (?, ?, ?)`
	if _, err := s.db.Exec(query, rec.ID, rec.Topic, rec.UsedAt); err != nil {
		return core.UsedTopicRecord{}, fmt.Errorf("failed to record topic %q: %w", topic, err)
	}

	return rec, nil
}

// Load returns all used-topic records, oldest first.
func (s *Store) Load() ([]core.UsedTopicRecord, error) {
	rows, err := s.db.Query(`SELECT id, topic, used_at FROM used_topics ORDER BY used_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to load used topics: %w", err)
	}
	defer rows.Close()

	var records []core.UsedTopicRecord
	for rows.Next() {
		var rec core.UsedTopicRecord
		if err := rows.Scan(&rec.ID, &rec.Topic, &rec.UsedAt); err != nil {
			return nil, fmt.Errorf("failed to scan used topic: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// Topics returns just the topic strings, oldest first.
func (s *Store) Topics() ([]string, error) {
	records, err := s.Load()
	if err != nil {
		return nil, err
	}
	topics := make([]string, 0, len(records))
	for _, rec := range records {
		topics = append(topics, rec.Topic)
	}
	return topics, nil
}

// IsUsed reports whether topic already appears in the store, matched
// case-insensitively. This is the advisory exact-match check.
func (s *Store) IsUsed(topic string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM used_topics WHERE LOWER(topic) = LOWER(?)`
	if err := s.db.QueryRow(query, topic).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check topic %q: %w", topic, err)
	}
	return count > 0, nil
}

// FilterNew removes candidates whose text exactly matches a stored topic,
// case-insensitively. On store failure the input is returned unfiltered so
// dedup degrades instead of blocking the pipeline.
func (s *Store) FilterNew(candidates []string) []string {
	records, err := s.Load()
	if err != nil {
		return candidates
	}

	used := make(map[string]bool, len(records))
	for _, rec := range records {
		used[strings.ToLower(strings.TrimSpace(rec.Topic))] = true
	}

	var fresh []string
	for _, c := range candidates {
		if !used[strings.ToLower(strings.TrimSpace(c))] {
			fresh = append(fresh, c)
		}
	}
	return fresh
}

// Stats describes the current state of the store.
type Stats struct {
	TotalTopics int
	LastUsedAt  time.Time
	Recent      []core.UsedTopicRecord
}

// GetStats returns store totals and the ten most recent entries.
func (s *Store) GetStats() (Stats, error) {
	records, err := s.Load()
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{TotalTopics: len(records)}
	if len(records) > 0 {
		stats.LastUsedAt = records[len(records)-1].UsedAt
		start := len(records) - 10
		if start < 0 {
			start = 0
		}
		stats.Recent = records[start:]
	}
	return stats, nil
}

// Prune removes entries older than the given age and returns how many
// were deleted. Pruning is auxiliary maintenance, not part of a run.
func (s *Store) Prune(age time.Duration) (int, error) {
	cutoff := time.Now().UTC().Add(-age)
	res, err := s.db.Exec(`DELETE FROM used_topics WHERE used_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune used topics: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "-")
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
