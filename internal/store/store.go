// Package store persists correction history and a correction-memory cache
// in SQLite. The engine itself never touches the store; callers (CLI, HTTP
// server) use it to skip repeat work and to serve history and statistics.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
	_ "modernc.org/sqlite"

	"github.com/rdtech2020/pratik-grammars/internal"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS corrections (
		id TEXT PRIMARY KEY,
		original_text TEXT NOT NULL,
		corrected_text TEXT NOT NULL,
		changed BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	-- correction_memory caches the engine's answer per distinct input so
	-- repeat requests skip the engine entirely
	CREATE TABLE IF NOT EXISTS correction_memory (
		id TEXT PRIMARY KEY,
		original_text TEXT NOT NULL UNIQUE,
		corrected_text TEXT NOT NULL,
		usage_count INTEGER DEFAULT 1,
		last_used TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_corrections_created ON corrections(created_at);
	CREATE INDEX IF NOT EXISTS idx_memory_lookup ON correction_memory(original_text);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveCorrection appends one correction to the history.
func (s *Store) SaveCorrection(ctx context.Context, rec internal.CorrectionRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO corrections (id, original_text, corrected_text, changed, created_at) VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.OriginalText, rec.CorrectedText, rec.Changed, rec.CreatedAt)
	return err
}

// ListCorrections returns history entries, newest first.
func (s *Store) ListCorrections(ctx context.Context, limit, offset int) ([]internal.CorrectionRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, original_text, corrected_text, changed, created_at FROM corrections
		 ORDER BY created_at DESC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []internal.CorrectionRecord
	for rows.Next() {
		var r internal.CorrectionRecord
		if err := rows.Scan(&r.ID, &r.OriginalText, &r.CorrectedText, &r.Changed, &r.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// GetCached returns the remembered correction for an input, bumping its
// usage counter. Lookup is exact on the normalized text: near-duplicates are
// deliberately not matched, since a one-character difference can change the
// correct answer.
func (s *Store) GetCached(ctx context.Context, originalText string) (string, bool, error) {
	key := normalizeText(originalText)

	var correctedText string
	err := s.db.QueryRowContext(ctx,
		`SELECT corrected_text FROM correction_memory WHERE original_text = ?`,
		key).Scan(&correctedText)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE correction_memory SET usage_count = usage_count + 1, last_used = ? WHERE original_text = ?`,
		time.Now(), key)

	return correctedText, true, err
}

// SaveToMemory remembers a correction for future exact-match reuse.
func (s *Store) SaveToMemory(ctx context.Context, originalText, correctedText string) error {
	id := fmt.Sprintf("mem_%d", time.Now().UnixNano())
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO correction_memory (id, original_text, corrected_text, usage_count, last_used, created_at)
		 VALUES (?, ?, ?, 1, ?, ?)`,
		id, normalizeText(originalText), correctedText, time.Now(), time.Now())
	return err
}

// MemoryEntry is a row from the correction_memory table.
type MemoryEntry struct {
	ID            string
	OriginalText  string
	CorrectedText string
	UsageCount    int
	LastUsed      time.Time
}

// ListMemory returns all memory entries ordered by most recently used.
func (s *Store) ListMemory(ctx context.Context) ([]MemoryEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, original_text, corrected_text, usage_count, last_used FROM correction_memory ORDER BY last_used DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []MemoryEntry
	for rows.Next() {
		var e MemoryEntry
		if err := rows.Scan(&e.ID, &e.OriginalText, &e.CorrectedText, &e.UsageCount, &e.LastUsed); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ClearMemory removes all memory entries and reports how many were removed.
func (s *Store) ClearMemory(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM correction_memory`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Stats summarises correction history and memory usage.
type Stats struct {
	TotalCorrections int `json:"total_corrections"`
	ChangedCount     int `json:"changed_count"`
	UnchangedCount   int `json:"unchanged_count"`
	MemoryEntries    int `json:"memory_entries"`
	MemoryHits       int `json:"memory_hits"`
}

// GetStats aggregates history and memory counters.
func (s *Store) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN changed THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN NOT changed THEN 1 ELSE 0 END), 0)
		FROM corrections`).Scan(
		&stats.TotalCorrections,
		&stats.ChangedCount,
		&stats.UnchangedCount,
	)
	if err != nil {
		return nil, err
	}

	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(usage_count - 1), 0) FROM correction_memory`).Scan(
		&stats.MemoryEntries,
		&stats.MemoryHits,
	)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// normalizeText trims whitespace and applies Unicode NFC normalization for
// consistent memory-key comparison.
func normalizeText(text string) string {
	return norm.NFC.String(strings.TrimSpace(text))
}
