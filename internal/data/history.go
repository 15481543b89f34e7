package data

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/BenedictKing/jina-sum/internal/biz/domain"
	"github.com/BenedictKing/jina-sum/internal/biz/repo"
)

// historyRepo records generated summaries in SQLite
type historyRepo struct {
	db *sql.DB
}

// NewHistoryRepo opens (creating if needed) the summary history database
func NewHistoryRepo(dbPath string) (repo.HistoryRepo, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS summaries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			scope_key TEXT NOT NULL,
			url TEXT NOT NULL,
			chars INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_summaries_created_at ON summaries(created_at)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	return &historyRepo{db: db}, nil
}

// Record appends a generated summary to the history
func (r *historyRepo) Record(ctx context.Context, rec *domain.SummaryRecord) error {
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO summaries (scope_key, url, chars, created_at)
		VALUES (?, ?, ?, ?)
	`, rec.ScopeKey, rec.URL, rec.Chars, createdAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to record summary: %w", err)
	}

	rec.ID, _ = res.LastInsertId()
	rec.CreatedAt = createdAt
	return nil
}

// Recent lists the most recent records, newest first
func (r *historyRepo) Recent(ctx context.Context, limit int) ([]*domain.SummaryRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, scope_key, url, chars, created_at
		FROM summaries
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list summaries: %w", err)
	}
	defer rows.Close()

	var records []*domain.SummaryRecord
	for rows.Next() {
		var rec domain.SummaryRecord
		var createdAt int64
		if err := rows.Scan(&rec.ID, &rec.ScopeKey, &rec.URL, &rec.Chars, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		rec.CreatedAt = time.Unix(createdAt, 0)
		records = append(records, &rec)
	}

	return records, rows.Err()
}

// Count returns the total number of records
func (r *historyRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM summaries`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count summaries: %w", err)
	}
	return count, nil
}

// Close closes the database connection
func (r *historyRepo) Close() error {
	return r.db.Close()
}
