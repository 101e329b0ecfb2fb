// Package journal records generated documents in PostgreSQL.
package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	DefaultLimit = 20
	MaxLimit     = 500
)

// Entry is one generated document.
type Entry struct {
	ID        int64     `db:"id"`
	ChatID    int64     `db:"chat_id"`
	UserID    int64     `db:"user_id"`
	Username  string    `db:"username"`
	Template  string    `db:"template"`
	SizeBytes int       `db:"size_bytes"`
	CreatedAt time.Time `db:"created_at"`
}

// Journal is the pgx-backed generation log.
type Journal struct {
	db *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Journal {
	return &Journal{db: db}
}

// Record inserts e and returns it with ID and CreatedAt filled by the database.
func (j *Journal) Record(ctx context.Context, e Entry) (Entry, error) {
	err := j.db.QueryRow(ctx, `
		INSERT INTO generations (chat_id, user_id, username, template, size_bytes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		e.ChatID, e.UserID, e.Username, e.Template, e.SizeBytes,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return Entry{}, fmt.Errorf("record generation of %s: %w", e.Template, err)
	}
	return e, nil
}

// Recent returns the newest entries first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := j.db.Query(ctx, `
		SELECT id, chat_id, user_id, username, template, size_bytes, created_at
		FROM generations
		ORDER BY created_at DESC, id DESC
		LIMIT $1`, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("query generations: %w", err)
	}
	entries, err := pgx.CollectRows(rows, pgx.RowToStructByName[Entry])
	if err != nil {
		return nil, fmt.Errorf("scan generations: %w", err)
	}
	return entries, nil
}

// CountByTemplate returns how many documents each template produced.
func (j *Journal) CountByTemplate(ctx context.Context) (map[string]int64, error) {
	rows, err := j.db.Query(ctx, `SELECT template, count(*) FROM generations GROUP BY template`)
	if err != nil {
		return nil, fmt.Errorf("count generations: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var name string
		var n int64
		if err := rows.Scan(&name, &n); err != nil {
			return nil, err
		}
		counts[name] = n
	}
	return counts, rows.Err()
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	}
	return limit
}
