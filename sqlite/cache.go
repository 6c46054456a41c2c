package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/AndKraev/hotelweather"
)

// Compile-time interface verification.
var _ hotelweather.ResponseCache = (*ResponseCache)(nil)

// ResponseCache implements hotelweather.ResponseCache using SQLite.
// Cached bodies survive process restarts, so repeated runs over the same
// listings don't re-spend API quota.
type ResponseCache struct {
	db *DB
}

// NewResponseCache creates a new ResponseCache.
func NewResponseCache(db *DB) *ResponseCache {
	return &ResponseCache{db: db}
}

// Get returns the cached body for key, if present.
func (c *ResponseCache) Get(ctx context.Context, key string) (string, bool, error) {
	var body string

	err := c.db.QueryRowContext(ctx, `
		SELECT body FROM responses WHERE key = ?
	`, key).Scan(&body)

	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	return body, true, nil
}

// Put stores body under key, replacing any previous entry.
func (c *ResponseCache) Put(ctx context.Context, key, url, body string) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO responses (key, url, body, fetched_at)
		VALUES (?, ?, ?, ?)
	`, key, url, body, time.Now().UTC().Format(time.RFC3339))

	return err
}
