package dictionary

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
)

// SQLCache memoizes definitive answers from another Lookup in the `lookups`
// table. Failed lookups are passed through and never stored.
type SQLCache struct {
	db   *sql.DB
	next Lookup
}

// NewSQLCache wraps next with a table-backed memo.
func NewSQLCache(db *sql.DB, next Lookup) *SQLCache {
	return &SQLCache{db: db, next: next}
}

// Exists consults the memo first, then next.
func (c *SQLCache) Exists(ctx context.Context, word string) (bool, error) {
	var found bool
	err := c.db.QueryRowContext(ctx, `SELECT found FROM lookups WHERE word=?`, word).Scan(&found)
	switch {
	case err == nil:
		return found, nil
	case !errors.Is(err, sql.ErrNoRows):
		log.Warn().Err(err).Str("word", word).Msg("lookup memo read")
	}

	found, err = c.next.Exists(ctx, word)
	if err != nil {
		return false, err
	}
	if _, err := c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO lookups (word, found, checked_at) VALUES (?,?,?)`,
		word, found, time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		log.Warn().Err(err).Str("word", word).Msg("lookup memo write")
	}
	return found, nil
}

// Len returns the number of memoized words.
func (c *SQLCache) Len(ctx context.Context) (int, error) {
	var n int
	err := c.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM lookups`).Scan(&n)
	return n, err
}
