package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dren-arifi/isrcfind/internal/shared"
)

// SearchCache stores raw catalog search responses keyed by the lowercased
// query, so repeat lookups within the TTL skip the network entirely.
type SearchCache struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// NewSearchCache creates a SearchCache with the given TTL.
// A zero or negative TTL disables expiry.
func NewSearchCache(db *sql.DB, ttl time.Duration) *SearchCache {
	return &SearchCache{db: db, ttl: ttl, now: time.Now}
}

// Get returns the cached raw response for a query and kind ("track" or
// "album"). Expired entries are deleted on read and reported as absent.
func (c *SearchCache) Get(query, kind string) ([]byte, bool, error) {
	key := shared.NormalizeQueryKey(query)

	var (
		response string
		cachedAt int64
	)
	err := c.db.QueryRow(
		"SELECT response, cached_at FROM search_cache WHERE query_key = ? AND kind = ?", key, kind,
	).Scan(&response, &cachedAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read search cache: %w", err)
	}

	if c.ttl > 0 && c.now().Sub(time.UnixMilli(cachedAt)) > c.ttl {
		_, _ = c.db.Exec("DELETE FROM search_cache WHERE query_key = ? AND kind = ?", key, kind)
		return nil, false, nil
	}

	return []byte(response), true, nil
}

// Put stores a raw response for a query and kind, replacing any prior entry.
func (c *SearchCache) Put(query, kind string, response []byte) error {
	key := shared.NormalizeQueryKey(query)
	_, err := c.db.Exec(`
		INSERT INTO search_cache (query_key, kind, response, cached_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(query_key, kind) DO UPDATE SET response = excluded.response, cached_at = excluded.cached_at
	`, key, kind, string(response), c.now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to write search cache: %w", err)
	}
	return nil
}

// Clear removes all cached responses.
func (c *SearchCache) Clear() error {
	return clearTable(c.db, "search_cache")
}
