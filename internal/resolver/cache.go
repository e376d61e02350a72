package resolver

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/shreekundli/panchang-cli/internal/model"
)

// Cache persists slug resolution outcomes in SQLite. Non-matches are cached
// too, so a hammered bad slug does not hammer the geocode index.
type Cache struct {
	db  *sql.DB
	ttl time.Duration
}

const cacheMigration = `
CREATE TABLE IF NOT EXISTS slug_resolutions (
	slug      TEXT PRIMARY KEY,
	matched   INTEGER NOT NULL,
	location  TEXT,
	cached_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_slug_resolutions_cached_at ON slug_resolutions(cached_at);
`

// NewCache opens (or creates) the cache database at path and configures WAL
// mode. A zero ttl means entries never expire.
func NewCache(path string, ttl time.Duration) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrap(err, "resolver: open cache")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "resolver: exec %s", pragma)
		}
	}
	if _, err := db.Exec(cacheMigration); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "resolver: migrate cache")
	}
	return &Cache{db: db, ttl: ttl}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// Get looks up a cached resolution. ok reports whether a fresh entry exists;
// matched distinguishes a cached hit from a cached non-match.
func (c *Cache) Get(ctx context.Context, slug string) (loc *model.ResolvedLocation, matched, ok bool) {
	query := "SELECT matched, location FROM slug_resolutions WHERE slug = ?"
	args := []any{slug}
	if c.ttl > 0 {
		query += " AND cached_at > datetime('now', ?)"
		args = append(args, fmt.Sprintf("-%d seconds", int64(c.ttl.Seconds())))
	}

	var m bool
	var payload sql.NullString
	err := c.db.QueryRowContext(ctx, query, args...).Scan(&m, &payload)
	if err != nil {
		return nil, false, false // no row or scan error, caller resolves fresh
	}

	if m && payload.Valid {
		var l model.ResolvedLocation
		if err := json.Unmarshal([]byte(payload.String), &l); err != nil {
			zap.L().Debug("resolver: discarding corrupt cache entry", zap.String("slug", slug), zap.Error(err))
			return nil, false, false
		}
		loc = &l
	}
	zap.L().Debug("resolver: cache hit", zap.String("slug", slug), zap.Bool("matched", m))
	return loc, m, true
}

// Put upserts a resolution outcome. A nil loc records a non-match.
func (c *Cache) Put(ctx context.Context, slug string, loc *model.ResolvedLocation) error {
	var payload any
	matched := loc != nil
	if matched {
		b, err := json.Marshal(loc)
		if err != nil {
			return eris.Wrap(err, "resolver: marshal cache entry")
		}
		payload = string(b)
	}

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO slug_resolutions (slug, matched, location, cached_at)
		VALUES (?, ?, ?, datetime('now'))
		ON CONFLICT (slug) DO UPDATE SET
			matched = excluded.matched,
			location = excluded.location,
			cached_at = excluded.cached_at`,
		slug, matched, payload,
	)
	return eris.Wrap(err, "resolver: store cache entry")
}
