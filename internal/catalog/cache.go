package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/metinatakli/cinetrack/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	cacheKeyPrefix  = "catalog:title:"
	DefaultCacheTTL = 24 * time.Hour
)

// CachedCatalog keeps catalog lookups in Redis so repeated imports of the same
// title do not spend the OMDb request quota. Cache failures fall through to the
// wrapped catalog.
type CachedCatalog struct {
	next   domain.MovieCatalog
	client redis.UniversalClient
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedCatalog(next domain.MovieCatalog, client redis.UniversalClient, ttl time.Duration, logger *slog.Logger) *CachedCatalog {
	return &CachedCatalog{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *CachedCatalog) FetchByTitle(ctx context.Context, title string) (*domain.Movie, error) {
	key := cacheKey(title)

	cached, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var movie domain.Movie
		if err := json.Unmarshal(cached, &movie); err == nil {
			return &movie, nil
		}

		c.logger.Warn("discarding malformed catalog cache entry", "key", key)
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("catalog cache read failed", "key", key, "error", err)
	}

	movie, err := c.next.FetchByTitle(ctx, title)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(movie)
	if err != nil {
		return movie, nil
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("catalog cache write failed", "key", key, "error", err)
	}

	return movie, nil
}

func cacheKey(title string) string {
	return cacheKeyPrefix + strings.ToLower(strings.TrimSpace(title))
}
