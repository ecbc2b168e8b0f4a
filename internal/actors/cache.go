package actors

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sirupsen/logrus"

	"actorrank/internal/domain"
	"actorrank/internal/metrics"
)

// CachedClient serves repeated queries from an expiring LRU.
// Errors are never cached.
type CachedClient struct {
	next  Fetcher
	cache *expirable.LRU[string, []domain.ActorRecord]
	log   logrus.FieldLogger
}

// NewCachedClient wraps next. A size of 0 disables caching and returns next unchanged.
func NewCachedClient(next Fetcher, size int, ttl time.Duration, log logrus.FieldLogger) Fetcher {
	if size <= 0 {
		return next
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &CachedClient{
		next:  next,
		cache: expirable.NewLRU[string, []domain.ActorRecord](size, nil, ttl),
		log:   log,
	}
}

// GetActors implements Fetcher
func (c *CachedClient) GetActors(ctx context.Context, query string) ([]domain.ActorRecord, error) {
	if actors, ok := c.cache.Get(query); ok {
		metrics.CacheOperations.WithLabelValues("hit").Inc()
		c.log.WithField("query", query).Debug("cache hit")
		return actors, nil
	}
	metrics.CacheOperations.WithLabelValues("miss").Inc()

	actors, err := c.next.GetActors(ctx, query)
	if err != nil {
		return nil, err
	}
	c.cache.Add(query, actors)
	return actors, nil
}

// Invalidate forgets the cached results for query
func (c *CachedClient) Invalidate(query string) {
	if c.cache.Remove(query) {
		c.log.WithField("query", query).Debug("cache entry dropped")
	}
}
