package news

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"forestguard/internal/domain"
	"forestguard/internal/observability"
)

// CachedSource wraps a Source with a single-entry TTL cache. The feed query
// is fixed, so one entry is all there is to cache.
type CachedSource struct {
	inner   Source
	ttl     time.Duration
	clock   clockwork.Clock
	metrics *observability.Metrics

	mu        sync.Mutex
	articles  []domain.Article
	fetchedAt time.Time
	warm      bool
}

// NewCachedSource creates a cache decorator around a news source. Pass a fake
// clock in tests to control expiry.
func NewCachedSource(inner Source, ttl time.Duration, clock clockwork.Clock, metrics *observability.Metrics) *CachedSource {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &CachedSource{
		inner:   inner,
		ttl:     ttl,
		clock:   clock,
		metrics: metrics,
	}
}

func (c *CachedSource) Fetch(ctx context.Context) ([]domain.Article, error) {
	c.mu.Lock()
	if c.warm && c.clock.Since(c.fetchedAt) < c.ttl {
		articles := c.articles
		c.mu.Unlock()
		c.count("hit")
		return articles, nil
	}
	c.mu.Unlock()

	articles, err := c.inner.Fetch(ctx)
	if err != nil {
		c.count("error")
		return nil, err
	}
	c.count("miss")

	// Empty feeds are not cached so a transient upstream hiccup can recover
	// on the next request instead of after a full TTL.
	if len(articles) > 0 {
		c.mu.Lock()
		c.articles = articles
		c.fetchedAt = c.clock.Now()
		c.warm = true
		c.mu.Unlock()
	}
	return articles, nil
}

func (c *CachedSource) count(result string) {
	if c.metrics != nil {
		c.metrics.NewsFetches.WithLabelValues(result).Inc()
	}
}
