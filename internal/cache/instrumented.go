package cache

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Instrumented wraps a Cache and counts lookups by key and result
// (hit, miss, error). Keys are a small fixed set, so the label is bounded.
type Instrumented struct {
	next     Cache
	requests *prometheus.CounterVec
}

var _ Cache = (*Instrumented)(nil)

// NewInstrumented registers the cache_requests_total counter on reg.
func NewInstrumented(next Cache, reg prometheus.Registerer) (*Instrumented, error) {
	c := &Instrumented{
		next: next,
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_requests_total",
				Help: "Cache lookups by key and result.",
			},
			[]string{"key", "result"},
		),
	}
	if err := reg.Register(c.requests); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Instrumented) Get(ctx context.Context, key string, dest any) (bool, error) {
	ok, err := c.next.Get(ctx, key, dest)
	switch {
	case err != nil:
		c.requests.WithLabelValues(key, "error").Inc()
	case ok:
		c.requests.WithLabelValues(key, "hit").Inc()
	default:
		c.requests.WithLabelValues(key, "miss").Inc()
	}
	return ok, err
}

func (c *Instrumented) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return c.next.Set(ctx, key, value, ttl)
}

func (c *Instrumented) Delete(ctx context.Context, keys ...string) error {
	return c.next.Delete(ctx, keys...)
}

func (c *Instrumented) Ping(ctx context.Context) error {
	return c.next.Ping(ctx)
}
