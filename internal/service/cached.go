package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"eggslist/internal/cache"
)

var tracer = otel.Tracer("eggslist/service")

// cached is a cache-aside read: it returns the value stored under key, or
// calls load and stores the result for ttl. Cache failures are logged and
// fall through to load.
func cached[T any](ctx context.Context, c cache.Cache, logger *zap.Logger, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	ctx, span := tracer.Start(ctx, "cache.aside")
	defer span.End()
	span.SetAttributes(attribute.String("cache.key", key))

	var v T
	hit, err := c.Get(ctx, key, &v)
	if err != nil {
		logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		hit = false
	}
	span.SetAttributes(attribute.Bool("cache.hit", hit))
	if hit {
		return v, nil
	}

	v, err = load(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return v, err
	}
	if err := c.Set(ctx, key, v, ttl); err != nil {
		logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
	return v, nil
}
