package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/diaclass"
)

// Ensure LoggingResponseCache implements diaclass.ResponseCache.
var _ diaclass.ResponseCache = (*LoggingResponseCache)(nil)

// LoggingResponseCache wraps a ResponseCache with debug logging.
type LoggingResponseCache struct {
	next   diaclass.ResponseCache
	logger *slog.Logger
}

// NewLoggingResponseCache creates a new LoggingResponseCache.
func NewLoggingResponseCache(next diaclass.ResponseCache, logger *slog.Logger) *LoggingResponseCache {
	return &LoggingResponseCache{next: next, logger: logger}
}

// FindResponse delegates to the wrapped cache and logs hits and misses.
func (c *LoggingResponseCache) FindResponse(ctx context.Context, key diaclass.ResponseKey) (raw string, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"provider", string(key.Provider),
			"model", key.Model,
			"hit", err == nil,
			"duration", time.Since(begin),
		}
		if err != nil && diaclass.ErrorCode(err) != diaclass.ENOTFOUND {
			attrs = append(attrs, "err", err)
		}
		c.logger.Info("cache lookup", attrs...)
	}(time.Now())
	return c.next.FindResponse(ctx, key)
}

// SaveResponse delegates to the wrapped cache and logs the write.
func (c *LoggingResponseCache) SaveResponse(ctx context.Context, key diaclass.ResponseKey, raw string) (err error) {
	defer func(begin time.Time) {
		c.logger.Info("cache save",
			"provider", string(key.Provider),
			"model", key.Model,
			"bytes", len(raw),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.SaveResponse(ctx, key, raw)
}
