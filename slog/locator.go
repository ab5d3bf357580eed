package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/diaclass"
)

// Ensure LoggingLocator implements diaclass.Locator.
var _ diaclass.Locator = (*LoggingLocator)(nil)

// LoggingLocator wraps a Locator with debug logging.
type LoggingLocator struct {
	next   diaclass.Locator
	logger *slog.Logger
}

// NewLoggingLocator creates a new LoggingLocator.
func NewLoggingLocator(next diaclass.Locator, logger *slog.Logger) *LoggingLocator {
	return &LoggingLocator{next: next, logger: logger}
}

// Locate delegates to the wrapped locator and logs the lookup.
func (l *LoggingLocator) Locate(ctx context.Context, ref string) (content string, err error) {
	defer func(begin time.Time) {
		l.logger.Info("locate",
			"ref", ref,
			"bytes", len(content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.Locate(ctx, ref)
}
