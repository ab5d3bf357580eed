package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/diaclass"
)

// Ensure LoggingMaterializer implements diaclass.Materializer.
var _ diaclass.Materializer = (*LoggingMaterializer)(nil)

// LoggingMaterializer wraps a Materializer with debug logging.
type LoggingMaterializer struct {
	next   diaclass.Materializer
	logger *slog.Logger
}

// NewLoggingMaterializer creates a new LoggingMaterializer.
func NewLoggingMaterializer(next diaclass.Materializer, logger *slog.Logger) *LoggingMaterializer {
	return &LoggingMaterializer{next: next, logger: logger}
}

// Materialize delegates to the wrapped materializer and logs one line per
// repository plus a summary.
func (m *LoggingMaterializer) Materialize(ctx context.Context, repos []*diaclass.Repository) []*diaclass.RepositoryStatus {
	begin := time.Now()
	statuses := m.next.Materialize(ctx, repos)

	failed := 0
	for _, s := range statuses {
		if s.Err != nil {
			failed++
		}
		m.logger.Info("repository",
			"name", s.Name,
			"dir", s.Dir,
			"action", string(s.Action),
			"err", s.Err,
		)
	}
	m.logger.Info("materialize",
		"count", len(statuses),
		"failed", failed,
		"duration", time.Since(begin),
	)
	return statuses
}
