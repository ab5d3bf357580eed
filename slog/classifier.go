package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/diaclass"
)

// Ensure LoggingClassifier implements diaclass.Classifier.
var _ diaclass.Classifier = (*LoggingClassifier)(nil)

// LoggingClassifier wraps a Classifier with debug logging.
type LoggingClassifier struct {
	next     diaclass.Classifier
	provider diaclass.Provider
	model    string
	logger   *slog.Logger
}

// NewLoggingClassifier creates a new LoggingClassifier.
func NewLoggingClassifier(next diaclass.Classifier, provider diaclass.Provider, model string, logger *slog.Logger) *LoggingClassifier {
	return &LoggingClassifier{next: next, provider: provider, model: model, logger: logger}
}

// Classify delegates to the wrapped classifier and logs the request.
func (c *LoggingClassifier) Classify(ctx context.Context, prompt string) (raw string, err error) {
	defer func(begin time.Time) {
		c.logger.Info("classify",
			"provider", string(c.provider),
			"model", c.model,
			"prompt_chars", len([]rune(prompt)),
			"response_chars", len([]rune(raw)),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Classify(ctx, prompt)
}
