package mock

import (
	"context"

	"github.com/fwojciec/diaclass"
)

var _ diaclass.Classifier = (*Classifier)(nil)

// Classifier is a mock implementation of diaclass.Classifier.
type Classifier struct {
	ClassifyFn func(ctx context.Context, prompt string) (string, error)
}

func (c *Classifier) Classify(ctx context.Context, prompt string) (string, error) {
	return c.ClassifyFn(ctx, prompt)
}
