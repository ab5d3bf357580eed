package mock

import (
	"context"

	"github.com/fwojciec/diaclass"
)

var _ diaclass.Locator = (*Locator)(nil)

// Locator is a mock implementation of diaclass.Locator.
type Locator struct {
	LocateFn func(ctx context.Context, ref string) (string, error)
}

func (l *Locator) Locate(ctx context.Context, ref string) (string, error) {
	return l.LocateFn(ctx, ref)
}
