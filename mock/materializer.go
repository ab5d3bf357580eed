package mock

import (
	"context"

	"github.com/fwojciec/diaclass"
)

var _ diaclass.Materializer = (*Materializer)(nil)

// Materializer is a mock implementation of diaclass.Materializer.
type Materializer struct {
	MaterializeFn func(ctx context.Context, repos []*diaclass.Repository) []*diaclass.RepositoryStatus
}

func (m *Materializer) Materialize(ctx context.Context, repos []*diaclass.Repository) []*diaclass.RepositoryStatus {
	return m.MaterializeFn(ctx, repos)
}
