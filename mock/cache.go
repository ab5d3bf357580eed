package mock

import (
	"context"

	"github.com/fwojciec/diaclass"
)

var _ diaclass.ResponseCache = (*ResponseCache)(nil)

// ResponseCache is a mock implementation of diaclass.ResponseCache.
type ResponseCache struct {
	FindResponseFn func(ctx context.Context, key diaclass.ResponseKey) (string, error)
	SaveResponseFn func(ctx context.Context, key diaclass.ResponseKey, raw string) error
}

func (c *ResponseCache) FindResponse(ctx context.Context, key diaclass.ResponseKey) (string, error) {
	return c.FindResponseFn(ctx, key)
}

func (c *ResponseCache) SaveResponse(ctx context.Context, key diaclass.ResponseKey, raw string) error {
	return c.SaveResponseFn(ctx, key, raw)
}
