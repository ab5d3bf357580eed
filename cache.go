package diaclass

import "context"

// ResponseKey identifies a cached provider response.
type ResponseKey struct {
	Provider Provider
	Model    string
	Prompt   string
}

// ResponseCache stores raw provider responses that produced a valid
// classification, so unchanged documents are not sent again.
type ResponseCache interface {
	// FindResponse returns the cached raw response for key.
	// Returns ENOTFOUND if nothing is cached.
	FindResponse(ctx context.Context, key ResponseKey) (string, error)

	// SaveResponse stores raw as the response for key, replacing any
	// previous entry.
	SaveResponse(ctx context.Context, key ResponseKey, raw string) error
}
