package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/diaclass"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ diaclass.ResponseCache = (*ResponseCache)(nil)

// ResponseCache implements diaclass.ResponseCache using SQLite.
type ResponseCache struct {
	db *DB
}

// NewResponseCache creates a new ResponseCache.
func NewResponseCache(db *DB) *ResponseCache {
	return &ResponseCache{db: db}
}

// HashPrompt computes the xxHash of prompt as a hex string.
func HashPrompt(prompt string) string {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, xxhash.Sum64String(prompt))
	return hex.EncodeToString(b)
}

// FindResponse returns the cached raw response for key.
func (c *ResponseCache) FindResponse(ctx context.Context, key diaclass.ResponseKey) (string, error) {
	var raw string
	err := c.db.QueryRowContext(ctx, `
		SELECT raw_response
		FROM responses
		WHERE provider = ? AND model = ? AND prompt_hash = ?
	`, string(key.Provider), key.Model, HashPrompt(key.Prompt)).Scan(&raw)

	if errors.Is(err, sql.ErrNoRows) {
		return "", diaclass.Errorf(diaclass.ENOTFOUND, "response not cached")
	}
	if err != nil {
		return "", err
	}
	return raw, nil
}

// SaveResponse stores raw for key, replacing any previous entry.
func (c *ResponseCache) SaveResponse(ctx context.Context, key diaclass.ResponseKey, raw string) error {
	if key.Provider == "" || key.Model == "" {
		return diaclass.Errorf(diaclass.EINVALID, "response key requires provider and model")
	}

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO responses (id, provider, model, prompt_hash, raw_response, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (provider, model, prompt_hash)
		DO UPDATE SET raw_response = excluded.raw_response, created_at = excluded.created_at
	`, uuid.New().String(), string(key.Provider), key.Model, HashPrompt(key.Prompt), raw,
		time.Now().UTC().Format(time.RFC3339))

	return err
}
