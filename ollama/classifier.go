// Package ollama implements diaclass.Classifier using a local or
// self-hosted Ollama server.
package ollama

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/diaclass"
	"github.com/ollama/ollama/api"
)

// DefaultHost is the address of a locally running Ollama server.
const DefaultHost = "http://localhost:11434"

// DefaultModel is the model the CLI selects when none is given.
const DefaultModel = "llama3.1"

// DefaultTimeout bounds a single chat request. Local models on modest
// hardware can take minutes for a long document.
const DefaultTimeout = 10 * time.Minute

// Ensure Classifier implements diaclass.Classifier at compile time.
var _ diaclass.Classifier = (*Classifier)(nil)

// Classifier sends prompts to an Ollama chat model. Each prompt is one
// blocking, non-streamed request; failures are not retried.
type Classifier struct {
	client *api.Client
	model  string
}

// NewClient creates an API client for the server at host.
func NewClient(host string, timeout time.Duration) (*api.Client, error) {
	if host == "" {
		host = DefaultHost
	}
	base, err := url.Parse(host)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, diaclass.Errorf(diaclass.EINVALID, "invalid Ollama host %q", host)
	}
	return api.NewClient(base, &http.Client{Timeout: timeout}), nil
}

// NewClassifier creates a new Classifier.
func NewClassifier(client *api.Client, model string) *Classifier {
	return &Classifier{client: client, model: model}
}

// Classify sends prompt with the analyst system message and returns the reply.
func (c *Classifier) Classify(ctx context.Context, prompt string) (string, error) {
	if c.model == "" {
		return "", diaclass.Errorf(diaclass.EINVALID, "model required")
	}

	stream := false
	req := &api.ChatRequest{
		Model: c.model,
		Messages: []api.Message{
			{Role: "system", Content: diaclass.SystemPrompt},
			{Role: "user", Content: prompt},
		},
		Stream: &stream,
	}

	var sb strings.Builder
	err := c.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		sb.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", diaclass.Errorf(diaclass.EUNAVAILABLE, "error contacting Ollama API: %v", err)
	}
	if sb.Len() == 0 {
		return "", diaclass.Errorf(diaclass.EUNAVAILABLE, "ollama returned an empty response")
	}
	return sb.String(), nil
}
