// Package openai implements diaclass.Classifier using the OpenAI chat
// completions API.
package openai

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/diaclass"
	openai "github.com/sashabaranov/go-openai"
)

// DefaultModel is the chat model used when none is configured.
const DefaultModel = "gpt-4o"

// Defaults for rate-limit handling.
const (
	DefaultMaxRetries = 5
	DefaultRetryWait  = 2 * time.Second
)

// Ensure Classifier implements diaclass.Classifier at compile time.
var _ diaclass.Classifier = (*Classifier)(nil)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// Classifier sends prompts to an OpenAI chat model. Rate-limited requests
// are retried after the wait the server suggests; any other error ends the
// request immediately.
type Classifier struct {
	client     *openai.Client
	model      string
	maxRetries int
	retryWait  time.Duration
	logger     LogFunc
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithMaxRetries sets how many attempts are made while rate limited.
// Defaults to DefaultMaxRetries. Values below one mean a single attempt.
func WithMaxRetries(n int) Option {
	return func(c *Classifier) {
		c.maxRetries = n
	}
}

// WithRetryWait sets the wait used when the server suggests none.
// Defaults to DefaultRetryWait.
func WithRetryWait(d time.Duration) Option {
	return func(c *Classifier) {
		c.retryWait = d
	}
}

// WithLogger sets a function called before each rate-limit wait.
func WithLogger(fn LogFunc) Option {
	return func(c *Classifier) {
		c.logger = fn
	}
}

// NewClassifier creates a new Classifier.
func NewClassifier(client *openai.Client, model string, opts ...Option) *Classifier {
	c := &Classifier{
		client:     client,
		model:      model,
		maxRetries: DefaultMaxRetries,
		retryWait:  DefaultRetryWait,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.maxRetries < 1 {
		c.maxRetries = 1
	}
	return c
}

// NewClient creates an API client for apiKey. A non-empty baseURL replaces
// the default API endpoint.
func NewClient(apiKey, baseURL string) *openai.Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(config)
}

// Classify sends prompt as a single user message and returns the reply.
func (c *Classifier) Classify(ctx context.Context, prompt string) (string, error) {
	if c.model == "" {
		return "", diaclass.Errorf(diaclass.EINVALID, "model required")
	}

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}

	for attempt := 0; attempt < c.maxRetries; attempt++ {
		resp, err := c.client.CreateChatCompletion(ctx, req)
		if err == nil {
			if len(resp.Choices) == 0 {
				return "", diaclass.Errorf(diaclass.EUNAVAILABLE, "openai returned no choices")
			}
			return resp.Choices[0].Message.Content, nil
		}

		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if !IsRateLimited(err) {
			return "", diaclass.Errorf(diaclass.EUNAVAILABLE, "error contacting OpenAI API: %v", err)
		}

		wait := ParseRetryAfter(err.Error(), c.retryWait)
		if c.logger != nil {
			c.logger("rate limit encountered (OpenAI), sleeping for %s", wait)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(wait):
		}
	}

	return "", diaclass.Errorf(diaclass.EUNAVAILABLE, "max retries reached for OpenAI")
}

// IsRateLimited reports whether err is a request-rate limit that is worth
// waiting out. Exhausted quota is not.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "rate limit reached") {
		return true
	}
	if strings.Contains(msg, "quota") {
		return false
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusTooManyRequests
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == http.StatusTooManyRequests
	}
	return false
}
