// Package gemini implements diaclass.Classifier using Google Gemini.
package gemini

import (
	"context"

	"github.com/fwojciec/diaclass"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Classifier implements diaclass.Classifier at compile time.
var _ diaclass.Classifier = (*Classifier)(nil)

// Classifier implements diaclass.Classifier using Google Gemini.
type Classifier struct {
	client *genai.Client
	model  string
}

// NewClient creates a Gemini API client for apiKey.
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, diaclass.Errorf(diaclass.EINVALID, "Gemini API key required")
	}
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
}

// NewClassifier creates a new Classifier.
func NewClassifier(client *genai.Client, model string) *Classifier {
	if model == "" {
		model = DefaultModel
	}
	return &Classifier{client: client, model: model}
}

// Classify sends prompt to the model and returns the text of the reply.
func (c *Classifier) Classify(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", diaclass.Errorf(diaclass.EINVALID, "prompt required")
	}
	if c.client == nil {
		return "", diaclass.Errorf(diaclass.EINTERNAL, "gemini client not configured")
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(),
	)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", diaclass.Errorf(diaclass.EUNAVAILABLE, "error contacting Gemini API: %v", err)
	}
	if result == nil {
		return "", diaclass.Errorf(diaclass.EUNAVAILABLE, "gemini returned nil result")
	}

	text := result.Text()
	if text == "" {
		return "", diaclass.Errorf(diaclass.EUNAVAILABLE, "gemini returned an empty response")
	}
	return text, nil
}

// BuildConfig returns the GenerateContentConfig for classification calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: diaclass.SystemPrompt}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}
}
