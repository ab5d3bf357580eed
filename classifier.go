package diaclass

import (
	"context"
	"strings"
)

// Classifier sends a prepared prompt to a classification provider and
// returns the provider's raw text output.
type Classifier interface {
	// Classify returns the raw model output for prompt.
	// Returns EUNAVAILABLE if no response could be obtained.
	Classify(ctx context.Context, prompt string) (string, error)
}

// Provider selects a Classifier implementation.
type Provider string

// Provider constants.
const (
	ProviderOpenAI Provider = "openai"
	ProviderOllama Provider = "ollama"
	ProviderGemini Provider = "gemini"
)

// Providers returns all supported providers.
func Providers() []Provider {
	return []Provider{ProviderOpenAI, ProviderOllama, ProviderGemini}
}

// ParseProvider returns the provider named by s, ignoring case.
func ParseProvider(s string) (Provider, error) {
	p := Provider(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Providers() {
		if p == known {
			return p, nil
		}
	}
	return "", Errorf(EINVALID, "unknown provider %q", s)
}

// Hosted reports whether the provider is a hosted API that needs a credential.
func (p Provider) Hosted() bool {
	return p == ProviderOpenAI || p == ProviderGemini
}
