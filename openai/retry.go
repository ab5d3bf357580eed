package openai

import (
	"regexp"
	"time"
)

// retryAfterRe matches the wait suggested in rate-limit messages, e.g.
// "Please try again in 2.5s", "in 1m30s" or "in 20ms".
var retryAfterRe = regexp.MustCompile(`(?i)try again in ((?:\d+(?:\.\d+)?(?:ms|h|m|s))+)`)

// ParseRetryAfter returns the wait duration suggested in a rate-limit error
// message, or fallback when the message suggests none.
func ParseRetryAfter(msg string, fallback time.Duration) time.Duration {
	m := retryAfterRe.FindStringSubmatch(msg)
	if m == nil {
		return fallback
	}
	d, err := time.ParseDuration(m[1])
	if err != nil || d < 0 {
		return fallback
	}
	return d
}
