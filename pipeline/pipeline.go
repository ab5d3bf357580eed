// Package pipeline runs a classification pass over a site: it materializes
// external repositories, resolves the navigation, and classifies each
// referenced document in navigation order.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/diaclass"
	"golang.org/x/time/rate"
)

// EventType identifies the kind of progress event.
type EventType int

// Event types.
const (
	EventRepository EventType = iota
	EventWarning
	EventStarted
	EventDocumentStarted
	EventDocument
)

// Event reports progress of a run.
type Event struct {
	Type EventType

	// Repository is set for EventRepository.
	Repository *diaclass.RepositoryStatus

	// Message is set for EventWarning.
	Message string

	// Ref and Completed are set for document events; Result for EventDocument.
	Ref       string
	Result    *diaclass.Result
	Completed int

	// Total is the number of documents in the run.
	Total int
}

// ProgressFunc receives progress events. It is called synchronously.
type ProgressFunc func(Event)

// Response is the raw provider output for one document.
type Response struct {
	Prompt    string
	Raw       string
	Truncated bool
	Cached    bool

	// CacheErr is a cache lookup failure other than a miss. The provider is
	// still consulted when it is set.
	CacheErr error
}

// Pipeline classifies the documents of a site one at a time.
type Pipeline struct {
	Materializer diaclass.Materializer
	Locator      diaclass.Locator
	Classifier   diaclass.Classifier

	// Cache is optional. When set, responses that interpret successfully are
	// stored and reused for identical prompts.
	Cache diaclass.ResponseCache

	// Provider and Model identify cached responses.
	Provider diaclass.Provider
	Model    string

	// MaxChars bounds the content sent per document. Zero disables truncation.
	MaxChars int

	// Delay is the minimum spacing between documents. Zero disables pacing.
	Delay time.Duration
}

// Run processes every document referenced by cfg's navigation and returns
// the report. Per-document failures are recorded in the report and never
// stop the run. If ctx is cancelled the partial report is returned with
// the context error.
func (p *Pipeline) Run(ctx context.Context, cfg *diaclass.SiteConfig, progress ProgressFunc) (*diaclass.Report, error) {
	if progress == nil {
		progress = func(Event) {}
	}
	if p.Locator == nil || p.Classifier == nil {
		return nil, diaclass.Errorf(diaclass.EINTERNAL, "pipeline requires a locator and a classifier")
	}

	repos, dups := diaclass.DedupeRepositories(cfg.Repositories)
	for _, name := range dups {
		progress(Event{Type: EventWarning, Message: fmt.Sprintf("repository %q declared more than once; using the last declaration", name)})
	}
	if p.Materializer != nil && len(repos) > 0 {
		for _, status := range p.Materializer.Materialize(ctx, repos) {
			progress(Event{Type: EventRepository, Repository: status})
		}
	}

	refs := diaclass.ResolveNavigation(cfg.Nav)
	if len(refs) == 0 {
		return nil, diaclass.Errorf(diaclass.ENOTFOUND, "no files found in the navigation section")
	}
	total := len(refs)
	progress(Event{Type: EventStarted, Total: total})

	limiter := rate.NewLimiter(rate.Inf, 1)
	if p.Delay > 0 {
		limiter = rate.NewLimiter(rate.Every(p.Delay), 1)
	}

	report := diaclass.NewReport()
	for i, ref := range refs {
		if err := limiter.Wait(ctx); err != nil {
			return report, contextErr(ctx, err)
		}

		progress(Event{Type: EventDocumentStarted, Ref: ref, Completed: i, Total: total})
		result := p.process(ctx, ref, progress)
		report.Set(ref, result)
		progress(Event{Type: EventDocument, Ref: ref, Result: result, Completed: i + 1, Total: total})

		if err := ctx.Err(); err != nil {
			return report, err
		}
	}

	return report, nil
}

// process classifies one document. It always returns a result.
func (p *Pipeline) process(ctx context.Context, ref string, progress ProgressFunc) (result *diaclass.Result) {
	defer func() {
		if r := recover(); r != nil {
			result = diaclass.RequestFailure(diaclass.Errorf(diaclass.EINTERNAL, "panic processing %s: %v", ref, r))
		}
	}()

	content, err := p.Locator.Locate(ctx, ref)
	if err != nil {
		return diaclass.RequestFailure(err)
	}

	resp, err := p.Dispatch(ctx, content)
	if resp != nil && resp.CacheErr != nil {
		progress(Event{Type: EventWarning, Ref: ref, Message: fmt.Sprintf("failed to read cached response: %s", diaclass.ErrorMessage(resp.CacheErr))})
	}
	if err != nil {
		result = diaclass.RequestFailure(err)
		result.Truncated = resp != nil && resp.Truncated
		return result
	}

	result = diaclass.Interpret(resp.Raw)
	result.Truncated = resp.Truncated
	result.Cached = resp.Cached

	if result.OK() && !resp.Cached && p.Cache != nil {
		if err := p.Cache.SaveResponse(ctx, p.key(resp.Prompt), resp.Raw); err != nil {
			progress(Event{Type: EventWarning, Ref: ref, Message: fmt.Sprintf("failed to cache response: %s", diaclass.ErrorMessage(err))})
		}
	}
	return result
}

// Dispatch truncates content to the character budget, embeds it in the
// classification prompt, and returns the provider's raw output. A cached
// response is returned without contacting the provider; a failed cache
// lookup is recorded in CacheErr and the provider is asked instead. On error
// the returned Response still reports whether content was truncated.
func (p *Pipeline) Dispatch(ctx context.Context, content string) (*Response, error) {
	content, truncated := diaclass.Truncate(content, p.MaxChars)
	prompt := diaclass.BuildPrompt(content)
	resp := &Response{Prompt: prompt, Truncated: truncated}

	if p.Cache != nil {
		raw, err := p.Cache.FindResponse(ctx, p.key(prompt))
		if err == nil {
			resp.Raw = raw
			resp.Cached = true
			return resp, nil
		} else if diaclass.ErrorCode(err) != diaclass.ENOTFOUND {
			resp.CacheErr = err
		}
	}

	raw, err := p.Classifier.Classify(ctx, prompt)
	if err != nil {
		return resp, err
	}
	if raw == "" {
		return resp, diaclass.Errorf(diaclass.EUNAVAILABLE, "no response received")
	}
	resp.Raw = raw
	return resp, nil
}

func (p *Pipeline) key(prompt string) diaclass.ResponseKey {
	return diaclass.ResponseKey{Provider: p.Provider, Model: p.Model, Prompt: prompt}
}

// contextErr maps a limiter failure to a context error. The limiter fails
// early when the next slot falls past the context deadline.
func contextErr(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %v", context.DeadlineExceeded, err)
}
