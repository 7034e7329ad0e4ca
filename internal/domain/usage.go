package domain

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Usage is the token and cost total of one generation cycle.
type Usage struct {
	TotalTokens      int
	PromptTokens     int
	CompletionTokens int
	TotalCost        float64
}

// Report writes the four console diagnostic lines.
func (u Usage) Report(w io.Writer) error {
	_, err := fmt.Fprintf(w, "Total Tokens: %d\nPrompt Tokens: %d\nCompletion Tokens: %d\nTotal Cost: %g\n",
		u.TotalTokens, u.PromptTokens, u.CompletionTokens, u.TotalCost)
	return err
}

// UsageTracker accumulates usage over every model call made with a context
// it is attached to. One cycle makes a quiz call and a review call.
type UsageTracker struct {
	mu    sync.Mutex
	usage Usage
}

// Add records one model call. A zero total is derived from its parts.
func (t *UsageTracker) Add(prompt, completion, total int, cost float64) {
	if t == nil {
		return
	}
	if total == 0 {
		total = prompt + completion
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.usage.PromptTokens += prompt
	t.usage.CompletionTokens += completion
	t.usage.TotalTokens += total
	t.usage.TotalCost += cost
}

// Snapshot returns the totals recorded so far.
func (t *UsageTracker) Snapshot() Usage {
	if t == nil {
		return Usage{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.usage
}

type usageKey struct{}

// WithUsageTracker returns a context that records usage into a new tracker.
func WithUsageTracker(ctx context.Context) (context.Context, *UsageTracker) {
	t := &UsageTracker{}
	return context.WithValue(ctx, usageKey{}, t), t
}

// UsageFromContext returns the tracker attached to ctx, or nil.
func UsageFromContext(ctx context.Context) *UsageTracker {
	t, _ := ctx.Value(usageKey{}).(*UsageTracker)
	return t
}
