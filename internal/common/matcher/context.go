// Package matcher holds gomock matchers for context arguments.
package matcher

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/mock/gomock"
)

type deadlineWithinMatcher struct {
	max time.Duration
}

func (m deadlineWithinMatcher) Matches(x any) bool {
	ctx, ok := x.(context.Context)
	if !ok {
		return false
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		return false
	}
	remaining := time.Until(deadline)
	return remaining > 0 && remaining <= m.max
}

func (m deadlineWithinMatcher) String() string {
	return fmt.Sprintf("context with a deadline at most %s away", m.max)
}

// ContextWithDeadlineWithin matches a live context whose deadline is no further than max.
func ContextWithDeadlineWithin(max time.Duration) gomock.Matcher {
	return deadlineWithinMatcher{max: max}
}

type uncancellableMatcher struct{}

func (uncancellableMatcher) Matches(x any) bool {
	ctx, ok := x.(context.Context)
	if !ok {
		return false
	}
	_, hasDeadline := ctx.Deadline()
	return ctx.Done() == nil && !hasDeadline
}

func (uncancellableMatcher) String() string {
	return "context that can never be cancelled"
}

// ContextWithoutCancel matches contexts detached from cancellation, such as the ones
// returned by context.WithoutCancel.
func ContextWithoutCancel() gomock.Matcher {
	return uncancellableMatcher{}
}
