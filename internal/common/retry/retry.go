package retry

import (
	"context"
	"time"

	xlog "bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/log"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/config"

	"github.com/cenkalti/backoff/v4"
)

const (
	DefaultMaxRetries      uint64 = 3
	DefaultInitialInterval        = 200 * time.Millisecond
)

type Retryer interface {
	Retry(ctx context.Context, operation func() error, onExhausted func(err error) error) error
	StopRetryWithErr(err error) error
}

type exponentialBackoff struct {
	ebCfg config.ExponentialBackOffConfig
}

/*
NewExponentialBackOff returns a Retryer backed by an exponential backoff.

Example:

	Retry(ctx, func() error { return fetch() }, func(err error) error { return fmt.Errorf("gave up: %w", err) })
*/
func NewExponentialBackOff(ebCfg config.ExponentialBackOffConfig) Retryer {
	if ebCfg.MaxBackoffTime <= 0 {
		ebCfg.MaxBackoffTime = backoff.DefaultMaxElapsedTime
	}

	if ebCfg.BackoffMultiplier <= 0 {
		ebCfg.BackoffMultiplier = backoff.DefaultMultiplier
	}

	if ebCfg.MaxRetries <= 0 {
		ebCfg.MaxRetries = DefaultMaxRetries
	}

	if ebCfg.InitialInterval <= 0 {
		ebCfg.InitialInterval = DefaultInitialInterval
	}

	return &exponentialBackoff{ebCfg: ebCfg}
}

/*
Retry creates a fresh ExponentialBackOff for every call and keeps calling operation until it
succeeds, returns a permanent error, the retries run out or ctx is done.

When it gives up, onExhausted receives the last error and its result is returned. A nil
onExhausted returns the last error as is.
*/
func (r *exponentialBackoff) Retry(ctx context.Context, operation func() error, onExhausted func(err error) error) error {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = r.ebCfg.InitialInterval
	eb.MaxElapsedTime = r.ebCfg.MaxBackoffTime
	eb.Multiplier = r.ebCfg.BackoffMultiplier

	attempt := 0
	err := backoff.RetryNotify(
		operation,
		backoff.WithContext(backoff.WithMaxRetries(eb, r.ebCfg.MaxRetries), ctx),
		func(err error, next time.Duration) {
			attempt++
			xlog.Debug(ctx, "[RETRY]",
				xlog.Int("attempt", attempt),
				xlog.Duration("next", next),
				xlog.Err(err))
		},
	)
	if err == nil {
		return nil
	}

	if onExhausted == nil {
		return err
	}
	return onExhausted(err)
}

// StopRetryWithErr marks err as permanent. Call it inside operation.
func (r *exponentialBackoff) StopRetryWithErr(err error) error {
	return backoff.Permanent(err)
}
