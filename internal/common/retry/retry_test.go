package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	xlog "bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/log"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/retry"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/config"

	"github.com/stretchr/testify/assert"
)

func init() {
	xlog.InitForTest()
}

func fastConfig(maxRetries uint64) config.ExponentialBackOffConfig {
	return config.ExponentialBackOffConfig{
		MaxRetries:        maxRetries,
		MaxBackoffTime:    time.Second,
		BackoffMultiplier: 1,
	}
}

func Test_Retry_ExponentialBackoff(t *testing.T) {
	t.Run("success after transient failures", func(t *testing.T) {
		calls := 0
		err := retry.NewExponentialBackOff(fastConfig(3)).Retry(context.Background(), func() error {
			calls++
			if calls < 3 {
				return assert.AnError
			}
			return nil
		}, nil)

		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("exhausted calls the callback with the last error", func(t *testing.T) {
		var got error
		calls := 0
		wrapped := errors.New("gave up")

		err := retry.NewExponentialBackOff(fastConfig(1)).Retry(context.Background(), func() error {
			calls++
			return assert.AnError
		}, func(err error) error {
			got = err
			return wrapped
		})

		assert.ErrorIs(t, err, wrapped)
		assert.ErrorIs(t, got, assert.AnError)
		assert.Equal(t, 2, calls)
	})

	t.Run("exhausted without callback returns the last error", func(t *testing.T) {
		err := retry.NewExponentialBackOff(fastConfig(1)).Retry(context.Background(), func() error {
			return assert.AnError
		}, nil)

		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("permanent error stops immediately", func(t *testing.T) {
		r := retry.NewExponentialBackOff(fastConfig(5))
		calls := 0

		err := r.Retry(context.Background(), func() error {
			calls++
			return r.StopRetryWithErr(assert.AnError)
		}, nil)

		assert.ErrorIs(t, err, assert.AnError)
		assert.Equal(t, 1, calls)
	})

	t.Run("defaults are applied", func(t *testing.T) {
		calls := 0
		err := retry.NewExponentialBackOff(config.ExponentialBackOffConfig{}).Retry(context.Background(), func() error {
			calls++
			if calls <= int(retry.DefaultMaxRetries) {
				return assert.AnError
			}
			return nil
		}, nil)

		assert.NoError(t, err)
		assert.Equal(t, int(retry.DefaultMaxRetries)+1, calls)
	})
}
