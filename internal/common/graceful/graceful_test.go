package graceful

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	xlog "bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/log"

	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	xlog.InitForTest()
	os.Exit(m.Run())
}

func TestStopProcess_ReverseOrder(t *testing.T) {
	var order []string
	stopper := func(name string, err error) ProcessStopper {
		return func(ctx context.Context) error {
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			order = append(order, name)
			return err
		}
	}

	ps := []ProcessStopper{stopper("db", nil), nil, stopper("http", errors.New("busy"))}
	StopProcess(time.Second, ps...)

	assert.Equal(t, []string{"http", "db"}, order)
}

func TestStartProcessAtBackground(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(2)

	StartProcessAtBackground(
		func() error { wg.Done(); return nil },
		nil,
		func() error { wg.Done(); return errors.New("exit") },
	)

	wg.Wait()
}

func TestStartProcessAtBackground_RecoversPanic(t *testing.T) {
	done := make(chan struct{})

	StartProcessAtBackground(func() error {
		defer close(done)
		panic("listener")
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("starter did not run")
	}
}
