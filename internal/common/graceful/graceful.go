package graceful

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	xlog "bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/log"

	"golang.org/x/exp/slices"
)

const logGraceful = "[GRACEFUL]"

// shutdownSignals end the process. SIGUSR1 is what the deployment sends before eviction.
var shutdownSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM, syscall.SIGUSR1}

type ProcessStarter func() error

type ProcessStopper func(ctx context.Context) error

type ProcessStartStopper interface {
	Start() ProcessStarter
	Stop() ProcessStopper
}

// StartProcessAtBackground runs every non nil starter in its own goroutine. A starter
// that returns an error or panics is logged; the others keep running.
func StartProcessAtBackground(ps ...ProcessStarter) {
	for _, p := range ps {
		if p == nil {
			continue
		}
		go run(p)
	}
}

func run(p ProcessStarter) {
	ctx := context.Background()
	defer func() {
		if r := recover(); r != nil {
			xlog.Error(ctx, logGraceful, xlog.String("status", "process panicked"), xlog.Err(fmt.Errorf("%v", r)))
		}
	}()

	if err := p(); err != nil {
		xlog.Error(ctx, logGraceful, xlog.String("status", "process exited"), xlog.Err(err))
	}
}

// StopProcessAtBackground blocks until a shutdown signal arrives, then stops ps.
func StopProcessAtBackground(timeout time.Duration, ps ...ProcessStopper) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, shutdownSignals...)
	defer signal.Stop(sig)

	received := <-sig
	xlog.Info(context.Background(), logGraceful,
		xlog.String("status", "shutting down"),
		xlog.String("signal", received.String()))
	StopProcess(timeout, ps...)
}

// StopProcess runs ps last registered first. Each stopper gets its own timeout.
func StopProcess(timeout time.Duration, ps ...ProcessStopper) {
	ordered := slices.Clone(ps)
	slices.Reverse(ordered)

	for i, p := range ordered {
		if p != nil {
			stop(p, timeout, len(ordered)-1-i)
		}
	}
}

func stop(p ProcessStopper, timeout time.Duration, index int) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := p(ctx); err != nil {
		xlog.Warn(ctx, logGraceful,
			xlog.String("status", "failed stop process"),
			xlog.Int("stopper", index),
			xlog.Err(err))
	}
}
