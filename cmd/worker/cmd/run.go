package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"bitbucket.org/fintechpsp/go-psp-reconciliation/cmd/setup"
	helperFlag "bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/flag"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/graceful"
	xlog "bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/log"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/deliveries/job"

	"github.com/spf13/cobra"
)

const (
	flagName    = "name"
	flagVersion = "version"
	flagDate    = "date"
	flagBucket  = "bucket"

	setupFailureTimeout = 5 * time.Second
)

func newRunCmd() *cobra.Command {
	var jobFlag helperFlag.Job

	c := &cobra.Command{
		Use:     "run",
		Short:   "Run one job",
		Example: "worker run -n=RunSicoobAutoReconciliation -v=v1 -d=2025-01-31",
		Args:    cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runJob(c.Context(), jobFlag)
		},
	}

	c.Flags().StringVarP(&jobFlag.JobName, flagName, "n", "", "job name")
	c.Flags().StringVarP(&jobFlag.Version, flagVersion, "v", "", "job version")
	c.Flags().StringVarP(&jobFlag.Date, flagDate, "d", "", "job running date (YYYY-MM-DD), today when empty")
	c.Flags().StringVarP(&jobFlag.BucketName, flagBucket, "b", "", "bucket name, the configured bucket when empty")
	_ = c.MarkFlagRequired(flagName)
	_ = c.MarkFlagRequired(flagVersion)

	return c
}

// runJob cancels the job on SIGINT or SIGTERM and always runs the stoppers.
func runJob(ctx context.Context, jobFlag helperFlag.Job) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s, stoppers, err := setup.Init("job")
	if err != nil {
		graceful.StopProcess(setupFailureTimeout, stoppers...)
		xlog.Fatalf(ctx, "failed to setup worker: %v", err)
	}
	defer graceful.StopProcess(s.Config.App.GracefulTimeout, stoppers...)

	err = job.New(s.Config, s.Service.Reconciliation).Start(ctx, jobFlag)
	xlog.Info(ctx, "[JOB] worker stopped", xlog.String("job", jobFlag.JobName))

	return err
}
