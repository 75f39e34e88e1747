package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Execute runs the worker command line. It is called once by main.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "worker",
		Short:        "Runs scheduled reconciliation jobs",
		SilenceUsage: true,
	}
	root.AddCommand(newListCmd(), newRunCmd())
	return root
}
