package cmd

import (
	"fmt"

	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/config"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/deliveries/job"

	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List job names and versions",
		Args:  cobra.NoArgs,
		Run: func(c *cobra.Command, _ []string) {
			// routes only, nothing is executed
			for _, line := range job.New(config.Config{}, nil).List() {
				fmt.Fprintln(c.OutOrStdout(), line)
			}
		},
	}
}
