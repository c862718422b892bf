// Command etudectl is the operator tool for the office backend: database
// setup, account seeding and fee schedule checks.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"etude/internal/config"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "etudectl",
		Short:         "Operator commands for the notary office backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			config.LoadEnv()
			config.SetupLogger()
		},
	}

	root.AddCommand(migrateCmd())
	root.AddCommand(seedAdminCmd())
	root.AddCommand(scheduleCmd())
	root.AddCommand(estimateCmd())
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
