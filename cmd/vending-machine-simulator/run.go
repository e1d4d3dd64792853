package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fairyhunter13/vending-machine-simulator/internal/console"
	"github.com/fairyhunter13/vending-machine-simulator/internal/obs"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Operate the machine interactively",
	Long: `Reads commands from stdin, one per line, and prints each result.
Type "help" for the list of commands. SIGINT or SIGTERM ends the session.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newMachine()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		err = console.New(m, cmd.OutOrStdout(), outputJSON).Run(ctx, cmd.InOrStdin())
		if errors.Is(err, context.Canceled) {
			obs.Logger.Info("session_interrupted", "balance_discarded", m.Balance())
			err = nil
		}
		st := m.Stats()
		obs.Logger.Info("session_closed",
			"sales", st.Sales,
			"total_sales", st.TotalSales,
			"refunds", st.Refunds,
			"resets", st.Resets,
		)
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
