package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fairyhunter13/vending-machine-simulator/internal/console"
	"github.com/fairyhunter13/vending-machine-simulator/internal/machine"
)

var buyCmd = &cobra.Command{
	Use:   "buy ITEM COIN...",
	Short: "Buy one item with the given coins",
	Long: `Selects ITEM, inserts the coins in order and collects the item with its change.
If the coins do not cover the price they are refunded.`,
	Example: "  vending-machine-simulator buy COKE QUARTER DIME NICKLE PENNY",
	Args:    cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newMachine()
		if err != nil {
			return err
		}
		s := console.New(m, cmd.OutOrStdout(), outputJSON)
		lines := []string{"select " + args[0], "insert " + strings.Join(args[1:], " ")}
		for _, l := range lines {
			if err := s.Exec(l); err != nil {
				return fmt.Errorf("%s: %w", console.ErrorCode(err), err)
			}
		}
		err = s.Exec("collect")
		if errors.Is(err, machine.ErrNotFullyPaid) {
			if rerr := s.Exec("refund"); rerr != nil {
				return rerr
			}
		}
		if err != nil {
			return fmt.Errorf("%s: %w", console.ErrorCode(err), err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(buyCmd)
}
