package main

import (
	"github.com/spf13/cobra"

	"github.com/fairyhunter13/vending-machine-simulator/internal/console"
)

var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Print prices and stock",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newMachine()
		if err != nil {
			return err
		}
		return console.New(m, cmd.OutOrStdout(), outputJSON).Exec("stock")
	},
}

func init() {
	rootCmd.AddCommand(inventoryCmd)
}
