package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fairyhunter13/vending-machine-simulator/internal/config"
	"github.com/fairyhunter13/vending-machine-simulator/internal/machine"
	"github.com/fairyhunter13/vending-machine-simulator/internal/obs"
)

var (
	verbose       bool
	logFormat     string
	inventoryFile string
	outputJSON    bool

	cfg config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vending-machine-simulator",
	Short: "A coin-operated vending machine simulator",
	Long: `Simulates a single coin-operated vending machine: select an item, insert
coins, then collect the item with change or ask for a refund.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return err
		}
		if verbose {
			c.LogLevel = "debug"
		}
		if cmd.Flags().Changed("log-format") {
			c.LogFormat = logFormat
		}
		if inventoryFile != "" {
			c.InventoryFile = inventoryFile
		}
		cfg = c
		obs.InitLogger(cfg.LogLevel, cfg.LogFormat)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newMachine builds a machine stocked from the resolved inventory.
func newMachine() (*machine.Machine, error) {
	inv, err := cfg.Resolve()
	if err != nil {
		return nil, err
	}
	m, err := machine.New(inv.Items)
	if err != nil {
		return nil, err
	}
	obs.Logger.Info("machine_ready", "items", len(inv.Items), "inventory_file", cfg.InventoryFile)
	return m, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "json", "Log format: json or text")
	rootCmd.PersistentFlags().StringVarP(&inventoryFile, "inventory", "i", "", "YAML inventory file (default: built-in COKE/PEPSI/SODA)")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Print results as JSON")
}
