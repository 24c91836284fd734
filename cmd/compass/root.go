package main

import (
	"fmt"
	"os"

	"github.com/arushahmd/compass-voice/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "compass",
	Short: "Compass is a turn-based restaurant ordering agent",
	Long: `Compass takes orders one utterance at a time. It classifies each turn with
deterministic rules, fills item slots (sides, modifiers, size, quantity) and
keeps the cart in a persistent session.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", config.DefaultFile, "Path to the configuration file")
	rootCmd.PersistentFlags().String("menu", "", "Menu file (overrides menu.path)")
	rootCmd.PersistentFlags().String("store", "", "Session store: memory, file or redis (overrides store.driver)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
}

// loadConfig reads the config file and applies command line overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if !cmd.Flags().Changed("config") {
		path = ""
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if v, _ := cmd.Flags().GetString("menu"); v != "" {
		cfg.Menu.Path = v
	}
	if v, _ := cmd.Flags().GetString("store"); v != "" {
		cfg.Store.Driver = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.Log.Level = v
	}
	return cfg, cfg.Validate()
}
