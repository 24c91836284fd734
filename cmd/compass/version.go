package main

import (
	"fmt"
	"strings"

	"github.com/arushahmd/compass-voice"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of compass",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "compass version %s\n", strings.TrimSpace(compass.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
