package main

import (
	"fmt"

	"github.com/arushahmd/compass-voice/internal/presentation/graph"
	"github.com/arushahmd/compass-voice/pkg/router"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the routing table as a Mermaid diagram",
	Long: `Outputs a Mermaid diagram (graph LR) of which intents each conversation
state routes to which handler. With --session the session's current state is highlighted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var overlay *graph.Overlay
		if id, _ := cmd.Flags().GetString("session"); id != "" {
			store, closeStore, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			sess, err := store.Load(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to load session '%s': %w", id, err)
			}
			overlay = &graph.Overlay{CurrentState: sess.State}
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(router.New(), overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().String("session", "", "Highlight the current state of this session")
}
