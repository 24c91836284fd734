package main

import (
	"context"
	"os"

	"github.com/arushahmd/compass-voice/internal/cli"
	"github.com/arushahmd/compass-voice/internal/logging"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the ordering agent in the terminal",
	Long: `Starts an interactive ordering session. Each line is one turn.
Type /cart to see the cart, /reset to start over and /quit to leave.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		sessionID, _ := cmd.Flags().GetString("session")
		fresh, _ := cmd.Flags().GetBool("fresh")
		plain, _ := cmd.Flags().GetBool("plain")
		asJSON, _ := cmd.Flags().GetBool("json")
		debug, _ := cmd.Flags().GetBool("debug")

		// Keep the conversation readable: logs are off unless asked for.
		opts := cli.BuildOptions{Logger: logging.NewNop()}
		if debug {
			opts.Logger = logging.New(logging.ParseLevel("debug"), cfg.Log.Format)
		}

		sc := cli.NewSignalContext(context.Background())
		defer sc.Cancel()

		stack, err := cli.Build(sc, cfg, opts)
		if err != nil {
			return err
		}
		defer stack.Close()

		return cli.RunChat(sc, stack.Agent, cli.ChatOptions{
			SessionID: sessionID,
			Fresh:     fresh,
			Plain:     plain,
			JSON:      asJSON,
			In:        os.Stdin,
			Out:       os.Stdout,
		})
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().StringP("session", "s", "cli", "Session ID to resume or create")
	chatCmd.Flags().Bool("fresh", false, "Delete the session before starting")
	chatCmd.Flags().Bool("plain", false, "Disable colours and markdown rendering")
	chatCmd.Flags().Bool("json", false, "Print each reply as a JSON line")
	chatCmd.Flags().Bool("debug", false, "Log turn details to stderr")
}
