package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/arushahmd/compass-voice"
	"github.com/arushahmd/compass-voice/internal/presentation/tui"
	"github.com/arushahmd/compass-voice/pkg/domain"
)

// ChatOptions configures an interactive chat session.
type ChatOptions struct {
	SessionID string
	Fresh     bool // delete the session before the first turn
	Plain     bool // disable markdown rendering and the banner
	JSON      bool // print each reply as a JSON line
	In        io.Reader
	Out       io.Writer
}

// RunChat reads utterances line by line and prints the agent's replies until
// the input ends, the context is cancelled or the user types /quit.
func RunChat(ctx context.Context, agent *compass.Agent, opts ChatOptions) error {
	if opts.SessionID == "" {
		opts.SessionID = "cli"
	}
	interactive := tui.IsTerminal(opts.Out) && !opts.Plain && !opts.JSON

	// 1. Prepare the session
	if opts.Fresh {
		if err := agent.Reset(ctx, opts.SessionID); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
			return fmt.Errorf("failed to reset session: %w", err)
		}
	}

	render := tui.PlainRenderer
	if interactive {
		tui.PrintBanner(opts.Out, compass.Version)
		render = tui.NewRenderer(tui.Width(opts.Out))
		printSystemMessage(opts.Out, "Session %q. Type /cart, /reset or /quit.", opts.SessionID)
	}

	// 2. Loop
	scanner := bufio.NewScanner(NewInterruptibleReader(opts.In, ctx.Done()))
	enc := json.NewEncoder(opts.Out)
	for {
		if interactive {
			fmt.Fprint(opts.Out, tui.Prompt(opts.Out, "> "))
		}
		if !scanner.Scan() {
			err := scanner.Err()
			if err == nil || isInterrupted(err) {
				if interactive {
					printSystemMessage(opts.Out, "Bye.")
				}
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line {
		case "/quit", "/exit":
			return nil
		case "/reset":
			if err := agent.Reset(ctx, opts.SessionID); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
				return fmt.Errorf("failed to reset session: %w", err)
			}
			printSystemMessage(opts.Out, "Session reset.")
			continue
		case "/cart":
			printCart(ctx, agent, opts.SessionID, opts.Out)
			continue
		}

		reply, err := agent.Handle(ctx, opts.SessionID, line)
		if err != nil {
			if isInterrupted(err) {
				return nil
			}
			if errors.Is(err, domain.ErrInvalidInput) {
				printSystemMessage(opts.Out, "Input rejected: %v", err)
				continue
			}
			return err
		}

		if opts.JSON {
			if err := enc.Encode(reply); err != nil {
				return fmt.Errorf("failed to encode reply: %w", err)
			}
			continue
		}
		text, err := render(reply.Text)
		if err != nil {
			text = reply.Text
		}
		fmt.Fprintln(opts.Out, text)
	}
}

func printCart(ctx context.Context, agent *compass.Agent, sessionID string, w io.Writer) {
	summary, err := agent.Cart(ctx, sessionID)
	if errors.Is(err, domain.ErrSessionNotFound) || (err == nil && len(summary.Items) == 0) {
		printSystemMessage(w, "Cart is empty.")
		return
	}
	if err != nil {
		printSystemMessage(w, "Could not load cart: %v", err)
		return
	}
	for _, l := range summary.Items {
		fmt.Fprintf(w, "  %d x %s  %s\n", l.Quantity, l.Name, l.LineTotal)
	}
	printSystemMessage(w, "Total %s", summary.Total)
}
