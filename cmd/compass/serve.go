package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arushahmd/compass-voice"
	"github.com/arushahmd/compass-voice/internal/cli"
	httpAdapter "github.com/arushahmd/compass-voice/pkg/adapters/http"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP chat API and voice webhook",
	Long: `Serves POST /chat for text clients and POST /voice, POST /process_speech for
Twilio calls. Session diffs stream on GET /events and metrics on GET /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			cfg.HTTP.Addr, _ = cmd.Flags().GetString("addr")
		}
		validate, _ := cmd.Flags().GetBool("validate")

		// 1. Agent, with diffs published to SSE subscribers
		streams := httpAdapter.NewStreamManager(nil)
		stack, err := cli.Build(cmd.Context(), cfg, cli.BuildOptions{
			Metrics:      true,
			AgentOptions: []compass.Option{compass.WithReplyObserver(streams.Publish)},
		})
		if err != nil {
			return err
		}
		defer stack.Close()

		// 2. Routes
		handler, err := httpAdapter.NewHandler(stack.Agent,
			httpAdapter.WithLogger(stack.Logger),
			httpAdapter.WithStreams(streams),
			httpAdapter.WithRequestValidation(validate),
			httpAdapter.WithMetricsHandler(promhttp.HandlerFor(stack.Registry, promhttp.HandlerOpts{})),
		)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              cfg.HTTP.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			stack.Logger.Info("compass server listening", "addr", srv.Addr, "menu", cfg.Menu.Path, "store", cfg.Store.Driver)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			stack.Logger.Info("shutting down", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				stack.Logger.Error("graceful shutdown did not complete", "err", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("failed to close server: %w", err)
				}
			}
			stack.Logger.Info("compass server stopped")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":8080", "Address to listen on (overrides http.addr)")
	serveCmd.Flags().Bool("validate", true, "Validate requests against the OpenAPI document")
}
