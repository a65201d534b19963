package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"pointconfig/internal/config"
	"pointconfig/internal/container"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scoring API and Prometheus metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Server.Port = port
			}
			c, err := container.New(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				c.Shutdown(shutdownCtx)
			}()

			c.Logger.Info("listening on :%s", cfg.Server.Port)
			return c.APIServer().ListenAndServe(ctx, ":"+cfg.Server.Port)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Port to listen on; defaults to PORT or 8080")
	return cmd
}
