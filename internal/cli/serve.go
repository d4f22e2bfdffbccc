package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/caugraph/caugraph/internal/api"
	"github.com/caugraph/caugraph/pkg/config"
	"github.com/caugraph/caugraph/pkg/engine"
)

// ===== Serve Command =====

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long:  `Starts an HTTP server exposing graph storage, query, and rendering endpoints under /v1. Cache and store backends come from the config file.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			path := configPath
			if path == "" {
				var err error
				if path, err = config.DefaultPath(); err != nil {
					return err
				}
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			qc, err := cfg.Cache.OpenCache(ctx)
			if err != nil {
				return err
			}
			st, err := cfg.Store.OpenStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close(context.Background())

			runner := engine.NewRunner(qc, nil, c.Logger)
			defer runner.Close()

			server := &http.Server{
				Addr:              cfg.Server.Addr,
				Handler:           api.NewServer(runner, st, c.Logger).Router(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				c.Logger.Info("server listening", "addr", cfg.Server.Addr)
				errCh <- server.ListenAndServe()
			}()

			select {
			case <-ctx.Done():
				c.Logger.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					return fmt.Errorf("shutdown: %w", err)
				}
				return nil
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&configPath, "config", "", "config file path")
	return cmd
}
