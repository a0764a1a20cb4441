package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"carnet/internal/app/server/api"
	"carnet/internal/infrastructure/storage"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Migrates the database, then serves the API until SIGINT or SIGTERM.
In-flight requests get SHUTDOWN_TIMEOUT to finish before the store is closed.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		store, err := storage.Open(ctx, cfg, log)
		if err != nil {
			return fmt.Errorf("open storage: %w", err)
		}
		defer func() {
			if err := store.Close(); err != nil {
				log.Error("close storage", "error", err)
			}
		}()

		srv := &http.Server{
			Addr:              cfg.Server.RunAddress,
			Handler:           api.New(store, cfg, log),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Info("server started", "addr", cfg.Server.RunAddress, "prefix", cfg.Server.PathPrefix, "env", cfg.Env)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("listen: %w", err)
			}
		case <-ctx.Done():
			log.Info("shutting down")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}

		log.Info("server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address, e.g. :8001")
	serveCmd.Flags().String("prefix", "", "path prefix of every API route")
	_ = v.BindPFlag("run_address", serveCmd.Flags().Lookup("addr"))
	_ = v.BindPFlag("api_prefix", serveCmd.Flags().Lookup("prefix"))
}
