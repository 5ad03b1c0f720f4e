package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-dashboard/internal/app"
	"github.com/comitanigiacomo/kanso-dashboard/internal/logger"
)

func addServe(topLevel *cobra.Command, opts *rootOptions) {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}

			level := cfg.LogLevel
			if opts.verbose {
				level = "debug"
			}
			log, err := logger.New(level, false)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if level != "debug" {
				gin.SetMode(gin.ReleaseMode)
			}

			a, err := app.New(cmd.Context(), cfg, log)
			if err != nil {
				log.Error("critical: failed to open storage", zap.Error(err))
				return err
			}
			defer a.Close()

			if !cfg.AuthEnabled() {
				log.Warn("JWT_SECRET not set, every request is attributed to the local user",
					zap.String("user", cfg.LocalUser))
			}

			return runServer(cmd.Context(), a, log)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides PORT)")
	topLevel.AddCommand(cmd)
}

func runServer(ctx context.Context, a *app.App, log *zap.Logger) error {
	srv := &http.Server{
		Addr:         ":" + a.Config.Port,
		Handler:      a.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("kanso dashboard running", zap.String("addr", "http://localhost:"+a.Config.Port),
			zap.String("storage", a.Config.Storage))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("critical server error", zap.Error(err))
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("stop signal received, shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}
