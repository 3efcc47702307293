package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rgehrsitz/gcalc/internal/cache"
	"github.com/rgehrsitz/gcalc/internal/calculation"
	"github.com/rgehrsitz/gcalc/internal/compare"
	"github.com/rgehrsitz/gcalc/internal/config"
	"github.com/rgehrsitz/gcalc/internal/logging"
	"github.com/rgehrsitz/gcalc/internal/server"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator over HTTP",
		Long: "Starts the JSON API. Settings come from --settings and GCALC_* environment\n" +
			"variables, e.g. GCALC_SERVER_ADDRESS=:9090 GCALC_CACHE_BACKEND=redis.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settingsFile, _ := cmd.Flags().GetString("settings")
			settings, err := config.LoadSettings(settingsFile)
			if err != nil {
				return err
			}
			if addr, _ := cmd.Flags().GetString("address"); addr != "" {
				settings.Server.Address = addr
			}

			level, _ := cmd.Flags().GetString("log-level")
			logger, err := logging.New(settings.Logging, level)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			repo, err := cache.New(settings.Cache)
			if err != nil {
				return err
			}
			defer repo.Close()
			if rc, ok := repo.(*cache.RedisCache); ok {
				pingCtx, cancel := context.WithTimeout(cmd.Context(), 2*time.Second)
				if err := rc.Ping(pingCtx); err != nil {
					logger.Warn("redis unreachable, requests will not be cached until it recovers",
						zap.String("op", "main.serve"), zap.String("address", settings.Cache.RedisAddress), zap.Error(err))
				}
				cancel()
			}

			engine := calculation.NewCalculationEngine()
			engine.SetLogger(logger.Sugar())

			srv, err := server.New(compare.NewCompareEngine(engine), repo, logger, settings.Server)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe(settings.Server.Address) }()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("server failed: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("shutdown failed: %w", err)
			}
			return <-errCh
		},
	}
	cmd.Flags().String("address", "", "Listen address (overrides settings)")
	return cmd
}
