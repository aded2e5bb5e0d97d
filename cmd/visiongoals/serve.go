package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arnold/visiongoals/internal/handlers"
	"github.com/arnold/visiongoals/internal/routes"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := bootstrap(cfg.SeedSamples)
		if err != nil {
			return err
		}

		h := handlers.New(d.goals, d.sync, d.store, logger.Named("http"))
		app := routes.NewApp(h, logger.Named("http"), cfg.CORSOrigins)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			logger.Info("shutting down")
			if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
				logger.Error("shutdown failed", zap.Error(err))
			}
		}()

		addr := ":" + cfg.Port
		logger.Info("listening", zap.String("addr", addr), zap.String("database", cfg.DatabaseURL))
		return app.Listen(addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
