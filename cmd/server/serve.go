package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"agrow/database"
	"agrow/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server (default).",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	db, err := database.Open(cfg)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := database.Migrate(db); err != nil {
		return err
	}

	a, err := build(cfg, db)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.retention.Start()
	go func() {
		logging.Log.WithField("port", cfg.Port).WithField("version", version).Info("[server] listening")
		if err := a.echo.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Log.WithError(err).Error("[server] stopped")
			stop()
		}
	}()
	<-ctx.Done()

	logging.Log.Info("[server] shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	a.retention.Stop(sctx)
	return a.echo.Shutdown(sctx)
}
