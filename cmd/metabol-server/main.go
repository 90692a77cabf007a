package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cellforge/metabol/internal/metab"
)

func main() {
	cfg := loadServerConfig()
	logger := newLogger(cfg.LogLevel)

	srv := NewServer(logger)
	srv.snapshotDir = cfg.SnapshotDir
	srv.snapshotEverySteps = cfg.SnapshotEverySteps

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.CatalogFile != "" {
		envID := metab.EnvironmentID(cfg.DefaultEnvID)
		catalogCfg, catalog, err := metab.LoadCatalogFile(cfg.CatalogFile)
		if err != nil {
			logger.Error("loading startup catalog", "path", cfg.CatalogFile, "error", err)
			os.Exit(1)
		}
		env, err := srv.manager.Create(envID, catalog.Store, catalog.Pathway)
		if err != nil {
			logger.Error("creating startup environment", "env_id", envID, "error", err)
			os.Exit(1)
		}
		srv.configureEnvironment(env)
		logger.Info("startup catalog loaded", "catalog", catalogCfg.Name, "env_id", envID)

		if cfg.WatchCatalog {
			if err := srv.watchCatalogFile(ctx, cfg.CatalogFile, envID); err != nil {
				logger.Error("starting catalog watcher", "error", err)
				os.Exit(1)
			}
		}
	}

	if _, err := srv.startSnapshotSchedule(ctx, cfg.SnapshotSchedule); err != nil {
		logger.Error("starting snapshot scheduler", "error", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.routes(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", "error", err)
		}
		if err := srv.Close(); err != nil {
			logger.Error("closing notifiers", "error", err)
		}
	}()

	logger.Info("metabol server listening", "addr", cfg.Addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
