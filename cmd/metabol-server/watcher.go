package main

import (
	"context"
	"path/filepath"
	"time"

	"github.com/cellforge/metabol/internal/metab"
	"github.com/fsnotify/fsnotify"
)

// watchCatalogFile reloads the startup catalog whenever its file changes
// and swaps the environment definition in place. Editors often write via
// rename, so the parent directory is watched rather than the file itself.
func (s *Server) watchCatalogFile(ctx context.Context, path string, envID metab.EnvironmentID) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()

		// Debounce: editors emit bursts of events per save.
		var reloadAt time.Time
		var pending bool
		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(path) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				pending = true
				reloadAt = time.Now().Add(200 * time.Millisecond)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Warn("catalog watcher error", "error", err)

			case <-ticker.C:
				if !pending || time.Now().Before(reloadAt) {
					continue
				}
				pending = false
				s.reloadCatalog(path, envID)
			}
		}
	}()
	return nil
}

func (s *Server) reloadCatalog(path string, envID metab.EnvironmentID) {
	cfg, catalog, err := metab.LoadCatalogFile(path)
	if err != nil {
		s.logger.Error("catalog reload failed", "path", path, "error", err)
		return
	}
	env, err := s.manager.Replace(envID, catalog.Store, catalog.Pathway)
	if err != nil {
		env, err = s.manager.Create(envID, catalog.Store, catalog.Pathway)
		if err != nil {
			s.logger.Error("catalog reload failed", "env_id", envID, "error", err)
			return
		}
	}
	s.configureEnvironment(env)
	s.logger.Info("catalog reloaded", "path", path, "catalog", cfg.Name, "env_id", envID)
}
