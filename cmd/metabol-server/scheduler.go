package main

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
)

// startSnapshotSchedule writes a snapshot of every environment on a
// wall-clock cron schedule, independent of the per-step snapshot period.
// An empty expression disables the scheduler.
func (s *Server) startSnapshotSchedule(ctx context.Context, expr string) (*cron.Cron, error) {
	if expr == "" {
		return nil, nil
	}
	if _, err := cron.ParseStandard(expr); err != nil {
		return nil, fmt.Errorf("invalid snapshot schedule %q: %w", expr, err)
	}

	c := cron.New()
	_, err := c.AddFunc(expr, func() {
		for _, id := range s.manager.List() {
			env, ok := s.manager.Get(id)
			if !ok {
				continue
			}
			env.SetSnapshotDir(s.snapshotDir)
			path, err := env.SaveSnapshot()
			if err != nil {
				s.logger.Error("scheduled snapshot failed", "env_id", id, "error", err)
				continue
			}
			s.logger.Debug("scheduled snapshot written", "env_id", id, "path", path)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("scheduling snapshots: %w", err)
	}

	c.Start()
	s.logger.Info("snapshot scheduler started", "schedule", expr)

	go func() {
		<-ctx.Done()
		c.Stop()
	}()
	return c, nil
}
