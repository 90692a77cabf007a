package main

import (
	"log/slog"

	"github.com/cellforge/metabol/internal/metab"
	"github.com/cellforge/metabol/internal/metab/notifiers"
)

// Server is the HTTP control plane for the simulation engine. It hosts the
// environment manager, the shared notification manager, the websocket
// stream, and the Prometheus instruments.
type Server struct {
	manager            *metab.EnvironmentManager
	notifierMgr        *metab.NotificationManager
	metrics            *metab.Metrics
	stream             *notifiers.WebSocketNotifier
	snapshotDir        string
	snapshotEverySteps int
	logger             *slog.Logger
}

// NewServer wires a server with a fresh manager, notification fan-out, a
// websocket stream notifier, and a private metrics registry.
func NewServer(logger *slog.Logger) *Server {
	adapter := &engineLogger{logger: logger}
	nm := metab.NewNotificationManagerWithLogger(adapter)

	stream := notifiers.NewWebSocketNotifier("stream")
	if err := nm.Register(stream); err != nil {
		logger.Error("registering stream notifier", "error", err)
	}

	return &Server{
		manager:     metab.NewEnvironmentManagerWithLogger(adapter),
		notifierMgr: nm,
		metrics:     metab.NewMetrics(nil),
		stream:      stream,
		logger:      logger,
	}
}

// configureEnvironment applies the server-wide wiring to a freshly created
// or replaced environment.
func (s *Server) configureEnvironment(env *metab.Environment) {
	env.SetNotificationManager(s.notifierMgr)
	env.SetMetrics(s.metrics)
	if s.snapshotDir != "" {
		env.SetSnapshotDir(s.snapshotDir)
	}
	if s.snapshotEverySteps >= 0 {
		env.SetSnapshotEverySteps(s.snapshotEverySteps)
	}
}

// Close releases the notification resources.
func (s *Server) Close() error {
	return s.notifierMgr.Close()
}
