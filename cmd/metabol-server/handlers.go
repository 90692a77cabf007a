package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/cellforge/metabol/internal/metab"
	"github.com/cellforge/metabol/internal/metab/notifiers"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /environments", s.handleListEnvironments)
	mux.HandleFunc("POST /env/{env}/catalog", s.handleCatalog)
	mux.HandleFunc("DELETE /env/{env}", s.handleDeleteEnvironment)
	mux.HandleFunc("POST /env/{env}/seed", s.handleSeed)
	mux.HandleFunc("POST /env/{env}/step", s.handleStep)
	mux.HandleFunc("POST /env/{env}/start", s.handleStart)
	mux.HandleFunc("POST /env/{env}/stop", s.handleStop)
	mux.HandleFunc("GET /env/{env}/metabolites", s.handleListMetabolites)
	mux.HandleFunc("POST /env/{env}/snapshot", s.handleSaveSnapshot)
	mux.HandleFunc("GET /env/{env}/snapshot", s.handleGetSnapshot)
	mux.HandleFunc("GET /notifiers", s.handleListNotifiers)
	mux.HandleFunc("POST /notifiers", s.handleRegisterNotifier)
	mux.HandleFunc("DELETE /notifiers/{id}", s.handleUnregisterNotifier)
	mux.HandleFunc("GET /ws", s.handleStream)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{}))
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) env(w http.ResponseWriter, r *http.Request) (*metab.Environment, bool) {
	id := metab.EnvironmentID(r.PathValue("env"))
	env, exists := s.manager.Get(id)
	if !exists {
		http.Error(w, "environment not found", http.StatusNotFound)
		return nil, false
	}
	return env, true
}

// POST /env/{env}/catalog
// Body: CatalogConfig JSON. Creates the environment, or replaces its
// definition when it already exists.
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	envID := metab.EnvironmentID(r.PathValue("env"))
	var cfg metab.CatalogConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		http.Error(w, "invalid catalog json: "+err.Error(), http.StatusBadRequest)
		return
	}

	catalog, err := metab.BuildCatalog(cfg)
	if err != nil {
		http.Error(w, "cannot build catalog: "+err.Error(), http.StatusBadRequest)
		return
	}

	env, err := s.manager.Create(envID, catalog.Store, catalog.Pathway)
	if err != nil {
		env, err = s.manager.Replace(envID, catalog.Store, catalog.Pathway)
		if err != nil {
			s.logger.Error("replacing environment", "env_id", envID, "error", err)
			http.Error(w, "cannot update environment: "+err.Error(), http.StatusInternalServerError)
			return
		}
		s.logger.Info("environment catalog replaced", "env_id", envID, "catalog", cfg.Name)
	} else {
		s.logger.Info("environment created", "env_id", envID, "catalog", cfg.Name)
	}
	s.configureEnvironment(env)

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("catalog loaded"))
}

// POST /env/{env}/seed
// Body: SeedConfig JSON. Registers or tops up metabolite pools.
func (s *Server) handleSeed(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	env, ok := s.env(w, r)
	if !ok {
		return
	}
	var seed metab.SeedConfig
	if err := json.NewDecoder(r.Body).Decode(&seed); err != nil {
		http.Error(w, "invalid seed json: "+err.Error(), http.StatusBadRequest)
		return
	}

	err := env.WithStore(func(store *metab.Store) error {
		for _, mc := range seed.Metabolites {
			max := mc.MaxQuantity
			if max <= 0 {
				max = metab.DefaultCapacity
			}
			if err := store.Register(mc.Name, mc.Quantity, max, mc.Unit); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		http.Error(w, "cannot seed metabolites: "+err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type stepResponse struct {
	Time    int64             `json:"time"`
	Results []stepResultEntry `json:"results"`
}

type stepResultEntry struct {
	Reaction           string  `json:"reaction"`
	Extent             float64 `json:"extent"`
	Blocked            bool    `json:"blocked"`
	Reason             string  `json:"reason,omitempty"`
	CascadeActivations int     `json:"cascade_activations,omitempty"`
}

// POST /env/{env}/step
// Advances the environment one step and returns the per-reaction results.
func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	env, ok := s.env(w, r)
	if !ok {
		return
	}

	results, err := env.Step()
	if err != nil {
		s.logger.Error("step failed", "env_id", env.ID(), "error", err)
		http.Error(w, "step failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	resp := stepResponse{Time: env.Time()}
	for _, res := range results {
		entry := stepResultEntry{
			Reaction:           res.Reaction,
			Extent:             res.Extent,
			Blocked:            res.Blocked,
			CascadeActivations: res.CascadeActivations,
		}
		if res.Err != nil {
			entry.Reason = res.Err.Error()
		}
		resp.Results = append(resp.Results, entry)
	}

	writeJSON(w, resp)
}

// POST /env/{env}/start?interval=1s
func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	env, ok := s.env(w, r)
	if !ok {
		return
	}

	interval := time.Second
	if raw := r.URL.Query().Get("interval"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			http.Error(w, "invalid interval: "+raw, http.StatusBadRequest)
			return
		}
		interval = d
	}

	env.Run(interval)
	s.logger.Info("environment started", "env_id", env.ID(), "interval", interval, "run_id", env.RunID())
	writeJSON(w, map[string]string{"status": "running", "run_id": env.RunID()})
}

// POST /env/{env}/stop
func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	env, ok := s.env(w, r)
	if !ok {
		return
	}
	env.Stop()
	s.logger.Info("environment stopped", "env_id", env.ID())
	writeJSON(w, map[string]string{"status": "stopped"})
}

// GET /env/{env}/metabolites
func (s *Server) handleListMetabolites(w http.ResponseWriter, r *http.Request) {
	env, ok := s.env(w, r)
	if !ok {
		return
	}
	writeJSON(w, map[string]any{
		"time":        env.Time(),
		"metabolites": env.Metabolites(),
	})
}

// GET /environments
func (s *Server) handleListEnvironments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"environments": s.manager.List()})
}

// DELETE /env/{env}
func (s *Server) handleDeleteEnvironment(w http.ResponseWriter, r *http.Request) {
	id := metab.EnvironmentID(r.PathValue("env"))
	if err := s.manager.Delete(id); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	s.logger.Info("environment deleted", "env_id", id)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// POST /env/{env}/snapshot
func (s *Server) handleSaveSnapshot(w http.ResponseWriter, r *http.Request) {
	env, ok := s.env(w, r)
	if !ok {
		return
	}
	if s.snapshotDir == "" {
		http.Error(w, "snapshot directory not configured", http.StatusInternalServerError)
		return
	}
	env.SetSnapshotDir(s.snapshotDir)

	path, err := env.SaveSnapshot()
	if err != nil {
		s.logger.Error("saving snapshot", "env_id", env.ID(), "error", err)
		http.Error(w, "failed to save snapshot: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]string{"status": "ok", "path": path})
}

// GET /env/{env}/snapshot
// Returns the current in-memory state as snapshot JSON.
func (s *Server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	env, ok := s.env(w, r)
	if !ok {
		return
	}
	writeJSON(w, env.Snapshot())
}

// GET /notifiers
func (s *Server) handleListNotifiers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"notifiers": s.notifierMgr.List()})
}

type registerNotifierRequest struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	URL  string `json:"url,omitempty"`
}

// POST /notifiers
// Body: { "id": "...", "type": "webhook", "url": "https://..." }
func (s *Server) handleRegisterNotifier(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req registerNotifierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}

	var n metab.Notifier
	switch req.Type {
	case "webhook":
		if req.URL == "" {
			http.Error(w, "webhook notifier requires a url", http.StatusBadRequest)
			return
		}
		n = notifiers.NewWebhookNotifier(req.ID, req.URL)
	default:
		http.Error(w, "unknown notifier type: "+req.Type, http.StatusBadRequest)
		return
	}

	if err := s.notifierMgr.Register(n); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	s.logger.Info("notifier registered", "id", req.ID, "type", req.Type)
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write([]byte("notifier registered"))
}

// DELETE /notifiers/{id}
func (s *Server) handleUnregisterNotifier(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.notifierMgr.Unregister(id); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("notifier unregistered"))
}

// GET /ws
// Upgrades to a websocket and streams reaction events until the client
// disconnects.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	upgrader := s.stream.Upgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	s.stream.RegisterClient(conn)

	// Reads are discarded; the read loop only detects disconnects.
	go func() {
		defer s.stream.UnregisterClient(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "cannot encode response: "+err.Error(), http.StatusInternalServerError)
	}
}
