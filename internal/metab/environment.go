package metab

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// EnvironmentID identifies one isolated simulation environment.
type EnvironmentID string

// Environment hosts a metabolite store and a pathway behind a lock and
// advances them over discrete time steps. The engine core (Store, Enzyme,
// Reaction) is single-threaded by contract; Environment is the layer that
// sequences access so a server can drive many environments safely.
type Environment struct {
	mu      sync.RWMutex
	id      EnvironmentID
	store   *Store
	pathway *Pathway

	time        int64
	timeStep    float64
	useKinetics bool

	stopCh    chan struct{}
	isRunning bool
	runID     string

	notifications *NotificationManager
	metrics       *Metrics
	logger        Logger

	snapshotDir        string
	snapshotEverySteps int
}

// NewEnvironment creates a stopped environment around the given store and
// pathway, stepping in kinetics mode with a unit time step.
func NewEnvironment(id EnvironmentID, store *Store, pathway *Pathway) *Environment {
	return &Environment{
		id:          id,
		store:       store,
		pathway:     pathway,
		timeStep:    1.0,
		useKinetics: true,
		stopCh:      make(chan struct{}),
		logger:      NopLogger(),
	}
}

// ID returns the environment identifier.
func (e *Environment) ID() EnvironmentID { return e.id }

// SetTimeStep sets the per-step time interval.
func (e *Environment) SetTimeStep(dt float64) error {
	if dt < 0 {
		return &InvalidParameterError{Param: "time_step", Value: dt}
	}
	e.mu.Lock()
	e.timeStep = dt
	e.mu.Unlock()
	return nil
}

// SetUseKinetics switches between kinetic-rate and stoichiometric stepping.
func (e *Environment) SetUseKinetics(useKinetics bool) {
	e.mu.Lock()
	e.useKinetics = useKinetics
	e.mu.Unlock()
}

// SetNotificationManager attaches an event sink for reaction outcomes.
func (e *Environment) SetNotificationManager(nm *NotificationManager) {
	e.mu.Lock()
	e.notifications = nm
	e.mu.Unlock()
}

// SetMetrics attaches Prometheus instruments updated on every step.
func (e *Environment) SetMetrics(m *Metrics) {
	e.mu.Lock()
	e.metrics = m
	e.mu.Unlock()
}

// SetLogger replaces the environment's logger.
func (e *Environment) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger()
	}
	e.mu.Lock()
	e.logger = l
	e.mu.Unlock()
}

// SetSnapshotDir sets the directory periodic snapshots are written to.
func (e *Environment) SetSnapshotDir(dir string) {
	e.mu.Lock()
	e.snapshotDir = dir
	e.mu.Unlock()
}

// SetSnapshotEverySteps sets the snapshot period in steps; 0 disables
// periodic snapshots.
func (e *Environment) SetSnapshotEverySteps(n int) {
	e.mu.Lock()
	e.snapshotEverySteps = n
	e.mu.Unlock()
}

// Time returns the current simulation time in steps.
func (e *Environment) Time() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.time
}

// Metabolites returns a copy of the current metabolite pools.
func (e *Environment) Metabolites() []Metabolite {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.All()
}

// Quantity returns the current quantity of one metabolite (0 if unknown).
func (e *Environment) Quantity(name string) float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.Quantity(name)
}

// Seed registers or tops up a metabolite pool.
func (e *Environment) Seed(name string, quantity, maxQuantity float64, unit string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Register(name, quantity, maxQuantity, unit)
}

// WithStore runs fn with exclusive access to the underlying store. It
// exists for callers that need multi-operation consistency, such as the
// server's seed endpoint.
func (e *Environment) WithStore(fn func(*Store) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.store)
}

// Step advances simulation time by one tick and runs the pathway. Blocked
// reactions are normal outcomes; configuration or parameter errors abort
// the step and leave the remaining reactions unexecuted.
func (e *Environment) Step() ([]StepResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.time++
	results, err := e.pathway.Run(e.store, e.timeStep, e.useKinetics)

	e.publish(results)
	if e.metrics != nil {
		e.metrics.recordStep(e.id, results)
		e.metrics.recordQuantities(e.id, e.store.All())
	}
	if e.snapshotEverySteps > 0 && e.snapshotDir != "" && e.time%int64(e.snapshotEverySteps) == 0 {
		if werr := writeSnapshotFile(e.snapshotDir, e.snapshotLocked()); werr != nil {
			e.logger.Errorf("periodic snapshot failed: env=%s error=%v", e.id, werr)
		}
	}
	return results, err
}

func (e *Environment) publish(results []StepResult) {
	if e.notifications == nil {
		return
	}
	now := time.Now().Unix()
	for _, r := range results {
		ev := ReactionEvent{
			EnvironmentID:      e.id,
			Kind:               EventReactionExecuted,
			Reaction:           r.Reaction,
			Pathway:            e.pathway.Name,
			Extent:             r.Extent,
			CascadeActivations: r.CascadeActivations,
			EnvTime:            e.time,
			Timestamp:          now,
		}
		if r.Blocked {
			ev.Kind = EventReactionBlocked
			if r.Err != nil {
				ev.Reason = r.Err.Error()
			}
		}
		e.notifications.Broadcast(ev)
	}
}

// Run starts a ticker goroutine that calls Step at the given interval
// until Stop is closed. Calling Run on a running environment is a no-op.
// Each run gets a fresh run ID.
func (e *Environment) Run(interval time.Duration) {
	e.mu.Lock()
	if e.isRunning {
		e.mu.Unlock()
		return
	}
	e.stopCh = make(chan struct{})
	e.isRunning = true
	e.runID = uuid.NewString()
	e.logger.Infof("environment %s running: run_id=%s interval=%s", e.id, e.runID, interval)
	e.mu.Unlock()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if _, err := e.Step(); err != nil {
					e.logger.Errorf("step failed: env=%s error=%v", e.id, err)
				}
			case <-e.stopCh:
				e.mu.Lock()
				e.isRunning = false
				e.mu.Unlock()
				return
			}
		}
	}()
}

// Stop halts the ticker goroutine. The environment can be restarted.
func (e *Environment) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.isRunning {
		return
	}
	close(e.stopCh)
}

// IsRunning reports whether the ticker loop is active.
func (e *Environment) IsRunning() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.isRunning
}

// RunID returns the identifier of the current (or last) ticker run.
func (e *Environment) RunID() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.runID
}

// Snapshot captures the environment state for persistence.
func (e *Environment) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshotLocked()
}

func (e *Environment) snapshotLocked() Snapshot {
	return Snapshot{
		SnapshotID:    uuid.NewString(),
		EnvironmentID: e.id,
		Time:          e.time,
		Metabolites:   e.store.All(),
	}
}

// SaveSnapshot writes the current state to the configured snapshot
// directory and returns the file path.
func (e *Environment) SaveSnapshot() (string, error) {
	e.mu.RLock()
	dir := e.snapshotDir
	snap := e.snapshotLocked()
	e.mu.RUnlock()
	if dir == "" {
		return "", fmt.Errorf("snapshot directory not configured")
	}
	if err := writeSnapshotFile(dir, snap); err != nil {
		return "", err
	}
	return filepath.Join(dir, fmt.Sprintf("%s-%d.json", snap.EnvironmentID, snap.Time)), nil
}

// Restore replaces the store contents and simulation time from a snapshot.
func (e *Environment) Restore(snap Snapshot) error {
	if err := ValidateSnapshot(snap); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	store := NewStoreWithCapacity(e.store.defaultCapacity)
	for _, m := range snap.Metabolites {
		if err := store.Register(m.Name, m.Quantity, m.MaxQuantity, m.Unit); err != nil {
			return err
		}
	}
	e.store = store
	e.time = snap.Time
	return nil
}
