package metab

import (
	"fmt"
	"sync"
)

// EnvironmentManager hosts isolated environments by ID. Environments never
// share a store; the manager only provides lookup and lifecycle.
type EnvironmentManager struct {
	mu           sync.RWMutex
	environments map[EnvironmentID]*Environment
	logger       Logger
}

// NewEnvironmentManager creates an empty manager.
func NewEnvironmentManager() *EnvironmentManager {
	return NewEnvironmentManagerWithLogger(NopLogger())
}

// NewEnvironmentManagerWithLogger creates an empty manager that propagates
// the logger to every environment it creates.
func NewEnvironmentManagerWithLogger(logger Logger) *EnvironmentManager {
	if logger == nil {
		logger = NopLogger()
	}
	return &EnvironmentManager{
		environments: make(map[EnvironmentID]*Environment),
		logger:       logger,
	}
}

// Create adds a new environment. The ID must be unused.
func (em *EnvironmentManager) Create(id EnvironmentID, store *Store, pathway *Pathway) (*Environment, error) {
	em.mu.Lock()
	defer em.mu.Unlock()
	if _, exists := em.environments[id]; exists {
		return nil, fmt.Errorf("environment with id %s already exists", id)
	}
	env := NewEnvironment(id, store, pathway)
	env.SetLogger(em.logger)
	em.environments[id] = env
	em.logger.Infof("environment created: id=%s metabolites=%d reactions=%d", id, store.Len(), len(pathway.Reactions))
	return env, nil
}

// Get retrieves an environment by ID.
func (em *EnvironmentManager) Get(id EnvironmentID) (*Environment, bool) {
	em.mu.RLock()
	defer em.mu.RUnlock()
	env, ok := em.environments[id]
	return env, ok
}

// Delete stops and removes an environment.
func (em *EnvironmentManager) Delete(id EnvironmentID) error {
	em.mu.Lock()
	defer em.mu.Unlock()
	env, exists := em.environments[id]
	if !exists {
		return fmt.Errorf("environment with id %s does not exist", id)
	}
	env.Stop()
	delete(em.environments, id)
	return nil
}

// List returns every environment ID.
func (em *EnvironmentManager) List() []EnvironmentID {
	em.mu.RLock()
	defer em.mu.RUnlock()
	ids := make([]EnvironmentID, 0, len(em.environments))
	for id := range em.environments {
		ids = append(ids, id)
	}
	return ids
}

// Replace swaps an existing environment's definition for a freshly built
// one, preserving the ID. Used by the catalog hot-reload path.
func (em *EnvironmentManager) Replace(id EnvironmentID, store *Store, pathway *Pathway) (*Environment, error) {
	em.mu.Lock()
	defer em.mu.Unlock()
	old, exists := em.environments[id]
	if !exists {
		return nil, fmt.Errorf("environment with id %s does not exist", id)
	}
	old.Stop()
	env := NewEnvironment(id, store, pathway)
	env.SetLogger(em.logger)
	em.environments[id] = env
	em.logger.Infof("environment replaced: id=%s", id)
	return env, nil
}
