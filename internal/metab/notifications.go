package metab

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// EventKind distinguishes the reaction outcomes worth broadcasting.
type EventKind string

const (
	EventReactionExecuted EventKind = "reaction_executed"
	EventReactionBlocked  EventKind = "reaction_blocked"
)

// ReactionEvent is emitted after every reaction attempt inside an
// environment step.
type ReactionEvent struct {
	EnvironmentID      EnvironmentID `json:"environment_id"`
	Kind               EventKind     `json:"kind"`
	Reaction           string        `json:"reaction"`
	Pathway            string        `json:"pathway"`
	Extent             float64       `json:"extent"`
	CascadeActivations int           `json:"cascade_activations,omitempty"`
	Reason             string        `json:"reason,omitempty"`
	EnvTime            int64         `json:"env_time"`
	Timestamp          int64         `json:"timestamp"`
}

// JSON returns the event encoded as JSON.
func (ev ReactionEvent) JSON() ([]byte, error) {
	return json.Marshal(ev)
}

// Notifier is a delivery channel for reaction events.
type Notifier interface {
	ID() string
	Type() string
	Notify(ctx context.Context, event ReactionEvent) error
	Close() error
}

type notificationJob struct {
	event       ReactionEvent
	notifierIDs []string
}

// NotificationManager fans reaction events out to registered notifiers.
// Delivery is asynchronous with bounded queueing: when the queue is full
// events are dropped rather than stalling the simulation step.
type NotificationManager struct {
	mu        sync.RWMutex
	notifiers map[string]Notifier
	jobs      chan notificationJob
	closed    bool
	wg        sync.WaitGroup
	logger    Logger
}

// NewNotificationManager creates a manager with a silent logger.
func NewNotificationManager() *NotificationManager {
	return NewNotificationManagerWithLogger(NopLogger())
}

// NewNotificationManagerWithLogger creates a manager that logs delivery
// failures through the given logger.
func NewNotificationManagerWithLogger(logger Logger) *NotificationManager {
	if logger == nil {
		logger = NopLogger()
	}
	nm := &NotificationManager{
		notifiers: make(map[string]Notifier),
		jobs:      make(chan notificationJob, 1024),
		logger:    logger,
	}
	nm.wg.Add(1)
	go nm.worker()
	return nm
}

// Register adds a notifier. IDs must be unique.
func (nm *NotificationManager) Register(n Notifier) error {
	if n == nil {
		return fmt.Errorf("notifier cannot be nil")
	}
	if n.ID() == "" {
		return fmt.Errorf("notifier ID cannot be empty")
	}
	nm.mu.Lock()
	defer nm.mu.Unlock()
	if _, exists := nm.notifiers[n.ID()]; exists {
		return fmt.Errorf("notifier with ID %s already exists", n.ID())
	}
	nm.notifiers[n.ID()] = n
	return nil
}

// Unregister closes and removes a notifier.
func (nm *NotificationManager) Unregister(id string) error {
	nm.mu.Lock()
	n, exists := nm.notifiers[id]
	if exists {
		delete(nm.notifiers, id)
	}
	nm.mu.Unlock()
	if !exists {
		return fmt.Errorf("notifier with ID %s not found", id)
	}
	if err := n.Close(); err != nil {
		return fmt.Errorf("closing notifier %s: %w", id, err)
	}
	return nil
}

// List returns the IDs of all registered notifiers.
func (nm *NotificationManager) List() []string {
	nm.mu.RLock()
	defer nm.mu.RUnlock()
	ids := make([]string, 0, len(nm.notifiers))
	for id := range nm.notifiers {
		ids = append(ids, id)
	}
	return ids
}

// Broadcast enqueues an event for every registered notifier.
func (nm *NotificationManager) Broadcast(event ReactionEvent) {
	nm.Enqueue(event, nm.List())
}

// Enqueue enqueues an event for the named notifiers. Non-blocking: a full
// queue drops the event.
func (nm *NotificationManager) Enqueue(event ReactionEvent, notifierIDs []string) {
	if len(notifierIDs) == 0 {
		return
	}
	nm.mu.RLock()
	closed := nm.closed
	nm.mu.RUnlock()
	if closed {
		return
	}
	select {
	case nm.jobs <- notificationJob{event: event, notifierIDs: notifierIDs}:
	default:
		nm.logger.Warnf("notification queue full, dropping event: reaction=%s", event.Reaction)
	}
}

func (nm *NotificationManager) worker() {
	defer nm.wg.Done()
	for job := range nm.jobs {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		for _, id := range job.notifierIDs {
			nm.notifyWithRetry(ctx, id, job.event)
		}
		cancel()
	}
}

func (nm *NotificationManager) notifyWithRetry(ctx context.Context, notifierID string, event ReactionEvent) {
	nm.mu.RLock()
	n, ok := nm.notifiers[notifierID]
	nm.mu.RUnlock()
	if !ok {
		nm.logger.Errorf("notification failed: notifier=%s not found", notifierID)
		return
	}

	const maxRetries = 3
	backoff := 100 * time.Millisecond
	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := n.Notify(ctx, event)
		if err == nil {
			return
		}
		nm.logger.Warnf("notification failed: notifier=%s attempt=%d error=%v", notifierID, attempt+1, err)
		if attempt == maxRetries {
			nm.logger.Errorf("notification failed after %d attempts: notifier=%s", maxRetries+1, notifierID)
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
			backoff *= 2
		}
	}
}

// Close shuts the worker down and closes every notifier.
func (nm *NotificationManager) Close() error {
	nm.mu.Lock()
	if nm.closed {
		nm.mu.Unlock()
		return nil
	}
	nm.closed = true
	close(nm.jobs)
	nm.mu.Unlock()

	nm.wg.Wait()

	nm.mu.Lock()
	defer nm.mu.Unlock()
	var errs []error
	for id, n := range nm.notifiers {
		if err := n.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing notifier %s: %w", id, err))
		}
	}
	nm.notifiers = make(map[string]Notifier)
	if len(errs) > 0 {
		return fmt.Errorf("errors closing notifiers: %v", errs)
	}
	return nil
}
