package metab

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Snapshot is a point-in-time capture of an environment: its clock and
// every metabolite pool with bounds.
type Snapshot struct {
	SnapshotID    string        `json:"snapshot_id"`
	EnvironmentID EnvironmentID `json:"environment_id"`
	Time          int64         `json:"time"`
	Metabolites   []Metabolite  `json:"metabolites"`
}

// ValidateSnapshot checks that a snapshot can be restored: names unique
// and non-empty, capacities positive, quantities inside bounds.
func ValidateSnapshot(snap Snapshot) error {
	seen := make(map[string]struct{})
	for i, m := range snap.Metabolites {
		if m.Name == "" {
			return fmt.Errorf("metabolite at index %d has empty name", i)
		}
		if _, dup := seen[m.Name]; dup {
			return fmt.Errorf("duplicate metabolite name: %s", m.Name)
		}
		seen[m.Name] = struct{}{}
		if m.MaxQuantity <= 0 {
			return fmt.Errorf("metabolite %s has nonpositive capacity %g", m.Name, m.MaxQuantity)
		}
		if m.Quantity < 0 || m.Quantity > m.MaxQuantity {
			return fmt.Errorf("metabolite %s quantity %g outside [0, %g]", m.Name, m.Quantity, m.MaxQuantity)
		}
	}
	return nil
}

// EncodeSnapshotJSON encodes a snapshot to JSON.
func EncodeSnapshotJSON(snap Snapshot) ([]byte, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshotJSON decodes a snapshot from JSON.
func DecodeSnapshotJSON(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decoding snapshot: %w", err)
	}
	return snap, nil
}

// writeSnapshotFile writes a snapshot under dir as
// <environment>-<time>.json, creating the directory if needed.
func writeSnapshotFile(dir string, snap Snapshot) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating snapshot dir: %w", err)
	}
	data, err := EncodeSnapshotJSON(snap)
	if err != nil {
		return err
	}
	name := fmt.Sprintf("%s-%d.json", snap.EnvironmentID, snap.Time)
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return fmt.Errorf("writing snapshot file: %w", err)
	}
	return nil
}

// ReadSnapshotFile loads a snapshot previously written by the engine.
func ReadSnapshotFile(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("reading snapshot file: %w", err)
	}
	snap, err := DecodeSnapshotJSON(data)
	if err != nil {
		return Snapshot{}, err
	}
	if err := ValidateSnapshot(snap); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}
