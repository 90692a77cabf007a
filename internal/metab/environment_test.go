package metab

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testEnvironment() *Environment {
	catalog := Glycolysis()
	return NewEnvironment("cell-1", catalog.Store, catalog.Pathway)
}

func TestEnvironment_Step(t *testing.T) {
	env := testEnvironment()

	if env.Time() != 0 {
		t.Errorf("Expected initial time 0, got %d", env.Time())
	}

	results, err := env.Step()
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if env.Time() != 1 {
		t.Errorf("Expected time 1 after one step, got %d", env.Time())
	}
	if len(results) != 10 {
		t.Fatalf("Expected 10 reaction results, got %d", len(results))
	}

	// The first reaction has glucose and ATP available.
	if results[0].Blocked {
		t.Errorf("Expected hexokinase reaction to execute, got blocked: %v", results[0].Err)
	}
	if q := env.Quantity("glucose"); q >= 1 {
		t.Errorf("Expected glucose to be consumed, got %f", q)
	}
	if env.Quantity("pyruvate") <= 0 {
		t.Error("Expected pyruvate to be produced downstream")
	}
}

func TestEnvironment_SetTimeStep(t *testing.T) {
	env := testEnvironment()

	if err := env.SetTimeStep(0.5); err != nil {
		t.Fatalf("SetTimeStep failed: %v", err)
	}
	if err := env.SetTimeStep(-1); err == nil {
		t.Error("Expected an error for negative time step")
	}
}

func TestEnvironment_Seed(t *testing.T) {
	env := testEnvironment()
	before := env.Quantity("glucose")

	if err := env.Seed("glucose", 5, 1000, ""); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	if q := env.Quantity("glucose"); q != before+5 {
		t.Errorf("Expected glucose %f, got %f", before+5, q)
	}
}

func TestEnvironment_StoichiometricStep(t *testing.T) {
	env := testEnvironment()
	env.SetUseKinetics(false)

	results, err := env.Step()
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	for _, res := range results {
		if !res.Blocked && res.Extent != 1.0 {
			t.Errorf("Expected extent 1.0 for %s, got %f", res.Reaction, res.Extent)
		}
	}
}

func TestEnvironment_RunAndStop(t *testing.T) {
	env := testEnvironment()

	env.Run(5 * time.Millisecond)
	if !env.IsRunning() {
		t.Fatal("Expected environment to be running")
	}
	if env.RunID() == "" {
		t.Error("Expected a run ID")
	}

	// Run on a running environment is a no-op: the run ID is unchanged.
	id := env.RunID()
	env.Run(5 * time.Millisecond)
	if env.RunID() != id {
		t.Error("Expected Run on a running environment to be a no-op")
	}

	deadline := time.After(2 * time.Second)
	for env.Time() == 0 {
		select {
		case <-deadline:
			t.Fatal("Timed out waiting for the ticker to step")
		case <-time.After(time.Millisecond):
		}
	}

	env.Stop()
	for env.IsRunning() {
		select {
		case <-deadline:
			t.Fatal("Timed out waiting for the environment to stop")
		case <-time.After(time.Millisecond):
		}
	}
}

func TestEnvironment_SnapshotAndRestore(t *testing.T) {
	env := testEnvironment()
	_, _ = env.Step()
	_, _ = env.Step()

	snap := env.Snapshot()
	if snap.SnapshotID == "" {
		t.Error("Expected a snapshot ID")
	}
	if snap.EnvironmentID != "cell-1" {
		t.Errorf("Expected environment ID 'cell-1', got '%s'", snap.EnvironmentID)
	}
	if snap.Time != 2 {
		t.Errorf("Expected time 2, got %d", snap.Time)
	}

	glucoseAt2 := env.Quantity("glucose")

	// Advance further, then restore back.
	_, _ = env.Step()
	_, _ = env.Step()
	if err := env.Restore(snap); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if env.Time() != 2 {
		t.Errorf("Expected restored time 2, got %d", env.Time())
	}
	if q := env.Quantity("glucose"); q != glucoseAt2 {
		t.Errorf("Expected restored glucose %f, got %f", glucoseAt2, q)
	}
}

func TestEnvironment_RestoreInvalidSnapshot(t *testing.T) {
	env := testEnvironment()

	snap := Snapshot{
		EnvironmentID: "cell-1",
		Metabolites:   []Metabolite{{Name: "", Quantity: 1, MaxQuantity: 10}},
	}
	if err := env.Restore(snap); err == nil {
		t.Error("Expected an error restoring an invalid snapshot")
	}
}

func TestEnvironment_SaveSnapshot(t *testing.T) {
	env := testEnvironment()
	dir := t.TempDir()
	env.SetSnapshotDir(dir)
	_, _ = env.Step()

	path, err := env.SaveSnapshot()
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("Expected snapshot under %s, got %s", dir, path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Expected snapshot file to exist: %v", err)
	}
	loaded, err := ReadSnapshotFile(path)
	if err != nil {
		t.Fatalf("ReadSnapshotFile failed: %v", err)
	}
	if loaded.Time != 1 {
		t.Errorf("Expected snapshot time 1, got %d", loaded.Time)
	}
}

func TestEnvironment_SaveSnapshotWithoutDir(t *testing.T) {
	env := testEnvironment()
	if _, err := env.SaveSnapshot(); err == nil {
		t.Error("Expected an error without a configured snapshot dir")
	}
}

func TestEnvironment_PeriodicSnapshots(t *testing.T) {
	env := testEnvironment()
	dir := t.TempDir()
	env.SetSnapshotDir(dir)
	env.SetSnapshotEverySteps(2)

	for i := 0; i < 4; i++ {
		if _, err := env.Step(); err != nil {
			t.Fatalf("Step failed: %v", err)
		}
	}

	for _, want := range []string{"cell-1-2.json", "cell-1-4.json"} {
		if _, err := os.Stat(filepath.Join(dir, want)); err != nil {
			t.Errorf("Expected periodic snapshot %s: %v", want, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "cell-1-3.json")); err == nil {
		t.Error("Expected no snapshot at step 3")
	}
}

func TestEnvironmentManager_Lifecycle(t *testing.T) {
	manager := NewEnvironmentManager()
	catalog := Glycolysis()

	env, err := manager.Create("cell-1", catalog.Store, catalog.Pathway)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if env.ID() != "cell-1" {
		t.Errorf("Expected ID 'cell-1', got '%s'", env.ID())
	}

	// Duplicate IDs are rejected.
	if _, err := manager.Create("cell-1", catalog.Store, catalog.Pathway); err == nil {
		t.Error("Expected an error creating a duplicate environment")
	}

	got, ok := manager.Get("cell-1")
	if !ok || got != env {
		t.Error("Expected Get to return the created environment")
	}

	if ids := manager.List(); len(ids) != 1 || ids[0] != "cell-1" {
		t.Errorf("Expected [cell-1], got %v", ids)
	}

	if err := manager.Delete("cell-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := manager.Get("cell-1"); ok {
		t.Error("Expected environment to be gone after delete")
	}
	if err := manager.Delete("cell-1"); err == nil {
		t.Error("Expected an error deleting a missing environment")
	}
}

func TestEnvironmentManager_Replace(t *testing.T) {
	manager := NewEnvironmentManager()
	first := Glycolysis()

	old, err := manager.Create("cell-1", first.Store, first.Pathway)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	_, _ = old.Step()

	second := Glycolysis()
	replaced, err := manager.Replace("cell-1", second.Store, second.Pathway)
	if err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if replaced == old {
		t.Error("Expected Replace to build a fresh environment")
	}
	if replaced.Time() != 0 {
		t.Errorf("Expected fresh clock, got time %d", replaced.Time())
	}

	if _, err := manager.Replace("missing", second.Store, second.Pathway); err == nil {
		t.Error("Expected an error replacing a missing environment")
	}
}
