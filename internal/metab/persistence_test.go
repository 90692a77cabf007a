package metab

import (
	"os"
	"path/filepath"
	"testing"
)

func testSnapshot() Snapshot {
	return Snapshot{
		SnapshotID:    "snap-1",
		EnvironmentID: "cell-1",
		Time:          42,
		Metabolites: []Metabolite{
			{Name: "glucose", Quantity: 8.5, MaxQuantity: 100, Unit: "mM"},
			{Name: "ATP", Quantity: 3, MaxQuantity: 50, Unit: "mM"},
		},
	}
}

func TestValidateSnapshot(t *testing.T) {
	if err := ValidateSnapshot(testSnapshot()); err != nil {
		t.Fatalf("Expected valid snapshot, got %v", err)
	}
}

func TestValidateSnapshot_Invalid(t *testing.T) {
	snap := testSnapshot()
	snap.Metabolites[0].Name = ""
	if err := ValidateSnapshot(snap); err == nil {
		t.Error("Expected an error for empty metabolite name")
	}

	snap = testSnapshot()
	snap.Metabolites[1].Name = "glucose"
	if err := ValidateSnapshot(snap); err == nil {
		t.Error("Expected an error for duplicate metabolite name")
	}

	snap = testSnapshot()
	snap.Metabolites[0].MaxQuantity = 0
	if err := ValidateSnapshot(snap); err == nil {
		t.Error("Expected an error for nonpositive capacity")
	}

	snap = testSnapshot()
	snap.Metabolites[0].Quantity = 200
	if err := ValidateSnapshot(snap); err == nil {
		t.Error("Expected an error for quantity above capacity")
	}
}

func TestSnapshotJSONRoundTrip(t *testing.T) {
	snap := testSnapshot()

	data, err := EncodeSnapshotJSON(snap)
	if err != nil {
		t.Fatalf("EncodeSnapshotJSON failed: %v", err)
	}
	decoded, err := DecodeSnapshotJSON(data)
	if err != nil {
		t.Fatalf("DecodeSnapshotJSON failed: %v", err)
	}

	if decoded.EnvironmentID != snap.EnvironmentID {
		t.Errorf("Expected environment ID '%s', got '%s'", snap.EnvironmentID, decoded.EnvironmentID)
	}
	if decoded.Time != snap.Time {
		t.Errorf("Expected time %d, got %d", snap.Time, decoded.Time)
	}
	if len(decoded.Metabolites) != 2 {
		t.Fatalf("Expected 2 metabolites, got %d", len(decoded.Metabolites))
	}
	if decoded.Metabolites[0].Quantity != 8.5 {
		t.Errorf("Expected quantity 8.5, got %f", decoded.Metabolites[0].Quantity)
	}
}

func TestWriteAndReadSnapshotFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "snapshots")
	snap := testSnapshot()

	if err := writeSnapshotFile(dir, snap); err != nil {
		t.Fatalf("writeSnapshotFile failed: %v", err)
	}

	path := filepath.Join(dir, "cell-1-42.json")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Expected snapshot file at %s: %v", path, err)
	}

	loaded, err := ReadSnapshotFile(path)
	if err != nil {
		t.Fatalf("ReadSnapshotFile failed: %v", err)
	}
	if loaded.SnapshotID != "snap-1" {
		t.Errorf("Expected snapshot ID 'snap-1', got '%s'", loaded.SnapshotID)
	}
	if loaded.Time != 42 {
		t.Errorf("Expected time 42, got %d", loaded.Time)
	}
}

func TestReadSnapshotFile_InvalidContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if _, err := ReadSnapshotFile(path); err == nil {
		t.Error("Expected an error for malformed JSON")
	}

	// Well-formed JSON that fails snapshot validation.
	bad := `{"snapshot_id":"s","environment_id":"e","time":1,"metabolites":[{"name":"x","quantity":5,"max_quantity":0}]}`
	if err := os.WriteFile(path, []byte(bad), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if _, err := ReadSnapshotFile(path); err == nil {
		t.Error("Expected an error for an invalid snapshot")
	}
}
