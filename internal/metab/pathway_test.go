package metab

import (
	"testing"
)

func chainPathway() (*Pathway, *Store) {
	store := NewStore()
	_ = store.Register("glucose", 10, 100, "")

	e1 := NewEnzyme("e1", 1, map[string]float64{"glucose": 0.1})
	e2 := NewEnzyme("e2", 1, map[string]float64{"intermediate": 0.1})

	r1 := NewReaction("first", e1,
		map[string]float64{"glucose": 1},
		map[string]float64{"intermediate": 1})
	r2 := NewReaction("second", e2,
		map[string]float64{"intermediate": 1},
		map[string]float64{"pyruvate": 1})

	return NewPathway("chain", r1, r2), store
}

func TestPathway_Run(t *testing.T) {
	p, store := chainPathway()

	results, err := p.Run(store, 1.0, true)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}

	// The second reaction sees the intermediate produced by the first
	// within the same step.
	if results[0].Blocked {
		t.Error("Expected first reaction to execute")
	}
	if results[1].Blocked {
		t.Error("Expected second reaction to consume the fresh intermediate")
	}
	if results[1].Extent <= 0 {
		t.Errorf("Expected positive extent for second reaction, got %f", results[1].Extent)
	}
	if !store.Has("pyruvate") {
		t.Error("Expected pyruvate to be produced")
	}
}

func TestPathway_RunRecordsBlocked(t *testing.T) {
	p, store := chainPathway()
	_ = store.SetQuantity("glucose", 0)

	results, err := p.Run(store, 1.0, true)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}

	// Both reactions block, and the run continues past each one.
	for i, res := range results {
		if !res.Blocked {
			t.Errorf("Expected result %d to be blocked", i)
		}
		if res.Err == nil {
			t.Errorf("Expected result %d to carry the blocking error", i)
		}
	}
}

func TestPathway_RunAbortsOnConfigurationError(t *testing.T) {
	p, store := chainPathway()
	_ = store.Register("ADP", 1, 100, "")
	// Break the second enzyme; the first must still have executed.
	p.Reactions[1].Enzyme.Inhibitors = map[string]Inhibition{"ADP": {Mode: "bogus", Ki: 1}}

	results, err := p.Run(store, 1.0, true)
	if err == nil {
		t.Fatal("Expected a configuration error to abort the run")
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 completed result before the abort, got %d", len(results))
	}
	if results[0].Blocked {
		t.Error("Expected first reaction to have executed")
	}
}

func TestPathway_RunStoichiometric(t *testing.T) {
	p, store := chainPathway()

	results, err := p.Run(store, 1.0, false)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if results[0].Extent != 1.0 {
		t.Errorf("Expected extent 1.0, got %f", results[0].Extent)
	}
	if results[1].Extent != 1.0 {
		t.Errorf("Expected chained extent 1.0, got %f", results[1].Extent)
	}
	if q := store.Quantity("pyruvate"); q != 1.0 {
		t.Errorf("Expected pyruvate 1.0, got %f", q)
	}
}

func TestTotalExtent(t *testing.T) {
	results := []StepResult{
		{Reaction: "a", Extent: 0.5},
		{Reaction: "b", Blocked: true},
		{Reaction: "c", Extent: 1.5},
	}
	if total := TotalExtent(results); !almostEqual(total, 2.0) {
		t.Errorf("Expected total extent 2.0, got %f", total)
	}
}
