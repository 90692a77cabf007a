package metab

import (
	"testing"
)

func TestGlycolysisConfigValidates(t *testing.T) {
	if err := ValidateCatalogConfig(GlycolysisConfig()); err != nil {
		t.Fatalf("Expected built-in glycolysis to validate, got %v", err)
	}
}

func TestGlycolysisBuilds(t *testing.T) {
	catalog := Glycolysis()

	if catalog.Name != "glycolysis" {
		t.Errorf("Expected name 'glycolysis', got '%s'", catalog.Name)
	}
	if len(catalog.Pathway.Reactions) != 10 {
		t.Errorf("Expected 10 reactions, got %d", len(catalog.Pathway.Reactions))
	}
	if catalog.Pathway.Reactions[0].Name != "Hexokinase" {
		t.Errorf("Expected 'Hexokinase' first, got '%s'", catalog.Pathway.Reactions[0].Name)
	}
	if catalog.Pathway.Reactions[9].Name != "Pyruvate Kinase" {
		t.Errorf("Expected 'Pyruvate Kinase' last, got '%s'", catalog.Pathway.Reactions[9].Name)
	}
}

func TestGlycolysisRegulatoryChain(t *testing.T) {
	catalog := Glycolysis()

	// Each enzyme activates its successor in pathway order.
	hk, _ := catalog.Enzyme("hexokinase")
	pgi, _ := catalog.Enzyme("phosphoglucose_isomerase")
	if len(hk.Downstream) != 1 || hk.Downstream[0] != pgi {
		t.Error("Expected hexokinase downstream link to phosphoglucose isomerase")
	}

	pk, _ := catalog.Enzyme("pyruvate_kinase")
	if len(pk.Downstream) != 0 {
		t.Errorf("Expected pyruvate kinase to terminate the chain, got %d links", len(pk.Downstream))
	}

	// Every enzyme carries the shared ADP/ATP regulation.
	for _, name := range []string{"hexokinase", "phosphofructokinase", "pyruvate_kinase"} {
		e, ok := catalog.Enzyme(name)
		if !ok {
			t.Fatalf("Expected enzyme %s", name)
		}
		inh, ok := e.Inhibitors["ADP"]
		if !ok || inh.Mode != Noncompetitive {
			t.Errorf("Expected noncompetitive ADP inhibition on %s", name)
		}
		if e.Activators["ATP"] != 1.0 {
			t.Errorf("Expected ATP activation on %s", name)
		}
	}
}

func TestGlycolysisProducesPyruvate(t *testing.T) {
	catalog := Glycolysis()

	results, err := catalog.Pathway.Run(catalog.Store, 1.0, true)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if results[0].Blocked {
		t.Fatalf("Expected hexokinase to execute: %v", results[0].Err)
	}
	if q := catalog.Store.Quantity("pyruvate"); q <= 0 {
		t.Errorf("Expected pyruvate after one pass, got %f", q)
	}
	// Redox bookkeeping: NAD consumed, NADH produced.
	if q := catalog.Store.Quantity("NADH"); q <= 0 {
		t.Errorf("Expected NADH to be produced, got %f", q)
	}
}

func TestGlycolysisStallsWithoutGlucose(t *testing.T) {
	catalog := Glycolysis()
	_ = catalog.Store.SetQuantity("glucose", 0)

	results, err := catalog.Pathway.Run(catalog.Store, 1.0, true)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !results[0].Blocked {
		t.Error("Expected hexokinase to block without glucose")
	}
	if q := catalog.Store.Quantity("pyruvate"); q != 0 {
		t.Errorf("Expected no pyruvate, got %f", q)
	}
}
