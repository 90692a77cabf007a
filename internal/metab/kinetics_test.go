package metab

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCooperativeFraction(t *testing.T) {
	// At S = Km the fraction is exactly one half, for any Hill coefficient.
	if f := cooperativeFraction(0.5, 0.5, 1); !almostEqual(f, 0.5) {
		t.Errorf("Expected 0.5 at S=Km, got %f", f)
	}
	if f := cooperativeFraction(0.5, 0.5, 4); !almostEqual(f, 0.5) {
		t.Errorf("Expected 0.5 at S=Km with hill=4, got %f", f)
	}

	// Saturation approaches 1 for S >> Km.
	if f := cooperativeFraction(1000, 0.5, 1); f < 0.99 {
		t.Errorf("Expected near-saturation, got %f", f)
	}

	// Zero and negative quantities contribute nothing.
	if f := cooperativeFraction(0, 0.5, 1); f != 0 {
		t.Errorf("Expected 0 for zero quantity, got %f", f)
	}
	if f := cooperativeFraction(-3, 0.5, 1); f != 0 {
		t.Errorf("Expected 0 for negative quantity, got %f", f)
	}
}

func TestCooperativeFractionHillSteepness(t *testing.T) {
	// Below Km a higher Hill coefficient gives a smaller fraction, above
	// Km a larger one.
	low1 := cooperativeFraction(0.25, 0.5, 1)
	low4 := cooperativeFraction(0.25, 0.5, 4)
	if low4 >= low1 {
		t.Errorf("Expected steeper curve below Km: hill=4 %f >= hill=1 %f", low4, low1)
	}

	high1 := cooperativeFraction(1.0, 0.5, 1)
	high4 := cooperativeFraction(1.0, 0.5, 4)
	if high4 <= high1 {
		t.Errorf("Expected steeper curve above Km: hill=4 %f <= hill=1 %f", high4, high1)
	}
}

func TestSubstrateTerm(t *testing.T) {
	store := NewStore()
	_ = store.Register("glucose", 0.5, 100, "")
	_ = store.Register("ATP", 1.0, 100, "")

	e := NewEnzyme("hexokinase", 100, map[string]float64{"glucose": 0.5, "ATP": 1.0})

	// Both substrates at their Km: 0.5 * 0.5.
	if term := substrateTerm(e, store); !almostEqual(term, 0.25) {
		t.Errorf("Expected combined occupancy 0.25, got %f", term)
	}
}

func TestSubstrateTermMissingSubstrate(t *testing.T) {
	store := NewStore()
	_ = store.Register("glucose", 0.5, 100, "")

	e := NewEnzyme("hexokinase", 100, map[string]float64{"glucose": 0.5, "ATP": 1.0})

	// ATP was never registered, so the whole product collapses to zero.
	if term := substrateTerm(e, store); term != 0 {
		t.Errorf("Expected 0 occupancy with a missing substrate, got %f", term)
	}
}

func TestInhibitionTermModes(t *testing.T) {
	store := NewStore()
	_ = store.Register("ADP", 1.0, 100, "")

	// Competitive and noncompetitive: 1 / (1 + I/Ki) = 0.5 at I = Ki.
	for _, mode := range []InhibitionMode{Competitive, Noncompetitive} {
		e := NewEnzyme("e", 100, map[string]float64{"s": 1})
		e.Inhibitors = map[string]Inhibition{"ADP": {Mode: mode, Ki: 1.0}}
		term, err := inhibitionTerm(e, store, 1.0)
		if err != nil {
			t.Fatalf("inhibitionTerm(%s) failed: %v", mode, err)
		}
		if !almostEqual(term, 0.5) {
			t.Errorf("Expected %s attenuation 0.5, got %f", mode, term)
		}
	}

	// Uncompetitive attenuation scales with occupancy: weaker when the
	// enzyme is far from saturated.
	e := NewEnzyme("e", 100, map[string]float64{"s": 1})
	e.Inhibitors = map[string]Inhibition{"ADP": {Mode: Uncompetitive, Ki: 1.0}}
	half, err := inhibitionTerm(e, store, 0.5)
	if err != nil {
		t.Fatalf("inhibitionTerm failed: %v", err)
	}
	full, err := inhibitionTerm(e, store, 1.0)
	if err != nil {
		t.Fatalf("inhibitionTerm failed: %v", err)
	}
	if !almostEqual(half, 1/1.5) {
		t.Errorf("Expected uncompetitive attenuation %f at occupancy 0.5, got %f", 1/1.5, half)
	}
	if half <= full {
		t.Errorf("Expected weaker attenuation at lower occupancy: %f <= %f", half, full)
	}
}

func TestInhibitionTermAbsentInhibitor(t *testing.T) {
	store := NewStore()

	e := NewEnzyme("e", 100, map[string]float64{"s": 1})
	e.Inhibitors = map[string]Inhibition{"ADP": {Mode: Noncompetitive, Ki: 1.0}}

	// Zero concentration: no attenuation, and the Ki is not even checked.
	term, err := inhibitionTerm(e, store, 1.0)
	if err != nil {
		t.Fatalf("inhibitionTerm failed: %v", err)
	}
	if term != 1.0 {
		t.Errorf("Expected no attenuation for absent inhibitor, got %f", term)
	}
}

func TestInhibitionTermInvalidConfig(t *testing.T) {
	store := NewStore()
	_ = store.Register("ADP", 1.0, 100, "")

	e := NewEnzyme("e", 100, map[string]float64{"s": 1})
	e.Inhibitors = map[string]Inhibition{"ADP": {Mode: Noncompetitive, Ki: 0}}
	if _, err := inhibitionTerm(e, store, 1.0); err == nil {
		t.Error("Expected an error for nonpositive Ki")
	}

	e.Inhibitors = map[string]Inhibition{"ADP": {Mode: "allosteric", Ki: 1.0}}
	_, err := inhibitionTerm(e, store, 1.0)
	if err == nil {
		t.Fatal("Expected an error for unknown inhibition mode")
	}
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Errorf("Expected ConfigurationError, got %T", err)
	}
}

func TestActivationTerm(t *testing.T) {
	store := NewStore()
	_ = store.Register("AMP", 2.0, 100, "")

	e := NewEnzyme("e", 100, map[string]float64{"s": 1})
	e.Activators = map[string]float64{"AMP": 1.0}

	// 1 + A/Ka = 3, uncapped.
	term, err := activationTerm(e, store)
	if err != nil {
		t.Fatalf("activationTerm failed: %v", err)
	}
	if !almostEqual(term, 3.0) {
		t.Errorf("Expected activation 3.0, got %f", term)
	}
}

func TestActivationTermAbsentActivator(t *testing.T) {
	store := NewStore()

	e := NewEnzyme("e", 100, map[string]float64{"s": 1})
	e.Activators = map[string]float64{"AMP": 1.0}

	term, err := activationTerm(e, store)
	if err != nil {
		t.Fatalf("activationTerm failed: %v", err)
	}
	if term != 1.0 {
		t.Errorf("Expected neutral activation for absent activator, got %f", term)
	}
}

func TestActivationTermInvalidKa(t *testing.T) {
	store := NewStore()
	_ = store.Register("AMP", 2.0, 100, "")

	e := NewEnzyme("e", 100, map[string]float64{"s": 1})
	e.Activators = map[string]float64{"AMP": -1}

	if _, err := activationTerm(e, store); err == nil {
		t.Error("Expected an error for nonpositive Ka")
	}
}
