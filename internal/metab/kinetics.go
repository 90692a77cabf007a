package metab

import "math"

// InhibitionMode selects how an inhibitor attenuates an enzyme's rate.
type InhibitionMode string

const (
	// Competitive inhibitors raise the apparent Km. Modeled as the same
	// multiplicative attenuation as noncompetitive inhibition so that
	// composing several inhibitors stays associative.
	Competitive InhibitionMode = "competitive"
	// Noncompetitive inhibitors attenuate regardless of saturation.
	Noncompetitive InhibitionMode = "noncompetitive"
	// Uncompetitive inhibitors bind the enzyme-substrate complex, so the
	// attenuation scales with substrate occupancy.
	Uncompetitive InhibitionMode = "uncompetitive"
)

// Inhibition holds the regulation constant for one inhibitor.
type Inhibition struct {
	Mode InhibitionMode `json:"mode" yaml:"mode"`
	Ki   float64        `json:"ki" yaml:"ki"`
}

// cooperativeFraction is the generalized Michaelis-Menten/Hill saturation
// term S^h / (Km^h + S^h), in [0, 1). Negative quantities are clamped to 0.
func cooperativeFraction(quantity, km, hill float64) float64 {
	if quantity < 0 {
		quantity = 0
	}
	if quantity == 0 {
		return 0
	}
	sh := math.Pow(quantity, hill)
	kh := math.Pow(km, hill)
	return sh / (kh + sh)
}

// substrateTerm combines the per-substrate saturation fractions of an
// enzyme into one multiplicative occupancy term. The product is
// commutative, so iteration order over the Km map does not matter.
func substrateTerm(e *Enzyme, store *Store) float64 {
	term := 1.0
	for name, km := range e.KM {
		hill := e.hill(name)
		term *= cooperativeFraction(store.Quantity(name), km, hill)
		if term == 0 {
			return 0
		}
	}
	return term
}

// inhibitionTerm combines every inhibitor with nonzero concentration into
// a multiplicative attenuation in (0, 1]. Inhibitors are assumed to bind
// independent sites. occupancy is the combined substrate saturation term,
// used by the uncompetitive mode.
func inhibitionTerm(e *Enzyme, store *Store, occupancy float64) (float64, error) {
	term := 1.0
	for name, inh := range e.Inhibitors {
		conc := store.Quantity(name)
		if conc < 0 {
			conc = 0
		}
		if conc == 0 {
			continue
		}
		if inh.Ki <= 0 {
			return 0, &ConfigurationError{Enzyme: e.Name, Field: "ki", Name: name}
		}
		switch inh.Mode {
		case Competitive, Noncompetitive:
			term *= 1 / (1 + conc/inh.Ki)
		case Uncompetitive:
			term *= 1 / (1 + conc/inh.Ki*occupancy)
		default:
			return 0, &ConfigurationError{Enzyme: e.Name, Field: "inhibition mode", Name: name}
		}
	}
	return term, nil
}

// activationTerm combines every activator with nonzero concentration into
// a multiplicative enhancement in [1, inf). Allosteric boosts are uncapped.
func activationTerm(e *Enzyme, store *Store) (float64, error) {
	term := 1.0
	for name, ka := range e.Activators {
		conc := store.Quantity(name)
		if conc < 0 {
			conc = 0
		}
		if conc == 0 {
			continue
		}
		if ka <= 0 {
			return 0, &ConfigurationError{Enzyme: e.Name, Field: "ka", Name: name}
		}
		term *= 1 + conc/ka
	}
	return term, nil
}
