package metab

// Reaction binds an enzyme to a stoichiometric substrate/product map.
// Coefficients are strictly positive; direction is encoded by map
// membership, not by sign. A Reaction is immutable for the duration of a
// run and may share its enzyme with other reactions.
type Reaction struct {
	Name       string
	Enzyme     *Enzyme
	Substrates map[string]float64
	Products   map[string]float64
	Reversible bool
}

// NewReaction creates a forward reaction.
func NewReaction(name string, enzyme *Enzyme, substrates, products map[string]float64) *Reaction {
	return &Reaction{
		Name:       name,
		Enzyme:     enzyme,
		Substrates: substrates,
		Products:   products,
	}
}

// Reversed returns a copy with substrate and product roles swapped.
// Reversible is descriptive metadata; Execute is always forward, and a
// caller that wants the reverse direction swaps roles explicitly.
func (r *Reaction) Reversed() *Reaction {
	return &Reaction{
		Name:       r.Name,
		Enzyme:     r.Enzyme,
		Substrates: r.Products,
		Products:   r.Substrates,
		Reversible: r.Reversible,
	}
}

// IsFeasible reports whether one full stoichiometric unit of the reaction
// can proceed: every substrate quantity must be at least its coefficient.
func (r *Reaction) IsFeasible(store *Store) bool {
	for name, coeff := range r.Substrates {
		if !store.IsAvailable(name, coeff) {
			return false
		}
	}
	return true
}

// ExtentResult describes one successful execution.
type ExtentResult struct {
	Extent             float64
	CascadeActivations int
}

// Execute advances the reaction against the store over timeStep and
// returns the effective extent. In kinetics mode the extent is
// rate x timeStep capped so that no substrate is driven below zero; in
// stoichiometric mode the extent is exactly 1.0 and requires feasibility.
// Execution is all-or-nothing: on any error the store is untouched.
func (r *Reaction) Execute(store *Store, timeStep float64, useKinetics bool) (float64, error) {
	res, err := r.execute(store, timeStep, useKinetics)
	if err != nil {
		return 0, err
	}
	return res.Extent, nil
}

func (r *Reaction) execute(store *Store, timeStep float64, useKinetics bool) (ExtentResult, error) {
	if timeStep < 0 {
		return ExtentResult{}, &InvalidParameterError{Param: "time_step", Value: timeStep}
	}
	if !useKinetics {
		return r.executeStoichiometric(store)
	}
	return r.executeKinetic(store, timeStep)
}

func (r *Reaction) executeKinetic(store *Store, timeStep float64) (ExtentResult, error) {
	rate, err := r.Enzyme.ComputeRate(store)
	if err != nil {
		return ExtentResult{}, err
	}

	// All substrate reads come from one snapshot taken here; the apply
	// phase below works off these values, never off interleaved reads.
	snap := store.snapshotQuantities(r.substrateNames())

	extent := rate * timeStep
	for name, coeff := range r.Substrates {
		if limit := snap[name] / coeff; limit < extent {
			extent = limit
		}
	}
	if extent <= 0 {
		return ExtentResult{}, &ReactionBlockedError{Reaction: r.Name, Reason: "zero effective rate or exhausted substrate"}
	}

	r.apply(store, extent)
	activated := r.Enzyme.triggerCascade()
	return ExtentResult{Extent: extent, CascadeActivations: activated}, nil
}

func (r *Reaction) executeStoichiometric(store *Store) (ExtentResult, error) {
	if !r.IsFeasible(store) {
		return ExtentResult{}, &ReactionBlockedError{Reaction: r.Name, Reason: "insufficient substrate"}
	}
	r.apply(store, 1.0)
	activated := r.Enzyme.triggerCascade()
	return ExtentResult{Extent: 1.0, CascadeActivations: activated}, nil
}

// apply mutates the store by extent stoichiometric units. Substrates clamp
// at 0, products clamp at capacity, and unknown products are created with
// the produced amount.
func (r *Reaction) apply(store *Store, extent float64) {
	for name, coeff := range r.Substrates {
		// Substrates consumed by a reaction must already exist; a zero
		// quantity would have blocked execution.
		_ = store.Adjust(name, -coeff*extent)
	}
	for name, coeff := range r.Products {
		amount := coeff * extent
		if store.Has(name) {
			_ = store.Adjust(name, amount)
		} else {
			store.createForProduct(name, amount)
		}
	}
}

func (r *Reaction) substrateNames() []string {
	names := make([]string, 0, len(r.Substrates))
	for name := range r.Substrates {
		names = append(names, name)
	}
	return names
}
