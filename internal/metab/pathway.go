package metab

import "errors"

// Pathway is a named, ordered sequence of reactions executed one after the
// other against a shared store. Each reaction sees the store as left by
// the previous one.
type Pathway struct {
	Name      string
	Reactions []*Reaction
}

// NewPathway creates a pathway over the given reactions.
func NewPathway(name string, reactions ...*Reaction) *Pathway {
	return &Pathway{Name: name, Reactions: reactions}
}

// StepResult records the outcome of one reaction within a pathway step.
type StepResult struct {
	Reaction           string
	Extent             float64
	Blocked            bool
	CascadeActivations int
	Err                error
}

// Run executes every reaction in order. Blocked reactions are recorded and
// skipped — substrate exhaustion is an expected simulation outcome — while
// configuration and parameter errors abort the run.
func (p *Pathway) Run(store *Store, timeStep float64, useKinetics bool) ([]StepResult, error) {
	results := make([]StepResult, 0, len(p.Reactions))
	for _, r := range p.Reactions {
		res, err := r.execute(store, timeStep, useKinetics)
		if err != nil {
			var blocked *ReactionBlockedError
			if errors.As(err, &blocked) {
				results = append(results, StepResult{Reaction: r.Name, Blocked: true, Err: err})
				continue
			}
			return results, err
		}
		results = append(results, StepResult{
			Reaction:           r.Name,
			Extent:             res.Extent,
			CascadeActivations: res.CascadeActivations,
		})
	}
	return results, nil
}

// TotalExtent sums the extents of the non-blocked results.
func TotalExtent(results []StepResult) float64 {
	var total float64
	for _, r := range results {
		total += r.Extent
	}
	return total
}
