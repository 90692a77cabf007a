package metab

// Enzyme owns kinetic parameters and per-run activation state. Parameters
// are fixed at construction; Active is the only field that changes during
// a run. Downstream holds shared references used for cascade signaling
// only, never for ownership — the graph may contain cycles.
type Enzyme struct {
	Name       string
	KCat       float64
	KM         map[string]float64
	Hill       map[string]float64
	Inhibitors map[string]Inhibition
	Activators map[string]float64
	Active     bool
	Downstream []*Enzyme
}

// NewEnzyme creates an active enzyme with the given turnover constant and
// per-substrate half-saturation constants. Hill coefficients default to 1.
func NewEnzyme(name string, kcat float64, km map[string]float64) *Enzyme {
	return &Enzyme{
		Name:   name,
		KCat:   kcat,
		KM:     km,
		Active: true,
	}
}

func (e *Enzyme) hill(substrate string) float64 {
	if h, ok := e.Hill[substrate]; ok && h > 0 {
		return h
	}
	return 1
}

// ComputeRate returns the instantaneous catalytic rate against the current
// store quantities: KCat x substrate saturation x inhibition x activation.
// An inactive enzyme always rates 0. The store is only read.
func (e *Enzyme) ComputeRate(store *Store) (float64, error) {
	if !e.Active {
		return 0, nil
	}
	if e.KCat <= 0 {
		return 0, &ConfigurationError{Enzyme: e.Name, Field: "k_cat", Name: e.Name}
	}
	for name, km := range e.KM {
		if km <= 0 {
			return 0, &ConfigurationError{Enzyme: e.Name, Field: "km", Name: name}
		}
	}
	occupancy := substrateTerm(e, store)
	inhibition, err := inhibitionTerm(e, store, occupancy)
	if err != nil {
		return 0, err
	}
	activation, err := activationTerm(e, store)
	if err != nil {
		return 0, err
	}
	return e.KCat * occupancy * inhibition * activation, nil
}

// Activate turns the enzyme on and propagates activation through the
// downstream graph. A visited set scoped to this call makes the walk
// idempotent and safe on cyclic graphs.
func (e *Enzyme) Activate() {
	e.activate(make(map[*Enzyme]struct{}))
}

func (e *Enzyme) activate(visited map[*Enzyme]struct{}) {
	if _, seen := visited[e]; seen {
		return
	}
	visited[e] = struct{}{}
	e.Active = true
	for _, d := range e.Downstream {
		d.activate(visited)
	}
}

// Deactivate turns this enzyme off. Deactivation is local: it never
// propagates downstream, asymmetric with Activate.
func (e *Enzyme) Deactivate() {
	e.Active = false
}

// Regulation actions accepted by Regulate.
const (
	ActionActivate   = "activate"
	ActionDeactivate = "deactivate"
)

// Regulate dispatches an activation-state change to the target enzyme.
func (e *Enzyme) Regulate(target *Enzyme, action string) error {
	switch action {
	case ActionActivate:
		target.Activate()
	case ActionDeactivate:
		target.Deactivate()
	default:
		return &InvalidParameterError{Param: "action", Value: action}
	}
	return nil
}

// triggerCascade activates every downstream enzyme after a successful
// reaction. The trigger is unconditional and fires in both execution
// modes.
func (e *Enzyme) triggerCascade() int {
	visited := make(map[*Enzyme]struct{})
	visited[e] = struct{}{}
	for _, d := range e.Downstream {
		d.activate(visited)
	}
	return len(visited) - 1
}
