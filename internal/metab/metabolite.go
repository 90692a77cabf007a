package metab

// Metabolite is a named, quantity-bounded substance tracked by the
// simulation. Quantity always stays within [0, MaxQuantity]; mutations go
// through the Store so the bounds hold at every observable point.
type Metabolite struct {
	Name        string  `json:"name"`
	Quantity    float64 `json:"quantity"`
	MaxQuantity float64 `json:"max_quantity"`
	Unit        string  `json:"unit"`
}

// DefaultUnit is used when a metabolite is registered without an explicit unit.
const DefaultUnit = "mM"

// DefaultCapacity is the capacity assigned to metabolites created through
// the product-creation path when the store has no override configured.
const DefaultCapacity = 1000.0

// Store maps metabolite names to bounded quantities. It is the single
// shared mutable resource of the engine; callers are responsible for
// sequencing access (see Environment for the locked variant).
type Store struct {
	pools           map[string]*Metabolite
	defaultCapacity float64
}

// NewStore creates an empty store with the default product capacity.
func NewStore() *Store {
	return &Store{
		pools:           make(map[string]*Metabolite),
		defaultCapacity: DefaultCapacity,
	}
}

// NewStoreWithCapacity creates an empty store whose product-creation path
// registers new metabolites with the given capacity.
func NewStoreWithCapacity(capacity float64) *Store {
	s := NewStore()
	if capacity > 0 {
		s.defaultCapacity = capacity
	}
	return s
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Register adds a metabolite or tops up an existing one. Quantities are
// clamped into [0, max]; re-registering keeps the original bounds and unit.
func (s *Store) Register(name string, quantity, maxQuantity float64, unit string) error {
	if maxQuantity <= 0 {
		return &InvalidParameterError{Param: "max_quantity", Value: maxQuantity}
	}
	if m, ok := s.pools[name]; ok {
		m.Quantity = clamp(m.Quantity+quantity, 0, m.MaxQuantity)
		return nil
	}
	if unit == "" {
		unit = DefaultUnit
	}
	s.pools[name] = &Metabolite{
		Name:        name,
		Quantity:    clamp(quantity, 0, maxQuantity),
		MaxQuantity: maxQuantity,
		Unit:        unit,
	}
	return nil
}

// Quantity returns the current quantity of a metabolite, or 0 for names
// that were never registered. It never fails: an absent substrate simply
// contributes a zero concentration.
func (s *Store) Quantity(name string) float64 {
	if m, ok := s.pools[name]; ok {
		return m.Quantity
	}
	return 0
}

// SetQuantity sets a metabolite's quantity, clamped into its bounds.
// Unknown names fail with UnknownMetaboliteError; product creation during
// reaction execution goes through createForProduct instead.
func (s *Store) SetQuantity(name string, value float64) error {
	m, ok := s.pools[name]
	if !ok {
		return &UnknownMetaboliteError{Name: name}
	}
	m.Quantity = clamp(value, 0, m.MaxQuantity)
	return nil
}

// Adjust changes a metabolite's quantity by delta, clamped into its bounds.
func (s *Store) Adjust(name string, delta float64) error {
	m, ok := s.pools[name]
	if !ok {
		return &UnknownMetaboliteError{Name: name}
	}
	m.Quantity = clamp(m.Quantity+delta, 0, m.MaxQuantity)
	return nil
}

// IsAvailable reports whether at least amount of the metabolite is present.
func (s *Store) IsAvailable(name string, amount float64) bool {
	return s.Quantity(name) >= amount
}

// Has reports whether the metabolite was ever registered.
func (s *Store) Has(name string) bool {
	_, ok := s.pools[name]
	return ok
}

// Metabolite returns a copy of the named metabolite.
func (s *Store) Metabolite(name string) (Metabolite, bool) {
	m, ok := s.pools[name]
	if !ok {
		return Metabolite{}, false
	}
	return *m, true
}

// All returns copies of every metabolite in the store. No ordering is
// guaranteed.
func (s *Store) All() []Metabolite {
	out := make([]Metabolite, 0, len(s.pools))
	for _, m := range s.pools {
		out = append(out, *m)
	}
	return out
}

// Len returns the number of registered metabolites.
func (s *Store) Len() int {
	return len(s.pools)
}

// createForProduct registers a previously unknown product with the produced
// amount as its initial quantity and the store's default capacity as its
// bound. Existing metabolites are left alone.
func (s *Store) createForProduct(name string, amount float64) {
	if _, ok := s.pools[name]; ok {
		return
	}
	s.pools[name] = &Metabolite{
		Name:        name,
		Quantity:    clamp(amount, 0, s.defaultCapacity),
		MaxQuantity: s.defaultCapacity,
		Unit:        DefaultUnit,
	}
}

// snapshotQuantities captures the current quantity of every named
// metabolite in one pass. Reaction execution computes all deltas from a
// snapshot taken at call entry so a metabolite read twice within one call
// cannot be double counted.
func (s *Store) snapshotQuantities(names []string) map[string]float64 {
	snap := make(map[string]float64, len(names))
	for _, n := range names {
		snap[n] = s.Quantity(n)
	}
	return snap
}
