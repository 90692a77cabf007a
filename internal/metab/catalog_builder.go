package metab

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog is the runtime form of a validated CatalogConfig: a seeded store
// plus a pathway whose reactions share resolved enzyme pointers.
type Catalog struct {
	Name    string
	Store   *Store
	Pathway *Pathway
	enzymes map[string]*Enzyme
}

// Enzyme returns a catalog enzyme by name.
func (c *Catalog) Enzyme(name string) (*Enzyme, bool) {
	e, ok := c.enzymes[name]
	return e, ok
}

// Reaction returns a pathway reaction by name.
func (c *Catalog) Reaction(name string) (*Reaction, bool) {
	for _, r := range c.Pathway.Reactions {
		if r.Name == name {
			return r, true
		}
	}
	return nil, false
}

// BuildCatalog validates a CatalogConfig and constructs the runtime
// objects. Downstream links are resolved by name into shared enzyme
// pointers through an explicit table — construction never happens as a
// side effect of type registration.
func BuildCatalog(cfg CatalogConfig) (*Catalog, error) {
	if err := ValidateCatalogConfig(cfg); err != nil {
		return nil, err
	}

	store := NewStoreWithCapacity(cfg.DefaultCapacity)
	for _, mc := range cfg.Metabolites {
		if err := store.Register(mc.Name, mc.Quantity, mc.MaxQuantity, mc.Unit); err != nil {
			return nil, fmt.Errorf("registering metabolite %s: %w", mc.Name, err)
		}
	}

	// First pass: construct enzymes. Second pass: resolve downstream
	// links, which may point forward or form cycles.
	enzymes := make(map[string]*Enzyme, len(cfg.Enzymes))
	for _, ec := range cfg.Enzymes {
		e := NewEnzyme(ec.Name, ec.KCat, ec.KM)
		e.Hill = ec.Hill
		e.Inhibitors = ec.Inhibitors
		e.Activators = ec.Activators
		if ec.Active != nil {
			e.Active = *ec.Active
		}
		enzymes[ec.Name] = e
	}
	for _, ec := range cfg.Enzymes {
		e := enzymes[ec.Name]
		for _, d := range ec.Downstream {
			e.Downstream = append(e.Downstream, enzymes[d])
		}
	}

	reactions := make(map[string]*Reaction, len(cfg.Reactions))
	order := make([]string, 0, len(cfg.Reactions))
	for _, rc := range cfg.Reactions {
		r := NewReaction(rc.Name, enzymes[rc.Enzyme], rc.Substrates, rc.Products)
		r.Reversible = rc.Reversible
		reactions[rc.Name] = r
		order = append(order, rc.Name)
	}
	if len(cfg.Pathway) > 0 {
		order = cfg.Pathway
	}

	pathway := NewPathway(cfg.Name)
	for _, name := range order {
		pathway.Reactions = append(pathway.Reactions, reactions[name])
	}

	return &Catalog{
		Name:    cfg.Name,
		Store:   store,
		Pathway: pathway,
		enzymes: enzymes,
	}, nil
}

// LoadCatalogFile reads, parses, and builds a YAML catalog file.
func LoadCatalogFile(path string) (CatalogConfig, *Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return CatalogConfig{}, nil, fmt.Errorf("reading catalog file %q: %w", path, err)
	}
	var cfg CatalogConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return CatalogConfig{}, nil, fmt.Errorf("parsing catalog file %q: %w", path, err)
	}
	catalog, err := BuildCatalog(cfg)
	if err != nil {
		return CatalogConfig{}, nil, fmt.Errorf("building catalog %q: %w", path, err)
	}
	return cfg, catalog, nil
}

// LoadSeedFile reads a YAML seed file and applies it to a store.
func LoadSeedFile(path string, store *Store) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading seed file %q: %w", path, err)
	}
	var seed SeedConfig
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("parsing seed file %q: %w", path, err)
	}
	for _, mc := range seed.Metabolites {
		max := mc.MaxQuantity
		if max <= 0 {
			max = DefaultCapacity
		}
		if err := store.Register(mc.Name, mc.Quantity, max, mc.Unit); err != nil {
			return fmt.Errorf("seeding metabolite %s: %w", mc.Name, err)
		}
	}
	return nil
}
