package metab

// CatalogConfig is the parsed form of a pathway catalog file: metabolite
// bounds, enzyme parameter sets, stoichiometry, and pathway order. It is
// the engine's only configuration surface; loaders hand it over already
// parsed (see LoadCatalogFile for the YAML loader used by the binaries).
type CatalogConfig struct {
	Name            string             `json:"name" yaml:"name"`
	DefaultCapacity float64            `json:"default_capacity,omitempty" yaml:"default_capacity,omitempty"`
	Metabolites     []MetaboliteConfig `json:"metabolites,omitempty" yaml:"metabolites,omitempty"`
	Enzymes         []EnzymeConfig     `json:"enzymes" yaml:"enzymes"`
	Reactions       []ReactionConfig   `json:"reactions" yaml:"reactions"`
	// Pathway lists reaction names in execution order. When empty, the
	// declaration order of Reactions is used.
	Pathway []string `json:"pathway,omitempty" yaml:"pathway,omitempty"`
}

// MetaboliteConfig registers a named pool with bounds and an optional unit.
type MetaboliteConfig struct {
	Name        string  `json:"name" yaml:"name"`
	Quantity    float64 `json:"quantity" yaml:"quantity"`
	MaxQuantity float64 `json:"max_quantity" yaml:"max_quantity"`
	Unit        string  `json:"unit,omitempty" yaml:"unit,omitempty"`
}

// EnzymeConfig holds one enzyme's kinetic parameters. Downstream entries
// reference other enzymes by name and are resolved into shared pointers by
// the catalog builder.
type EnzymeConfig struct {
	Name       string                `json:"name" yaml:"name"`
	KCat       float64               `json:"k_cat" yaml:"k_cat"`
	KM         map[string]float64    `json:"k_m" yaml:"k_m"`
	Hill       map[string]float64    `json:"hill,omitempty" yaml:"hill,omitempty"`
	Inhibitors map[string]Inhibition `json:"inhibitors,omitempty" yaml:"inhibitors,omitempty"`
	Activators map[string]float64    `json:"activators,omitempty" yaml:"activators,omitempty"`
	Active     *bool                 `json:"active,omitempty" yaml:"active,omitempty"`
	Downstream []string              `json:"downstream,omitempty" yaml:"downstream,omitempty"`
}

// ReactionConfig binds an enzyme to substrate/product coefficients.
type ReactionConfig struct {
	Name       string             `json:"name" yaml:"name"`
	Enzyme     string             `json:"enzyme" yaml:"enzyme"`
	Substrates map[string]float64 `json:"substrates" yaml:"substrates"`
	Products   map[string]float64 `json:"products" yaml:"products"`
	Reversible bool               `json:"reversible,omitempty" yaml:"reversible,omitempty"`
}

// SeedConfig is an optional per-run seed file topping up metabolite pools
// before stepping begins.
type SeedConfig struct {
	Metabolites []MetaboliteConfig `json:"metabolites" yaml:"metabolites"`
}
