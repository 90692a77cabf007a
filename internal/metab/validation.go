package metab

import (
	"fmt"
	"strings"
)

// ValidationError collects every issue found in a catalog so callers see
// the full list at once instead of fixing problems one by one.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "invalid catalog: unknown validation error"
	}
	if len(e.Issues) == 1 {
		return e.Issues[0]
	}
	return "catalog validation errors: " + strings.Join(e.Issues, "; ")
}

func (e *ValidationError) Add(issue string) {
	e.Issues = append(e.Issues, issue)
}

func (e *ValidationError) HasIssues() bool {
	return len(e.Issues) > 0
}

var validInhibitionModes = map[InhibitionMode]bool{
	Competitive:    true,
	Noncompetitive: true,
	Uncompetitive:  true,
}

// ValidateCatalogConfig performs full validation of a CatalogConfig before
// any runtime object is built.
func ValidateCatalogConfig(cfg CatalogConfig) error {
	err := &ValidationError{}

	if cfg.Name == "" {
		err.Add("catalog name is required")
	}
	if cfg.DefaultCapacity < 0 {
		err.Add(fmt.Sprintf("default_capacity must be positive, got %g", cfg.DefaultCapacity))
	}

	metaboliteNames := make(map[string]bool)
	for _, mc := range cfg.Metabolites {
		if mc.Name == "" {
			err.Add("metabolite name is required")
			continue
		}
		if metaboliteNames[mc.Name] {
			err.Add("duplicate metabolite name: " + mc.Name)
		} else {
			metaboliteNames[mc.Name] = true
		}
		if mc.MaxQuantity <= 0 {
			err.Add("metabolite '" + mc.Name + "': max_quantity must be positive")
		}
		if mc.Quantity < 0 {
			err.Add("metabolite '" + mc.Name + "': quantity must be non-negative")
		}
		if mc.MaxQuantity > 0 && mc.Quantity > mc.MaxQuantity {
			err.Add(fmt.Sprintf("metabolite '%s': quantity %g exceeds max_quantity %g", mc.Name, mc.Quantity, mc.MaxQuantity))
		}
	}

	enzymeNames := make(map[string]bool)
	for i, ec := range cfg.Enzymes {
		prefix := "enzyme '" + ec.Name + "'"
		if ec.Name == "" {
			prefix = fmt.Sprintf("enzyme at index %d", i)
			err.Add(prefix + ": name is required")
		} else if enzymeNames[ec.Name] {
			err.Add("duplicate enzyme name: " + ec.Name)
		} else {
			enzymeNames[ec.Name] = true
		}

		if ec.KCat <= 0 {
			err.Add(prefix + ": k_cat must be positive")
		}
		if len(ec.KM) == 0 {
			err.Add(prefix + ": at least one k_m entry is required")
		}
		for name, km := range ec.KM {
			if km <= 0 {
				err.Add(prefix + ": k_m for '" + name + "' must be positive")
			}
		}
		for name, h := range ec.Hill {
			if h <= 0 {
				err.Add(prefix + ": hill coefficient for '" + name + "' must be positive")
			}
			if _, ok := ec.KM[name]; !ok {
				err.Add(prefix + ": hill coefficient for '" + name + "' has no matching k_m entry")
			}
		}
		for name, inh := range ec.Inhibitors {
			if !validInhibitionModes[inh.Mode] {
				err.Add(prefix + ": inhibitor '" + name + "' has invalid mode '" + string(inh.Mode) + "', must be one of: competitive, noncompetitive, uncompetitive")
			}
			if inh.Ki <= 0 {
				err.Add(prefix + ": inhibitor '" + name + "' k_i must be positive")
			}
		}
		for name, ka := range ec.Activators {
			if ka <= 0 {
				err.Add(prefix + ": activator '" + name + "' k_a must be positive")
			}
		}
	}

	// Downstream references can point forward (and may form cycles, which
	// the cascade visited set makes harmless), so check them after all
	// enzyme names are known.
	for _, ec := range cfg.Enzymes {
		for _, d := range ec.Downstream {
			if !enzymeNames[d] {
				err.Add("enzyme '" + ec.Name + "': downstream enzyme '" + d + "' does not exist")
			}
		}
	}

	reactionNames := make(map[string]bool)
	enzymeByName := make(map[string]EnzymeConfig)
	for _, ec := range cfg.Enzymes {
		enzymeByName[ec.Name] = ec
	}
	for i, rc := range cfg.Reactions {
		prefix := "reaction '" + rc.Name + "'"
		if rc.Name == "" {
			prefix = fmt.Sprintf("reaction at index %d", i)
			err.Add(prefix + ": name is required")
		} else if reactionNames[rc.Name] {
			err.Add("duplicate reaction name: " + rc.Name)
		} else {
			reactionNames[rc.Name] = true
		}

		if rc.Enzyme == "" {
			err.Add(prefix + ": enzyme is required")
		} else if !enzymeNames[rc.Enzyme] {
			err.Add(prefix + ": enzyme '" + rc.Enzyme + "' does not exist")
		}
		if len(rc.Substrates) == 0 {
			err.Add(prefix + ": at least one substrate is required")
		}
		if len(rc.Products) == 0 {
			err.Add(prefix + ": at least one product is required")
		}
		for name, coeff := range rc.Substrates {
			if coeff <= 0 {
				err.Add(fmt.Sprintf("%s: substrate '%s' coefficient must be positive, got %g", prefix, name, coeff))
			}
		}
		for name, coeff := range rc.Products {
			if coeff <= 0 {
				err.Add(fmt.Sprintf("%s: product '%s' coefficient must be positive, got %g", prefix, name, coeff))
			}
		}
		// Every substrate the reaction consumes must have a binding
		// constant on its enzyme; silently defaulting one would hide a
		// configuration bug.
		if ec, ok := enzymeByName[rc.Enzyme]; ok {
			for name := range rc.Substrates {
				if _, bound := ec.KM[name]; !bound {
					err.Add(prefix + ": enzyme '" + rc.Enzyme + "' has no k_m entry for substrate '" + name + "'")
				}
			}
		}
	}

	for _, name := range cfg.Pathway {
		if !reactionNames[name] {
			err.Add("pathway references unknown reaction '" + name + "'")
		}
	}

	if err.HasIssues() {
		return err
	}
	return nil
}
