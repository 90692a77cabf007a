package metab

// GlycolysisConfig returns the built-in ten-step glycolysis catalog:
// hexokinase through pyruvate kinase, with ADP inhibition and ATP
// activation on every enzyme and the regulatory chain wired downstream in
// pathway order.
func GlycolysisConfig() CatalogConfig {
	active := true
	regulation := func(km map[string]float64, downstream ...string) EnzymeConfig {
		return EnzymeConfig{
			KCat: 100,
			KM:   km,
			Inhibitors: map[string]Inhibition{
				"ADP": {Mode: Noncompetitive, Ki: 1.0},
			},
			Activators: map[string]float64{"ATP": 1.0},
			Active:     &active,
			Downstream: downstream,
		}
	}
	named := func(name string, ec EnzymeConfig) EnzymeConfig {
		ec.Name = name
		return ec
	}

	hexokinase := named("hexokinase", regulation(
		map[string]float64{"glucose": 0.1, "ATP": 0.5},
		"phosphoglucose_isomerase"))
	hexokinase.KCat = 200

	return CatalogConfig{
		Name:            "glycolysis",
		DefaultCapacity: 1000,
		Metabolites: []MetaboliteConfig{
			{Name: "glucose", Quantity: 1, MaxQuantity: 1000},
			{Name: "ATP", Quantity: 100, MaxQuantity: 1000},
			{Name: "ADP", Quantity: 10, MaxQuantity: 1000},
			{Name: "NAD", Quantity: 10, MaxQuantity: 1000},
			{Name: "NADH", Quantity: 0, MaxQuantity: 1000},
			{Name: "Pi", Quantity: 10, MaxQuantity: 1000},
			{Name: "H2O", Quantity: 1000, MaxQuantity: 10000},
			{Name: "pyruvate", Quantity: 0, MaxQuantity: 1000},
		},
		Enzymes: []EnzymeConfig{
			hexokinase,
			named("phosphoglucose_isomerase", regulation(
				map[string]float64{"glucose_6_phosphate": 10},
				"phosphofructokinase")),
			named("phosphofructokinase", regulation(
				map[string]float64{"fructose_6_phosphate": 10, "ATP": 0.5},
				"aldolase")),
			named("aldolase", regulation(
				map[string]float64{"fructose_1_6_bisphosphate": 10},
				"triose_phosphate_isomerase")),
			named("triose_phosphate_isomerase", regulation(
				map[string]float64{"dihydroxyacetone_phosphate": 10},
				"glyceraldehyde_3_phosphate_dehydrogenase")),
			named("glyceraldehyde_3_phosphate_dehydrogenase", regulation(
				map[string]float64{"glyceraldehyde_3_phosphate": 10, "NAD": 0.3, "Pi": 1.0},
				"phosphoglycerate_kinase")),
			named("phosphoglycerate_kinase", regulation(
				map[string]float64{"bisphosphoglycerate_1_3": 10, "ADP": 0.5},
				"phosphoglycerate_mutase")),
			named("phosphoglycerate_mutase", regulation(
				map[string]float64{"phosphoglycerate_3": 10},
				"enolase")),
			named("enolase", regulation(
				map[string]float64{"phosphoglycerate_2": 10},
				"pyruvate_kinase")),
			named("pyruvate_kinase", regulation(
				map[string]float64{"phosphoenolpyruvate": 10, "ADP": 0.5})),
		},
		Reactions: []ReactionConfig{
			{
				Name:       "Hexokinase",
				Enzyme:     "hexokinase",
				Substrates: map[string]float64{"glucose": 1, "ATP": 1},
				Products:   map[string]float64{"glucose_6_phosphate": 1, "ADP": 1},
			},
			{
				Name:       "Phosphoglucose Isomerase",
				Enzyme:     "phosphoglucose_isomerase",
				Substrates: map[string]float64{"glucose_6_phosphate": 1},
				Products:   map[string]float64{"fructose_6_phosphate": 1},
			},
			{
				Name:       "Phosphofructokinase",
				Enzyme:     "phosphofructokinase",
				Substrates: map[string]float64{"fructose_6_phosphate": 1, "ATP": 1},
				Products:   map[string]float64{"fructose_1_6_bisphosphate": 1, "ADP": 1},
			},
			{
				Name:       "Aldolase",
				Enzyme:     "aldolase",
				Substrates: map[string]float64{"fructose_1_6_bisphosphate": 1},
				Products:   map[string]float64{"dihydroxyacetone_phosphate": 1, "glyceraldehyde_3_phosphate": 1},
			},
			{
				Name:       "Triose Phosphate Isomerase",
				Enzyme:     "triose_phosphate_isomerase",
				Substrates: map[string]float64{"dihydroxyacetone_phosphate": 1},
				Products:   map[string]float64{"glyceraldehyde_3_phosphate": 1},
			},
			{
				Name:       "Glyceraldehyde 3-Phosphate Dehydrogenase",
				Enzyme:     "glyceraldehyde_3_phosphate_dehydrogenase",
				Substrates: map[string]float64{"glyceraldehyde_3_phosphate": 1, "NAD": 1, "Pi": 1},
				Products:   map[string]float64{"bisphosphoglycerate_1_3": 1, "NADH": 1},
			},
			{
				Name:       "Phosphoglycerate Kinase",
				Enzyme:     "phosphoglycerate_kinase",
				Substrates: map[string]float64{"bisphosphoglycerate_1_3": 1, "ADP": 1},
				Products:   map[string]float64{"phosphoglycerate_3": 1, "ATP": 1},
			},
			{
				Name:       "Phosphoglycerate Mutase",
				Enzyme:     "phosphoglycerate_mutase",
				Substrates: map[string]float64{"phosphoglycerate_3": 1},
				Products:   map[string]float64{"phosphoglycerate_2": 1},
			},
			{
				Name:       "Enolase",
				Enzyme:     "enolase",
				Substrates: map[string]float64{"phosphoglycerate_2": 1},
				Products:   map[string]float64{"phosphoenolpyruvate": 1, "H2O": 1},
				Reversible: true,
			},
			{
				Name:       "Pyruvate Kinase",
				Enzyme:     "pyruvate_kinase",
				Substrates: map[string]float64{"phosphoenolpyruvate": 1, "ADP": 1},
				Products:   map[string]float64{"pyruvate": 1, "ATP": 1},
			},
		},
	}
}

// Glycolysis builds the built-in glycolysis catalog. The config is
// maintained alongside the validator, so a build failure is a programming
// error.
func Glycolysis() *Catalog {
	catalog, err := BuildCatalog(GlycolysisConfig())
	if err != nil {
		panic("built-in glycolysis catalog invalid: " + err.Error())
	}
	return catalog
}
