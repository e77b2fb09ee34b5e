package services

// AlternativeOption prices a material or jacketing upgrade against the base
// quote so the bid package can present add/deduct alternates.
type AlternativeOption struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	BaseCost    float64 `json:"base_cost"`
	UpgradeCost float64 `json:"upgrade_cost"`
	Difference  float64 `json:"difference"` // upgrade minus base; positive is an add
}

// BuildAlternatives prices the standard bid alternates against a base quote:
// a 30 mil PVC jacket upgrade on pipe systems and a mineral wool upgrade on
// duct systems. Each alternate re-runs the full estimate with the modified
// specifications so markups, labor, and contingency are all reflected in the
// difference. Alternates that do not apply to the takeoff are omitted.
func BuildAlternatives(measurements []MeasurementItem, specs []InsulationSpec, pb *PriceBook, settings PricingSettings, cfg EngineConfig, matcher SpecMatcher) ([]AlternativeOption, error) {
	base, err := BuildQuote(measurements, specs, pb, settings, cfg, matcher)
	if err != nil {
		return nil, err
	}
	if len(specs) == 0 {
		specs = DefaultSpecs()
	}

	var options []AlternativeOption

	if alt, ok := pvcJacketAlternative(specs); ok {
		quote, err := BuildQuote(measurements, alt, pb, settings, cfg, matcher)
		if err != nil {
			return nil, err
		}
		options = append(options, AlternativeOption{
			Name:        "PVC Jacket Upgrade",
			Description: "30 mil PVC jacketing on all pipe insulation in lieu of standard facing",
			BaseCost:    base.GrandTotal,
			UpgradeCost: quote.GrandTotal,
			Difference:  quote.GrandTotal - base.GrandTotal,
		})
	}

	if alt, ok := mineralWoolAlternative(specs); ok {
		quote, err := BuildQuote(measurements, alt, pb, settings, cfg, matcher)
		if err != nil {
			return nil, err
		}
		options = append(options, AlternativeOption{
			Name:        "Mineral Wool Upgrade",
			Description: "Mineral wool duct insulation in lieu of fiberglass for higher temperature rating",
			BaseCost:    base.GrandTotal,
			UpgradeCost: quote.GrandTotal,
			Difference:  quote.GrandTotal - base.GrandTotal,
		})
	}

	return options, nil
}

// pvcJacketAlternative swaps every pipe spec's facing to 30 mil PVC jacket.
// Returns ok=false when the takeoff has no pipe specs.
func pvcJacketAlternative(specs []InsulationSpec) ([]InsulationSpec, bool) {
	out := make([]InsulationSpec, len(specs))
	copy(out, specs)

	changed := false
	for i := range out {
		if out[i].System != SystemPipe {
			continue
		}
		out[i].Facing = "PVC"
		changed = true
	}
	return out, changed
}

// mineralWoolAlternative swaps fiberglass duct specs to 1.5" mineral wool.
// Returns ok=false when no duct spec uses fiberglass.
func mineralWoolAlternative(specs []InsulationSpec) ([]InsulationSpec, bool) {
	out := make([]InsulationSpec, len(specs))
	copy(out, specs)

	changed := false
	for i := range out {
		if out[i].System != SystemDuct || out[i].Material != "fiberglass" {
			continue
		}
		out[i].Material = "mineral_wool"
		out[i].ThicknessIn = 1.5
		changed = true
	}
	return out, changed
}
