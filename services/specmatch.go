package services

// SpecMatcher selects the specification that applies to a measurement, or nil
// when none does. The engine never fabricates a spec for an unmatched
// measurement; it records a warning and moves on.
type SpecMatcher interface {
	FindApplicableSpec(m MeasurementItem, specs []InsulationSpec) *InsulationSpec
}

// FirstMatchBySystem matches on system type alone: the first spec in input
// order with the measurement's system type wins. Size ranges are deliberately
// ignored; when multiple specs share a system type, input ordering decides.
// Callers needing size-range-aware matching supply their own SpecMatcher.
type FirstMatchBySystem struct{}

func (FirstMatchBySystem) FindApplicableSpec(m MeasurementItem, specs []InsulationSpec) *InsulationSpec {
	for i := range specs {
		if specs[i].System == m.System {
			return &specs[i]
		}
	}
	return nil
}
