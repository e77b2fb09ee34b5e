package services

import (
	"fmt"
	"strings"
)

// Company scope: external HVAC and mechanical insulation only. Duct liner,
// waste/sanitary plumbing, fire sprinkler piping, and below-grade work are
// never priced.
const (
	CompanyName      = "Guaranteed Insulation Inc."
	ScopeDescription = "External HVAC and mechanical insulation only."
)

var inScopeSystems = map[SystemType]bool{
	SystemDuct:      true,
	SystemPipe:      true,
	SystemEquipment: true,
}

var excludedKeywords = []string{
	"duct liner", "liner", "internal liner", "acoustic liner",
	"waste", "sanitary", "domestic water", "plumbing", "drain", "sewer",
	"fire sprinkler", "sprinkler pipe", "fire protection pipe",
	"underground", "buried", "below grade",
}

// FilterSpecsToScope returns only the specifications that fall inside company
// scope.
func FilterSpecsToScope(specs []InsulationSpec) []InsulationSpec {
	var kept []InsulationSpec
	for _, s := range specs {
		if inScopeSystems[s.System] && !specOutOfScope(s) {
			kept = append(kept, s)
		}
	}
	return kept
}

// FilterMeasurementsToScope returns only the measurements that fall inside
// company scope.
func FilterMeasurementsToScope(measurements []MeasurementItem) []MeasurementItem {
	var kept []MeasurementItem
	for _, m := range measurements {
		if inScopeSystems[m.System] && !measurementOutOfScope(m) {
			kept = append(kept, m)
		}
	}
	return kept
}

func specOutOfScope(s InsulationSpec) bool {
	text := normalizeScopeText(fmt.Sprintf("%s %s %s", s.System, s.SizeRange, strings.Join(s.SpecialRequirements, " ")))
	return containsExcludedKeyword(text)
}

func measurementOutOfScope(m MeasurementItem) bool {
	text := normalizeScopeText(fmt.Sprintf("%s %s %s %s", m.System, m.Size, m.Location, strings.Join(m.Notes, " ")))
	return containsExcludedKeyword(text)
}

func containsExcludedKeyword(text string) bool {
	for _, kw := range excludedKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func normalizeScopeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ScopeExclusionSummary produces the one-line summary of what the scope filter
// removed, for the bid package.
func ScopeExclusionSummary(specsBefore, specsAfter, measurementsBefore, measurementsAfter int) string {
	var parts []string
	if specsBefore > specsAfter {
		parts = append(parts, fmt.Sprintf("%d specification(s) excluded (out of scope)", specsBefore-specsAfter))
	}
	if measurementsBefore > measurementsAfter {
		parts = append(parts, fmt.Sprintf("%d measurement(s) excluded (out of scope)", measurementsBefore-measurementsAfter))
	}
	if len(parts) == 0 {
		return fmt.Sprintf("All items fall within %s scope (%s)", CompanyName, strings.ToLower(strings.TrimSuffix(ScopeDescription, ".")))
	}
	return "Scope filter applied: " + strings.Join(parts, "; ") +
		". Excluded items: duct liner, waste plumbing, domestic water, fire sprinkler, and other non-external mechanical insulation."
}
