package services

import (
	"strings"
	"testing"
)

func TestFilterMeasurementsToScope(t *testing.T) {
	measurements := []MeasurementItem{
		{ID: "D-1", System: SystemDuct, Size: "24x20", LengthFt: 100},
		{ID: "P-1", System: SystemPipe, Size: `2"`, LengthFt: 50, Notes: []string{"fire sprinkler main"}},
		{ID: "P-2", System: SystemPipe, Size: `4"`, LengthFt: 80, Location: "underground chase"},
		{ID: "P-3", System: SystemPipe, Size: `3" sanitary waste`, LengthFt: 40},
		{ID: "P-4", System: SystemPipe, Size: `2" CHW`, LengthFt: 120},
	}

	kept := FilterMeasurementsToScope(measurements)

	if len(kept) != 2 {
		t.Fatalf("kept %d measurements, want 2: %+v", len(kept), kept)
	}
	if kept[0].ID != "D-1" || kept[1].ID != "P-4" {
		t.Errorf("kept = %s, %s; want D-1, P-4", kept[0].ID, kept[1].ID)
	}
}

func TestFilterSpecsToScope(t *testing.T) {
	specs := []InsulationSpec{
		ductSpec(),
		{System: SystemDuct, SizeRange: "all", ThicknessIn: 1.0, Material: "fiberglass", SpecialRequirements: []string{"acoustic liner"}},
		{System: SystemPipe, SizeRange: `domestic water 2" and under`, ThicknessIn: 1.0, Material: "fiberglass"},
		pipeSpec(),
	}

	kept := FilterSpecsToScope(specs)

	if len(kept) != 2 {
		t.Fatalf("kept %d specs, want 2: %+v", len(kept), kept)
	}
	if kept[0].System != SystemDuct || kept[1].System != SystemPipe {
		t.Errorf("kept systems = %s, %s", kept[0].System, kept[1].System)
	}
}

func TestScopeExclusionSummary(t *testing.T) {
	t.Run("nothing excluded", func(t *testing.T) {
		got := ScopeExclusionSummary(3, 3, 10, 10)
		if !strings.Contains(got, CompanyName) {
			t.Errorf("summary = %q, want the company name", got)
		}
		if strings.Contains(got, "excluded") {
			t.Errorf("summary = %q, should not mention exclusions", got)
		}
	})

	t.Run("items excluded", func(t *testing.T) {
		got := ScopeExclusionSummary(3, 2, 10, 7)
		if !strings.Contains(got, "1 specification(s) excluded") {
			t.Errorf("summary = %q, want spec exclusion count", got)
		}
		if !strings.Contains(got, "3 measurement(s) excluded") {
			t.Errorf("summary = %q, want measurement exclusion count", got)
		}
	})
}
