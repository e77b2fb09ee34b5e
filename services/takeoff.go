// Package services provides the deterministic estimation engine for HVAC
// mechanical insulation takeoffs: unit conversion, material and labor
// calculation, bill-of-materials rounding, and quote assembly.
package services

import "strings"

// SystemType identifies the kind of mechanical system a measurement or
// specification applies to.
type SystemType string

const (
	SystemDuct      SystemType = "duct"
	SystemPipe      SystemType = "pipe"
	SystemEquipment SystemType = "equipment"
	SystemUnknown   SystemType = "unknown"
)

// ParseSystemType normalizes a free-text system type into one of the known
// values. Anything unrecognized maps to SystemUnknown.
func ParseSystemType(s string) SystemType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "duct":
		return SystemDuct
	case "pipe":
		return SystemPipe
	case "equipment":
		return SystemEquipment
	default:
		return SystemUnknown
	}
}

// MeasurementItem is one run of duct or pipe to be insulated. Measurements are
// inputs to the engine and are never mutated by it.
type MeasurementItem struct {
	ID       string
	System   SystemType
	Size     string // "24x20" for duct, `2" CHW` for pipe
	LengthFt float64
	Fittings map[string]int // fitting kind -> count
	Location string
	Notes    []string
}

// InsulationSpec is a specification governing one system type.
type InsulationSpec struct {
	System              SystemType
	SizeRange           string
	ThicknessIn         float64
	Material            string // fiberglass, elastomeric, mineral_wool, ...
	Facing              string // FSK, ASJ, "" for none
	SpecialRequirements []string
	Location            string // indoor, outdoor, exposed
}

// HasRequirement reports whether the spec carries the given special
// requirement tag.
func (s InsulationSpec) HasRequirement(tag string) bool {
	for _, r := range s.SpecialRequirements {
		if r == tag {
			return true
		}
	}
	return false
}

// DefaultSpecs returns the generic fallback specifications used when a takeoff
// arrives with no specification set: 1.5" fiberglass with FSK facing for duct
// and 1.0" elastomeric for pipe.
func DefaultSpecs() []InsulationSpec {
	return []InsulationSpec{
		{
			System:      SystemDuct,
			SizeRange:   "all",
			ThicknessIn: 1.5,
			Material:    "fiberglass",
			Facing:      "FSK",
			Location:    "indoor",
		},
		{
			System:      SystemPipe,
			SizeRange:   "all",
			ThicknessIn: 1.0,
			Material:    "elastomeric",
			Location:    "indoor",
		},
	}
}
