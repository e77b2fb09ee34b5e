package services

import (
	"fmt"
	"strings"
)

// Line item categories.
const (
	CategoryInsulation = "insulation"
	CategoryJacket     = "jacket"
	CategoryMastic     = "mastic"
	CategoryAccessory  = "accessory"
	CategoryLabor      = "labor"
)

// MaterialLineItem is one priced material line in an estimate.
type MaterialLineItem struct {
	Description string
	Unit        string // LF, SF, GAL, EA, HR
	Quantity    float64
	UnitPrice   float64
	TotalPrice  float64
	Category    string
	System      SystemType
}

// PipeGroup accumulates adjusted pipe footage for one material+thickness,
// broken out by distinct pipe size for the bill of materials.
type PipeGroup struct {
	Material    string
	ThicknessIn float64
	SizeLF      map[string]float64
}

// TakeoffTotals carries the continuous quantities the BOM aggregator rounds
// into purchase units.
type TakeoffTotals struct {
	DuctWrapLF    float64 // waste-adjusted duct linear feet
	DuctSurfaceSF float64
	MasticSF      float64
	PipeGroups    map[string]*PipeGroup // keyed by PriceKey(material, thickness)
}

// MaterialResult is the output of CalculateMaterials. Matched holds only the
// measurements that produced line items, so downstream labor math never
// counts a skipped row.
type MaterialResult struct {
	LineItems         []MaterialLineItem
	Matched           []MeasurementItem
	TotalMaterialCost float64
	Totals            TakeoffTotals
	Warnings          []string
}

// CalculateMaterials converts measurements plus specifications into priced
// material line items. Bad rows degrade to zero contribution with a recorded
// warning; one malformed measurement never blocks pricing the rest of the
// takeoff.
func CalculateMaterials(measurements []MeasurementItem, specs []InsulationSpec, pb *PriceBook, cfg EngineConfig, matcher SpecMatcher) MaterialResult {
	if matcher == nil {
		matcher = FirstMatchBySystem{}
	}

	result := MaterialResult{
		Totals: TakeoffTotals{PipeGroups: make(map[string]*PipeGroup)},
	}

	for _, m := range measurements {
		if m.LengthFt < 0 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("measurement %s: negative length %.2f LF, skipped", m.ID, m.LengthFt))
			continue
		}

		spec := matcher.FindApplicableSpec(m, specs)
		if spec == nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("measurement %s: no %s specification found, skipped", m.ID, m.System))
			continue
		}
		if spec.ThicknessIn <= 0 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("measurement %s: specification has non-positive thickness, skipped", m.ID))
			continue
		}

		result.Matched = append(result.Matched, m)
		adjusted := adjustedLength(m, cfg)

		unitPrice, key, fallback := pb.UnitPriceFor(spec.Material, spec.ThicknessIn, m.System, cfg)
		if fallback {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("measurement %s: no price for %q, using %s default rate", m.ID, key, m.System))
		}

		result.LineItems = append(result.LineItems, MaterialLineItem{
			Description: fmt.Sprintf("%s Insulation %.1f\" - %s", titleWords(spec.Material), spec.ThicknessIn, m.Size),
			Unit:        "LF",
			Quantity:    adjusted,
			UnitPrice:   unitPrice,
			TotalPrice:  adjusted * unitPrice,
			Category:    CategoryInsulation,
			System:      m.System,
		})

		surface := surfaceArea(m)
		switch m.System {
		case SystemDuct:
			result.Totals.DuctWrapLF += adjusted
			if surface == 0 && m.LengthFt > 0 {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("measurement %s: unparsable duct size %q, excluded from surface-area totals", m.ID, m.Size))
			}
			result.Totals.DuctSurfaceSF += surface
		case SystemPipe:
			group := result.Totals.PipeGroups[key]
			if group == nil {
				group = &PipeGroup{Material: spec.Material, ThicknessIn: spec.ThicknessIn, SizeLF: make(map[string]float64)}
				result.Totals.PipeGroups[key] = group
			}
			group.SizeLF[m.Size] += adjusted
		}

		if jacket, ok := jacketLineItem(m, *spec, surface, pb); ok {
			result.LineItems = append(result.LineItems, jacket)
		}
		if mastic, ok := masticLineItem(m, *spec, surface, pb); ok {
			result.Totals.MasticSF += surface
			result.LineItems = append(result.LineItems, mastic)
		}
		result.LineItems = append(result.LineItems, accessoryLineItems(m, *spec, pb, cfg)...)
	}

	for _, item := range result.LineItems {
		result.TotalMaterialCost += item.TotalPrice
	}
	return result
}

// adjustedLength applies the waste or fitting-equivalency adjustment for a
// measurement: ducts get the straight waste factor, pipes get per-fitting
// equivalent footage, anything else is taken as measured.
func adjustedLength(m MeasurementItem, cfg EngineConfig) float64 {
	switch m.System {
	case SystemDuct:
		return m.LengthFt * cfg.DuctStraightWasteFactor
	case SystemPipe:
		return m.LengthFt + FittingEquivalentLength(m.Fittings, cfg.FittingEquivalentLF)
	default:
		return m.LengthFt
	}
}

// surfaceArea returns the jacketing surface area for a measurement: duct
// perimeter or pipe circumference times length. Unparsable sizes yield 0.
func surfaceArea(m MeasurementItem) float64 {
	if m.System == SystemDuct {
		return DuctSurfaceArea(m.Size, m.LengthFt)
	}
	return PipeSurfaceArea(m.Size, m.LengthFt)
}

func jacketLineItem(m MeasurementItem, spec InsulationSpec, surfaceSF float64, pb *PriceBook) (MaterialLineItem, bool) {
	aluminum := spec.HasRequirement("aluminum_jacket")
	if spec.Facing == "" && !aluminum {
		return MaterialLineItem{}, false
	}
	if surfaceSF <= 0 {
		return MaterialLineItem{}, false
	}

	var desc, key string
	if aluminum {
		desc = fmt.Sprintf("Aluminum Jacketing - %s", m.Size)
		key = "aluminum_jacket"
	} else {
		desc = fmt.Sprintf("%s Facing - %s", spec.Facing, m.Size)
		key = facingPriceKey(spec.Facing)
	}
	price, _ := pb.accessoryPrice(key)

	return MaterialLineItem{
		Description: desc,
		Unit:        "SF",
		Quantity:    surfaceSF,
		UnitPrice:   price,
		TotalPrice:  surfaceSF * price,
		Category:    CategoryJacket,
		System:      m.System,
	}, true
}

func masticLineItem(m MeasurementItem, spec InsulationSpec, surfaceSF float64, pb *PriceBook) (MaterialLineItem, bool) {
	if !spec.HasRequirement("mastic_coating") || surfaceSF <= 0 {
		return MaterialLineItem{}, false
	}
	price, _ := pb.accessoryPrice("mastic")
	return MaterialLineItem{
		Description: "Mastic Vapor Seal Coating",
		Unit:        "SF",
		Quantity:    surfaceSF,
		UnitPrice:   price,
		TotalPrice:  surfaceSF * price,
		Category:    CategoryMastic,
		System:      m.System,
	}, true
}

func accessoryLineItems(m MeasurementItem, spec InsulationSpec, pb *PriceBook, cfg EngineConfig) []MaterialLineItem {
	var items []MaterialLineItem

	if spec.HasRequirement("stainless_bands") && m.LengthFt > 0 {
		spacing := cfg.StainlessBandSpacingFt
		if spacing <= 0 {
			spacing = 1.0
		}
		count := float64(int(m.LengthFt/spacing) + 1)
		price, _ := pb.accessoryPrice("stainless_bands")
		items = append(items, MaterialLineItem{
			Description: "Stainless Steel Bands",
			Unit:        "EA",
			Quantity:    count,
			UnitPrice:   price,
			TotalPrice:  count * price,
			Category:    CategoryAccessory,
			System:      m.System,
		})
	}

	return items
}

// facingPriceKey maps a facing label to its price book key, defaulting to the
// FSK rate for unrecognized facings.
func facingPriceKey(facing string) string {
	switch strings.ToUpper(strings.TrimSpace(facing)) {
	case "ASJ":
		return "asj_facing"
	case "PVC":
		return "pvc_jacket_30mil"
	default:
		return "fsk_facing"
	}
}

// CalculateLabor estimates installation hours from the priced line items plus
// per-fitting hours from the measurements that priced, then applies the
// non-productive overhead multiplier. Accessory lines carry no installation
// hours of their own.
func CalculateLabor(items []MaterialLineItem, measurements []MeasurementItem, cfg EngineConfig) float64 {
	var hours float64

	for _, item := range items {
		switch item.Category {
		case CategoryInsulation:
			if item.System == SystemDuct {
				hours += item.Quantity / cfg.DuctInsulationLFPerHour
			} else {
				hours += item.Quantity / cfg.PipeInsulationLFPerHour
			}
		case CategoryJacket:
			hours += item.Quantity / cfg.JacketingSFPerHour
		case CategoryMastic:
			hours += item.Quantity / cfg.MasticSFPerHour
		}
	}

	for _, m := range measurements {
		n := float64(countFittings(m.Fittings))
		if n == 0 {
			continue
		}
		if m.System == SystemDuct {
			hours += n * cfg.DuctFittingHours
		} else {
			hours += n * cfg.PipeFittingHours
		}
	}

	return hours * cfg.LaborOverheadMultiplier
}

// titleWords capitalizes each underscore- or space-separated word, so
// "mineral_wool" renders as "Mineral Wool" in line item descriptions.
func titleWords(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool { return r == '_' || r == ' ' })
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
