package services

import (
	"fmt"
	"math"
	"sort"
)

// BOMLine is one purchasable line in the bill of materials.
type BOMLine struct {
	Description string
	Unit        string // ROLL, GAL, LF
	Quantity    float64
}

// BuildBillOfMaterials converts the engine's continuous quantities into
// purchase units. All rounding is ceiling: under-ordering is the failure mode
// to avoid, and over-ordering by up to one unit is expected.
func BuildBillOfMaterials(totals TakeoffTotals, cfg EngineConfig) []BOMLine {
	var bom []BOMLine

	if totals.DuctSurfaceSF > 0 && cfg.DuctWrapRollCoverageSF > 0 {
		bom = append(bom, BOMLine{
			Description: "Duct Wrap Insulation Rolls",
			Unit:        "ROLL",
			Quantity:    math.Ceil(totals.DuctSurfaceSF / cfg.DuctWrapRollCoverageSF),
		})
	}

	if totals.DuctWrapLF > 0 && cfg.AdhesiveCoverageLFPerGal > 0 {
		bom = append(bom, BOMLine{
			Description: "Insulation Adhesive",
			Unit:        "GAL",
			Quantity:    math.Ceil(totals.DuctWrapLF / cfg.AdhesiveCoverageLFPerGal),
		})
	}

	if totals.MasticSF > 0 && cfg.MasticCoverageSFPerGal > 0 {
		bom = append(bom, BOMLine{
			Description: "Mastic Vapor Seal",
			Unit:        "GAL",
			Quantity:    math.Ceil(totals.MasticSF / cfg.MasticCoverageSFPerGal),
		})
	}

	if totals.DuctWrapLF > 0 && cfg.FSKTapeCoverageLFPerRoll > 0 {
		bom = append(bom, BOMLine{
			Description: "FSK Tape Rolls",
			Unit:        "ROLL",
			Quantity:    math.Ceil(totals.DuctWrapLF / cfg.FSKTapeCoverageLFPerRoll),
		})
	}

	bom = append(bom, pipeBOMLines(totals.PipeGroups)...)
	return bom
}

// pipeBOMLines expands the pipe groups into per-size insulation lines, rounded
// up to whole linear feet, in deterministic order.
func pipeBOMLines(groups map[string]*PipeGroup) []BOMLine {
	groupKeys := make([]string, 0, len(groups))
	for k := range groups {
		groupKeys = append(groupKeys, k)
	}
	sort.Strings(groupKeys)

	var bom []BOMLine
	for _, gk := range groupKeys {
		group := groups[gk]

		sizes := make([]string, 0, len(group.SizeLF))
		for size := range group.SizeLF {
			sizes = append(sizes, size)
		}
		sort.Strings(sizes)

		for _, size := range sizes {
			lf := group.SizeLF[size]
			if lf <= 0 {
				continue
			}
			bom = append(bom, BOMLine{
				Description: fmt.Sprintf("%s Pipe Insulation %.1f\" - %s", titleWords(group.Material), group.ThicknessIn, size),
				Unit:        "LF",
				Quantity:    math.Ceil(lf),
			})
		}
	}
	return bom
}
