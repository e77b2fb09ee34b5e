package services

import (
	"errors"
	"fmt"
)

// ErrNoPriceBook is returned when an estimate is requested without a price
// book. Unlike a missing key, a missing book has no safe default and is a
// caller contract violation.
var ErrNoPriceBook = errors.New("estimate requires a price book")

// QuoteResult is the complete priced output of one estimate. It is built
// fresh per call and never mutated afterwards.
type QuoteResult struct {
	LineItems       []MaterialLineItem
	BillOfMaterials []BOMLine

	MaterialTotal        float64 // raw material cost, before markup
	MaterialWithMarkup   float64
	LaborHours           float64 // after adjustment factor
	LaborTotal           float64 // labor with markup
	Subtotal             float64
	OverheadProfitAmount float64
	ContingencyAmount    float64
	GrandTotal           float64

	Settings PricingSettings
	Notes    []string
	Warnings []string
}

// AssembleQuote applies the commercial pipeline to raw material cost and labor
// hours. The step order is a business contract relied on for auditability:
// material markup, labor adjustment and markup, subtotal, overhead & profit on
// the subtotal, then contingency on the post-O&P amount. No step may be
// reordered or fused.
func AssembleQuote(materialCost, laborHours float64, s PricingSettings) QuoteResult {
	materialWithMarkup := materialCost * (1 + s.MaterialMarkupPct/100)

	adjustedHours := laborHours * s.LaborAdjustmentFactor
	laborCostBase := adjustedHours * s.LaborRatePerHour
	laborWithMarkup := laborCostBase * (1 + s.LaborMarkupPct/100)

	subtotal := materialWithMarkup + laborWithMarkup
	overheadProfit := subtotal * (s.OverheadProfitPct / 100)
	totalBeforeContingency := subtotal + overheadProfit
	contingency := totalBeforeContingency * (s.ContingencyPct / 100)

	return QuoteResult{
		MaterialTotal:        materialCost,
		MaterialWithMarkup:   materialWithMarkup,
		LaborHours:           adjustedHours,
		LaborTotal:           laborWithMarkup,
		Subtotal:             subtotal,
		OverheadProfitAmount: overheadProfit,
		ContingencyAmount:    contingency,
		GrandTotal:           totalBeforeContingency + contingency,
		Settings:             s,
	}
}

// BuildQuote runs the full estimate: spec defaulting, material calculation,
// labor, bill of materials, and the commercial pipeline. It returns a hard
// error only for configuration defects (nil price book); data defects degrade
// to warnings on the result.
func BuildQuote(measurements []MeasurementItem, specs []InsulationSpec, pb *PriceBook, settings PricingSettings, cfg EngineConfig, matcher SpecMatcher) (*QuoteResult, error) {
	if pb == nil {
		return nil, ErrNoPriceBook
	}

	var warnings []string
	if len(specs) == 0 {
		specs = DefaultSpecs()
		warnings = append(warnings, "no specifications provided; using generic duct and pipe defaults")
	}

	materials := CalculateMaterials(measurements, specs, pb, cfg, matcher)
	laborHours := CalculateLabor(materials.LineItems, materials.Matched, cfg)

	quote := AssembleQuote(materials.TotalMaterialCost, laborHours, settings)
	quote.LineItems = materials.LineItems
	quote.BillOfMaterials = BuildBillOfMaterials(materials.Totals, cfg)
	quote.Warnings = append(warnings, materials.Warnings...)
	quote.Notes = quoteNotes(specs, quote.Settings)

	// Labor appears as its own line for export alongside the materials.
	if quote.LaborHours > 0 {
		quote.LineItems = append(quote.LineItems, MaterialLineItem{
			Description: fmt.Sprintf("Installation Labor @ %s/hr", FormatUSD(settings.LaborRatePerHour)),
			Unit:        "HR",
			Quantity:    quote.LaborHours,
			UnitPrice:   settings.LaborRatePerHour,
			TotalPrice:  quote.LaborHours * settings.LaborRatePerHour,
			Category:    CategoryLabor,
		})
	}

	return &quote, nil
}

// quoteNotes builds the human-readable notes block attached to every quote.
func quoteNotes(specs []InsulationSpec, s PricingSettings) []string {
	var notes []string

	for _, spec := range specs {
		if spec.Location == "outdoor" || spec.Location == "exposed" {
			notes = append(notes, "Weather protection jacketing included for outdoor applications")
			break
		}
	}
	for _, spec := range specs {
		if spec.HasRequirement("mastic_coating") {
			notes = append(notes, "Vapor seal mastic coating per specifications")
			break
		}
	}

	notes = append(notes,
		fmt.Sprintf("Total includes %.0f%% contingency", s.ContingencyPct),
		"Pricing valid for 30 days",
		"Subject to final site verification",
		"Assumes clear access to work areas",
		"All work per project specifications and applicable codes",
	)
	return notes
}
