package services

// EngineConfig holds the takeoff constants the engine applies: waste factors,
// fitting equivalents, labor production rates, and purchase-unit coverage.
// These are configurable defaults, not authoritative values; override any of
// them per estimate when a vendor sheet says otherwise.
type EngineConfig struct {
	// Waste and fitting adjustment.
	DuctStraightWasteFactor float64            // multiplier on straight duct LF
	FittingEquivalentLF     map[string]float64 // pipe fitting kind -> equivalent LF

	// Labor production rates.
	DuctInsulationLFPerHour float64
	PipeInsulationLFPerHour float64
	JacketingSFPerHour      float64
	MasticSFPerHour         float64
	DuctFittingHours        float64 // labor hours per duct fitting
	PipeFittingHours        float64 // labor hours per pipe fitting
	LaborOverheadMultiplier float64 // setup, cleanup, supervision

	// Fallback unit prices when the price book has no key for a material.
	DefaultDuctUnitPrice float64 // $/LF, fiberglass 1.5" reference
	DefaultPipeUnitPrice float64 // $/LF, elastomeric 1.0" reference

	// Purchase-unit coverage for the bill of materials.
	DuctWrapRollCoverageSF   float64
	AdhesiveCoverageLFPerGal float64
	MasticCoverageSFPerGal   float64
	FSKTapeCoverageLFPerRoll float64
	StainlessBandSpacingFt   float64 // one band per this many feet, plus one
}

// DefaultEngineConfig returns the standard takeoff constants.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		DuctStraightWasteFactor: 1.10,
		FittingEquivalentLF: map[string]float64{
			"elbow": 1.5,
			"tee":   2.0,
		},
		DuctInsulationLFPerHour: 22,
		PipeInsulationLFPerHour: 18,
		JacketingSFPerHour:      45,
		MasticSFPerHour:         70,
		DuctFittingHours:        1.0,
		PipeFittingHours:        0.6,
		LaborOverheadMultiplier: 1.20,

		DefaultDuctUnitPrice: 4.50,
		DefaultPipeUnitPrice: 4.50,

		DuctWrapRollCoverageSF:   300,
		AdhesiveCoverageLFPerGal: 125,
		MasticCoverageSFPerGal:   175,
		FSKTapeCoverageLFPerRoll: 200,
		StainlessBandSpacingFt:   1.0,
	}
}

// PricingSettings holds the commercial knobs applied on top of raw material
// and labor costs. All values are non-negative; markups and contingency are
// percentages, the adjustment factor is a multiplier on labor hours.
type PricingSettings struct {
	MaterialMarkupPct     float64 `json:"material_markup_pct"`
	LaborMarkupPct        float64 `json:"labor_markup_pct"`
	OverheadProfitPct     float64 `json:"overhead_profit_pct"`
	ContingencyPct        float64 `json:"contingency_pct"`
	LaborAdjustmentFactor float64 `json:"labor_adjustment_factor"`
	LaborRatePerHour      float64 `json:"labor_rate_per_hour"`
}

// DefaultPricingSettings returns the company baseline settings.
func DefaultPricingSettings() PricingSettings {
	return PricingSettings{
		MaterialMarkupPct:     15,
		LaborMarkupPct:        10,
		OverheadProfitPct:     10,
		ContingencyPct:        10,
		LaborAdjustmentFactor: 1.0,
		LaborRatePerHour:      65,
	}
}
