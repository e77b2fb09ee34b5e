package services

import (
	"errors"
	"strings"
	"testing"
)

func TestAssembleQuotePipeline(t *testing.T) {
	// $1,000 subtotal, 10% O&P, 5% contingency on the post-O&P amount.
	s := PricingSettings{
		MaterialMarkupPct:     0,
		LaborMarkupPct:        0,
		OverheadProfitPct:     10,
		ContingencyPct:        5,
		LaborAdjustmentFactor: 1,
		LaborRatePerHour:      65,
	}

	quote := AssembleQuote(1000, 0, s)

	if !approxEqual(quote.Subtotal, 1000) {
		t.Errorf("subtotal = %v, want 1000", quote.Subtotal)
	}
	if !approxEqual(quote.OverheadProfitAmount, 100) {
		t.Errorf("O&P = %v, want 100", quote.OverheadProfitAmount)
	}
	if !approxEqual(quote.ContingencyAmount, 55) {
		t.Errorf("contingency = %v, want 55 (5%% of 1100)", quote.ContingencyAmount)
	}
	if !approxEqual(quote.GrandTotal, 1155) {
		t.Errorf("grand total = %v, want 1155", quote.GrandTotal)
	}
}

func TestAssembleQuoteStepOrder(t *testing.T) {
	s := PricingSettings{
		MaterialMarkupPct:     15,
		LaborMarkupPct:        10,
		OverheadProfitPct:     10,
		ContingencyPct:        10,
		LaborAdjustmentFactor: 1.2,
		LaborRatePerHour:      65,
	}

	quote := AssembleQuote(500, 10, s)

	wantMaterial := 500 * 1.15
	if !approxEqual(quote.MaterialWithMarkup, wantMaterial) {
		t.Errorf("material with markup = %v, want %v", quote.MaterialWithMarkup, wantMaterial)
	}

	wantHours := 10 * 1.2
	if !approxEqual(quote.LaborHours, wantHours) {
		t.Errorf("labor hours = %v, want %v", quote.LaborHours, wantHours)
	}

	wantLabor := wantHours * 65 * 1.10
	if !approxEqual(quote.LaborTotal, wantLabor) {
		t.Errorf("labor total = %v, want %v", quote.LaborTotal, wantLabor)
	}

	wantSubtotal := wantMaterial + wantLabor
	if !approxEqual(quote.Subtotal, wantSubtotal) {
		t.Errorf("subtotal = %v, want %v", quote.Subtotal, wantSubtotal)
	}

	// contingency applies after O&P, not to the bare subtotal
	wantOP := wantSubtotal * 0.10
	wantContingency := (wantSubtotal + wantOP) * 0.10
	if !approxEqual(quote.ContingencyAmount, wantContingency) {
		t.Errorf("contingency = %v, want %v", quote.ContingencyAmount, wantContingency)
	}
	if !approxEqual(quote.GrandTotal, wantSubtotal+wantOP+wantContingency) {
		t.Errorf("grand total = %v", quote.GrandTotal)
	}
}

func TestAssembleQuoteZeroInputs(t *testing.T) {
	quote := AssembleQuote(0, 0, DefaultPricingSettings())
	if quote.GrandTotal != 0 {
		t.Errorf("grand total = %v, want 0", quote.GrandTotal)
	}
}

func TestBuildQuoteRequiresPriceBook(t *testing.T) {
	_, err := BuildQuote(nil, nil, nil, DefaultPricingSettings(), DefaultEngineConfig(), nil)
	if !errors.Is(err, ErrNoPriceBook) {
		t.Fatalf("err = %v, want ErrNoPriceBook", err)
	}
}

func TestBuildQuoteDefaultSpecs(t *testing.T) {
	measurements := []MeasurementItem{
		{ID: "D-1", System: SystemDuct, Size: "24x20", LengthFt: 100},
	}
	quote, err := BuildQuote(measurements, nil, DefaultPriceBook(), DefaultPricingSettings(), DefaultEngineConfig(), nil)
	if err != nil {
		t.Fatalf("BuildQuote error: %v", err)
	}

	found := false
	for _, w := range quote.Warnings {
		if strings.Contains(w, "defaults") {
			found = true
		}
	}
	if !found {
		t.Errorf("warnings = %v, want a default-spec notice", quote.Warnings)
	}
	if quote.GrandTotal <= 0 {
		t.Errorf("grand total = %v, want > 0", quote.GrandTotal)
	}
}

func TestBuildQuoteSkippedRowContributesNothing(t *testing.T) {
	// A row with no applicable specification must not price, count labor,
	// or move the total.
	measurements := []MeasurementItem{
		{ID: "E-1", System: SystemEquipment, Size: "tank", LengthFt: 10, Fittings: map[string]int{"valve": 10}},
	}
	quote, err := BuildQuote(measurements, nil, DefaultPriceBook(), DefaultPricingSettings(), DefaultEngineConfig(), nil)
	if err != nil {
		t.Fatalf("BuildQuote error: %v", err)
	}

	skipped := false
	for _, w := range quote.Warnings {
		if strings.Contains(w, "skipped") {
			skipped = true
		}
	}
	if !skipped {
		t.Fatalf("warnings = %v, want a skipped-row notice", quote.Warnings)
	}
	if quote.LaborHours != 0 {
		t.Errorf("labor hours = %v, want 0", quote.LaborHours)
	}
	if quote.GrandTotal != 0 {
		t.Errorf("grand total = %v, want 0", quote.GrandTotal)
	}
}

func TestBuildQuoteLengthMonotonicity(t *testing.T) {
	specs := []InsulationSpec{ductSpec(), pipeSpec()}
	takeoff := func(ductLF float64) []MeasurementItem {
		return []MeasurementItem{
			{ID: "D-1", System: SystemDuct, Size: "24x20", LengthFt: ductLF},
			{ID: "P-1", System: SystemPipe, Size: `2"`, LengthFt: 60, Fittings: map[string]int{"elbow": 2}},
		}
	}

	shorter, err := BuildQuote(takeoff(100), specs, DefaultPriceBook(), DefaultPricingSettings(), DefaultEngineConfig(), nil)
	if err != nil {
		t.Fatalf("BuildQuote error: %v", err)
	}
	longer, err := BuildQuote(takeoff(150), specs, DefaultPriceBook(), DefaultPricingSettings(), DefaultEngineConfig(), nil)
	if err != nil {
		t.Fatalf("BuildQuote error: %v", err)
	}

	if longer.GrandTotal < shorter.GrandTotal {
		t.Errorf("growing a run reduced the total: %v -> %v", shorter.GrandTotal, longer.GrandTotal)
	}
}

func TestBuildQuoteEndToEnd(t *testing.T) {
	measurements := []MeasurementItem{
		{ID: "D-1", System: SystemDuct, Size: "24x20", LengthFt: 180, Fittings: map[string]int{"elbow": 4}},
		{ID: "P-1", System: SystemPipe, Size: `2" CHW`, LengthFt: 320, Fittings: map[string]int{"elbow": 12, "tee": 4}},
	}
	specs := []InsulationSpec{ductSpec(), pipeSpec()}

	quote, err := BuildQuote(measurements, specs, DefaultPriceBook(), DefaultPricingSettings(), DefaultEngineConfig(), nil)
	if err != nil {
		t.Fatalf("BuildQuote error: %v", err)
	}

	if len(quote.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", quote.Warnings)
	}
	if quote.LaborHours <= 0 {
		t.Error("expected labor hours > 0")
	}

	// labor appears as the final line item
	last := quote.LineItems[len(quote.LineItems)-1]
	if last.Category != CategoryLabor || last.Unit != "HR" {
		t.Errorf("last line item = %+v, want labor in hours", last)
	}
	if !approxEqual(last.Quantity, quote.LaborHours) {
		t.Errorf("labor line qty = %v, want %v", last.Quantity, quote.LaborHours)
	}

	if len(quote.BillOfMaterials) == 0 {
		t.Error("expected a bill of materials")
	}

	// financial identities
	if !approxEqual(quote.Subtotal, quote.MaterialWithMarkup+quote.LaborTotal) {
		t.Errorf("subtotal %v != material %v + labor %v", quote.Subtotal, quote.MaterialWithMarkup, quote.LaborTotal)
	}
	if !approxEqual(quote.GrandTotal, quote.Subtotal+quote.OverheadProfitAmount+quote.ContingencyAmount) {
		t.Errorf("grand total %v does not sum", quote.GrandTotal)
	}

	// running the same inputs again yields the same totals
	again, err := BuildQuote(measurements, specs, DefaultPriceBook(), DefaultPricingSettings(), DefaultEngineConfig(), nil)
	if err != nil {
		t.Fatalf("BuildQuote error: %v", err)
	}
	if again.GrandTotal != quote.GrandTotal {
		t.Errorf("totals differ across runs: %v vs %v", quote.GrandTotal, again.GrandTotal)
	}
}

func TestQuoteNotes(t *testing.T) {
	outdoor := ductSpec()
	outdoor.Location = "outdoor"
	masticSpec := pipeSpec()
	masticSpec.SpecialRequirements = []string{"mastic_coating"}

	notes := quoteNotes([]InsulationSpec{outdoor, masticSpec}, DefaultPricingSettings())

	joined := strings.Join(notes, "\n")
	for _, want := range []string{
		"Weather protection jacketing",
		"Vapor seal mastic",
		"10% contingency",
		"valid for 30 days",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("notes missing %q:\n%s", want, joined)
		}
	}

	indoorOnly := quoteNotes([]InsulationSpec{ductSpec()}, DefaultPricingSettings())
	if strings.Contains(strings.Join(indoorOnly, "\n"), "Weather protection") {
		t.Error("indoor specs should not carry the weather note")
	}
}
