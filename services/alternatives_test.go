package services

import (
	"errors"
	"testing"
)

func TestBuildAlternatives(t *testing.T) {
	measurements := []MeasurementItem{
		{ID: "D-1", System: SystemDuct, Size: "24x20", LengthFt: 180},
		{ID: "P-1", System: SystemPipe, Size: `2"`, LengthFt: 320},
	}
	specs := []InsulationSpec{ductSpec(), pipeSpec()}

	options, err := BuildAlternatives(measurements, specs, DefaultPriceBook(), DefaultPricingSettings(), DefaultEngineConfig(), nil)
	if err != nil {
		t.Fatalf("BuildAlternatives error: %v", err)
	}

	if len(options) != 2 {
		t.Fatalf("got %d options, want PVC jacket and mineral wool", len(options))
	}

	for _, opt := range options {
		if opt.BaseCost <= 0 {
			t.Errorf("%s: base cost = %v, want > 0", opt.Name, opt.BaseCost)
		}
		if !approxEqual(opt.Difference, opt.UpgradeCost-opt.BaseCost) {
			t.Errorf("%s: difference %v != upgrade %v - base %v", opt.Name, opt.Difference, opt.UpgradeCost, opt.BaseCost)
		}
	}

	// PVC jacket ($4.50/SF) costs more than FSK facing ($1.25/SF)
	pvc := options[0]
	if pvc.Name != "PVC Jacket Upgrade" {
		t.Fatalf("options[0] = %q", pvc.Name)
	}
	if pvc.Difference <= 0 {
		t.Errorf("PVC upgrade difference = %v, want an add", pvc.Difference)
	}
}

func TestBuildAlternativesNoPipeSpecs(t *testing.T) {
	measurements := []MeasurementItem{
		{ID: "D-1", System: SystemDuct, Size: "24x20", LengthFt: 100},
	}
	specs := []InsulationSpec{ductSpec()}

	options, err := BuildAlternatives(measurements, specs, DefaultPriceBook(), DefaultPricingSettings(), DefaultEngineConfig(), nil)
	if err != nil {
		t.Fatalf("BuildAlternatives error: %v", err)
	}

	for _, opt := range options {
		if opt.Name == "PVC Jacket Upgrade" {
			t.Error("PVC jacket alternate offered without any pipe specs")
		}
	}
	if len(options) != 1 {
		t.Fatalf("got %d options, want only the mineral wool alternate", len(options))
	}
}

func TestBuildAlternativesRequiresPriceBook(t *testing.T) {
	_, err := BuildAlternatives(nil, nil, nil, DefaultPricingSettings(), DefaultEngineConfig(), nil)
	if !errors.Is(err, ErrNoPriceBook) {
		t.Fatalf("err = %v, want ErrNoPriceBook", err)
	}
}
