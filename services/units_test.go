package services

import (
	"math"
	"testing"
)

func TestParseDuctDimensions(t *testing.T) {
	tests := []struct {
		name       string
		size       string
		wantW      float64
		wantH      float64
		wantOK     bool
	}{
		{"plain", "24x20", 24, 20, true},
		{"unicode multiply sign", "24×20", 24, 20, true},
		{"uppercase X", "18X12", 18, 12, true},
		{"with spaces", " 12 x 10 ", 12, 10, true},
		{"inch marks", `24" x 20"`, 24, 20, true},
		{"fractional", "10.5x8", 10.5, 8, true},
		{"missing height", "24x", 0, 0, false},
		{"round pipe size", `2"`, 0, 0, false},
		{"garbage", "large", 0, 0, false},
		{"empty", "", 0, 0, false},
		{"zero width", "0x20", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, ok := ParseDuctDimensions(tt.size)
			if ok != tt.wantOK {
				t.Fatalf("ParseDuctDimensions(%q) ok = %v, want %v", tt.size, ok, tt.wantOK)
			}
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("ParseDuctDimensions(%q) = (%v, %v), want (%v, %v)",
					tt.size, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestDuctPerimeterFeet(t *testing.T) {
	// (24 + 20) * 2 / 12 = 7.333...
	got := DuctPerimeterFeet(24, 20)
	want := 88.0 / 12.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("DuctPerimeterFeet(24, 20) = %v, want %v", got, want)
	}
}

func TestDuctSurfaceArea(t *testing.T) {
	tests := []struct {
		name     string
		size     string
		lengthFt float64
		want     float64
	}{
		{"24x20 at 180 LF", "24x20", 180, (44.0 * 2 / 12) * 180},
		{"unparsable yields zero", "round", 100, 0},
		{"zero length", "24x20", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DuctSurfaceArea(tt.size, tt.lengthFt)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("DuctSurfaceArea(%q, %v) = %v, want %v", tt.size, tt.lengthFt, got, tt.want)
			}
		})
	}
}

func TestParseSizeToDiameterInches(t *testing.T) {
	tests := []struct {
		name   string
		size   string
		want   float64
		wantOK bool
	}{
		{"inch mark", `2"`, 2, true},
		{"with service tag", `2" CHW`, 2, true},
		{"word form", "2 inch", 2, true},
		{"fractional", `1.5" HHW`, 1.5, true},
		{"bare number", "4", 4, true},
		{"no number", "large bore", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseSizeToDiameterInches(tt.size)
			if ok != tt.wantOK {
				t.Fatalf("ParseSizeToDiameterInches(%q) ok = %v, want %v", tt.size, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("ParseSizeToDiameterInches(%q) = %v, want %v", tt.size, got, tt.want)
			}
		})
	}
}

func TestPipeSurfaceArea(t *testing.T) {
	// 2" pipe: 2/12 * pi * 100 LF
	got := PipeSurfaceArea(`2" CHW`, 100)
	want := 2.0 / 12.0 * math.Pi * 100
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("PipeSurfaceArea = %v, want %v", got, want)
	}

	if got := PipeSurfaceArea("no size here", 100); got != 0 {
		t.Errorf("unparsable size: got %v, want 0", got)
	}
}

func TestFittingEquivalentLength(t *testing.T) {
	equiv := map[string]float64{"elbow": 1.5, "tee": 2.0}

	tests := []struct {
		name     string
		fittings map[string]int
		want     float64
	}{
		{"elbows and tees", map[string]int{"elbow": 4, "tee": 2}, 4*1.5 + 2*2.0},
		{"unknown kind ignored", map[string]int{"reducer": 3}, 0},
		{"negative count ignored", map[string]int{"elbow": -2, "tee": 1}, 2.0},
		{"nil map", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FittingEquivalentLength(tt.fittings, equiv)
			if got != tt.want {
				t.Errorf("FittingEquivalentLength(%v) = %v, want %v", tt.fittings, got, tt.want)
			}
		})
	}
}
