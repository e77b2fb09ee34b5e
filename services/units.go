package services

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// ParseDuctDimensions splits a rectangular duct size like "24x20" or "24×20"
// into width and height in inches. It returns ok=false for anything it cannot
// parse; callers must treat that as "exclude from surface-area totals", not as
// a reason to abort the takeoff.
func ParseDuctDimensions(size string) (width, height float64, ok bool) {
	s := strings.ToLower(strings.TrimSpace(size))
	s = strings.ReplaceAll(s, "×", "x")

	parts := strings.Split(s, "x")
	if len(parts) != 2 {
		return 0, 0, false
	}

	w, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(parts[0]), `"`), 64)
	if err != nil || w <= 0 {
		return 0, 0, false
	}
	h, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(parts[1]), `"`), 64)
	if err != nil || h <= 0 {
		return 0, 0, false
	}

	return w, h, true
}

// DuctPerimeterFeet converts rectangular duct dimensions in inches to the
// perimeter in feet: (w + h) * 2 / 12.
func DuctPerimeterFeet(widthIn, heightIn float64) float64 {
	return (widthIn + heightIn) * 2 / 12
}

// DuctSurfaceArea returns the insulated surface area in square feet for a duct
// run, or 0 when the size string is unparsable.
func DuctSurfaceArea(size string, lengthFt float64) float64 {
	w, h, ok := ParseDuctDimensions(size)
	if !ok {
		return 0
	}
	return DuctPerimeterFeet(w, h) * lengthFt
}

// ParseSizeToDiameterInches extracts the first numeric token from a pipe size
// string, handling forms like `2"`, "2 inch", and `2" CHW`. It returns
// ok=false when no number is present.
func ParseSizeToDiameterInches(size string) (float64, bool) {
	match := numberPattern.FindString(size)
	if match == "" {
		return 0, false
	}
	d, err := strconv.ParseFloat(match, 64)
	if err != nil || d <= 0 {
		return 0, false
	}
	return d, true
}

// PipeSurfaceArea returns the jacketing surface area in square feet for a pipe
// run: circumference (diameter/12 * pi) times length. Returns 0 when the size
// has no parsable diameter.
func PipeSurfaceArea(size string, lengthFt float64) float64 {
	d, ok := ParseSizeToDiameterInches(size)
	if !ok {
		return 0
	}
	return d / 12 * math.Pi * lengthFt
}

// FittingEquivalentLength sums the linear-footage surcharge for a measurement's
// fittings using the per-kind equivalents in equivalentLF. Unknown fitting
// kinds and non-positive counts contribute nothing.
func FittingEquivalentLength(fittings map[string]int, equivalentLF map[string]float64) float64 {
	var total float64
	for kind, count := range fittings {
		if count <= 0 {
			continue
		}
		total += float64(count) * equivalentLF[kind]
	}
	return total
}

// countFittings returns the total number of fittings on a measurement,
// ignoring non-positive counts.
func countFittings(fittings map[string]int) int {
	var n int
	for _, count := range fittings {
		if count > 0 {
			n += count
		}
	}
	return n
}
