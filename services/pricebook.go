package services

import (
	"fmt"
	"strconv"
	"strings"
)

// PriceBook maps material price keys to unit prices. Keys loaded from project
// data are tracked separately from built-in defaults so the engine can flag
// which prices an estimate actually relied on.
type PriceBook struct {
	prices   map[string]float64
	explicit map[string]bool
}

// NewPriceBook returns an empty price book.
func NewPriceBook() *PriceBook {
	return &PriceBook{
		prices:   make(map[string]float64),
		explicit: make(map[string]bool),
	}
}

// Set records an explicit unit price for a key. Keys are trimmed and
// lowercased; empty keys and non-positive prices are ignored.
func (pb *PriceBook) Set(key string, price float64) {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" || price <= 0 {
		return
	}
	pb.prices[key] = price
	pb.explicit[key] = true
}

// setDefault records a built-in price without marking it explicit. An explicit
// price for the same key always wins.
func (pb *PriceBook) setDefault(key string, price float64) {
	if pb.explicit[key] {
		return
	}
	pb.prices[key] = price
}

// Price returns the unit price for a key and whether the key exists at all.
func (pb *PriceBook) Price(key string) (float64, bool) {
	p, ok := pb.prices[key]
	return p, ok
}

// IsExplicit reports whether a key came from loaded data rather than the
// built-in defaults.
func (pb *PriceBook) IsExplicit(key string) bool {
	return pb.explicit[key]
}

// Len returns the number of keys in the book.
func (pb *PriceBook) Len() int {
	return len(pb.prices)
}

// UnitPriceFor resolves the insulation unit price for a material/thickness
// pair. A missing key falls back to the system-type default rate from cfg and
// reports fallback=true so the caller can record a warning. The fallback never
// fails: an estimate with a missing custom material still prices.
func (pb *PriceBook) UnitPriceFor(material string, thicknessIn float64, system SystemType, cfg EngineConfig) (price float64, key string, fallback bool) {
	key = PriceKey(material, thicknessIn)
	if p, ok := pb.prices[key]; ok {
		return p, key, false
	}
	if system == SystemDuct {
		return cfg.DefaultDuctUnitPrice, key, true
	}
	return cfg.DefaultPipeUnitPrice, key, true
}

// accessoryPrice looks up a fixed named key (mastic, stainless_bands, facing
// keys) with a default-table fallback, so accessory pricing degrades the same
// way insulation pricing does.
func (pb *PriceBook) accessoryPrice(key string) (float64, bool) {
	if p, ok := pb.prices[key]; ok {
		return p, false
	}
	if p, ok := defaultPrices[key]; ok {
		return p, true
	}
	return 0, true
}

// PriceKey builds the canonical price book key for a material at a thickness,
// e.g. ("fiberglass", 1.5) -> "fiberglass_1.5". Whole-inch thicknesses keep
// one decimal place ("elastomeric_1.0") to match the published price books.
func PriceKey(material string, thicknessIn float64) string {
	material = strings.ToLower(strings.TrimSpace(material))
	material = strings.ReplaceAll(material, " ", "_")

	t := strconv.FormatFloat(thicknessIn, 'f', -1, 64)
	if !strings.Contains(t, ".") {
		t += ".0"
	}
	return fmt.Sprintf("%s_%s", material, t)
}

// DefaultPriceBook returns the built-in reference prices used when a project
// has no price book of its own. None of the entries are marked explicit.
func DefaultPriceBook() *PriceBook {
	pb := NewPriceBook()
	for key, price := range defaultPrices {
		pb.setDefault(key, price)
	}
	return pb
}

// ExplicitRates returns a copy of the explicitly loaded key/price pairs,
// excluding built-in defaults.
func (pb *PriceBook) ExplicitRates() map[string]float64 {
	rates := make(map[string]float64, len(pb.explicit))
	for key := range pb.explicit {
		rates[key] = pb.prices[key]
	}
	return rates
}

// DefaultPriceRates returns a copy of the built-in reference price table,
// keyed the same way PriceKey builds keys. Callers seeding a database get
// their own map to mutate.
func DefaultPriceRates() map[string]float64 {
	rates := make(map[string]float64, len(defaultPrices))
	for k, v := range defaultPrices {
		rates[k] = v
	}
	return rates
}

// defaultPrices is the built-in reference price table: $/LF for insulation,
// $/SF for facings and jacketing, $/gallon for liquids, $/each for bands.
var defaultPrices = map[string]float64{
	// Base insulation materials.
	"fiberglass_1.5":     4.50,
	"fiberglass_2.0":     5.75,
	"elastomeric_0.5":    3.25,
	"elastomeric_1.0":    4.50,
	"cellular_glass_1.0": 6.75,
	"mineral_wool_1.5":   5.25,

	// Facings and jacketing.
	"fsk_facing":       1.25,
	"asj_facing":       1.75,
	"aluminum_jacket":  8.50,
	"pvc_jacket_20mil": 3.75,
	"pvc_jacket_30mil": 4.50,
	"stainless_jacket": 12.50,

	// Accessories and sealants.
	"mastic":             0.75,
	"stainless_bands":    2.50,
	"pvc_fitting_covers": 8.50,
	"adhesive":           12.50,
	"vapor_seal":         15.00,
	"self_adhering_tape": 0.45,
}
