package collections

import (
	"fmt"
	"log"
	"sort"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"insulationestimator/services"
)

// ── Definition structs ───────────────────────────────────────────────────

type measurementDef struct {
	itemID   string
	system   string
	size     string
	lengthFt float64
	elbows   int
	tees     int
	location string
}

type specDef struct {
	sortOrder   int
	system      string
	sizeRange   string
	thicknessIn float64
	material    string
	facing      string
	special     []string
	location    string
}

// priceUnits maps price key suffix patterns to purchase units for display.
var priceUnits = map[string]string{
	"fsk_facing":         "SF",
	"asj_facing":         "SF",
	"aluminum_jacket":    "SF",
	"pvc_jacket_20mil":   "SF",
	"pvc_jacket_30mil":   "SF",
	"stainless_jacket":   "SF",
	"mastic":             "GAL",
	"adhesive":           "GAL",
	"vapor_seal":         "GAL",
	"stainless_bands":    "EA",
	"pvc_fitting_covers": "EA",
	"self_adhering_tape": "LF",
}

// Seed populates the pricebook_items collection with the company reference
// rates and inserts one demo project with a realistic takeoff. It is safe to
// call on every startup: each part returns early when records already exist.
func Seed(app *pocketbase.PocketBase) error {
	if err := seedPriceBook(app); err != nil {
		return err
	}
	return seedDemoProject(app)
}

// seedPriceBook inserts the company-wide default rates (rows with no project
// relation) when the pricebook_items collection is empty.
func seedPriceBook(app *pocketbase.PocketBase) error {
	col, err := app.FindCollectionByNameOrId("pricebook_items")
	if err != nil {
		return fmt.Errorf("seed: could not find pricebook_items collection: %w", err)
	}
	existing, err := app.FindAllRecords(col)
	if err != nil {
		return fmt.Errorf("seed: could not query pricebook_items: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: pricebook_items is empty, inserting company reference rates")

	rates := services.DefaultPriceRates()
	keys := make([]string, 0, len(rates))
	for k := range rates {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		unit := priceUnits[key]
		if unit == "" {
			unit = "LF" // insulation materials price per linear foot
		}
		r := core.NewRecord(col)
		r.Set("price_key", key)
		r.Set("unit_price", rates[key])
		r.Set("unit", unit)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save pricebook item %q: %w", key, err)
		}
	}
	return nil
}

// seedDemoProject inserts one sample project with measurements and
// specifications so a fresh install has something to estimate.
func seedDemoProject(app *pocketbase.PocketBase) error {
	projectsCol, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		return fmt.Errorf("seed: could not find projects collection: %w", err)
	}
	existing, err := app.FindAllRecords(projectsCol)
	if err != nil {
		return fmt.Errorf("seed: could not query projects: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: projects collection is empty, inserting demo project")

	measurementsCol, err := app.FindCollectionByNameOrId("measurements")
	if err != nil {
		return fmt.Errorf("seed: could not find measurements collection: %w", err)
	}
	specsCol, err := app.FindCollectionByNameOrId("specifications")
	if err != nil {
		return fmt.Errorf("seed: could not find specifications collection: %w", err)
	}

	project := core.NewRecord(projectsCol)
	project.Set("name", "Riverside Medical Office Building")
	project.Set("reference_number", "RMOB-2026")
	project.Set("client", "Riverside Healthcare Partners")
	project.Set("location", "Building 2, Floors 1-3")
	project.Set("status", "bidding")
	if err := app.Save(project); err != nil {
		return fmt.Errorf("seed: save demo project: %w", err)
	}

	measurements := []measurementDef{
		{itemID: "D-101", system: "duct", size: "24x20", lengthFt: 180, elbows: 4, location: "mechanical room"},
		{itemID: "D-102", system: "duct", size: "18x12", lengthFt: 240, elbows: 6, tees: 2, location: "corridor ceiling"},
		{itemID: "D-103", system: "duct", size: "12x10", lengthFt: 95, elbows: 3, location: "floor 3 supply"},
		{itemID: "P-201", system: "pipe", size: `2" CHW`, lengthFt: 320, elbows: 12, tees: 4, location: "chiller loop"},
		{itemID: "P-202", system: "pipe", size: `4" CHW`, lengthFt: 150, elbows: 6, tees: 2, location: "chiller loop"},
		{itemID: "P-203", system: "pipe", size: `1.5" HHW`, lengthFt: 210, elbows: 8, location: "rooftop run"},
	}
	for _, d := range measurements {
		r := core.NewRecord(measurementsCol)
		r.Set("project", project.Id)
		r.Set("item_id", d.itemID)
		r.Set("system_type", d.system)
		r.Set("size", d.size)
		r.Set("length_ft", d.lengthFt)
		if d.elbows > 0 {
			r.Set("elbows", d.elbows)
		}
		if d.tees > 0 {
			r.Set("tees", d.tees)
		}
		r.Set("location", d.location)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save measurement %q: %w", d.itemID, err)
		}
	}

	specs := []specDef{
		{sortOrder: 1, system: "duct", sizeRange: "all", thicknessIn: 1.5, material: "fiberglass", facing: "FSK", location: "indoor"},
		{sortOrder: 2, system: "pipe", sizeRange: `up to 2"`, thicknessIn: 1.0, material: "elastomeric", location: "indoor"},
		{sortOrder: 3, system: "pipe", sizeRange: `2.5" and up`, thicknessIn: 1.5, material: "fiberglass", facing: "ASJ",
			special: []string{"mastic_coating"}, location: "outdoor"},
	}
	for _, d := range specs {
		r := core.NewRecord(specsCol)
		r.Set("project", project.Id)
		r.Set("sort_order", d.sortOrder)
		r.Set("system_type", d.system)
		r.Set("size_range", d.sizeRange)
		r.Set("thickness_in", d.thicknessIn)
		r.Set("material", d.material)
		if d.facing != "" {
			r.Set("facing", d.facing)
		}
		if len(d.special) > 0 {
			r.Set("special_requirements", d.special)
		}
		if d.location != "" {
			r.Set("location", d.location)
		}
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save specification %d: %w", d.sortOrder, err)
		}
	}

	return nil
}
