package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"insulationestimator/services"
)

// measurementFromRecord converts a measurements record into the engine's input
// form.
func measurementFromRecord(r *core.Record) services.MeasurementItem {
	fittings := make(map[string]int)
	for _, kind := range []string{"elbow", "tee", "reducer", "valve"} {
		if n := r.GetInt(kind + "s"); n > 0 {
			fittings[kind] = n
		}
	}

	var notes []string
	if v := r.GetString("notes"); v != "" {
		notes = append(notes, v)
	}

	return services.MeasurementItem{
		ID:       r.GetString("item_id"),
		System:   services.ParseSystemType(r.GetString("system_type")),
		Size:     r.GetString("size"),
		LengthFt: r.GetFloat("length_ft"),
		Fittings: fittings,
		Location: r.GetString("location"),
		Notes:    notes,
	}
}

// specFromRecord converts a specifications record into the engine's input form.
func specFromRecord(r *core.Record) services.InsulationSpec {
	var special []string
	if raw := r.GetString("special_requirements"); raw != "" {
		// stored as a JSON array; a bare string degrades to a single tag
		if err := json.Unmarshal([]byte(raw), &special); err != nil {
			var single string
			if err := json.Unmarshal([]byte(raw), &single); err == nil && single != "" {
				special = []string{single}
			} else {
				special = []string{raw}
			}
		}
	}

	return services.InsulationSpec{
		System:              services.ParseSystemType(r.GetString("system_type")),
		SizeRange:           r.GetString("size_range"),
		ThicknessIn:         r.GetFloat("thickness_in"),
		Material:            r.GetString("material"),
		Facing:              r.GetString("facing"),
		SpecialRequirements: special,
		Location:            r.GetString("location"),
	}
}

// loadMeasurements fetches a project's measurements in item_id order.
func loadMeasurements(app *pocketbase.PocketBase, projectID string) ([]services.MeasurementItem, error) {
	records, err := app.FindRecordsByFilter(
		"measurements",
		"project = {:projectId}",
		"item_id",
		0,
		0,
		map[string]any{"projectId": projectID},
	)
	if err != nil {
		return nil, fmt.Errorf("load measurements: %w", err)
	}

	items := make([]services.MeasurementItem, 0, len(records))
	for _, r := range records {
		items = append(items, measurementFromRecord(r))
	}
	return items, nil
}

// loadSpecs fetches a project's specifications in sort order. Spec matching is
// first-match-wins, so sort_order is load-bearing here.
func loadSpecs(app *pocketbase.PocketBase, projectID string) ([]services.InsulationSpec, error) {
	records, err := app.FindRecordsByFilter(
		"specifications",
		"project = {:projectId}",
		"sort_order",
		0,
		0,
		map[string]any{"projectId": projectID},
	)
	if err != nil {
		return nil, fmt.Errorf("load specifications: %w", err)
	}

	specs := make([]services.InsulationSpec, 0, len(records))
	for _, r := range records {
		specs = append(specs, specFromRecord(r))
	}
	return specs, nil
}

// loadPriceBook builds the effective price book for a project: company-wide
// default rows first, then project rows so project rates win.
func loadPriceBook(app *pocketbase.PocketBase, projectID string) (*services.PriceBook, error) {
	pb := services.DefaultPriceBook()

	defaults, err := app.FindRecordsByFilter(
		"pricebook_items",
		"project = ''",
		"price_key",
		0,
		0,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("load default price book: %w", err)
	}
	for _, r := range defaults {
		pb.Set(r.GetString("price_key"), r.GetFloat("unit_price"))
	}

	projectRows, err := app.FindRecordsByFilter(
		"pricebook_items",
		"project = {:projectId}",
		"price_key",
		0,
		0,
		map[string]any{"projectId": projectID},
	)
	if err != nil {
		return nil, fmt.Errorf("load project price book: %w", err)
	}
	for _, r := range projectRows {
		pb.Set(r.GetString("price_key"), r.GetFloat("unit_price"))
	}

	return pb, nil
}

// loadPricingSettings returns the project's pricing settings, falling back to
// the company defaults when the project has none stored.
func loadPricingSettings(project *core.Record) services.PricingSettings {
	settings := services.DefaultPricingSettings()
	raw := project.GetString("pricing_settings")
	if raw == "" {
		return settings
	}
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return services.DefaultPricingSettings()
	}
	return settings
}
