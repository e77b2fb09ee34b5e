// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"insulationestimator/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestProject creates a project record with the given name and returns it.
func CreateTestProject(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		t.Fatalf("failed to find projects collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("reference_number", "TST-001")
	record.Set("status", "bidding")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test project: %v", err)
	}

	return record
}

// CreateTestMeasurement creates a measurement record linked to a project.
func CreateTestMeasurement(t *testing.T, app *pocketbase.PocketBase, projectID, itemID, systemType, size string, lengthFt float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("measurements")
	if err != nil {
		t.Fatalf("failed to find measurements collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("item_id", itemID)
	record.Set("system_type", systemType)
	record.Set("size", size)
	record.Set("length_ft", lengthFt)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test measurement: %v", err)
	}

	return record
}

// CreateTestSpec creates a specification record linked to a project.
func CreateTestSpec(t *testing.T, app *pocketbase.PocketBase, projectID, systemType, material string, thicknessIn float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("specifications")
	if err != nil {
		t.Fatalf("failed to find specifications collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("sort_order", 1)
	record.Set("system_type", systemType)
	record.Set("thickness_in", thicknessIn)
	record.Set("material", material)
	record.Set("location", "indoor")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test specification: %v", err)
	}

	return record
}

// SeedTestPriceBook inserts a minimal set of price book rows for a project.
func SeedTestPriceBook(t *testing.T, app *pocketbase.PocketBase, projectID string, rates map[string]float64) {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("pricebook_items")
	if err != nil {
		t.Fatalf("failed to find pricebook_items collection: %v", err)
	}

	for key, price := range rates {
		record := core.NewRecord(col)
		if projectID != "" {
			record.Set("project", projectID)
		}
		record.Set("price_key", key)
		record.Set("unit_price", price)
		if err := app.Save(record); err != nil {
			t.Fatalf("failed to save test price book item %q: %v", key, err)
		}
	}
}

// CreateTestQuote creates a quote record linked to a project.
func CreateTestQuote(t *testing.T, app *pocketbase.PocketBase, projectID, quoteNumber string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("quotes")
	if err != nil {
		t.Fatalf("failed to find quotes collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("quote_number", quoteNumber)
	record.Set("status", "draft")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test quote: %v", err)
	}

	return record
}
