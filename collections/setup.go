package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures the projects, measurements,
// specifications, pricebook_items, quotes, quote_line_items and bom_items
// collections exist.
func Setup(app *pocketbase.PocketBase) {
	projects := ensureCollection(app, "projects", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "reference_number", Required: false})
		c.Fields.Add(&core.TextField{Name: "client", Required: false})
		c.Fields.Add(&core.TextField{Name: "location", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  false,
			Values:    []string{"draft", "bidding", "awarded", "complete"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.JSONField{Name: "pricing_settings", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "measurements", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "item_id", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "system_type",
			Required:  true,
			Values:    []string{"duct", "pipe", "equipment"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "size", Required: true})
		c.Fields.Add(&core.NumberField{Name: "length_ft", Required: true})
		c.Fields.Add(&core.NumberField{Name: "elbows", Required: false})
		c.Fields.Add(&core.NumberField{Name: "tees", Required: false})
		c.Fields.Add(&core.NumberField{Name: "reducers", Required: false})
		c.Fields.Add(&core.NumberField{Name: "valves", Required: false})
		c.Fields.Add(&core.TextField{Name: "location", Required: false})
		c.Fields.Add(&core.TextField{Name: "notes", Required: false})
	})

	ensureCollection(app, "specifications", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "system_type",
			Required:  true,
			Values:    []string{"duct", "pipe", "equipment"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "size_range", Required: false})
		c.Fields.Add(&core.NumberField{Name: "thickness_in", Required: true})
		c.Fields.Add(&core.TextField{Name: "material", Required: true})
		c.Fields.Add(&core.TextField{Name: "facing", Required: false})
		c.Fields.Add(&core.JSONField{Name: "special_requirements", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "location",
			Required:  false,
			Values:    []string{"indoor", "outdoor", "exposed"},
			MaxSelect: 1,
		})
	})

	ensureCollection(app, "pricebook_items", func(c *core.Collection) {
		// project empty means the row is a company-wide default rate.
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      false,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "price_key", Required: true})
		c.Fields.Add(&core.NumberField{Name: "unit_price", Required: true})
		c.Fields.Add(&core.TextField{Name: "description", Required: false})
		c.Fields.Add(&core.TextField{Name: "unit", Required: false})
	})

	quotes := ensureCollection(app, "quotes", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "quote_number", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  false,
			Values:    []string{"draft", "issued", "accepted", "rejected"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "material_total", Required: false})
		c.Fields.Add(&core.NumberField{Name: "material_with_markup", Required: false})
		c.Fields.Add(&core.NumberField{Name: "labor_hours", Required: false})
		c.Fields.Add(&core.NumberField{Name: "labor_total", Required: false})
		c.Fields.Add(&core.NumberField{Name: "subtotal", Required: false})
		c.Fields.Add(&core.NumberField{Name: "overhead_profit_amount", Required: false})
		c.Fields.Add(&core.NumberField{Name: "contingency_amount", Required: false})
		c.Fields.Add(&core.NumberField{Name: "grand_total", Required: false})
		c.Fields.Add(&core.JSONField{Name: "settings", Required: false})
		c.Fields.Add(&core.JSONField{Name: "notes", Required: false})
		c.Fields.Add(&core.JSONField{Name: "warnings", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "quote_line_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "quote",
			Required:      true,
			CollectionId:  quotes.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		c.Fields.Add(&core.TextField{Name: "description", Required: true})
		c.Fields.Add(&core.TextField{Name: "unit", Required: true})
		c.Fields.Add(&core.NumberField{Name: "qty", Required: true})
		c.Fields.Add(&core.NumberField{Name: "unit_price", Required: true})
		c.Fields.Add(&core.NumberField{Name: "total_price", Required: true})
		c.Fields.Add(&core.TextField{Name: "category", Required: false})
		c.Fields.Add(&core.TextField{Name: "system_type", Required: false})
	})

	ensureCollection(app, "bom_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "quote",
			Required:      true,
			CollectionId:  quotes.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		c.Fields.Add(&core.TextField{Name: "description", Required: true})
		c.Fields.Add(&core.TextField{Name: "unit", Required: true})
		c.Fields.Add(&core.NumberField{Name: "qty", Required: true})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
