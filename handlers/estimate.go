package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"insulationestimator/services"
)

// quoteSummaryResponse is the JSON shape for a persisted quote.
type quoteSummaryResponse struct {
	ID                   string                   `json:"id"`
	QuoteNumber          string                   `json:"quote_number"`
	Status               string                   `json:"status"`
	MaterialTotal        float64                  `json:"material_total"`
	MaterialWithMarkup   float64                  `json:"material_with_markup"`
	LaborHours           float64                  `json:"labor_hours"`
	LaborTotal           float64                  `json:"labor_total"`
	Subtotal             float64                  `json:"subtotal"`
	OverheadProfitAmount float64                  `json:"overhead_profit_amount"`
	ContingencyAmount    float64                  `json:"contingency_amount"`
	GrandTotal           float64                  `json:"grand_total"`
	Settings             services.PricingSettings `json:"settings"`
	Notes                []string                 `json:"notes,omitempty"`
	Warnings             []string                 `json:"warnings,omitempty"`
	LineItems            []quoteLineItemResponse  `json:"line_items,omitempty"`
	BillOfMaterials      []bomItemResponse        `json:"bill_of_materials,omitempty"`
}

type quoteLineItemResponse struct {
	Description string  `json:"description"`
	Unit        string  `json:"unit"`
	Qty         float64 `json:"qty"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
	Category    string  `json:"category"`
}

type bomItemResponse struct {
	Description string  `json:"description"`
	Unit        string  `json:"unit"`
	Qty         float64 `json:"qty"`
}

// HandleEstimateRun runs the full estimate for a project and persists the
// result as a quote with its line items and bill of materials.
// Route: POST /api/estimator/projects/{projectId}/estimate
func HandleEstimateRun(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		project, err := app.FindRecordById("projects", projectID)
		if err != nil {
			return jsonError(e, http.StatusNotFound, "Project not found")
		}

		measurements, err := loadMeasurements(app, projectID)
		if err != nil {
			log.Printf("estimate: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Failed to load measurements")
		}
		if len(measurements) == 0 {
			return jsonError(e, http.StatusBadRequest, "Project has no measurements to estimate")
		}

		specs, err := loadSpecs(app, projectID)
		if err != nil {
			log.Printf("estimate: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Failed to load specifications")
		}

		pb, err := loadPriceBook(app, projectID)
		if err != nil {
			log.Printf("estimate: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Failed to load price book")
		}

		// Out-of-scope work never gets priced; the summary goes on the quote.
		scopedMeasurements := services.FilterMeasurementsToScope(measurements)
		scopedSpecs := services.FilterSpecsToScope(specs)
		scopeLine := services.ScopeExclusionSummary(
			len(specs), len(scopedSpecs), len(measurements), len(scopedMeasurements))

		settings := loadPricingSettings(project)
		cfg := services.DefaultEngineConfig()

		quote, err := services.BuildQuote(scopedMeasurements, scopedSpecs, pb, settings, cfg, nil)
		if err != nil {
			if errors.Is(err, services.ErrNoPriceBook) {
				return jsonError(e, http.StatusBadRequest, "A price book is required to estimate")
			}
			log.Printf("estimate: build failed: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Failed to build quote")
		}
		quote.Notes = append(quote.Notes, scopeLine)

		record, err := persistQuote(app, projectID, quote)
		if err != nil {
			log.Printf("estimate: persist failed: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Failed to save quote")
		}

		return e.JSON(http.StatusCreated, quoteToResponse(record, quote))
	}
}

// persistQuote saves a QuoteResult as a quotes record plus its line item and
// BOM child records.
func persistQuote(app *pocketbase.PocketBase, projectID string, quote *services.QuoteResult) (*core.Record, error) {
	quotesCol, err := app.FindCollectionByNameOrId("quotes")
	if err != nil {
		return nil, err
	}
	lineItemsCol, err := app.FindCollectionByNameOrId("quote_line_items")
	if err != nil {
		return nil, err
	}
	bomCol, err := app.FindCollectionByNameOrId("bom_items")
	if err != nil {
		return nil, err
	}

	quoteNumber, err := services.GenerateQuoteNumber(app, projectID, time.Now())
	if err != nil {
		return nil, err
	}

	record := core.NewRecord(quotesCol)
	record.Set("project", projectID)
	record.Set("quote_number", quoteNumber)
	record.Set("status", "draft")
	record.Set("material_total", quote.MaterialTotal)
	record.Set("material_with_markup", quote.MaterialWithMarkup)
	record.Set("labor_hours", quote.LaborHours)
	record.Set("labor_total", quote.LaborTotal)
	record.Set("subtotal", quote.Subtotal)
	record.Set("overhead_profit_amount", quote.OverheadProfitAmount)
	record.Set("contingency_amount", quote.ContingencyAmount)
	record.Set("grand_total", quote.GrandTotal)
	record.Set("settings", quote.Settings)
	record.Set("notes", quote.Notes)
	record.Set("warnings", quote.Warnings)
	if err := app.Save(record); err != nil {
		return nil, err
	}

	for i, item := range quote.LineItems {
		li := core.NewRecord(lineItemsCol)
		li.Set("quote", record.Id)
		li.Set("sort_order", i+1)
		li.Set("description", item.Description)
		li.Set("unit", item.Unit)
		li.Set("qty", item.Quantity)
		li.Set("unit_price", item.UnitPrice)
		li.Set("total_price", item.TotalPrice)
		li.Set("category", item.Category)
		li.Set("system_type", string(item.System))
		if err := app.Save(li); err != nil {
			return nil, err
		}
	}

	for i, line := range quote.BillOfMaterials {
		bi := core.NewRecord(bomCol)
		bi.Set("quote", record.Id)
		bi.Set("sort_order", i+1)
		bi.Set("description", line.Description)
		bi.Set("unit", line.Unit)
		bi.Set("qty", line.Quantity)
		if err := app.Save(bi); err != nil {
			return nil, err
		}
	}

	return record, nil
}

func quoteToResponse(record *core.Record, quote *services.QuoteResult) quoteSummaryResponse {
	resp := quoteSummaryResponse{
		ID:                   record.Id,
		QuoteNumber:          record.GetString("quote_number"),
		Status:               record.GetString("status"),
		MaterialTotal:        quote.MaterialTotal,
		MaterialWithMarkup:   quote.MaterialWithMarkup,
		LaborHours:           quote.LaborHours,
		LaborTotal:           quote.LaborTotal,
		Subtotal:             quote.Subtotal,
		OverheadProfitAmount: quote.OverheadProfitAmount,
		ContingencyAmount:    quote.ContingencyAmount,
		GrandTotal:           quote.GrandTotal,
		Settings:             quote.Settings,
		Notes:                quote.Notes,
		Warnings:             quote.Warnings,
	}
	for _, item := range quote.LineItems {
		resp.LineItems = append(resp.LineItems, quoteLineItemResponse{
			Description: item.Description,
			Unit:        item.Unit,
			Qty:         item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
			Category:    item.Category,
		})
	}
	for _, line := range quote.BillOfMaterials {
		resp.BillOfMaterials = append(resp.BillOfMaterials, bomItemResponse{
			Description: line.Description,
			Unit:        line.Unit,
			Qty:         line.Quantity,
		})
	}
	return resp
}

// HandleQuoteList returns a project's saved quotes, newest first.
// Route: GET /api/estimator/projects/{projectId}/quotes
func HandleQuoteList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return jsonError(e, http.StatusNotFound, "Project not found")
		}

		records, err := app.FindRecordsByFilter(
			"quotes", "project = {:projectId}", "-created", 0, 0,
			map[string]any{"projectId": projectID})
		if err != nil {
			log.Printf("quotes: list failed: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Failed to list quotes")
		}

		out := make([]quoteSummaryResponse, 0, len(records))
		for _, r := range records {
			out = append(out, storedQuoteSummary(r))
		}
		return e.JSON(http.StatusOK, out)
	}
}

// storedQuoteSummary builds a response from a quotes record alone, without
// re-running the engine or loading child records.
func storedQuoteSummary(r *core.Record) quoteSummaryResponse {
	return quoteSummaryResponse{
		ID:                   r.Id,
		QuoteNumber:          r.GetString("quote_number"),
		Status:               r.GetString("status"),
		MaterialTotal:        r.GetFloat("material_total"),
		MaterialWithMarkup:   r.GetFloat("material_with_markup"),
		LaborHours:           r.GetFloat("labor_hours"),
		LaborTotal:           r.GetFloat("labor_total"),
		Subtotal:             r.GetFloat("subtotal"),
		OverheadProfitAmount: r.GetFloat("overhead_profit_amount"),
		ContingencyAmount:    r.GetFloat("contingency_amount"),
		GrandTotal:           r.GetFloat("grand_total"),
	}
}

// HandleQuoteView returns a stored quote with line items and BOM.
// Route: GET /api/estimator/projects/{projectId}/quotes/{id}
func HandleQuoteView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("quotes", e.Request.PathValue("id"))
		if err != nil || record.GetString("project") != e.Request.PathValue("projectId") {
			return jsonError(e, http.StatusNotFound, "Quote not found")
		}

		resp := storedQuoteSummary(record)

		lineItems, err := app.FindRecordsByFilter(
			"quote_line_items", "quote = {:quoteId}", "sort_order", 0, 0,
			map[string]any{"quoteId": record.Id})
		if err == nil {
			for _, li := range lineItems {
				resp.LineItems = append(resp.LineItems, quoteLineItemResponse{
					Description: li.GetString("description"),
					Unit:        li.GetString("unit"),
					Qty:         li.GetFloat("qty"),
					UnitPrice:   li.GetFloat("unit_price"),
					TotalPrice:  li.GetFloat("total_price"),
					Category:    li.GetString("category"),
				})
			}
		}

		bomItems, err := app.FindRecordsByFilter(
			"bom_items", "quote = {:quoteId}", "sort_order", 0, 0,
			map[string]any{"quoteId": record.Id})
		if err == nil {
			for _, bi := range bomItems {
				resp.BillOfMaterials = append(resp.BillOfMaterials, bomItemResponse{
					Description: bi.GetString("description"),
					Unit:        bi.GetString("unit"),
					Qty:         bi.GetFloat("qty"),
				})
			}
		}

		return e.JSON(http.StatusOK, resp)
	}
}

// HandleAlternatives prices the standard bid alternates for a project against
// its current takeoff. Nothing is persisted.
// Route: GET /api/estimator/projects/{projectId}/alternatives
func HandleAlternatives(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		project, err := app.FindRecordById("projects", projectID)
		if err != nil {
			return jsonError(e, http.StatusNotFound, "Project not found")
		}

		measurements, err := loadMeasurements(app, projectID)
		if err != nil {
			log.Printf("alternatives: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Failed to load measurements")
		}
		specs, err := loadSpecs(app, projectID)
		if err != nil {
			log.Printf("alternatives: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Failed to load specifications")
		}
		pb, err := loadPriceBook(app, projectID)
		if err != nil {
			log.Printf("alternatives: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Failed to load price book")
		}

		settings := loadPricingSettings(project)
		cfg := services.DefaultEngineConfig()

		options, err := services.BuildAlternatives(
			services.FilterMeasurementsToScope(measurements),
			services.FilterSpecsToScope(specs),
			pb, settings, cfg, nil)
		if err != nil {
			log.Printf("alternatives: build failed: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Failed to build alternatives")
		}

		return e.JSON(http.StatusOK, options)
	}
}
