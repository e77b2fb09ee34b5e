package handlers

import (
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"insulationestimator/services"
)

// pricebookItemResponse is the JSON shape for one price book row.
type pricebookItemResponse struct {
	ID        string  `json:"id"`
	PriceKey  string  `json:"price_key"`
	UnitPrice float64 `json:"unit_price"`
	Unit      string  `json:"unit,omitempty"`
	Scope     string  `json:"scope"` // "company" or "project"
}

// HandlePriceBookList returns the effective price book rows for a project:
// company default rows plus the project's overrides.
// Route: GET /api/estimator/projects/{projectId}/pricebook
func HandlePriceBookList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return jsonError(e, http.StatusNotFound, "Project not found")
		}

		records, err := app.FindRecordsByFilter(
			"pricebook_items",
			"project = '' || project = {:projectId}",
			"price_key",
			0,
			0,
			map[string]any{"projectId": projectID})
		if err != nil {
			log.Printf("pricebook: list failed: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Failed to list price book")
		}

		out := make([]pricebookItemResponse, 0, len(records))
		for _, r := range records {
			scope := "company"
			if r.GetString("project") != "" {
				scope = "project"
			}
			out = append(out, pricebookItemResponse{
				ID:        r.Id,
				PriceKey:  r.GetString("price_key"),
				UnitPrice: r.GetFloat("unit_price"),
				Unit:      r.GetString("unit"),
				Scope:     scope,
			})
		}
		return e.JSON(http.StatusOK, out)
	}
}

// HandlePriceBookImport accepts a price book upload and upserts the valid
// rows as project-scoped rates. JSON bodies take a flat key -> price object;
// csv/xlsx uploads use the two-column template.
// Route: POST /api/estimator/projects/{projectId}/pricebook/import
func HandlePriceBookImport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return jsonError(e, http.StatusNotFound, "Project not found")
		}

		contentType := e.Request.Header.Get("Content-Type")

		var prices map[string]float64
		var result *services.ValidationResult

		if strings.HasPrefix(contentType, "application/json") {
			body, err := io.ReadAll(e.Request.Body)
			if err != nil {
				return jsonError(e, http.StatusBadRequest, "Failed to read request body")
			}
			pb, err := services.ParsePriceBookJSON(body)
			if err != nil {
				return jsonError(e, http.StatusBadRequest, err.Error())
			}
			prices = pb.ExplicitRates()
			result = &services.ValidationResult{TotalRows: len(prices), ValidRows: len(prices)}
		} else {
			file, header, err := e.Request.FormFile("file")
			if err != nil {
				return jsonError(e, http.StatusBadRequest, "No file uploaded")
			}
			defer file.Close()

			result, prices, err = services.ValidatePriceBookFile(file, header.Filename)
			if err != nil {
				return jsonError(e, http.StatusBadRequest, err.Error())
			}
		}

		if err := upsertProjectPrices(app, projectID, prices); err != nil {
			log.Printf("pricebook: import failed: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Failed to save price book")
		}

		return e.JSON(http.StatusOK, result)
	}
}

// upsertProjectPrices writes key/price pairs as project rows, replacing any
// existing row with the same key.
func upsertProjectPrices(app *pocketbase.PocketBase, projectID string, prices map[string]float64) error {
	col, err := app.FindCollectionByNameOrId("pricebook_items")
	if err != nil {
		return err
	}

	for key, price := range prices {
		existing, err := app.FindRecordsByFilter(
			"pricebook_items",
			"project = {:projectId} && price_key = {:key}",
			"", 1, 0,
			map[string]any{"projectId": projectID, "key": key})

		var record *core.Record
		if err == nil && len(existing) > 0 {
			record = existing[0]
		} else {
			record = core.NewRecord(col)
			record.Set("project", projectID)
			record.Set("price_key", key)
		}
		record.Set("unit_price", price)
		if err := app.Save(record); err != nil {
			return err
		}
	}
	return nil
}

// HandlePriceBookTemplateDownload serves the xlsx price book import template.
// Route: GET /api/estimator/pricebook/template
func HandlePriceBookTemplateDownload(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		xlsxBytes, err := services.GenerateImportTemplate("Price Book", services.PriceBookTemplateFields())
		if err != nil {
			log.Printf("pricebook: template generation failed: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Failed to generate template")
		}

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", `attachment; filename="pricebook_template.xlsx"`)
		e.Response.Write(xlsxBytes)
		return nil
	}
}
