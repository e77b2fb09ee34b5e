package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"insulationestimator/services"
)

// buildQuoteExportData reconstructs the export payload from a stored quote and
// its child records.
func buildQuoteExportData(app *pocketbase.PocketBase, projectID, quoteID string) (services.QuoteExportData, error) {
	quoteRecord, err := app.FindRecordById("quotes", quoteID)
	if err != nil {
		return services.QuoteExportData{}, fmt.Errorf("quote not found: %w", err)
	}
	if quoteRecord.GetString("project") != projectID {
		return services.QuoteExportData{}, fmt.Errorf("quote %s does not belong to project %s", quoteID, projectID)
	}

	project, err := app.FindRecordById("projects", projectID)
	if err != nil {
		return services.QuoteExportData{}, fmt.Errorf("project not found: %w", err)
	}

	createdDate := time.Now().Format("02 Jan 2006")
	if dt := quoteRecord.GetDateTime("created"); !dt.IsZero() {
		createdDate = dt.Time().Format("02 Jan 2006")
	}

	settings := services.DefaultPricingSettings()
	if raw := quoteRecord.GetString("settings"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &settings); err != nil {
			settings = services.DefaultPricingSettings()
		}
	}

	data := services.QuoteExportData{
		CompanyName: services.CompanyName,
		ScopeLine:   services.ScopeDescription,
		ProjectName: project.GetString("name"),
		QuoteNumber: quoteRecord.GetString("quote_number"),
		CreatedDate: createdDate,

		MaterialTotal:        quoteRecord.GetFloat("material_total"),
		MaterialWithMarkup:   quoteRecord.GetFloat("material_with_markup"),
		LaborHours:           quoteRecord.GetFloat("labor_hours"),
		LaborTotal:           quoteRecord.GetFloat("labor_total"),
		Subtotal:             quoteRecord.GetFloat("subtotal"),
		OverheadProfitPct:    settings.OverheadProfitPct,
		OverheadProfitAmount: quoteRecord.GetFloat("overhead_profit_amount"),
		ContingencyPct:       settings.ContingencyPct,
		ContingencyAmount:    quoteRecord.GetFloat("contingency_amount"),
		GrandTotal:           quoteRecord.GetFloat("grand_total"),

		Notes:    stringSliceField(quoteRecord, "notes"),
		Warnings: stringSliceField(quoteRecord, "warnings"),
	}

	lineItems, err := app.FindRecordsByFilter(
		"quote_line_items", "quote = {:quoteId}", "sort_order", 0, 0,
		map[string]any{"quoteId": quoteID})
	if err != nil {
		lineItems = nil
	}
	for i, li := range lineItems {
		data.Rows = append(data.Rows, services.QuoteExportRow{
			Index:       strconv.Itoa(i + 1),
			Description: li.GetString("description"),
			Qty:         li.GetFloat("qty"),
			Unit:        li.GetString("unit"),
			UnitPrice:   li.GetFloat("unit_price"),
			TotalPrice:  li.GetFloat("total_price"),
			Category:    li.GetString("category"),
		})
	}

	bomItems, err := app.FindRecordsByFilter(
		"bom_items", "quote = {:quoteId}", "sort_order", 0, 0,
		map[string]any{"quoteId": quoteID})
	if err != nil {
		bomItems = nil
	}
	for i, bi := range bomItems {
		data.BOMRows = append(data.BOMRows, services.BOMExportRow{
			Index:       strconv.Itoa(i + 1),
			Description: bi.GetString("description"),
			Qty:         bi.GetFloat("qty"),
			Unit:        bi.GetString("unit"),
		})
	}

	return data, nil
}

// stringSliceField reads a JSON field stored as an array of strings.
func stringSliceField(r *core.Record, field string) []string {
	raw := r.GetString(field)
	if raw == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil
	}
	return out
}

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

// HandleQuoteExportExcel returns a handler that generates and downloads the
// Excel workbook for a quote.
// Route: GET /api/estimator/projects/{projectId}/quotes/{id}/export/excel
func HandleQuoteExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		if quoteID == "" {
			return e.String(http.StatusBadRequest, "Missing quote ID")
		}

		data, err := buildQuoteExportData(app, e.Request.PathValue("projectId"), quoteID)
		if err != nil {
			log.Printf("export_excel: %v", err)
			return e.String(http.StatusNotFound, "Quote not found")
		}

		xlsxBytes, err := services.GenerateQuoteExcel(data)
		if err != nil {
			log.Printf("export_excel: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := fmt.Sprintf("Quote_%s.xlsx", sanitizeFilename(data.QuoteNumber))

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleQuoteExportPDF returns a handler that generates and downloads the bid
// package PDF for a quote.
// Route: GET /api/estimator/projects/{projectId}/quotes/{id}/export/pdf
func HandleQuoteExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		if quoteID == "" {
			return e.String(http.StatusBadRequest, "Missing quote ID")
		}

		data, err := buildQuoteExportData(app, e.Request.PathValue("projectId"), quoteID)
		if err != nil {
			log.Printf("export_pdf: %v", err)
			return e.String(http.StatusNotFound, "Quote not found")
		}

		pdfBytes, err := services.GenerateQuotePDF(data)
		if err != nil {
			log.Printf("export_pdf: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate PDF file")
		}

		filename := fmt.Sprintf("Quote_%s.pdf", sanitizeFilename(data.QuoteNumber))

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}
