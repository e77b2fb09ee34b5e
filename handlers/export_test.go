package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"insulationestimator/testhelpers"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "GII-Q-RMOB-2026-001", "GII-Q-RMOB-2026-001"},
		{"spaces", "Quote Final v2", "Quote-Final-v2"},
		{"slashes", "RMOB/2026\\01", "RMOB-2026-01"},
		{"colons", "Quote: Final", "Quote--Final"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizeFilename(tt.input)
			if got != tt.want {
				t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestHandleQuoteExportExcel(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Export Project")
	testhelpers.CreateTestMeasurement(t, app, proj.Id, "D-1", "duct", "24x20", 180)
	testhelpers.CreateTestSpec(t, app, proj.Id, "duct", "fiberglass", 1.5)
	testhelpers.SeedTestPriceBook(t, app, "", map[string]float64{"fiberglass_1.5": 4.50})

	// persist a quote through the estimate handler
	estReq := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/estimator/projects/%s/estimate", proj.Id), nil)
	estReq.SetPathValue("projectId", proj.Id)
	estRec := httptest.NewRecorder()
	if err := HandleEstimateRun(app)(newTestRequestEvent(app, estReq, estRec)); err != nil {
		t.Fatalf("estimate error: %v", err)
	}
	if estRec.Code != http.StatusCreated {
		t.Fatalf("estimate returned %d: %s", estRec.Code, estRec.Body.String())
	}
	quotes, _ := app.FindRecordsByFilter("quotes", "project = {:p}", "", 1, 0, map[string]any{"p": proj.Id})
	if len(quotes) != 1 {
		t.Fatal("no stored quote")
	}

	handler := HandleQuoteExportExcel(app)
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/estimator/projects/%s/quotes/%s/export/excel", proj.Id, quotes[0].Id), nil)
	req.SetPathValue("projectId", proj.Id)
	req.SetPathValue("id", quotes[0].Id)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, ".xlsx") {
		t.Errorf("Content-Disposition = %q", got)
	}

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("response is not valid Excel: %v", err)
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "Quote" {
		t.Errorf("sheets = %v", sheets)
	}
	a1, _ := f.GetCellValue("Quote", "A1")
	if a1 == "" {
		t.Error("quote sheet is missing the company header")
	}
}

func TestHandleQuoteExportPDF(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "PDF Export Project")
	quote := testhelpers.CreateTestQuote(t, app, proj.Id, "GII-Q-TST-001-2026-001")

	handler := HandleQuoteExportPDF(app)
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/estimator/projects/%s/quotes/%s/export/pdf", proj.Id, quote.Id), nil)
	req.SetPathValue("projectId", proj.Id)
	req.SetPathValue("id", quote.Id)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "application/pdf" {
		t.Errorf("Content-Type = %q", got)
	}
	body := rec.Body.Bytes()
	if len(body) < 5 || string(body[:5]) != "%PDF-" {
		t.Error("response does not start with a PDF header")
	}
}

func TestHandleQuoteExport_WrongProject(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	projA := testhelpers.CreateTestProject(t, app, "Export Owner")
	projB := testhelpers.CreateTestProject(t, app, "Export Other")
	quote := testhelpers.CreateTestQuote(t, app, projA.Id, "GII-Q-TST-001-2026-001")

	handler := HandleQuoteExportExcel(app)
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/estimator/projects/%s/quotes/%s/export/excel", projB.Id, quote.Id), nil)
	req.SetPathValue("projectId", projB.Id)
	req.SetPathValue("id", quote.Id)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for quote from another project, got %d", rec.Code)
	}
}

func TestBuildQuoteExportData(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Data Project")
	quote := testhelpers.CreateTestQuote(t, app, proj.Id, "GII-Q-TST-001-2026-007")
	quote.Set("grand_total", 1155.0)
	quote.Set("notes", []string{"Pricing valid for 30 days"})
	if err := app.Save(quote); err != nil {
		t.Fatalf("save quote: %v", err)
	}

	data, err := buildQuoteExportData(app, proj.Id, quote.Id)
	if err != nil {
		t.Fatalf("buildQuoteExportData error: %v", err)
	}
	if data.QuoteNumber != "GII-Q-TST-001-2026-007" {
		t.Errorf("quote number = %q", data.QuoteNumber)
	}
	if data.ProjectName != "Data Project" {
		t.Errorf("project name = %q", data.ProjectName)
	}
	if data.GrandTotal != 1155 {
		t.Errorf("grand total = %v", data.GrandTotal)
	}
	if len(data.Notes) != 1 {
		t.Errorf("notes = %v", data.Notes)
	}
	if data.CreatedDate == "" {
		t.Error("created date is empty")
	}
}
