package services

import "strconv"

// QuoteExportRow is a single line in the quote export table.
type QuoteExportRow struct {
	Index       string
	Description string
	Qty         float64
	Unit        string
	UnitPrice   float64
	TotalPrice  float64
	Category    string
}

// BOMExportRow is a single purchasable line in the exported bill of materials.
type BOMExportRow struct {
	Index       string
	Description string
	Qty         float64
	Unit        string
}

// QuoteExportData holds everything the Excel and PDF exporters need for one
// quote, flattened from QuoteResult plus the project record.
type QuoteExportData struct {
	CompanyName string
	ScopeLine   string

	ProjectName string
	QuoteNumber string
	CreatedDate string

	Rows    []QuoteExportRow
	BOMRows []BOMExportRow

	MaterialTotal        float64
	MaterialWithMarkup   float64
	LaborHours           float64
	LaborTotal           float64
	Subtotal             float64
	OverheadProfitPct    float64
	OverheadProfitAmount float64
	ContingencyPct       float64
	ContingencyAmount    float64
	GrandTotal           float64

	Notes    []string
	Warnings []string
}

// NewQuoteExportData flattens a QuoteResult into export form.
func NewQuoteExportData(quote *QuoteResult, projectName, quoteNumber, createdDate string) QuoteExportData {
	data := QuoteExportData{
		CompanyName: CompanyName,
		ScopeLine:   ScopeDescription,
		ProjectName: projectName,
		QuoteNumber: quoteNumber,
		CreatedDate: createdDate,

		MaterialTotal:        quote.MaterialTotal,
		MaterialWithMarkup:   quote.MaterialWithMarkup,
		LaborHours:           quote.LaborHours,
		LaborTotal:           quote.LaborTotal,
		Subtotal:             quote.Subtotal,
		OverheadProfitPct:    quote.Settings.OverheadProfitPct,
		OverheadProfitAmount: quote.OverheadProfitAmount,
		ContingencyPct:       quote.Settings.ContingencyPct,
		ContingencyAmount:    quote.ContingencyAmount,
		GrandTotal:           quote.GrandTotal,

		Notes:    quote.Notes,
		Warnings: quote.Warnings,
	}

	for i, item := range quote.LineItems {
		data.Rows = append(data.Rows, QuoteExportRow{
			Index:       itemIndex(i),
			Description: item.Description,
			Qty:         item.Quantity,
			Unit:        item.Unit,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
			Category:    item.Category,
		})
	}
	for i, line := range quote.BillOfMaterials {
		data.BOMRows = append(data.BOMRows, BOMExportRow{
			Index:       itemIndex(i),
			Description: line.Description,
			Qty:         line.Quantity,
			Unit:        line.Unit,
		})
	}
	return data
}

func itemIndex(i int) string {
	return strconv.Itoa(i + 1)
}
