package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateQuoteExcel creates an Excel workbook for a quote: a Quote sheet with
// priced line items and the financial summary, and a Bill of Materials sheet
// with purchase quantities. Returns the file contents as a byte slice.
func GenerateQuoteExcel(data QuoteExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	quoteSheet := "Quote"
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, quoteSheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	styles, err := newQuoteStyles(f)
	if err != nil {
		return nil, err
	}

	if err := writeQuoteSheet(f, quoteSheet, data, styles); err != nil {
		return nil, err
	}

	bomSheet := "Bill of Materials"
	if _, err := f.NewSheet(bomSheet); err != nil {
		return nil, fmt.Errorf("create BOM sheet: %w", err)
	}
	if err := writeBOMSheet(f, bomSheet, data, styles); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

// quoteStyles bundles the style IDs shared by both sheets.
type quoteStyles struct {
	title        int
	subtitle     int
	header       int
	item         int
	summaryLabel int
	summaryValue int
	note         int
}

func newQuoteStyles(f *excelize.File) (quoteStyles, error) {
	var s quoteStyles
	var err error

	s.title, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return s, fmt.Errorf("create title style: %w", err)
	}

	s.subtitle, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11},
	})
	if err != nil {
		return s, fmt.Errorf("create subtitle style: %w", err)
	}

	s.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return s, fmt.Errorf("create header style: %w", err)
	}

	s.item, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return s, fmt.Errorf("create item style: %w", err)
	}

	s.summaryLabel, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return s, fmt.Errorf("create summary label style: %w", err)
	}

	s.summaryValue, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
	})
	if err != nil {
		return s, fmt.Errorf("create summary value style: %w", err)
	}

	s.note, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Italic: true, Size: 9},
	})
	if err != nil {
		return s, fmt.Errorf("create note style: %w", err)
	}

	return s, nil
}

func writeQuoteSheet(f *excelize.File, sheet string, data QuoteExportData, styles quoteStyles) error {
	columns := []string{"A", "B", "C", "D", "E", "F"}
	lastCol := columns[len(columns)-1]

	widths := []float64{6, 44, 12, 8, 14, 16}
	for i, col := range columns {
		if err := f.SetColWidth(sheet, col, col, widths[i]); err != nil {
			return fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	// Header block: company, project, quote number, date.
	if err := f.MergeCell(sheet, "A1", lastCol+"1"); err != nil {
		return fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheet, "A1", sanitizeExcelCell(data.CompanyName))
	f.SetCellStyle(sheet, "A1", lastCol+"1", styles.title)

	f.MergeCell(sheet, "A2", lastCol+"2")
	f.SetCellValue(sheet, "A2", "Insulation Quote - "+sanitizeExcelCell(data.ProjectName))
	f.SetCellStyle(sheet, "A2", lastCol+"2", styles.subtitle)

	if data.QuoteNumber != "" {
		f.MergeCell(sheet, "A3", lastCol+"3")
		f.SetCellValue(sheet, "A3", "Quote #: "+data.QuoteNumber)
		f.SetCellStyle(sheet, "A3", lastCol+"3", styles.subtitle)
	}

	f.MergeCell(sheet, "A4", lastCol+"4")
	f.SetCellValue(sheet, "A4", "Date: "+data.CreatedDate)
	f.SetCellStyle(sheet, "A4", lastCol+"4", styles.subtitle)

	// Column headers.
	headers := []string{"#", "Description", "Qty", "Unit", "Unit Price", "Total"}
	for i, h := range headers {
		f.SetCellValue(sheet, fmt.Sprintf("%s6", columns[i]), h)
	}
	f.SetCellStyle(sheet, "A6", lastCol+"6", styles.header)

	// Line items.
	row := 7
	for _, r := range data.Rows {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheet, "A"+rowStr, r.Index)
		f.SetCellValue(sheet, "B"+rowStr, sanitizeExcelCell(r.Description))
		f.SetCellValue(sheet, "C"+rowStr, FormatQty(r.Qty))
		f.SetCellValue(sheet, "D"+rowStr, sanitizeExcelCell(r.Unit))
		f.SetCellValue(sheet, "E"+rowStr, FormatUSD(r.UnitPrice))
		f.SetCellValue(sheet, "F"+rowStr, FormatUSD(r.TotalPrice))
		f.SetCellStyle(sheet, "A"+rowStr, lastCol+rowStr, styles.item)
		row++
	}

	// Financial summary, in pipeline order.
	row++
	summary := []struct {
		label string
		value string
	}{
		{"Material Cost:", FormatUSD(data.MaterialTotal)},
		{"Material with Markup:", FormatUSD(data.MaterialWithMarkup)},
		{fmt.Sprintf("Labor (%s hrs):", FormatQty(data.LaborHours)), FormatUSD(data.LaborTotal)},
		{"Subtotal:", FormatUSD(data.Subtotal)},
		{fmt.Sprintf("Overhead & Profit (%.0f%%):", data.OverheadProfitPct), FormatUSD(data.OverheadProfitAmount)},
		{fmt.Sprintf("Contingency (%.0f%%):", data.ContingencyPct), FormatUSD(data.ContingencyAmount)},
		{"Grand Total:", FormatUSD(data.GrandTotal)},
	}
	for _, line := range summary {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheet, "E"+rowStr, line.label)
		f.SetCellStyle(sheet, "E"+rowStr, "E"+rowStr, styles.summaryLabel)
		f.SetCellValue(sheet, "F"+rowStr, line.value)
		f.SetCellStyle(sheet, "F"+rowStr, "F"+rowStr, styles.summaryValue)
		row++
	}

	// Notes block.
	if len(data.Notes) > 0 {
		row++
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheet, "A"+rowStr, "Notes:")
		f.SetCellStyle(sheet, "A"+rowStr, "A"+rowStr, styles.summaryValue)
		row++
		for _, note := range data.Notes {
			rowStr = fmt.Sprintf("%d", row)
			f.MergeCell(sheet, "A"+rowStr, lastCol+rowStr)
			f.SetCellValue(sheet, "A"+rowStr, sanitizeExcelCell("- "+note))
			f.SetCellStyle(sheet, "A"+rowStr, lastCol+rowStr, styles.note)
			row++
		}
	}

	return nil
}

func writeBOMSheet(f *excelize.File, sheet string, data QuoteExportData, styles quoteStyles) error {
	columns := []string{"A", "B", "C", "D"}
	lastCol := columns[len(columns)-1]

	widths := []float64{6, 50, 12, 10}
	for i, col := range columns {
		if err := f.SetColWidth(sheet, col, col, widths[i]); err != nil {
			return fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	if err := f.MergeCell(sheet, "A1", lastCol+"1"); err != nil {
		return fmt.Errorf("merge BOM title: %w", err)
	}
	f.SetCellValue(sheet, "A1", "Bill of Materials")
	f.SetCellStyle(sheet, "A1", lastCol+"1", styles.title)

	headers := []string{"#", "Material", "Qty", "Unit"}
	for i, h := range headers {
		f.SetCellValue(sheet, fmt.Sprintf("%s3", columns[i]), h)
	}
	f.SetCellStyle(sheet, "A3", lastCol+"3", styles.header)

	row := 4
	for _, r := range data.BOMRows {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheet, "A"+rowStr, r.Index)
		f.SetCellValue(sheet, "B"+rowStr, sanitizeExcelCell(r.Description))
		f.SetCellValue(sheet, "C"+rowStr, FormatQty(r.Qty))
		f.SetCellValue(sheet, "D"+rowStr, sanitizeExcelCell(r.Unit))
		f.SetCellStyle(sheet, "A"+rowStr, lastCol+rowStr, styles.item)
		row++
	}

	return nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
