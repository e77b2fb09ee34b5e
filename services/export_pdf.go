package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GenerateQuotePDF creates the bid package PDF for a quote using maroto/v2:
// company header, priced line items, bill of materials schedule, financial
// summary, and the notes block. Returns the raw PDF bytes or an error.
func GenerateQuotePDF(data QuoteExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addQuoteHeader(m, data)
	addQuoteTableHeader(m)
	for _, r := range data.Rows {
		addQuoteTableRow(m, r)
	}
	addQuoteSummary(m, data)
	addBOMSection(m, data)
	addQuoteNotes(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

// addQuoteHeader adds the company block, project name, quote number, and date.
func addQuoteHeader(m core.Maroto, data QuoteExportData) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(data.CompanyName, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
		row.New(6).Add(
			col.New(12).Add(
				text.New(data.ScopeLine, props.Text{
					Size:  8,
					Align: align.Center,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
	)

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("Project: %s", data.ProjectName), props.Text{
					Size:  9,
					Align: align.Left,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Date: %s", data.CreatedDate), props.Text{
					Size:  9,
					Align: align.Right,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
	)

	if data.QuoteNumber != "" {
		m.AddRows(
			row.New(8).Add(
				col.New(12).Add(
					text.New(fmt.Sprintf("Quote #: %s", data.QuoteNumber), props.Text{
						Size:  10,
						Style: fontstyle.Bold,
						Align: align.Left,
					}),
				),
			),
		)
	}

	m.AddRows(row.New(4))
}

// addQuoteTableHeader adds the column header row for the line item table.
func addQuoteTableHeader(m core.Maroto) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left

	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(
				text.New("#", headerText),
			).WithStyle(&headerCell),
			col.New(5).Add(
				text.New("Description", headerTextLeft),
			).WithStyle(&headerCell),
			col.New(1).Add(
				text.New("Qty", headerText),
			).WithStyle(&headerCell),
			col.New(1).Add(
				text.New("Unit", headerText),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Unit Price", headerText),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Total", headerText),
			).WithStyle(&headerCell),
		),
	)
}

// addQuoteTableRow adds one priced line to the table. Labor rows get a light
// gray background to separate installation from materials.
func addQuoteTableRow(m core.Maroto, r QuoteExportRow) {
	var cellStyle *props.Cell
	if r.Category == CategoryLabor {
		bg := &props.Color{Red: 245, Green: 245, Blue: 245}
		cellStyle = &props.Cell{BackgroundColor: bg}
	}

	baseText := props.Text{Size: 7, Align: align.Center}
	leftText := baseText
	leftText.Align = align.Left
	rightText := baseText
	rightText.Align = align.Right

	colIndex := col.New(1).Add(text.New(r.Index, baseText))
	colDesc := col.New(5).Add(text.New(r.Description, leftText))
	colQty := col.New(1).Add(text.New(FormatQty(r.Qty), rightText))
	colUnit := col.New(1).Add(text.New(r.Unit, baseText))
	colUnitPrice := col.New(2).Add(text.New(FormatUSD(r.UnitPrice), rightText))
	colTotal := col.New(2).Add(text.New(FormatUSD(r.TotalPrice), rightText))

	if cellStyle != nil {
		colIndex = colIndex.WithStyle(cellStyle)
		colDesc = colDesc.WithStyle(cellStyle)
		colQty = colQty.WithStyle(cellStyle)
		colUnit = colUnit.WithStyle(cellStyle)
		colUnitPrice = colUnitPrice.WithStyle(cellStyle)
		colTotal = colTotal.WithStyle(cellStyle)
	}

	m.AddRows(
		row.New(7).Add(
			colIndex,
			colDesc,
			colQty,
			colUnit,
			colUnitPrice,
			colTotal,
		),
	)
}

// addQuoteSummary adds the financial pipeline section, one row per step so the
// quote is auditable against the estimate.
func addQuoteSummary(m core.Maroto, data QuoteExportData) {
	m.AddRows(row.New(6))

	summaryBg := &props.Color{Red: 240, Green: 240, Blue: 240}
	summaryCell := &props.Cell{BackgroundColor: summaryBg}

	labelStyle := props.Text{Size: 9, Align: align.Right}
	valueStyle := props.Text{Size: 9, Align: align.Right}
	boldLabel := labelStyle
	boldLabel.Style = fontstyle.Bold
	boldValue := valueStyle
	boldValue.Style = fontstyle.Bold

	lines := []struct {
		label string
		value string
		bold  bool
	}{
		{"Material Cost", FormatUSD(data.MaterialTotal), false},
		{"Material with Markup", FormatUSD(data.MaterialWithMarkup), false},
		{fmt.Sprintf("Labor (%s hrs)", FormatQty(data.LaborHours)), FormatUSD(data.LaborTotal), false},
		{"Subtotal", FormatUSD(data.Subtotal), false},
		{fmt.Sprintf("Overhead & Profit (%.0f%%)", data.OverheadProfitPct), FormatUSD(data.OverheadProfitAmount), false},
		{fmt.Sprintf("Contingency (%.0f%%)", data.ContingencyPct), FormatUSD(data.ContingencyAmount), false},
		{"Grand Total", FormatUSD(data.GrandTotal), true},
	}

	for _, line := range lines {
		label, value := labelStyle, valueStyle
		if line.bold {
			label, value = boldLabel, boldValue
		}
		m.AddRows(
			row.New(7).Add(
				col.New(8).Add(
					text.New(line.label, label),
				).WithStyle(summaryCell),
				col.New(4).Add(
					text.New(line.value, value),
				).WithStyle(summaryCell),
			),
		)
	}
}

// addBOMSection adds the purchase schedule below the financial summary.
func addBOMSection(m core.Maroto, data QuoteExportData) {
	if len(data.BOMRows) == 0 {
		return
	}

	m.AddRows(row.New(6))
	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New("Bill of Materials", props.Text{
					Size:  11,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
		),
	)

	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left
	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(
				text.New("#", headerText),
			).WithStyle(&headerCell),
			col.New(8).Add(
				text.New("Material", headerTextLeft),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Qty", headerText),
			).WithStyle(&headerCell),
			col.New(1).Add(
				text.New("Unit", headerText),
			).WithStyle(&headerCell),
		),
	)

	baseText := props.Text{Size: 7, Align: align.Center}
	leftText := baseText
	leftText.Align = align.Left
	rightText := baseText
	rightText.Align = align.Right

	for _, r := range data.BOMRows {
		m.AddRows(
			row.New(7).Add(
				col.New(1).Add(text.New(r.Index, baseText)),
				col.New(8).Add(text.New(r.Description, leftText)),
				col.New(2).Add(text.New(FormatQty(r.Qty), rightText)),
				col.New(1).Add(text.New(r.Unit, baseText)),
			),
		)
	}
}

// addQuoteNotes adds the notes and any engine warnings at the bottom.
func addQuoteNotes(m core.Maroto, data QuoteExportData) {
	if len(data.Notes) == 0 && len(data.Warnings) == 0 {
		return
	}

	m.AddRows(row.New(6))
	m.AddRows(
		row.New(7).Add(
			col.New(12).Add(
				text.New("Notes", props.Text{
					Size:  10,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
		),
	)

	noteStyle := props.Text{
		Size:  8,
		Align: align.Left,
		Color: &props.Color{Red: 80, Green: 80, Blue: 80},
	}
	for _, note := range data.Notes {
		m.AddRows(
			row.New(5).Add(
				col.New(12).Add(text.New("- "+note, noteStyle)),
			),
		)
	}

	if len(data.Warnings) > 0 {
		warnStyle := props.Text{
			Size:  8,
			Align: align.Left,
			Color: &props.Color{Red: 180, Green: 80, Blue: 0},
		}
		m.AddRows(row.New(3))
		for _, w := range data.Warnings {
			m.AddRows(
				row.New(5).Add(
					col.New(12).Add(text.New("! "+w, warnStyle)),
				),
			)
		}
	}
}
