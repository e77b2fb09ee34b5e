package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// TemplateField describes one column of an importable takeoff or price book
// file.
type TemplateField struct {
	Key      string
	Label    string
	Required bool
}

// MeasurementTemplateFields returns the columns of the measurement import
// template, in file order.
func MeasurementTemplateFields() []TemplateField {
	return []TemplateField{
		{Key: "item_id", Label: "Item ID", Required: true},
		{Key: "system_type", Label: "System Type", Required: true},
		{Key: "size", Label: "Size", Required: true},
		{Key: "length_ft", Label: "Length (LF)", Required: true},
		{Key: "location", Label: "Location"},
		{Key: "elbows", Label: "Elbows"},
		{Key: "tees", Label: "Tees"},
		{Key: "reducers", Label: "Reducers"},
		{Key: "valves", Label: "Valves"},
		{Key: "notes", Label: "Notes"},
	}
}

// ValidationError represents a single field-level error on one row.
type ValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult is returned after parsing and validating an uploaded file.
type ValidationResult struct {
	TotalRows int               `json:"total_rows"`
	ValidRows int               `json:"valid_rows"`
	ErrorRows int               `json:"error_rows"`
	Errors    []ValidationError `json:"errors"`
	Items     []MeasurementItem `json:"-"`
	FileName  string            `json:"-"`
}

// parseCSV reads a CSV file and returns headers + data rows.
func parseCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return allRows[0], allRows[1:], nil
}

// parseExcel reads an xlsx file and returns headers + data rows from the first sheet.
func parseExcel(file multipart.File) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return rows[0], rows[1:], nil
}

// parseUpload dispatches on the file extension.
func parseUpload(file multipart.File, fileName string) ([]string, [][]string, error) {
	lowerName := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(lowerName, ".csv"):
		return parseCSV(file)
	case strings.HasSuffix(lowerName, ".xlsx"):
		return parseExcel(file)
	default:
		return nil, nil, fmt.Errorf("unsupported file format: must be .csv or .xlsx")
	}
}

// mapHeadersToFields maps uploaded column headers to TemplateField keys.
// Returns an ordered list of field keys (one per column, "" for unrecognized)
// plus the unrecognized header labels.
func mapHeadersToFields(headers []string, fields []TemplateField) ([]string, []string) {
	labelToKey := make(map[string]string, len(fields)*2)
	for _, f := range fields {
		labelToKey[strings.ToLower(strings.TrimSpace(f.Label))] = f.Key
		labelToKey[f.Key] = f.Key
	}

	mapped := make([]string, len(headers))
	var unrecognized []string

	for i, h := range headers {
		norm := strings.ToLower(strings.TrimSpace(h))
		norm = strings.TrimSpace(strings.TrimSuffix(norm, " *"))

		if key, ok := labelToKey[norm]; ok {
			mapped[i] = key
		} else {
			mapped[i] = ""
			unrecognized = append(unrecognized, h)
		}
	}
	return mapped, unrecognized
}

// ValidateMeasurementFile parses and validates an uploaded takeoff file. Rows
// that validate cleanly are returned as MeasurementItems; rows with errors are
// reported per field and excluded from Items.
func ValidateMeasurementFile(file multipart.File, fileName string) (*ValidationResult, error) {
	headers, dataRows, err := parseUpload(file, fileName)
	if err != nil {
		return nil, err
	}

	columnKeys, _ := mapHeadersToFields(headers, MeasurementTemplateFields())

	result := &ValidationResult{
		TotalRows: len(dataRows),
		FileName:  fileName,
	}

	for rowIdx, row := range dataRows {
		rowNum := rowIdx + 2 // 1-indexed, +1 for header row
		rowData := make(map[string]string)
		for colIdx, key := range columnKeys {
			if key == "" {
				continue
			}
			value := ""
			if colIdx < len(row) {
				value = strings.TrimSpace(row[colIdx])
			}
			rowData[key] = value
		}

		item, rowErrors := measurementFromRow(rowNum, rowData)
		if len(rowErrors) > 0 {
			result.Errors = append(result.Errors, rowErrors...)
			continue
		}
		result.Items = append(result.Items, item)
	}

	errorRowSet := make(map[int]bool)
	for _, e := range result.Errors {
		errorRowSet[e.Row] = true
	}
	result.ErrorRows = len(errorRowSet)
	result.ValidRows = result.TotalRows - result.ErrorRows

	return result, nil
}

// measurementFromRow converts one mapped row into a MeasurementItem.
func measurementFromRow(rowNum int, data map[string]string) (MeasurementItem, []ValidationError) {
	var errs []ValidationError

	if data["item_id"] == "" {
		errs = append(errs, ValidationError{Row: rowNum, Field: "Item ID", Message: "Item ID is required"})
	}

	system := ParseSystemType(strings.ToLower(strings.TrimSpace(data["system_type"])))
	if system == SystemUnknown {
		errs = append(errs, ValidationError{Row: rowNum, Field: "System Type",
			Message: fmt.Sprintf("System Type must be duct, pipe, or equipment, got %q", data["system_type"])})
	}

	if data["size"] == "" {
		errs = append(errs, ValidationError{Row: rowNum, Field: "Size", Message: "Size is required"})
	}

	length, err := strconv.ParseFloat(data["length_ft"], 64)
	if err != nil || length < 0 {
		errs = append(errs, ValidationError{Row: rowNum, Field: "Length (LF)",
			Message: fmt.Sprintf("Length must be a non-negative number, got %q", data["length_ft"])})
	}

	fittings := make(map[string]int)
	for _, kind := range []string{"elbows", "tees", "reducers", "valves"} {
		v := data[kind]
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			errs = append(errs, ValidationError{Row: rowNum, Field: titleWords(kind),
				Message: fmt.Sprintf("%s must be a non-negative whole number, got %q", titleWords(kind), v)})
			continue
		}
		if n > 0 {
			fittings[strings.TrimSuffix(kind, "s")] = n
		}
	}

	if len(errs) > 0 {
		return MeasurementItem{}, errs
	}

	var notes []string
	if data["notes"] != "" {
		notes = append(notes, data["notes"])
	}

	return MeasurementItem{
		ID:       data["item_id"],
		System:   system,
		Size:     data["size"],
		LengthFt: length,
		Fittings: fittings,
		Location: data["location"],
		Notes:    notes,
	}, nil
}
