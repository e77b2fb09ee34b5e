package services

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"
)

// PriceBookTemplateFields returns the two columns of the price book import
// template.
func PriceBookTemplateFields() []TemplateField {
	return []TemplateField{
		{Key: "price_key", Label: "Price Key", Required: true},
		{Key: "unit_price", Label: "Unit Price", Required: true},
	}
}

// ParsePriceBookJSON loads a price book from a JSON object of key -> unit
// price, e.g. {"fiberglass_1.5": 4.50}. Non-positive prices are rejected.
func ParsePriceBookJSON(data []byte) (*PriceBook, error) {
	var raw map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse price book JSON: %w", err)
	}

	pb := NewPriceBook()
	for key, price := range raw {
		if price <= 0 {
			return nil, fmt.Errorf("price for %q must be positive, got %v", key, price)
		}
		pb.Set(key, price)
	}
	return pb, nil
}

// ValidatePriceBookFile parses and validates an uploaded price book file
// (.csv or .xlsx with Price Key and Unit Price columns). Valid rows are
// returned as key/price pairs ready to upsert.
func ValidatePriceBookFile(file multipart.File, fileName string) (*ValidationResult, map[string]float64, error) {
	headers, dataRows, err := parseUpload(file, fileName)
	if err != nil {
		return nil, nil, err
	}

	columnKeys, _ := mapHeadersToFields(headers, PriceBookTemplateFields())

	result := &ValidationResult{
		TotalRows: len(dataRows),
		FileName:  fileName,
	}
	prices := make(map[string]float64)

	for rowIdx, row := range dataRows {
		rowNum := rowIdx + 2
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

		key := strings.ToLower(strings.TrimSpace(rowData["price_key"]))
		if key == "" {
			result.Errors = append(result.Errors, ValidationError{
				Row: rowNum, Field: "Price Key", Message: "Price Key is required"})
			continue
		}

		priceStr := strings.TrimPrefix(rowData["unit_price"], "$")
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price <= 0 {
			result.Errors = append(result.Errors, ValidationError{
				Row: rowNum, Field: "Unit Price",
				Message: fmt.Sprintf("Unit Price must be a positive number, got %q", rowData["unit_price"])})
			continue
		}

		prices[key] = price
	}

	errorRowSet := make(map[int]bool)
	for _, e := range result.Errors {
		errorRowSet[e.Row] = true
	}
	result.ErrorRows = len(errorRowSet)
	result.ValidRows = result.TotalRows - result.ErrorRows

	return result, prices, nil
}
