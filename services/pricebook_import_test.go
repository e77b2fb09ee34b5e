package services

import (
	"strings"
	"testing"
)

func TestParsePriceBookJSON(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		pb, err := ParsePriceBookJSON([]byte(`{"fiberglass_1.5": 4.85, "FSK_Facing": 1.40}`))
		if err != nil {
			t.Fatalf("ParsePriceBookJSON error: %v", err)
		}
		if got, ok := pb.Price("fiberglass_1.5"); !ok || got != 4.85 {
			t.Errorf("fiberglass_1.5 = %v, %v, want 4.85, true", got, ok)
		}
		// keys normalize on Set
		if got, ok := pb.Price("fsk_facing"); !ok || got != 1.40 {
			t.Errorf("fsk_facing = %v, %v, want 1.40, true", got, ok)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		if _, err := ParsePriceBookJSON([]byte(`{"fiberglass_1.5": "cheap"}`)); err == nil {
			t.Error("expected error for non-numeric price")
		}
	})

	t.Run("non-positive price", func(t *testing.T) {
		if _, err := ParsePriceBookJSON([]byte(`{"fiberglass_1.5": 0}`)); err == nil {
			t.Error("expected error for zero price")
		}
		if _, err := ParsePriceBookJSON([]byte(`{"fiberglass_1.5": -2}`)); err == nil {
			t.Error("expected error for negative price")
		}
	})
}

func TestValidatePriceBookRows(t *testing.T) {
	csv := "Price Key,Unit Price\n" +
		"Fiberglass_1.5,$4.85\n" +
		"asj_facing,1.90\n" +
		",2.00\n" +
		"mastic,free\n"

	headers, rows, err := parseCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("parseCSV error: %v", err)
	}

	columnKeys, _ := mapHeadersToFields(headers, PriceBookTemplateFields())
	if columnKeys[0] != "price_key" || columnKeys[1] != "unit_price" {
		t.Fatalf("columnKeys = %v", columnKeys)
	}
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}
}
