package excel

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"stockpilot/backend/internal/models"
)

func TestWriteInventoryReport(t *testing.T) {
	items := []models.Item{
		{Name: "Widget", Category: "Tools", SKU: "W-1", Quantity: 2, MinQuantity: 5, Cost: 4, Price: 10},
		{Name: "Gadget", Category: "Other", Quantity: 20, MinQuantity: 5, Cost: 1.5, Price: 3},
	}
	data, err := WriteInventoryReport(items)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty workbook")
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Inventory")
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	// Header, two items, totals row.
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows got %d", len(rows))
	}
	if rows[0][0] != "Name" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[1][0] != "Widget" || rows[2][0] != "Gadget" {
		t.Fatalf("unexpected item rows: %v / %v", rows[1], rows[2])
	}
	// The low-stock marker follows the same inclusive rule as the
	// repository query.
	if rows[1][9] != "yes" {
		t.Fatalf("low-stock item not flagged: %v", rows[1])
	}
}

func TestWriteInventoryReportEmpty(t *testing.T) {
	data, err := WriteInventoryReport(nil)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows("Inventory")
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	// Header plus totals row only.
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows got %d", len(rows))
	}
}
