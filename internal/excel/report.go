// Package excel renders the inventory valuation report as an xlsx
// workbook for export to spreadsheet tooling.
package excel

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"stockpilot/backend/internal/finance"
	"stockpilot/backend/internal/models"
)

const reportSheet = "Inventory"

var reportHeaders = []string{
	"Name", "Category", "SKU", "Barcode", "Quantity", "Min Quantity",
	"Cost", "Price", "Stock Value", "Low Stock",
}

// WriteInventoryReport produces one row per item plus a totals row.
// Stock values per line are unrounded quantity*cost, matching the
// valuation functions.
func WriteInventoryReport(items []models.Item) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(reportSheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	for col, h := range reportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(reportSheet, cell, h); err != nil {
			return nil, err
		}
	}

	stock := make([]finance.StockInput, 0, len(items))
	for i, item := range items {
		rowNum := i + 2
		lowStock := ""
		if item.IsLowStock() {
			lowStock = "yes"
		}
		values := []any{
			item.Name, item.Category, item.SKU, item.Barcode,
			item.Quantity, item.MinQuantity, item.Cost, item.Price,
			item.StockValue(), lowStock,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(reportSheet, cell, v); err != nil {
				return nil, err
			}
		}
		stock = append(stock, finance.StockInput{Quantity: item.Quantity, Cost: item.Cost})
	}

	totalRow := len(items) + 2
	totalLabel, err := excelize.CoordinatesToCellName(1, totalRow)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellValue(reportSheet, totalLabel, "Total"); err != nil {
		return nil, err
	}
	totalCell, err := excelize.CoordinatesToCellName(9, totalRow)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellValue(reportSheet, totalCell, finance.InventoryValue(stock)); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
