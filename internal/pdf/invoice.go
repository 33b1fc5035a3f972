// Package pdf renders invoices as PDF documents for sharing from the
// mobile client.
package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"stockpilot/backend/internal/finance"
	"stockpilot/backend/internal/models"
)

// Data bundles everything one invoice document needs.
type Data struct {
	Invoice  models.Invoice
	Items    []models.InvoiceItem
	Customer models.Customer
	// ItemNames maps item id to display name for the description column.
	ItemNames map[uint]string
	Currency  string
}

// Render produces the PDF bytes for an invoice.
func Render(d Data) ([]byte, error) {
	currency := d.Currency
	if currency == "" {
		currency = "USD"
	}
	m := maroto.New()

	m.AddRows(
		text.NewRow(12, "INVOICE", props.Text{Size: 18, Style: fontstyle.Bold}),
		row.New(6).Add(
			text.NewCol(6, d.Invoice.InvoiceNumber, props.Text{Style: fontstyle.Bold}),
			text.NewCol(6, d.Invoice.Date.Format("2006-01-02"), props.Text{Align: align.Right}),
		),
		row.New(6).Add(
			text.NewCol(6, "Bill to: "+d.Customer.Name),
			text.NewCol(6, "Status: "+string(d.Invoice.Status), props.Text{Align: align.Right}),
		),
		line.NewRow(4),
	)

	m.AddRows(row.New(7).Add(
		text.NewCol(6, "Item", props.Text{Style: fontstyle.Bold}),
		text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Unit", props.Text{Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Total", props.Text{Style: fontstyle.Bold, Align: align.Right}),
	))
	for _, li := range d.Items {
		name := d.ItemNames[li.ItemID]
		if name == "" {
			name = fmt.Sprintf("Item #%d", li.ItemID)
		}
		m.AddRows(row.New(6).Add(
			text.NewCol(6, name),
			text.NewCol(2, fmt.Sprintf("%d", li.Quantity), props.Text{Align: align.Right}),
			text.NewCol(2, finance.FormatCurrency(li.UnitPrice, currency), props.Text{Align: align.Right}),
			text.NewCol(2, finance.FormatCurrency(li.TotalPrice, currency), props.Text{Align: align.Right}),
		))
	}

	m.AddRows(
		line.NewRow(4),
		totalRow("Subtotal", d.Invoice.Subtotal, currency, false),
		totalRow(fmt.Sprintf("Tax (%s)", finance.FormatPercentage(d.Invoice.TaxRate, 0)), d.Invoice.TaxAmount, currency, false),
		totalRow("Total", d.Invoice.Total, currency, true),
	)
	if d.Invoice.Notes != "" {
		m.AddRows(text.NewRow(10, "Notes: "+d.Invoice.Notes, props.Text{Size: 9}))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate invoice pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func totalRow(label string, amount float64, currency string, bold bool) core.Row {
	style := fontstyle.Normal
	if bold {
		style = fontstyle.Bold
	}
	return row.New(6).Add(
		text.NewCol(8, label, props.Text{Align: align.Right, Style: style}),
		text.NewCol(4, finance.FormatCurrency(amount, currency), props.Text{Align: align.Right, Style: style}),
	)
}
