package documents

import "github.com/inkbill/inkbill/internal/money"

// Totals holds the derived monetary columns of a document.
type Totals struct {
	Subtotal   money.Money
	TaxTotal   money.Money
	GrandTotal money.Money
}

// ComputeTotals is the single source of truth for document totals. Each line
// total is rounded to a whole minor unit before summation; tax is rounded once
// over the subtotal.
func ComputeTotals(items []LineItemInput, taxRatePercent float64) Totals {
	var subtotal money.Money
	for _, item := range items {
		subtotal = subtotal.Add(item.UnitPrice.MulFloat(item.Quantity))
	}

	taxTotal := subtotal.MulFloat(taxRatePercent / 100)

	return Totals{
		Subtotal:   subtotal,
		TaxTotal:   taxTotal,
		GrandTotal: subtotal.Add(taxTotal),
	}
}
