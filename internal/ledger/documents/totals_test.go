package documents

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inkbill/inkbill/internal/money"
)

func TestComputeTotalsStandardInvoice(t *testing.T) {
	items := []LineItemInput{
		{Description: "Design", Quantity: 2, UnitPrice: money.FromMinorUnits(5000)},
		{Description: "Hosting", Quantity: 1, UnitPrice: money.FromMinorUnits(10000)},
	}

	totals := ComputeTotals(items, 15)

	require.Equal(t, money.FromMinorUnits(20000), totals.Subtotal)
	require.Equal(t, money.FromMinorUnits(3000), totals.TaxTotal)
	require.Equal(t, money.FromMinorUnits(23000), totals.GrandTotal)
}

func TestComputeTotalsEmptyItems(t *testing.T) {
	totals := ComputeTotals(nil, 15)

	require.True(t, totals.Subtotal.IsZero())
	require.True(t, totals.TaxTotal.IsZero())
	require.True(t, totals.GrandTotal.IsZero())
}

func TestComputeTotalsZeroTaxRate(t *testing.T) {
	items := []LineItemInput{
		{Description: "Consulting", Quantity: 3, UnitPrice: money.FromMinorUnits(3333)},
	}

	totals := ComputeTotals(items, 0)

	require.Equal(t, money.FromMinorUnits(9999), totals.Subtotal)
	require.True(t, totals.TaxTotal.IsZero())
	require.Equal(t, totals.Subtotal, totals.GrandTotal)
}

func TestComputeTotalsFractionalQuantityRounding(t *testing.T) {
	// 19.99 * 2.5 = 49.975, rounds half away from zero to 49.98 per line.
	items := []LineItemInput{
		{Description: "Metered usage", Quantity: 2.5, UnitPrice: money.FromMinorUnits(1999)},
	}

	totals := ComputeTotals(items, 0)

	require.Equal(t, money.FromMinorUnits(4998), totals.Subtotal)
}

func TestComputeTotalsTaxRoundedOnceOverSubtotal(t *testing.T) {
	// Subtotal 10.01 at 15% = 1.5015 which rounds to 1.50; per-line tax would
	// give a different figure, so the single rounding point matters.
	items := []LineItemInput{
		{Description: "A", Quantity: 1, UnitPrice: money.FromMinorUnits(500)},
		{Description: "B", Quantity: 1, UnitPrice: money.FromMinorUnits(501)},
	}

	totals := ComputeTotals(items, 15)

	require.Equal(t, money.FromMinorUnits(1001), totals.Subtotal)
	require.Equal(t, money.FromMinorUnits(150), totals.TaxTotal)
	require.Equal(t, money.FromMinorUnits(1151), totals.GrandTotal)
}
