package entity

import (
	"testing"

	"github.com/jumapesa/billing-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatSerial(t *testing.T) {
	assert.Equal(t, "IN-000001", FormatSerial(enum.InvoiceSeriesIN, 1))
	assert.Equal(t, "PF-000042", FormatSerial(enum.InvoiceSeriesPF, 42))
	assert.Equal(t, "CN-123456", FormatSerial(enum.InvoiceSeriesCN, 123456))
}

func TestLineItemsSubtotal(t *testing.T) {
	items := LineItems{
		{Description: "Hosting", UnitPrice: decimal.RequireFromString("19.99"), Quantity: 2},
		{Description: "Domain", UnitPrice: decimal.RequireFromString("5"), Quantity: 1},
	}

	assert.True(t, items.Subtotal().Equal(decimal.RequireFromString("44.98")))
}

func TestComputeTotals(t *testing.T) {
	invoice := &Invoice{
		Items: LineItems{
			{Description: "Hosting", UnitPrice: decimal.RequireFromString("19.99"), Quantity: 2},
			{Description: "Domain", UnitPrice: decimal.RequireFromString("5"), Quantity: 1},
		},
		TaxRate: decimal.RequireFromString("16"),
	}

	invoice.ComputeTotals(2)

	// 44.98 * 16% = 7.1968, rounded up to 7.20
	assert.True(t, invoice.Subtotal.Equal(decimal.RequireFromString("44.98")))
	assert.True(t, invoice.TaxAmount(2).Equal(decimal.RequireFromString("7.20")))
	assert.True(t, invoice.Total.Equal(invoice.Subtotal.Add(invoice.TaxAmount(2))))
}

func TestComputeTotalsRoundsUp(t *testing.T) {
	invoice := &Invoice{
		Items: LineItems{
			{Description: "Metered usage", UnitPrice: decimal.RequireFromString("10.005"), Quantity: 1},
		},
		TaxRate: decimal.Zero,
	}

	invoice.ComputeTotals(2)

	assert.True(t, invoice.Subtotal.Equal(decimal.RequireFromString("10.01")))
	assert.True(t, invoice.Total.Equal(invoice.Subtotal))
}
