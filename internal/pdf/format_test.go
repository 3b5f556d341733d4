package pdf

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	usd := Format{Symbol: "$", Precision: 2, DecimalMark: ".", ThousandsSeparator: ",", SymbolFirst: true}
	eur := Format{Symbol: "€", Precision: 2, DecimalMark: ",", ThousandsSeparator: ".", SymbolFirst: false}

	tests := []struct {
		name     string
		amount   decimal.Decimal
		format   Format
		expected string
	}{
		{"symbol first with grouping", decimal.NewFromFloat(1234567.89), usd, "$1,234,567.89"},
		{"symbol last with european marks", decimal.NewFromFloat(1234.5), eur, "1.234,50€"},
		{"small amount", decimal.NewFromFloat(5), usd, "$5.00"},
		{"exact thousand", decimal.NewFromInt(1000), usd, "$1,000.00"},
		{"negative amount", decimal.NewFromFloat(-42.5), usd, "-$42.50"},
		{"zero precision", decimal.NewFromFloat(1500.75), Format{Symbol: "¥", Precision: 0, DecimalMark: ".", ThousandsSeparator: ",", SymbolFirst: true}, "¥1,501"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatAmount(tt.amount, tt.format))
		})
	}
}
