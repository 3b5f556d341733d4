package pdf

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

// Format carries the display formatting rules of a currency. Values are
// passed through from the currency record without modification.
type Format struct {
	Symbol             string
	Precision          int
	DecimalMark        string
	ThousandsSeparator string
	SymbolFirst        bool
}

// Party identifies one side of an invoice (seller or buyer).
type Party struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

// Line is a single invoice line item prepared for rendering.
type Line struct {
	Description string
	UnitPrice   decimal.Decimal
	Quantity    int
	Total       decimal.Decimal
}

// BankDetails holds the payment instructions shown on the document.
type BankDetails struct {
	BankName     string
	BicSwiftCode string
	Number       string
}

// Document is the fully resolved input to a renderer. All lookups happen
// before rendering so the renderer never touches storage.
type Document struct {
	Serial     string
	Status     string
	IssuedDate string
	Seller     Party
	Buyer      Party
	Lines      []Line
	Subtotal   decimal.Decimal
	TaxRate    decimal.Decimal
	TaxAmount  decimal.Decimal
	Total      decimal.Decimal
	Format     Format
	Bank       *BankDetails
	Notes      string
	LogoPath   string
}

// InvoiceRenderer renders an invoice document and returns the path of the
// produced file.
type InvoiceRenderer interface {
	Render(ctx context.Context, doc *Document) (string, error)
}

// FormatAmount renders a monetary amount using the currency's display rules:
// fixed precision, grouped integer digits and configurable symbol placement.
func FormatAmount(amount decimal.Decimal, f Format) string {
	fixed := amount.StringFixed(int32(f.Precision))

	negative := strings.HasPrefix(fixed, "-")
	if negative {
		fixed = fixed[1:]
	}

	intPart := fixed
	fracPart := ""
	if i := strings.IndexByte(fixed, '.'); i >= 0 {
		intPart = fixed[:i]
		fracPart = fixed[i+1:]
	}

	var grouped strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteString(f.ThousandsSeparator)
		}
		grouped.WriteRune(digit)
	}

	number := grouped.String()
	if fracPart != "" {
		number += f.DecimalMark + fracPart
	}
	var out string
	if f.SymbolFirst {
		out = f.Symbol + number
	} else {
		out = number + f.Symbol
	}
	if negative {
		out = "-" + out
	}
	return out
}
