package request

import "github.com/shopspring/decimal"

// CreateInvoiceRequest represents a request to create an invoice
type CreateInvoiceRequest struct {
	Series     string               `json:"series" binding:"omitempty,oneof=IN PF CN"`
	CurrencyID string               `json:"currency_id" binding:"required,uuid"`
	AccountID  *string              `json:"account_id" binding:"omitempty,uuid"`
	TaxRate    decimal.Decimal      `json:"tax_rate"`
	Notes      string               `json:"notes"`
	Items      []InvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
}

// InvoiceItemRequest represents a single invoice line item
type InvoiceItemRequest struct {
	Description string          `json:"description" binding:"required,max=255"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
	Quantity    int             `json:"quantity" binding:"required,min=1"`
}

// UpdateInvoiceStatusRequest represents a status transition request
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Draft Mailed Paid Overdue Canceled"`
}

// ConvertCurrencyRequest represents a currency conversion request
type ConvertCurrencyRequest struct {
	Currency string `json:"currency" binding:"required,len=3,uppercase"`
}
