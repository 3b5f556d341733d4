package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jumapesa/billing-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LineItem is a single billable line embedded in an invoice's Items column.
// Items live with their parent invoice and are not independently addressable.
type LineItem struct {
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
}

// LineTotal returns unit price multiplied by quantity
func (li LineItem) LineTotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// LineItems is the invoice's item collection, persisted as a JSON column
type LineItems []LineItem

func (l LineItems) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *LineItems) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return errors.New("unsupported type for LineItems")
}

// Subtotal sums all line totals
func (l LineItems) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range l {
		subtotal = subtotal.Add(item.LineTotal())
	}
	return subtotal
}

// Invoice represents a billable transaction issued to a user
type Invoice struct {
	ID           uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	Serial       string             `gorm:"size:100;unique;not null" json:"serial"`
	SerialNumber int                `gorm:"not null" json:"serial_number"`
	Series       enum.InvoiceSeries `gorm:"default:0" json:"series"`
	Status       enum.InvoiceStatus `gorm:"default:0" json:"status"`
	Items        LineItems          `gorm:"type:jsonb;not null" json:"items"`
	Subtotal     decimal.Decimal    `gorm:"type:numeric(15,2);not null" json:"subtotal"`
	Total        decimal.Decimal    `gorm:"type:numeric(15,2);not null" json:"total"`
	TaxRate      decimal.Decimal    `gorm:"type:numeric(5,2);default:0" json:"tax_rate"`
	Notes        string             `gorm:"type:text" json:"notes"`
	CurrencyID   uuid.UUID          `gorm:"type:uuid;not null;index" json:"currency_id"`
	AccountID    *uuid.UUID         `gorm:"type:uuid;index" json:"account_id,omitempty"`
	UserID       uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
	DeletedAt    gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Currency Currency `gorm:"foreignKey:CurrencyID" json:"currency,omitempty"`
	Account  *Account `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	User     User     `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// FormatSerial renders a serial like "IN-000042" from a series and sequence number
func FormatSerial(series enum.InvoiceSeries, sequence int) string {
	return fmt.Sprintf("%s-%06d", series, sequence)
}

// ComputeTotals derives subtotal and total from the item collection and tax
// rate. The tax amount is rounded up to the currency's precision so that any
// fractional remainder lands on the higher minor-unit value.
func (i *Invoice) ComputeTotals(precision int32) {
	i.Subtotal = i.Items.Subtotal().RoundUp(precision)
	i.Total = i.Subtotal.Add(i.TaxAmount(precision))
}

// TaxAmount returns the tax due on the current subtotal, rounded up
func (i *Invoice) TaxAmount(precision int32) decimal.Decimal {
	return i.Subtotal.Mul(i.TaxRate).Div(decimal.NewFromInt(100)).RoundUp(precision)
}
