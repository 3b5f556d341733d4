package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// InvoiceStatus represents the lifecycle state of an invoice
type InvoiceStatus int

const (
	InvoiceStatusDraft    InvoiceStatus = 0
	InvoiceStatusMailed   InvoiceStatus = 1
	InvoiceStatusPaid     InvoiceStatus = 2
	InvoiceStatusOverdue  InvoiceStatus = 3
	InvoiceStatusCanceled InvoiceStatus = 4
)

func (s InvoiceStatus) String() string {
	if !s.IsValid() {
		return "Unknown"
	}
	return [...]string{"Draft", "Mailed", "Paid", "Overdue", "Canceled"}[s]
}

// IsValid reports whether the status is one of the known values
func (s InvoiceStatus) IsValid() bool {
	return s >= InvoiceStatusDraft && s <= InvoiceStatusCanceled
}

func (s InvoiceStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *InvoiceStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = InvoiceStatus(i)
		return nil
	}
	switch str {
	case "Draft":
		*s = InvoiceStatusDraft
	case "Mailed":
		*s = InvoiceStatusMailed
	case "Paid":
		*s = InvoiceStatusPaid
	case "Overdue":
		*s = InvoiceStatusOverdue
	case "Canceled":
		*s = InvoiceStatusCanceled
	}
	return nil
}

func (s InvoiceStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *InvoiceStatus) Scan(value interface{}) error {
	if value == nil {
		*s = InvoiceStatusDraft
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = InvoiceStatus(v)
	case int:
		*s = InvoiceStatus(v)
	}
	return nil
}
