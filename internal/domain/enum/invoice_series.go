package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// InvoiceSeries represents the numbering series an invoice belongs to.
// Serials are rendered as "<series>-<sequence>", e.g. "IN-000042".
type InvoiceSeries int

const (
	InvoiceSeriesIN InvoiceSeries = 0 // standard invoice
	InvoiceSeriesPF InvoiceSeries = 1 // proforma
	InvoiceSeriesCN InvoiceSeries = 2 // credit note
)

func (s InvoiceSeries) String() string {
	if !s.IsValid() {
		return "Unknown"
	}
	return [...]string{"IN", "PF", "CN"}[s]
}

// IsValid reports whether the series is one of the known values
func (s InvoiceSeries) IsValid() bool {
	return s >= InvoiceSeriesIN && s <= InvoiceSeriesCN
}

func (s InvoiceSeries) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *InvoiceSeries) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = InvoiceSeries(i)
		return nil
	}
	switch str {
	case "IN":
		*s = InvoiceSeriesIN
	case "PF":
		*s = InvoiceSeriesPF
	case "CN":
		*s = InvoiceSeriesCN
	}
	return nil
}

func (s InvoiceSeries) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *InvoiceSeries) Scan(value interface{}) error {
	if value == nil {
		*s = InvoiceSeriesIN
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = InvoiceSeries(v)
	case int:
		*s = InvoiceSeries(v)
	}
	return nil
}
