package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Currency is immutable reference data describing a monetary unit and how
// amounts in it are formatted. Invoices reference currencies; they never own
// or mutate them.
type Currency struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Abbr               string    `gorm:"size:10;unique;not null" json:"abbr"`
	Name               string    `gorm:"size:100;not null" json:"name"`
	Symbol             string    `gorm:"size:10;not null" json:"symbol"`
	Precision          int       `gorm:"default:2" json:"precision"`
	DecimalMark        string    `gorm:"size:5;default:'.'" json:"decimal_mark"`
	ThousandsSeparator string    `gorm:"size:5;default:','" json:"thousands_separator"`
	SymbolFirst        bool      `gorm:"default:true" json:"symbol_first"`
	SubunitName        string    `gorm:"size:50" json:"subunit_name"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new currency
func (c *Currency) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Currency model
func (Currency) TableName() string {
	return "currencies"
}
