package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account holds the seller's bank details printed on invoice documents.
// An invoice may reference a specific account; otherwise the first enabled
// account is used as the fallback.
type Account struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	BankName     string         `gorm:"size:255;not null" json:"bank_name"`
	BicSwiftCode string         `gorm:"size:50" json:"bic_swift_code"`
	Number       string         `gorm:"size:100;not null" json:"number"`
	Enabled      bool           `gorm:"default:true;index" json:"enabled"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new account
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Account model
func (Account) TableName() string {
	return "accounts"
}
