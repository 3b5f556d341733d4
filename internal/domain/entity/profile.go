package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile is the seller identity printed on every invoice, plus the
// credentials for the exchange-rate provider. The table holds a single row
// which is resolved once at startup and injected into the services that
// need it.
type Profile struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name               string    `gorm:"size:255;not null" json:"name"`
	Phone              string    `gorm:"size:50" json:"phone"`
	Email              string    `gorm:"size:255" json:"email"`
	LogoPath           string    `gorm:"size:255" json:"logo_path"`
	ExchangeRateAPIKey string    `gorm:"size:255" json:"-"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new profile
func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Profile model
func (Profile) TableName() string {
	return "profiles"
}
