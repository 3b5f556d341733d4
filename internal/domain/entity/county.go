package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// County is a reference dataset row used for administrative reporting
type County struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"county"`
	Code      string         `gorm:"size:20;uniqueIndex" json:"county_code"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new county
func (c *County) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the County model
func (County) TableName() string {
	return "counties"
}
