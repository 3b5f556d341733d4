package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jumapesa/billing-api/internal/domain/entity"
)

// CurrencyRepository defines the interface for currency reference data
type CurrencyRepository interface {
	Create(ctx context.Context, currency *entity.Currency) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Currency, error)
	GetByAbbr(ctx context.Context, abbr string) (*entity.Currency, error)
	List(ctx context.Context) ([]entity.Currency, error)
}

// AccountRepository defines the interface for bank account data operations
type AccountRepository interface {
	Create(ctx context.Context, account *entity.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)
	// FirstEnabled returns the fallback account used when an invoice does
	// not reference one; nil when no account is enabled.
	FirstEnabled(ctx context.Context) (*entity.Account, error)
	List(ctx context.Context) ([]entity.Account, error)
}

// ProfileRepository defines the interface for the seller profile singleton
type ProfileRepository interface {
	// Get returns the single profile row, or nil when none exists
	Get(ctx context.Context) (*entity.Profile, error)
	Create(ctx context.Context, profile *entity.Profile) error
	Update(ctx context.Context, profile *entity.Profile) error
}
