package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jumapesa/billing-api/internal/domain/entity"
	"github.com/jumapesa/billing-api/pkg/pagination"
)

// CountyRepository defines the interface for county reference data
type CountyRepository interface {
	Create(ctx context.Context, county *entity.County) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.County, error)
	GetByCode(ctx context.Context, code string) (*entity.County, error)
	Update(ctx context.Context, county *entity.County) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.County, int64, error)
	// ListAll returns every county without pagination, for exports
	ListAll(ctx context.Context) ([]entity.County, error)
}
