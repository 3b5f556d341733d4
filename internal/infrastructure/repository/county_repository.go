package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jumapesa/billing-api/internal/domain/entity"
	domainRepo "github.com/jumapesa/billing-api/internal/domain/repository"
	"github.com/jumapesa/billing-api/pkg/pagination"
	"gorm.io/gorm"
)

type countyRepository struct {
	db *gorm.DB
}

// NewCountyRepository creates a new county repository
func NewCountyRepository(db *gorm.DB) domainRepo.CountyRepository {
	return &countyRepository{db: db}
}

func (r *countyRepository) Create(ctx context.Context, county *entity.County) error {
	return r.db.WithContext(ctx).Create(county).Error
}

func (r *countyRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.County, error) {
	var county entity.County
	err := r.db.WithContext(ctx).First(&county, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &county, err
}

func (r *countyRepository) GetByCode(ctx context.Context, code string) (*entity.County, error) {
	var county entity.County
	err := r.db.WithContext(ctx).First(&county, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &county, err
}

func (r *countyRepository) Update(ctx context.Context, county *entity.County) error {
	return r.db.WithContext(ctx).Save(county).Error
}

func (r *countyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.County{}, "id = ?", id).Error
}

func (r *countyRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.County, int64, error) {
	var counties []entity.County
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.County{})

	if search != "" {
		query = query.Where("name ILIKE ? OR code ILIKE ?",
			"%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&counties).Error

	return counties, total, err
}

func (r *countyRepository) ListAll(ctx context.Context) ([]entity.County, error) {
	var counties []entity.County
	err := r.db.WithContext(ctx).Order("name ASC").Find(&counties).Error
	return counties, err
}
