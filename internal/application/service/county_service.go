package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jumapesa/billing-api/internal/domain/entity"
	"github.com/jumapesa/billing-api/internal/domain/repository"
	"github.com/jumapesa/billing-api/pkg/apperror"
	"github.com/jumapesa/billing-api/pkg/pagination"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// CountyService handles county reference data operations
type CountyService struct {
	countyRepo repository.CountyRepository
	exportDir  string
	logger     *logrus.Logger
}

// NewCountyService creates a new county service. Export files are written
// under exportDir/exports.
func NewCountyService(countyRepo repository.CountyRepository, exportDir string, logger *logrus.Logger) *CountyService {
	return &CountyService{
		countyRepo: countyRepo,
		exportDir:  exportDir,
		logger:     logger,
	}
}

// CreateCountyInput represents the input for creating a county
type CreateCountyInput struct {
	Name string
	Code string
}

// UpdateCountyInput represents the input for updating a county
type UpdateCountyInput struct {
	Name *string
	Code *string
}

// CreateCounty creates a new county
func (s *CountyService) CreateCounty(ctx context.Context, input *CreateCountyInput) (*entity.County, error) {
	existing, err := s.countyRepo.GetByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("County with this code already exists")
	}

	county := &entity.County{
		Name: input.Name,
		Code: input.Code,
	}
	if err := s.countyRepo.Create(ctx, county); err != nil {
		return nil, err
	}
	return county, nil
}

// GetCounty retrieves a county by ID
func (s *CountyService) GetCounty(ctx context.Context, id uuid.UUID) (*entity.County, error) {
	county, err := s.countyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if county == nil {
		return nil, apperror.NewNotFoundError("County")
	}
	return county, nil
}

// ListCounties retrieves counties with pagination and optional search
func (s *CountyService) ListCounties(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.County, int64, error) {
	return s.countyRepo.List(ctx, params, search)
}

// UpdateCounty updates a county
func (s *CountyService) UpdateCounty(ctx context.Context, id uuid.UUID, input *UpdateCountyInput) (*entity.County, error) {
	county, err := s.countyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if county == nil {
		return nil, apperror.NewNotFoundError("County")
	}

	if input.Code != nil && *input.Code != county.Code {
		existing, err := s.countyRepo.GetByCode(ctx, *input.Code)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("County with this code already exists")
		}
		county.Code = *input.Code
	}
	if input.Name != nil {
		county.Name = *input.Name
	}

	if err := s.countyRepo.Update(ctx, county); err != nil {
		return nil, err
	}
	return county, nil
}

// DeleteCounty soft deletes a county
func (s *CountyService) DeleteCounty(ctx context.Context, id uuid.UUID) error {
	county, err := s.countyRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if county == nil {
		return apperror.NewNotFoundError("County")
	}
	return s.countyRepo.Delete(ctx, id)
}

// ExportResult summarizes a completed county export
type ExportResult struct {
	FilePath       string `json:"file_path"`
	SuccessfulRows int    `json:"successful_rows"`
	FailedRows     int    `json:"failed_rows"`
}

// CompletionMessage renders the user-facing summary of the export, with
// counts of exported and failed rows
func (r *ExportResult) CompletionMessage() string {
	msg := fmt.Sprintf("Your county export has completed and %d %s exported.",
		r.SuccessfulRows, pluralizeRow(r.SuccessfulRows))
	if r.FailedRows > 0 {
		msg += fmt.Sprintf(" %d %s failed to export.", r.FailedRows, pluralizeRow(r.FailedRows))
	}
	return msg
}

func pluralizeRow(n int) string {
	if n == 1 {
		return "row"
	}
	return "rows"
}

// ExportCounties writes all counties to an Excel workbook. Rows with
// missing required fields are counted as failed and left out of the file.
func (s *CountyService) ExportCounties(ctx context.Context) (*ExportResult, error) {
	counties, err := s.countyRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	headers := []string{"ID", "County", "County code", "Created at", "Updated at", "Deleted at"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	successful := 0
	failed := 0
	for _, county := range counties {
		if county.Name == "" || county.Code == "" {
			failed++
			continue
		}

		row := successful + 2
		deletedAt := ""
		if county.DeletedAt.Valid {
			deletedAt = county.DeletedAt.Time.Format(time.RFC3339)
		}
		values := []interface{}{
			county.ID.String(),
			county.Name,
			county.Code,
			county.CreatedAt.Format(time.RFC3339),
			county.UpdatedAt.Format(time.RFC3339),
			deletedAt,
		}

		rowFailed := false
		for i, value := range values {
			cell, err := excelize.CoordinatesToCellName(i+1, row)
			if err != nil {
				rowFailed = true
				break
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				rowFailed = true
				break
			}
		}
		if rowFailed {
			failed++
			continue
		}
		successful++
	}

	outputDir := filepath.Join(s.exportDir, "exports")
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, err
	}
	filePath := filepath.Join(outputDir, fmt.Sprintf("counties-%d.xlsx", time.Now().Unix()))

	if err := f.SaveAs(filePath); err != nil {
		return nil, err
	}

	result := &ExportResult{
		FilePath:       filePath,
		SuccessfulRows: successful,
		FailedRows:     failed,
	}

	s.logger.WithFields(logrus.Fields{
		"file":       filePath,
		"successful": successful,
		"failed":     failed,
	}).Info("county export completed")

	return result, nil
}
