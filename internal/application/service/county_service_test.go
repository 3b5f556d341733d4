package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jumapesa/billing-api/internal/domain/entity"
	"github.com/jumapesa/billing-api/pkg/pagination"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeCountyRepo struct {
	counties []*entity.County
}

func (r *fakeCountyRepo) Create(ctx context.Context, county *entity.County) error {
	if county.ID == uuid.Nil {
		county.ID = uuid.New()
	}
	r.counties = append(r.counties, county)
	return nil
}

func (r *fakeCountyRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.County, error) {
	for _, c := range r.counties {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCountyRepo) GetByCode(ctx context.Context, code string) (*entity.County, error) {
	for _, c := range r.counties {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCountyRepo) Update(ctx context.Context, county *entity.County) error {
	return nil
}

func (r *fakeCountyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i, c := range r.counties {
		if c.ID == id {
			r.counties = append(r.counties[:i], r.counties[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeCountyRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.County, int64, error) {
	var out []entity.County
	for _, c := range r.counties {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *fakeCountyRepo) ListAll(ctx context.Context) ([]entity.County, error) {
	var out []entity.County
	for _, c := range r.counties {
		out = append(out, *c)
	}
	return out, nil
}

func newCountyFixture(t *testing.T) (*CountyService, *fakeCountyRepo) {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	repo := &fakeCountyRepo{}
	return NewCountyService(repo, t.TempDir(), logger), repo
}

func TestCreateCounty(t *testing.T) {
	service, _ := newCountyFixture(t)

	county, err := service.CreateCounty(context.Background(), &CreateCountyInput{
		Name: "Nairobi",
		Code: "047",
	})
	require.NoError(t, err)
	assert.Equal(t, "Nairobi", county.Name)
	assert.Equal(t, "047", county.Code)
}

func TestCreateCounty_DuplicateCode(t *testing.T) {
	service, _ := newCountyFixture(t)

	_, err := service.CreateCounty(context.Background(), &CreateCountyInput{Name: "Nairobi", Code: "047"})
	require.NoError(t, err)

	_, err = service.CreateCounty(context.Background(), &CreateCountyInput{Name: "Other", Code: "047"})
	require.Error(t, err)
}

func TestUpdateCounty(t *testing.T) {
	service, _ := newCountyFixture(t)

	county, err := service.CreateCounty(context.Background(), &CreateCountyInput{Name: "Nakuru", Code: "032"})
	require.NoError(t, err)

	newName := "Nakuru County"
	updated, err := service.UpdateCounty(context.Background(), county.ID, &UpdateCountyInput{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Nakuru County", updated.Name)
	assert.Equal(t, "032", updated.Code)
}

func TestDeleteCounty_NotFound(t *testing.T) {
	service, _ := newCountyFixture(t)

	err := service.DeleteCounty(context.Background(), uuid.New())
	require.Error(t, err)
}

func TestExportCounties(t *testing.T) {
	service, repo := newCountyFixture(t)

	for i := 0; i < 8; i++ {
		repo.counties = append(repo.counties, &entity.County{
			ID:   uuid.New(),
			Name: fmt.Sprintf("County %d", i+1),
			Code: fmt.Sprintf("%03d", i+1),
		})
	}
	// Two rows missing required fields fail to export
	repo.counties = append(repo.counties,
		&entity.County{ID: uuid.New(), Name: "", Code: "098"},
		&entity.County{ID: uuid.New(), Name: "Nameless", Code: ""},
	)

	result, err := service.ExportCounties(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 8, result.SuccessfulRows)
	assert.Equal(t, 2, result.FailedRows)
	assert.Equal(t,
		"Your county export has completed and 8 rows exported. 2 rows failed to export.",
		result.CompletionMessage())

	// The workbook holds a header row plus one row per exported county
	_, err = os.Stat(result.FilePath)
	require.NoError(t, err)

	f, err := excelize.OpenFile(result.FilePath)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 9)
	assert.Equal(t, []string{"ID", "County", "County code", "Created at", "Updated at", "Deleted at"}, rows[0][:6])
	assert.Equal(t, "County 1", rows[1][1])
}

func TestExportCounties_AllSuccessful(t *testing.T) {
	service, repo := newCountyFixture(t)
	repo.counties = append(repo.counties, &entity.County{ID: uuid.New(), Name: "Mombasa", Code: "001"})

	result, err := service.ExportCounties(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.SuccessfulRows)
	assert.Equal(t, 0, result.FailedRows)
	assert.Equal(t, "Your county export has completed and 1 row exported.", result.CompletionMessage())
}
