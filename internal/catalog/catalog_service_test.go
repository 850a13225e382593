package catalog_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/Anuradha654321/faculty-leave-system/internal/catalog"
)

type fakeCatalogRepository struct {
	findAllTypesFn func(ctx context.Context) ([]catalog.LeaveType, error)
	findTypeByIDFn func(ctx context.Context, id string) (*catalog.LeaveType, error)
	findBalancesFn func(ctx context.Context, userID string, year int) ([]catalog.BalanceRow, error)
}

func (f *fakeCatalogRepository) FindAllTypes(ctx context.Context) ([]catalog.LeaveType, error) {
	if f.findAllTypesFn != nil {
		return f.findAllTypesFn(ctx)
	}
	return nil, nil
}

func (f *fakeCatalogRepository) FindTypeByID(ctx context.Context, id string) (*catalog.LeaveType, error) {
	if f.findTypeByIDFn != nil {
		return f.findTypeByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCatalogRepository) FindTypeByName(ctx context.Context, name string) (*catalog.LeaveType, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCatalogRepository) FindBalances(ctx context.Context, userID string, year int) ([]catalog.BalanceRow, error) {
	if f.findBalancesFn != nil {
		return f.findBalancesFn(ctx, userID, year)
	}
	return nil, nil
}

func TestCategoryOf(t *testing.T) {
	cases := []struct {
		name     string
		expected catalog.Category
	}{
		{"casual_leave_prior", catalog.CategoryCasual},
		{"casual_leave_emergency", catalog.CategoryCasual},
		{"medical_leave", catalog.CategoryMedical},
		{"permission_leave", catalog.CategoryPermission},
		{"earned_leave", catalog.CategoryRegular},
		{"on_duty_leave", catalog.CategoryRegular},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, catalog.CategoryOf(tc.name))
		})
	}
}

func TestCatalogService_ListTypes(t *testing.T) {
	ctx := context.Background()

	repo := &fakeCatalogRepository{
		findAllTypesFn: func(ctx context.Context) ([]catalog.LeaveType, error) {
			return []catalog.LeaveType{
				{ID: uuid.New(), Name: "casual_leave_prior", DefaultBalance: 12},
				{ID: uuid.New(), Name: "medical_leave", DefaultBalance: 10},
			}, nil
		},
	}
	svc := catalog.NewService(repo, nil)

	resp, err := svc.ListTypes(ctx)

	assert.NoError(t, err)
	assert.Len(t, resp, 2)
	assert.Equal(t, string(catalog.CategoryCasual), resp[0].Category)
	assert.Equal(t, string(catalog.CategoryMedical), resp[1].Category)
}

func TestCatalogService_GetType(t *testing.T) {
	ctx := context.Background()

	t.Run("negative unknown id", func(t *testing.T) {
		svc := catalog.NewService(&fakeCatalogRepository{}, nil)

		_, err := svc.GetType(ctx, uuid.New().String())

		assert.ErrorIs(t, err, catalog.ErrLeaveTypeNotFound)
	})
}

func TestCatalogService_ListBalances(t *testing.T) {
	ctx := context.Background()

	total := 12.0
	used := 4.5
	funded := uuid.New()
	unfunded := uuid.New()

	repo := &fakeCatalogRepository{
		findBalancesFn: func(ctx context.Context, userID string, year int) ([]catalog.BalanceRow, error) {
			return []catalog.BalanceRow{
				{LeaveTypeID: funded, TypeName: "casual_leave_prior", TotalDays: &total, UsedDays: &used},
				{LeaveTypeID: unfunded, TypeName: "on_duty_leave"},
			}, nil
		},
	}
	svc := catalog.NewService(repo, nil)

	resp, err := svc.ListBalances(ctx, uuid.New().String())

	assert.NoError(t, err)
	assert.Len(t, resp, 2)

	assert.NotNil(t, resp[0].RemainingDays)
	assert.Equal(t, 7.5, *resp[0].RemainingDays)

	// Types with no balance row stay in the list with nil days; the
	// submission path treats them as unconstrained.
	assert.Nil(t, resp[1].TotalDays)
	assert.Nil(t, resp[1].RemainingDays)
}
