package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BalanceRow is the left-join projection of the catalog against a user's
// balances: types with no balance row for the year come back with nil days.
type BalanceRow struct {
	LeaveTypeID uuid.UUID
	TypeName    string
	TotalDays   *float64
	UsedDays    *float64
}

//go:generate mockgen -source=catalog_repo.go -destination=mock/catalog_repo_mock.go -package=mock
type Repository interface {
	FindAllTypes(ctx context.Context) ([]LeaveType, error)
	FindTypeByID(ctx context.Context, id string) (*LeaveType, error)
	FindTypeByName(ctx context.Context, name string) (*LeaveType, error)
	FindBalances(ctx context.Context, userID string, year int) ([]BalanceRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindAllTypes(ctx context.Context) ([]LeaveType, error) {
	var types []LeaveType
	err := r.db.WithContext(ctx).
		Order("name").
		Find(&types).Error
	return types, err
}

func (r *repository) FindTypeByID(ctx context.Context, id string) (*LeaveType, error) {
	var t LeaveType
	err := r.db.WithContext(ctx).
		First(&t, "id = ?", id).Error
	return &t, err
}

func (r *repository) FindTypeByName(ctx context.Context, name string) (*LeaveType, error) {
	var t LeaveType
	err := r.db.WithContext(ctx).
		First(&t, "name = ?", name).Error
	return &t, err
}

func (r *repository) FindBalances(ctx context.Context, userID string, year int) ([]BalanceRow, error) {
	var rows []BalanceRow
	err := r.db.WithContext(ctx).
		Table("leave_types lt").
		Select("lt.id AS leave_type_id, lt.name AS type_name, lb.total_days, lb.used_days").
		Joins("LEFT JOIN leave_balances lb ON lt.id = lb.leave_type_id AND lb.user_id = ? AND lb.year = ?", userID, year).
		Order("lt.name").
		Scan(&rows).Error
	return rows, err
}
