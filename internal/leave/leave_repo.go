package leave

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Anuradha654321/faculty-leave-system/internal/catalog"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveApplication) error
	CreateAdjustments(ctx context.Context, adjustments []ClassAdjustment) error
	CreateHistory(ctx context.Context, h *LeaveHistory) error
	UpdateStatus(ctx context.Context, l *LeaveApplication) error
	FindAllByUser(ctx context.Context, userID string) ([]LeaveApplication, error)
	FindByIDAndUser(ctx context.Context, userID, id string) (*LeaveApplication, error)
	FindAdjustmentsForApplications(ctx context.Context, applicationIDs []uuid.UUID) (map[uuid.UUID][]ClassAdjustment, error)
	HasOverlappingPeriod(ctx context.Context, userID string, startDate, endDate time.Time) (bool, error)
	FindBalanceForUpdate(ctx context.Context, userID, leaveTypeID string, year int) (*catalog.LeaveBalance, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// conn binds statements to the caller's transaction when one is active, so
// the overlap check, balance lock, and all writes share one atomic unit.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx).Session(&gorm.Session{NewDB: true})
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, l *LeaveApplication) error {
	return r.conn(ctx).Create(l).Error
}

func (r *repository) CreateAdjustments(ctx context.Context, adjustments []ClassAdjustment) error {
	if len(adjustments) == 0 {
		return nil
	}
	return r.conn(ctx).Create(&adjustments).Error
}

func (r *repository) CreateHistory(ctx context.Context, h *LeaveHistory) error {
	return r.conn(ctx).Create(h).Error
}

func (r *repository) UpdateStatus(ctx context.Context, l *LeaveApplication) error {
	return r.conn(ctx).
		Model(&LeaveApplication{}).
		Where("id = ?", l.ID).
		Update("status", l.Status).Error
}

func (r *repository) FindAllByUser(ctx context.Context, userID string) ([]LeaveApplication, error) {
	var apps []LeaveApplication
	err := r.conn(ctx).
		Where("user_id = ?", userID).
		Order("application_date DESC, created_at DESC").
		Find(&apps).Error
	return apps, err
}

func (r *repository) FindByIDAndUser(ctx context.Context, userID, id string) (*LeaveApplication, error) {
	var l LeaveApplication
	err := r.conn(ctx).
		Where("user_id = ?", userID).
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindAdjustmentsForApplications(ctx context.Context, applicationIDs []uuid.UUID) (map[uuid.UUID][]ClassAdjustment, error) {
	if len(applicationIDs) == 0 {
		return map[uuid.UUID][]ClassAdjustment{}, nil
	}

	var rows []ClassAdjustment
	err := r.conn(ctx).
		Where("application_id IN ?", applicationIDs).
		Order("class_date, class_time").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	byApp := make(map[uuid.UUID][]ClassAdjustment, len(applicationIDs))
	for _, row := range rows {
		byApp[row.ApplicationID] = append(byApp[row.ApplicationID], row)
	}
	return byApp, nil
}

// HasOverlappingPeriod checks [startDate, endDate] inclusively against
// every non-rejected application of the user.
func (r *repository) HasOverlappingPeriod(ctx context.Context, userID string, startDate, endDate time.Time) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&LeaveApplication{}).
		Where("user_id = ?", userID).
		Where("status <> ?", StatusRejected).
		Where("NOT (end_date < ? OR start_date > ?)", startDate, endDate).
		Count(&count).Error
	return count > 0, err
}

// FindBalanceForUpdate locks the balance row for the rest of the
// transaction, serializing concurrent submissions against the same
// balance. A missing row comes back as (nil, nil): some categories carry
// no funded balance and are unconstrained.
func (r *repository) FindBalanceForUpdate(ctx context.Context, userID, leaveTypeID string, year int) (*catalog.LeaveBalance, error) {
	var b catalog.LeaveBalance
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		Where("leave_type_id = ?", leaveTypeID).
		Where("year = ?", year).
		First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}
