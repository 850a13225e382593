package directory

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Anuradha654321/faculty-leave-system/internal/domain"
	"github.com/Anuradha654321/faculty-leave-system/internal/tenant"
)

//go:generate mockgen -source=directory_repo.go -destination=mock/directory_repo_mock.go -package=mock
type Repository interface {
	SearchFaculty(ctx context.Context, deptID, excludeUserID, query string, limit int) ([]User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindHODByDept(ctx context.Context, deptID string) (*User, error)
	FindAdmin(ctx context.Context) (*User, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) SearchFaculty(ctx context.Context, deptID, excludeUserID, query string, limit int) ([]User, error) {
	var users []User
	pattern := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(deptID)).
		Where("role = ?", domain.RoleFaculty).
		Where("status = ?", StatusActive).
		Where("id <> ?", excludeUserID).
		Where("first_name ILIKE ? OR last_name ILIKE ?", pattern, pattern).
		Order("first_name, last_name").
		Limit(limit).
		Find(&users).Error
	return users, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		First(&u, "id = ?", id).Error
	return &u, err
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		First(&u, "email = ?", email).Error
	return &u, err
}

func (r *repository) FindHODByDept(ctx context.Context, deptID string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(deptID)).
		Where("role = ?", domain.RoleHOD).
		Where("status = ?", StatusActive).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &u, err
}

func (r *repository) FindAdmin(ctx context.Context) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		Where("role = ?", domain.RoleAdmin).
		Where("status = ?", StatusActive).
		Order("created_at").
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &u, err
}
