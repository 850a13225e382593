package notification

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=notification_repo.go -destination=mock/notification_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, n *Notification) error
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

func (r *repository) Create(ctx context.Context, n *Notification) error {
	db := r.db.WithContext(ctx).Session(&gorm.Session{NewDB: true})
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db.Create(n).Error
}
