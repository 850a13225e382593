package directory

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FirstName string    `gorm:"type:varchar(50);not null"`
	LastName  string    `gorm:"type:varchar(50);not null"`
	Email     string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	Password  string    `gorm:"type:varchar(255);not null"`
	Role      string    `gorm:"type:varchar(20);not null;index"`
	DeptID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Status    string    `gorm:"type:varchar(10);not null;default:'active'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string { return "users" }

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
