package notification

import (
	"time"

	"github.com/google/uuid"
)

// Notification is the append-only in-app inbox row. Nothing in this
// service ever reads or deletes one.
type Notification struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Title   string    `gorm:"type:varchar(100);not null"`
	Message string    `gorm:"type:text;not null"`

	CreatedAt time.Time
}

func (Notification) TableName() string { return "notifications" }
