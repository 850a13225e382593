package catalog

import (
	"strings"

	"github.com/google/uuid"
)

type LeaveType struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name           string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	Description    string    `gorm:"type:text"`
	DefaultBalance float64   `gorm:"type:numeric(5,1);not null;default:0"`
}

func (LeaveType) TableName() string { return "leave_types" }

type LeaveBalance struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_balance_user_type_year"`
	LeaveTypeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_balance_user_type_year"`
	Year        int       `gorm:"not null;uniqueIndex:uq_balance_user_type_year"`
	TotalDays   float64   `gorm:"type:numeric(5,1);not null"`
	UsedDays    float64   `gorm:"type:numeric(5,1);not null;default:0"`
}

func (LeaveBalance) TableName() string { return "leave_balances" }

func (b LeaveBalance) RemainingDays() float64 {
	return b.TotalDays - b.UsedDays
}

// PermissionTypeName is the catalog name of the half-day permission type.
const PermissionTypeName = "permission_leave"

// Category is the closed set of leave classifications that drive period
// resolution and notification fan-out. It replaces the numeric type-id
// comparisons of the legacy schema.
type Category string

const (
	CategoryRegular    Category = "regular"
	CategoryCasual     Category = "casual"
	CategoryMedical    Category = "medical"
	CategoryPermission Category = "permission"
)

// CategoryOf classifies a leave type by its catalog name. Called once when
// types are loaded; everything downstream dispatches on the Category value.
func CategoryOf(typeName string) Category {
	switch {
	case strings.Contains(typeName, "casual_leave"):
		return CategoryCasual
	case strings.Contains(typeName, "medical_leave"):
		return CategoryMedical
	case strings.Contains(typeName, "permission_leave"):
		return CategoryPermission
	default:
		return CategoryRegular
	}
}
