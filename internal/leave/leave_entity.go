package leave

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending           = "pending"
	StatusApprovedByHOD     = "approved_by_hod"
	StatusApprovedByCentral = "approved_by_central_admin"
	StatusApproved          = "approved"
	StatusRejected          = "rejected"
	StatusCancelled         = "cancelled"
)

const (
	SlotMorning = "morning"
	SlotEvening = "evening"
)

const (
	AdjustmentStatusPending  = "pending"
	AdjustmentStatusApproved = "approved"
	AdjustmentStatusRejected = "rejected"
)

type LeaveApplication struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index"`
	DeptID          uuid.UUID `gorm:"type:uuid;not null;index"`
	LeaveTypeID     uuid.UUID `gorm:"type:uuid;not null"`
	StartDate       time.Time `gorm:"type:date;not null"`
	EndDate         time.Time `gorm:"type:date;not null"`
	TotalDays       float64   `gorm:"type:numeric(5,1);not null"`
	Reason          string    `gorm:"type:text;not null"`
	Status          string    `gorm:"type:varchar(30);not null;default:'pending';index"`
	IsPermission    bool      `gorm:"not null;default:false"`
	PermissionSlot  *string   `gorm:"type:varchar(10)"`
	DocumentPath    *string   `gorm:"type:varchar(255)"`
	ApplicationDate time.Time `gorm:"type:date;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveApplication) TableName() string { return "leave_applications" }

// IsCancellable reports whether the owner may still withdraw the
// application. Anything past HOD approval is locked.
func (l LeaveApplication) IsCancellable() bool {
	return l.Status == StatusPending || l.Status == StatusApprovedByHOD
}

type ClassAdjustment struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ApplicationID uuid.UUID `gorm:"type:uuid;not null;index"`
	ClassDate     time.Time `gorm:"type:date;not null"`
	ClassTime     string    `gorm:"type:varchar(20);not null"`
	Subject       string    `gorm:"type:varchar(100);not null"`
	AdjustedBy    uuid.UUID `gorm:"type:uuid;not null"`
	Status        string    `gorm:"type:varchar(20);not null;default:'pending'"`
	Remarks       *string   `gorm:"type:text"`

	CreatedAt time.Time
}

func (ClassAdjustment) TableName() string { return "class_adjustments" }

type LeaveHistory struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ApplicationID uuid.UUID `gorm:"type:uuid;not null;index"`
	Action        string    `gorm:"type:varchar(30);not null"`
	ActorID       uuid.UUID `gorm:"type:uuid;not null"`
	Note          string    `gorm:"type:text"`

	CreatedAt time.Time
}

func (LeaveHistory) TableName() string { return "leave_history" }
