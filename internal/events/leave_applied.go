package events

const (
	TopicLeaveNotifications = "leave.notifications"
	TypeLeaveApplied        = "leave.applied"
)

// LeaveAppliedEvent is the outbox payload behind every email the system
// sends; one event per recipient.
type LeaveAppliedEvent struct {
	ApplicationID  string `json:"application_id"`
	RecipientEmail string `json:"recipient_email"`
	RecipientName  string `json:"recipient_name"`
	ApplicantName  string `json:"applicant_name"`
	LeaveTypeName  string `json:"leave_type_name"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	Reason         string `json:"reason"`
	IsPermission   bool   `json:"is_permission"`
	PermissionSlot string `json:"permission_slot,omitempty"`
}
