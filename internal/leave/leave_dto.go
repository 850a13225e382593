package leave

// AdjustmentEntry is one class-coverage request accompanying a casual-leave
// submission. Entries missing any field are skipped, not rejected.
type AdjustmentEntry struct {
	ClassDate         string `json:"class_date"`
	ClassTime         string `json:"class_time"`
	Subject           string `json:"subject"`
	AdjustedFacultyID string `json:"adjusted_faculty_id"`
}

type ApplyLeaveRequest struct {
	LeaveTypeID string `json:"leave_type_id" binding:"required,uuid"`
	// DateRange is either a single date or "YYYY-MM-DD to YYYY-MM-DD".
	// Casual leave may instead list individual dates in CasualDates.
	DateRange    string            `json:"date_range"`
	CasualDates  []string          `json:"casual_dates"`
	TotalDays    float64           `json:"total_days"`
	Reason       string            `json:"reason" binding:"required"`
	DocumentPath *string           `json:"document_path"`
	Adjustments  []AdjustmentEntry `json:"adjustments"`
}

type PermissionLeaveRequest struct {
	Date   string `json:"date" binding:"required"`
	Slot   string `json:"slot" binding:"required"`
	Reason string `json:"reason" binding:"required"`
}

type AdjustmentResponse struct {
	ID         string  `json:"id"`
	ClassDate  string  `json:"class_date"`
	ClassTime  string  `json:"class_time"`
	Subject    string  `json:"subject"`
	AdjustedBy string  `json:"adjusted_by"`
	Status     string  `json:"status"`
	Remarks    *string `json:"remarks,omitempty"`
}

type LeaveResponse struct {
	ID              string               `json:"id"`
	LeaveTypeID     string               `json:"leave_type_id"`
	LeaveTypeName   string               `json:"leave_type_name,omitempty"`
	StartDate       string               `json:"start_date"`
	EndDate         string               `json:"end_date"`
	TotalDays       float64              `json:"total_days"`
	Reason          string               `json:"reason"`
	Status          string               `json:"status"`
	IsPermission    bool                 `json:"is_permission"`
	PermissionSlot  *string              `json:"permission_slot,omitempty"`
	DocumentPath    *string              `json:"document_path,omitempty"`
	ApplicationDate string               `json:"application_date"`
	Adjustments     []AdjustmentResponse `json:"adjustments,omitempty"`
}
