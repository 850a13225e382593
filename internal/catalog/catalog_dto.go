package catalog

type LeaveTypeResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	DefaultBalance float64 `json:"default_balance"`
	Category       string  `json:"category"`
}

type BalanceResponse struct {
	LeaveTypeID   string   `json:"leave_type_id"`
	TypeName      string   `json:"type_name"`
	Year          int      `json:"year"`
	TotalDays     *float64 `json:"total_days,omitempty"`
	UsedDays      *float64 `json:"used_days,omitempty"`
	RemainingDays *float64 `json:"remaining_days,omitempty"`
}
