package attendance

import "time"

type DayStatus string

const (
	StatusPresent DayStatus = "present"
	StatusHalfDay DayStatus = "half_day"
	StatusAbsent  DayStatus = "absent"
)

type ReportQuery struct {
	Start string `form:"start" binding:"required"`
	End   string `form:"end" binding:"required"`
}

type DayReport struct {
	Date     string     `json:"date"`
	Status   DayStatus  `json:"status"`
	VisitID  string     `json:"visit_id"`
	CheckIn  *time.Time `json:"check_in,omitempty"`
	CheckOut *time.Time `json:"check_out,omitempty"`
}

// Report is the per-date attendance of one employee. Empty is set when no
// visit overlaps the range; that is a valid answer, not an error.
type Report struct {
	EmployeeID string      `json:"employee_id"`
	Start      string      `json:"start"`
	End        string      `json:"end"`
	Days       []DayReport `json:"days"`
	Empty      bool        `json:"empty"`
}
