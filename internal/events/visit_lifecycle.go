package events

import "time"

const VisitLifecycleTopic = "homecare.visit.lifecycle.v1"

const (
	VisitAssigned      = "visit_assigned"
	VisitReassigned    = "visit_reassigned"
	VisitCancelled     = "visit_cancelled"
	VisitTerminated    = "visit_terminated"
	VisitExtended      = "visit_extended"
	VisitCheckedIn     = "visit_checked_in"
	VisitVitalsUpdated = "visit_vitals_updated"
	VisitCheckedOut    = "visit_checked_out"
	VisitCompleted     = "visit_completed"
	VisitDayAppended   = "visit_day_appended"
	VisitClosed        = "visit_closed"
)

// VisitLifecycleEvent is published for every persisted visit mutation.
// ForDate is set for day-level events and uses the YYYY-MM-DD layout.
type VisitLifecycleEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id,omitempty"`
	VisitID     string    `json:"visit_id"`
	EmployeeID  string    `json:"employee_id"`
	ClientID    string    `json:"client_id"`
	AdminID     string    `json:"admin_id"`
	ForDate     string    `json:"for_date,omitempty"`
	MainStatus  string    `json:"main_status"`
	DailyStatus string    `json:"daily_status,omitempty"`
	Version     int64     `json:"version"`
	OccurredAt  time.Time `json:"occurred_at"`
}
