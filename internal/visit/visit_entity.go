package visit

import (
	"errors"
	"slices"
	"sort"
	"time"

	"github.com/Yadlapure/health-care/internal/shared/clock"

	"gorm.io/datatypes"
)

type MainStatus string

const (
	MainInitiated  MainStatus = "INITIATED"
	MainCheckedIn  MainStatus = "CHECKEDIN"
	MainCheckedOut MainStatus = "CHECKEDOUT"
	MainCancelled  MainStatus = "CANCELLED"
)

func (s MainStatus) Valid() bool {
	switch s {
	case MainInitiated, MainCheckedIn, MainCheckedOut, MainCancelled:
		return true
	}
	return false
}

type DailyStatus string

const (
	DayInitiated   DailyStatus = "INITIATED"
	DayCheckedIn   DailyStatus = "CHECKEDIN"
	DayVitalUpdate DailyStatus = "VITALUPDATE"
	DayCheckedOut  DailyStatus = "CHECKEDOUT"
)

type CheckPoint struct {
	At       time.Time `json:"at"`
	Lat      float64   `json:"lat"`
	Lng      float64   `json:"lng"`
	ImageRef string    `json:"img"`
}

type Vitals struct {
	BloodPressure      string   `json:"blood_pressure,omitempty"`
	Sugar              string   `json:"sugar,omitempty"`
	Notes              string   `json:"notes"`
	PrescriptionImages []string `json:"prescription_images,omitempty"`
}

// Details is the attendance record of one calendar day of a visit.
// ForDate is a civil date stored as midnight UTC.
type Details struct {
	ForDate     time.Time   `json:"for_date"`
	DailyStatus DailyStatus `json:"daily_status"`
	CheckIn     *CheckPoint `json:"check_in,omitempty"`
	CheckOut    *CheckPoint `json:"check_out,omitempty"`
	Vitals      *Vitals     `json:"vitals,omitempty"`
}

type Visit struct {
	VisitID          string                       `gorm:"column:visit_id;type:varchar(20);primaryKey"`
	AssignedAdminID  string                       `gorm:"column:assigned_admin_id;type:varchar(64);not null;index"`
	AssignedClientID string                       `gorm:"column:assigned_client_id;type:varchar(64);not null;index"`
	AssignedEmpID    string                       `gorm:"column:assigned_emp_id;type:varchar(64);not null;index"`
	FromTS           time.Time                    `gorm:"column:from_ts;type:timestamptz;not null"`
	ToTS             time.Time                    `gorm:"column:to_ts;type:timestamptz;not null"`
	Lat              float64                      `gorm:"column:lat;not null;default:0"`
	Lng              float64                      `gorm:"column:lng;not null;default:0"`
	MainStatus       MainStatus                   `gorm:"column:main_status;type:varchar(20);not null;index"`
	Details          datatypes.JSONSlice[Details] `gorm:"column:details;type:jsonb;not null"`
	Version          int64                        `gorm:"column:version;not null;default:1"`
	CreatedAt        time.Time                    `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time                    `gorm:"column:updated_at;autoUpdateTime"`
}

func (Visit) TableName() string {
	return "visits"
}

var (
	errDayExists     = errors.New("day already recorded")
	errDayOutOfOrder = errors.New("day precedes the last recorded day")
)

// Day returns the record for date, or nil. The pointer aliases the slice element.
func (v *Visit) Day(date time.Time) *Details {
	i := v.dayIndex(date)
	if i < 0 {
		return nil
	}
	return &v.Details[i]
}

func (v *Visit) dayIndex(date time.Time) int {
	// Dates strictly increase, so a binary search is enough.
	i := sort.Search(len(v.Details), func(i int) bool {
		return !v.Details[i].ForDate.Before(civil(date))
	})
	if i < len(v.Details) && clock.SameDate(v.Details[i].ForDate, date) {
		return i
	}
	return -1
}

func (v *Visit) LastDay() *Details {
	if len(v.Details) == 0 {
		return nil
	}
	return &v.Details[len(v.Details)-1]
}

// AppendDay seeds an INITIATED record for date. Dates must strictly increase.
func (v *Visit) AppendDay(date time.Time) error {
	date = civil(date)
	if last := v.LastDay(); last != nil {
		if clock.SameDate(last.ForDate, date) || v.dayIndex(date) >= 0 {
			return errDayExists
		}
		if date.Before(last.ForDate) {
			return errDayOutOfOrder
		}
	}
	v.Details = append(v.Details, Details{ForDate: date, DailyStatus: DayInitiated})
	return nil
}

// Overlaps reports whether [from, to] intersects the visit window.
// References reports whether key is one of the visit's stored images.
func (v *Visit) References(key string) bool {
	for _, d := range v.Details {
		if d.CheckIn != nil && d.CheckIn.ImageRef == key {
			return true
		}
		if d.CheckOut != nil && d.CheckOut.ImageRef == key {
			return true
		}
		if d.Vitals != nil && slices.Contains(d.Vitals.PrescriptionImages, key) {
			return true
		}
	}
	return false
}

func (v *Visit) Overlaps(from, to time.Time) bool {
	return !v.FromTS.After(to) && !v.ToTS.Before(from)
}

// IsOpen is true while attendance may still be recorded against the visit.
func (v *Visit) IsOpen() bool {
	return v.MainStatus == MainInitiated || v.MainStatus == MainCheckedIn
}

func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
