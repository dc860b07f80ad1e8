package visit

import (
	"time"

	"github.com/Yadlapure/health-care/internal/identity"
	"github.com/Yadlapure/health-care/internal/shared/clock"
)

type AssignRequest struct {
	ClientID   string    `json:"client_id" binding:"required"`
	EmployeeID string    `json:"employee_id" binding:"required"`
	FromTS     time.Time `json:"from_ts" binding:"required"`
	ToTS       time.Time `json:"to_ts" binding:"required"`
	Lat        float64   `json:"lat" binding:"gte=-90,lte=90"`
	Lng        float64   `json:"lng" binding:"gte=-180,lte=180"`
}

type UnassignRequest struct {
	VisitID string `json:"visit_id" binding:"required"`
}

type ExtendRequest struct {
	VisitID string    `json:"visit_id" binding:"required"`
	ToTS    time.Time `json:"to_ts" binding:"required"`
}

// CheckInOutRequest arrives as multipart form data next to the proof image.
type CheckInOutRequest struct {
	VisitID string  `form:"visit_id" binding:"required"`
	Lat     float64 `form:"lat" binding:"gte=-90,lte=90"`
	Lng     float64 `form:"lng" binding:"gte=-180,lte=180"`
}

type VitalsRequest struct {
	VisitID       string `form:"visit_id" binding:"required"`
	BloodPressure string `form:"blood_pressure" binding:"max=32"`
	Sugar         string `form:"sugar" binding:"max=32"`
	Notes         string `form:"notes" binding:"max=2000"`
}

type ImageURLsRequest struct {
	Keys []string `json:"keys" binding:"required,min=1,max=50,dive,required,object_key"`
}

// Actor is the authenticated caller as seen by the service.
type Actor struct {
	UserID string
	Role   identity.Role
}

// Upload is an image received from the client, held in memory until stored.
type Upload struct {
	Filename string
	Data     []byte
}

func (u Upload) Empty() bool {
	return len(u.Data) == 0
}

type VisitSummary struct {
	VisitID      string     `json:"visit_id"`
	AdminID      string     `json:"admin_id"`
	ClientID     string     `json:"client_id"`
	ClientName   string     `json:"client_name"`
	EmployeeID   string     `json:"employee_id"`
	EmployeeName string     `json:"employee_name"`
	FromTS       time.Time  `json:"from_ts"`
	ToTS         time.Time  `json:"to_ts"`
	Lat          float64    `json:"lat"`
	Lng          float64    `json:"lng"`
	MainStatus   MainStatus `json:"main_status"`
	Revived      bool       `json:"revived"`
}

type DayView struct {
	ForDate     string      `json:"for_date"`
	DailyStatus DailyStatus `json:"daily_status"`
	CheckIn     *CheckPoint `json:"check_in,omitempty"`
	CheckOut    *CheckPoint `json:"check_out,omitempty"`
	Vitals      *Vitals     `json:"vitals,omitempty"`
}

type VisitStatusResponse struct {
	VisitID    string     `json:"visit_id"`
	MainStatus MainStatus `json:"main_status"`
	FromTS     time.Time  `json:"from_ts"`
	ToTS       time.Time  `json:"to_ts"`
	Days       []DayView  `json:"days"`
}

type AttendanceResponse struct {
	VisitID    string     `json:"visit_id"`
	ClientName string     `json:"client_name"`
	Action     Action     `json:"action"`
	MainStatus MainStatus `json:"main_status"`
	Day        DayView    `json:"day"`
}

type VisitView struct {
	VisitID      string     `json:"visit_id"`
	AdminID      string     `json:"admin_id"`
	ClientID     string     `json:"client_id"`
	ClientName   string     `json:"client_name,omitempty"`
	EmployeeID   string     `json:"employee_id"`
	EmployeeName string     `json:"employee_name,omitempty"`
	FromTS       time.Time  `json:"from_ts"`
	ToTS         time.Time  `json:"to_ts"`
	Lat          float64    `json:"lat"`
	Lng          float64    `json:"lng"`
	MainStatus   MainStatus `json:"main_status"`
	Days         []DayView  `json:"days"`
}

type ImageURL struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

func mapDay(d Details) DayView {
	return DayView{
		ForDate:     clock.FormatDate(d.ForDate),
		DailyStatus: d.DailyStatus,
		CheckIn:     d.CheckIn,
		CheckOut:    d.CheckOut,
		Vitals:      d.Vitals,
	}
}

func mapDays(details []Details) []DayView {
	res := make([]DayView, len(details))
	for i, d := range details {
		res[i] = mapDay(d)
	}
	return res
}

func mapToStatusResponse(v Visit) VisitStatusResponse {
	return VisitStatusResponse{
		VisitID:    v.VisitID,
		MainStatus: v.MainStatus,
		FromTS:     v.FromTS,
		ToTS:       v.ToTS,
		Days:       mapDays(v.Details),
	}
}

func mapToView(v Visit, profiles map[string]identity.Profile) VisitView {
	return VisitView{
		VisitID:      v.VisitID,
		AdminID:      v.AssignedAdminID,
		ClientID:     v.AssignedClientID,
		ClientName:   identity.DisplayName(profiles, v.AssignedClientID),
		EmployeeID:   v.AssignedEmpID,
		EmployeeName: identity.DisplayName(profiles, v.AssignedEmpID),
		FromTS:       v.FromTS,
		ToTS:         v.ToTS,
		Lat:          v.Lat,
		Lng:          v.Lng,
		MainStatus:   v.MainStatus,
		Days:         mapDays(v.Details),
	}
}
