package visit

import (
	"strings"
	"time"

	"github.com/Yadlapure/health-care/internal/shared/clock"
	visiterrors "github.com/Yadlapure/health-care/internal/visit/errors"
)

type Action string

const (
	ActionCheckIn  Action = "check_in"
	ActionVitals   Action = "vitals"
	ActionCheckOut Action = "check_out"
)

// dayTransitions lists every legal move of a day record. Anything absent is rejected.
var dayTransitions = map[DailyStatus]map[Action]DailyStatus{
	DayInitiated:   {ActionCheckIn: DayCheckedIn},
	DayCheckedIn:   {ActionVitals: DayVitalUpdate},
	DayVitalUpdate: {ActionCheckOut: DayCheckedOut},
	DayCheckedOut:  {},
}

// NextDailyStatus is the single gate for day transitions.
func NextDailyStatus(current DailyStatus, action Action) (DailyStatus, error) {
	if next, ok := dayTransitions[current][action]; ok {
		return next, nil
	}
	return current, rejection(current, action)
}

func rejection(current DailyStatus, action Action) error {
	switch {
	case current == DayCheckedOut:
		return visiterrors.ErrDayClosed
	case current == DayCheckedIn:
		return visiterrors.ErrVitalsBeforeCheckout
	case action == ActionVitals:
		return visiterrors.ErrCheckInBeforeVitals
	default:
		return visiterrors.ErrInvalidTransition
	}
}

// punchAction maps the combined check-in/out call onto the table.
func punchAction(current DailyStatus) Action {
	if current == DayInitiated {
		return ActionCheckIn
	}
	return ActionCheckOut
}

var mainRank = map[MainStatus]int{
	MainInitiated:  0,
	MainCheckedIn:  1,
	MainCheckedOut: 2,
}

// rollup advances the main status. It never regresses and never leaves CANCELLED.
func (v *Visit) rollup(target MainStatus) bool {
	if v.MainStatus == MainCancelled || mainRank[target] <= mainRank[v.MainStatus] {
		return false
	}
	v.MainStatus = target
	return true
}

func (v *Visit) ensureOpen() error {
	switch v.MainStatus {
	case MainCancelled:
		return visiterrors.ErrVisitCancelled
	case MainCheckedOut:
		return visiterrors.ErrVisitClosed
	}
	return nil
}

func (v *Visit) openDay(today time.Time) (*Details, error) {
	if err := v.ensureOpen(); err != nil {
		return nil, err
	}
	day := v.Day(today)
	if day == nil {
		return nil, visiterrors.ErrNoVisitToday
	}
	return day, nil
}

func (d *Details) hasNotes() bool {
	return d.Vitals != nil && strings.TrimSpace(d.Vitals.Notes) != ""
}

// PunchAction reports what the combined check-in/out call would do today
// without touching the visit.
func (v *Visit) PunchAction(today time.Time) (Action, error) {
	day, err := v.openDay(today)
	if err != nil {
		return "", err
	}
	action := punchAction(day.DailyStatus)
	if _, err := NextDailyStatus(day.DailyStatus, action); err != nil {
		return "", err
	}
	if action == ActionCheckOut && !day.hasNotes() {
		return "", visiterrors.ErrVitalsBeforeCheckout
	}
	return action, nil
}

func (v *Visit) CheckIn(today time.Time, at CheckPoint) error {
	day, err := v.openDay(today)
	if err != nil {
		return err
	}
	next, err := NextDailyStatus(day.DailyStatus, ActionCheckIn)
	if err != nil {
		return err
	}
	day.CheckIn = &at
	day.DailyStatus = next
	v.rollup(MainCheckedIn)
	return nil
}

type CheckOutOutcome struct {
	// Completed is set when the last day of the window closed the visit.
	Completed bool
	// Appended holds the next day seeded by this check-out, if any.
	Appended *time.Time
}

// CheckOut closes today's record. lastDate is the civil date of to_ts.
func (v *Visit) CheckOut(today, lastDate time.Time, at CheckPoint) (CheckOutOutcome, error) {
	var out CheckOutOutcome
	day, err := v.openDay(today)
	if err != nil {
		return out, err
	}
	next, err := NextDailyStatus(day.DailyStatus, ActionCheckOut)
	if err != nil {
		return out, err
	}
	if !day.hasNotes() {
		return out, visiterrors.ErrVitalsBeforeCheckout
	}
	day.CheckOut = &at
	day.DailyStatus = next

	if clock.SameDate(today, lastDate) {
		out.Completed = v.rollup(MainCheckedOut)
		return out, nil
	}
	tomorrow := civil(today).AddDate(0, 0, 1)
	if !tomorrow.After(civil(lastDate)) && v.AppendDay(tomorrow) == nil {
		out.Appended = &tomorrow
	}
	return out, nil
}

// CanRecordVitals checks the vitals transition without mutating the visit.
func (v *Visit) CanRecordVitals(today time.Time) error {
	day, err := v.openDay(today)
	if err != nil {
		return err
	}
	_, err = NextDailyStatus(day.DailyStatus, ActionVitals)
	return err
}

// RecordVitals stores readings for today. Prescription images accumulate.
func (v *Visit) RecordVitals(today time.Time, vitals Vitals) error {
	if strings.TrimSpace(vitals.Notes) == "" {
		return visiterrors.ErrNotesRequired
	}
	day, err := v.openDay(today)
	if err != nil {
		return err
	}
	next, err := NextDailyStatus(day.DailyStatus, ActionVitals)
	if err != nil {
		return err
	}
	if day.Vitals != nil {
		vitals.PrescriptionImages = append(append([]string{}, day.Vitals.PrescriptionImages...), vitals.PrescriptionImages...)
	}
	day.Vitals = &vitals
	day.DailyStatus = next
	return nil
}

// Unassign cancels a visit that never started or terminates one in progress.
// It reports true when the visit was cancelled.
func (v *Visit) Unassign(today time.Time) (bool, error) {
	switch v.MainStatus {
	case MainInitiated:
		v.MainStatus = MainCancelled
		return true, nil
	case MainCheckedIn:
		if day := v.Day(today); day != nil {
			day.DailyStatus = DayCheckedOut
		}
		v.MainStatus = MainCheckedOut
		return false, nil
	default:
		return false, visiterrors.ErrVisitClosed
	}
}

// ExtendTo moves the end of the window. currentEnd and newEnd are civil dates.
func (v *Visit) ExtendTo(newTo, currentEnd, newEnd time.Time) error {
	if err := v.ensureOpen(); err != nil {
		return err
	}
	if newEnd.Before(currentEnd) {
		return visiterrors.ErrExtendShrinks
	}
	v.ToTS = newTo
	return nil
}

// SeedDay appends an INITIATED record for date when the visit is running,
// date lies within [fromDate, toDate] and nothing is recorded for it yet.
func (v *Visit) SeedDay(date, fromDate, toDate time.Time) bool {
	if !v.IsOpen() {
		return false
	}
	if date.Before(fromDate) || date.After(toDate) {
		return false
	}
	return v.AppendDay(date) == nil
}

// Close forces a visit whose window has elapsed into CHECKEDOUT.
func (v *Visit) Close() bool {
	if !v.IsOpen() {
		return false
	}
	v.MainStatus = MainCheckedOut
	return true
}

// Revive reuses a cancelled slot for a new assignment, keeping its id.
func (v *Visit) Revive(adminID, empID string, from, to, fromDate time.Time, lat, lng float64) error {
	if v.MainStatus != MainCancelled {
		return visiterrors.ErrConcurrentUpdate
	}
	v.AssignedAdminID = adminID
	v.AssignedEmpID = empID
	v.FromTS = from
	v.ToTS = to
	v.Lat = lat
	v.Lng = lng
	v.MainStatus = MainInitiated
	v.Details = []Details{{ForDate: civil(fromDate), DailyStatus: DayInitiated}}
	return nil
}
