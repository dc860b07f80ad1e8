package attendance

import (
	"sort"
	"time"

	"github.com/Yadlapure/health-care/internal/shared/clock"
	"github.com/Yadlapure/health-care/internal/visit"
)

// buildReport projects stored day records onto [start, end]. Visits must be
// ordered oldest first; a later visit overwrites an earlier one on the same date.
func buildReport(employeeID string, visits []visit.Visit, start, end time.Time, clk *clock.Clock) Report {
	rep := Report{
		EmployeeID: employeeID,
		Start:      clock.FormatDate(start),
		End:        clock.FormatDate(end),
		Days:       []DayReport{},
	}
	if len(visits) == 0 {
		rep.Empty = true
		return rep
	}

	today := clk.Today()
	byDate := map[time.Time]DayReport{}
	for i := range visits {
		v := &visits[i]
		from := clock.MaxDate(start, clk.DateOf(v.FromTS))
		to := clock.MinDate(clock.MinDate(end, clk.DateOf(v.ToTS)), today)
		for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
			byDate[d] = dayReport(v, d)
		}
	}

	for _, r := range byDate {
		rep.Days = append(rep.Days, r)
	}
	sort.Slice(rep.Days, func(i, j int) bool { return rep.Days[i].Date < rep.Days[j].Date })
	return rep
}

func dayReport(v *visit.Visit, date time.Time) DayReport {
	r := DayReport{Date: clock.FormatDate(date), Status: StatusAbsent, VisitID: v.VisitID}
	d := v.Day(date)
	if d == nil {
		return r
	}
	switch d.DailyStatus {
	case visit.DayCheckedOut:
		r.Status = StatusPresent
		r.CheckIn = checkpointTime(d.CheckIn)
		r.CheckOut = checkpointTime(d.CheckOut)
	case visit.DayCheckedIn, visit.DayVitalUpdate:
		r.Status = StatusHalfDay
		r.CheckIn = checkpointTime(d.CheckIn)
	}
	return r
}

func checkpointTime(cp *visit.CheckPoint) *time.Time {
	if cp == nil {
		return nil
	}
	t := cp.At
	return &t
}
