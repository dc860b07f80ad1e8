package attendance

import (
	"testing"
	"time"

	"github.com/Yadlapure/health-care/internal/shared/clock"
	"github.com/Yadlapure/health-care/internal/visit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(m time.Month, day int) time.Time {
	return time.Date(2024, m, day, 0, 0, 0, 0, time.UTC)
}

func at(m time.Month, day, hour int) time.Time {
	return d(m, day).Add(time.Duration(hour) * time.Hour)
}

func TestBuildReport_StatusPerDay(t *testing.T) {
	clk := clock.Fixed(time.UTC, at(time.January, 3, 12))
	v := visit.Visit{
		VisitID:       "V000001",
		AssignedEmpID: "emp-1",
		FromTS:        at(time.January, 1, 9),
		ToTS:          at(time.January, 5, 18),
		MainStatus:    visit.MainCheckedIn,
		Details: []visit.Details{
			{ForDate: d(time.January, 1), DailyStatus: visit.DayCheckedOut,
				CheckIn:  &visit.CheckPoint{At: at(time.January, 1, 9)},
				CheckOut: &visit.CheckPoint{At: at(time.January, 1, 17)}},
			{ForDate: d(time.January, 2), DailyStatus: visit.DayVitalUpdate,
				CheckIn: &visit.CheckPoint{At: at(time.January, 2, 9)}},
			{ForDate: d(time.January, 3), DailyStatus: visit.DayInitiated},
		},
	}

	rep := buildReport("emp-1", []visit.Visit{v}, d(time.January, 1), d(time.January, 10), clk)

	assert.False(t, rep.Empty)
	require.Len(t, rep.Days, 3, "dates after today are not reported")

	assert.Equal(t, StatusPresent, rep.Days[0].Status)
	require.NotNil(t, rep.Days[0].CheckOut)
	assert.Equal(t, at(time.January, 1, 17), *rep.Days[0].CheckOut)

	assert.Equal(t, StatusHalfDay, rep.Days[1].Status)
	assert.NotNil(t, rep.Days[1].CheckIn)
	assert.Nil(t, rep.Days[1].CheckOut)

	assert.Equal(t, StatusAbsent, rep.Days[2].Status)
	assert.Nil(t, rep.Days[2].CheckIn)
	assert.Equal(t, "2024-01-03", rep.Days[2].Date)
}

func TestBuildReport_ClampsToRangeAndVisitEnd(t *testing.T) {
	clk := clock.Fixed(time.UTC, at(time.February, 1, 12))
	v := visit.Visit{
		VisitID: "V000001",
		FromTS:  at(time.January, 1, 9),
		ToTS:    at(time.January, 4, 18),
		Details: []visit.Details{{ForDate: d(time.January, 1), DailyStatus: visit.DayCheckedOut}},
	}

	rep := buildReport("emp-1", []visit.Visit{v}, d(time.January, 3), d(time.January, 31), clk)

	require.Len(t, rep.Days, 2)
	assert.Equal(t, "2024-01-03", rep.Days[0].Date)
	assert.Equal(t, "2024-01-04", rep.Days[1].Date)
	assert.Equal(t, StatusAbsent, rep.Days[1].Status, "no day record means absent")
}

func TestBuildReport_LaterVisitWinsOnCollision(t *testing.T) {
	clk := clock.Fixed(time.UTC, at(time.January, 10, 12))
	first := visit.Visit{
		VisitID: "V000001",
		FromTS:  at(time.January, 1, 9),
		ToTS:    at(time.January, 2, 18),
		Details: []visit.Details{{ForDate: d(time.January, 1), DailyStatus: visit.DayInitiated}},
	}
	second := visit.Visit{
		VisitID: "V000002",
		FromTS:  at(time.January, 2, 9),
		ToTS:    at(time.January, 2, 18),
		Details: []visit.Details{{ForDate: d(time.January, 2), DailyStatus: visit.DayCheckedOut}},
	}

	rep := buildReport("emp-1", []visit.Visit{first, second}, d(time.January, 1), d(time.January, 2), clk)

	require.Len(t, rep.Days, 2)
	assert.Equal(t, "V000001", rep.Days[0].VisitID)
	assert.Equal(t, "V000002", rep.Days[1].VisitID)
	assert.Equal(t, StatusPresent, rep.Days[1].Status)
}

func TestBuildReport_NoVisitsIsEmpty(t *testing.T) {
	rep := buildReport("emp-1", nil, d(time.January, 1), d(time.January, 2), clock.Fixed(time.UTC, at(time.January, 3, 0)))

	assert.True(t, rep.Empty)
	assert.NotNil(t, rep.Days)
	assert.Empty(t, rep.Days)
}

func TestRenderWorkbook(t *testing.T) {
	in := at(time.January, 1, 9)
	rep := Report{
		EmployeeID: "emp-1",
		Start:      "2024-01-01",
		End:        "2024-01-01",
		Days:       []DayReport{{Date: "2024-01-01", Status: StatusHalfDay, VisitID: "V000001", CheckIn: &in}},
	}

	data, err := renderWorkbook(rep, time.UTC)

	require.NoError(t, err)
	assert.Equal(t, []byte("PK"), data[:2], "xlsx is a zip container")
	assert.Equal(t, "attendance_emp-1_2024-01-01_2024-01-01.xlsx", ExportFilename(rep))
}
