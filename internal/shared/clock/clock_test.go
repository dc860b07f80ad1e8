package clock_test

import (
	"testing"
	"time"

	"github.com/Yadlapure/health-care/internal/shared/clock"

	"github.com/stretchr/testify/assert"
)

func TestClock_DateBoundaries(t *testing.T) {
	ist, _ := time.LoadLocation("Asia/Kolkata")

	// 2024-01-01 20:00 UTC is already 2024-01-02 01:30 in IST.
	now := time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)
	c := clock.Fixed(ist, now)

	assert.Equal(t, "2024-01-02", clock.FormatDate(c.Today()))
	assert.Equal(t, "2024-01-03", clock.FormatDate(c.Tomorrow()))
	assert.Equal(t, "2024-01-01", clock.FormatDate(c.Yesterday()))
	assert.Equal(t, time.UTC, c.Today().Location())
}

func TestClock_StartAndEndOf(t *testing.T) {
	ist, _ := time.LoadLocation("Asia/Kolkata")
	c := clock.New(ist)

	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	start := c.StartOf(date)
	assert.Equal(t, time.Date(2024, 3, 9, 18, 30, 0, 0, time.UTC), start)

	end := c.EndOf(date)
	assert.True(t, clock.SameDate(c.DateOf(end), date))
	assert.False(t, clock.SameDate(c.DateOf(end.Add(time.Nanosecond)), date))
}

func TestClock_MinMax(t *testing.T) {
	a := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b := a.AddDate(0, 0, 2)

	assert.Equal(t, a, clock.MinDate(a, b))
	assert.Equal(t, b, clock.MaxDate(a, b))
}
