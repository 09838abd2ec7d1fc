package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayTypeOf(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		expected DayType
	}{
		{name: "Monday", date: "2025-10-20", expected: DayTypeWeekday},
		{name: "Wednesday", date: "2025-10-22", expected: DayTypeWeekday},
		{name: "Friday", date: "2025-10-24", expected: DayTypeWeekday},
		{name: "Saturday", date: "2025-10-25", expected: DayTypeSaturday},
		{name: "Sunday", date: "2025-10-26", expected: DayTypeSunday},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DayTypeOf(MustParseDate(tt.date)))
		})
	}
}

func TestHoursBetween(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		expected float64
	}{
		{name: "Full day", start: "08:00", end: "17:00", expected: 9},
		{name: "Half hour", start: "09:00", end: "09:30", expected: 0.5},
		{name: "With seconds", start: "08:00:00", end: "12:15:00", expected: 4.25},
		{name: "End before start", start: "17:00", end: "08:00", expected: -9},
		{name: "Zero", start: "08:00", end: "08:00", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HoursBetween(tt.start, tt.end)
			assert.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}

	t.Run("Invalid input", func(t *testing.T) {
		_, err := HoursBetween("8am", "17:00")
		assert.Error(t, err)
	})
}

func TestParseClockOnDate(t *testing.T) {
	base := time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)

	got, err := ParseClockOnDate(base, "13:45")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 20, 13, 45, 0, 0, time.UTC), got)
}

func TestWeekBounds(t *testing.T) {
	// Wednesday 2025-10-22 -> Mon 20th .. Sun 26th
	mon, sun := WeekBounds(MustParseDate("2025-10-22"))
	assert.Equal(t, "2025-10-20", mon.Format(DateLayout))
	assert.Equal(t, "2025-10-26", sun.Format(DateLayout))

	// Sunday stays in its own week
	mon, sun = WeekBounds(MustParseDate("2025-10-26"))
	assert.Equal(t, "2025-10-20", mon.Format(DateLayout))
	assert.Equal(t, "2025-10-26", sun.Format(DateLayout))
}
