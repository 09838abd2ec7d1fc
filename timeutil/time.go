package timeutil

import (
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// DayType is the pay classification of a calendar date.
type DayType string

const (
	DayTypeWeekday  DayType = "weekday"
	DayTypeSaturday DayType = "saturday"
	DayTypeSunday   DayType = "sunday"
)

// DayTypeOf classifies a date: Mon-Fri are weekday, Saturday and Sunday
// carry their own rates.
func DayTypeOf(date time.Time) DayType {
	switch date.Weekday() {
	case time.Saturday:
		return DayTypeSaturday
	case time.Sunday:
		return DayTypeSunday
	default:
		return DayTypeWeekday
	}
}

// ParseClock parses a time-of-day string like "08:30".
func ParseClock(s string) (time.Time, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		// some devices send seconds
		t, err = time.Parse("15:04:05", s)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	return t, nil
}

// ParseClockOnDate combines a base date with a time-of-day string.
func ParseClockOnDate(baseDate time.Time, s string) (time.Time, error) {
	t, err := ParseClock(s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(baseDate.Year(), baseDate.Month(), baseDate.Day(), t.Hour(), t.Minute(), t.Second(), 0, baseDate.Location()), nil
}

// HoursBetween returns the wall-clock hours from start to end, both
// time-of-day strings on the same day. Negative results are the caller's
// problem; shifts do not cross midnight.
func HoursBetween(start, end string) (float64, error) {
	s, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0, err
	}
	return e.Sub(s).Hours(), nil
}

// LocalTZ is the timezone keypad punches are stamped in.
var LocalTZ = time.FixedZone("AEST", 10*3600)

func Now() time.Time {
	return time.Now().In(LocalTZ)
}

func MustParseDate(dateStr string) time.Time {
	t, _ := time.ParseInLocation(DateLayout, dateStr, time.UTC)
	return t
}

// WeekBounds returns the Monday and Sunday of the week containing date.
func WeekBounds(date time.Time) (time.Time, time.Time) {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	offset := (int(d.Weekday()) + 6) % 7 // Monday = 0
	monday := d.AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 6)
}
