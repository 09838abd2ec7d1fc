package payroll

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shiftpay.net.au/shiftpay/model"
	"shiftpay.net.au/shiftpay/timeutil"
)

func strp(s string) *string { return &s }

func TestComputeTimesheet(t *testing.T) {
	rules := twoTierRules()

	tests := []struct {
		name         string
		ts           model.Timesheet
		breakMinutes int32
		totalHours   float64
	}{
		{
			name:         "Short shift no break",
			ts:           model.Timesheet{StartTime: strp("09:00"), EndTime: strp("13:30")},
			breakMinutes: 0,
			totalHours:   4.5,
		},
		{
			name:         "Long shift deducts break",
			ts:           model.Timesheet{StartTime: strp("08:00"), EndTime: strp("16:00")},
			breakMinutes: 30,
			totalHours:   7.5,
		},
		{
			name:         "In progress computes to zero",
			ts:           model.Timesheet{StartTime: strp("08:00")},
			breakMinutes: 0,
			totalHours:   0,
		},
		{
			name:         "No times at all",
			ts:           model.Timesheet{},
			breakMinutes: 0,
			totalHours:   0,
		},
		{
			name:         "Manual override wins over rules",
			ts:           model.Timesheet{StartTime: strp("08:00"), EndTime: strp("16:00"), BreakMinutes: 45, BreakOverridden: true},
			breakMinutes: 45,
			totalHours:   7.25,
		},
		{
			name:         "Override larger than shift clamps",
			ts:           model.Timesheet{StartTime: strp("08:00"), EndTime: strp("08:30"), BreakMinutes: 60, BreakOverridden: true},
			breakMinutes: 60,
			totalHours:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := tt.ts
			_, err := ComputeTimesheet(&ts, rules)
			assert.NoError(t, err)
			assert.Equal(t, tt.breakMinutes, ts.BreakMinutes)
			assert.InDelta(t, tt.totalHours, ts.TotalHours, 1e-9)
		})
	}
}

func TestComputeTimesheetInvalidRange(t *testing.T) {
	ts := model.Timesheet{StartTime: strp("17:00"), EndTime: strp("08:00")}
	_, err := ComputeTimesheet(&ts, twoTierRules())
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestComputeTimesheetReportsClamp(t *testing.T) {
	ts := model.Timesheet{StartTime: strp("08:00"), EndTime: strp("08:30"), BreakMinutes: 60, BreakOverridden: true}
	clamped, err := ComputeTimesheet(&ts, twoTierRules())
	assert.NoError(t, err)
	assert.True(t, clamped)
	assert.Zero(t, ts.TotalHours)

	ts = model.Timesheet{StartTime: strp("08:00"), EndTime: strp("16:00")}
	clamped, err = ComputeTimesheet(&ts, twoTierRules())
	assert.NoError(t, err)
	assert.False(t, clamped)

	// rule-driven clamp, not just overrides
	ts = model.Timesheet{StartTime: strp("08:00"), EndTime: strp("09:00")}
	clamped, err = ComputeTimesheet(&ts, []model.BreakRule{{MinHours: 0, BreakMinutes: 90}})
	assert.NoError(t, err)
	assert.True(t, clamped)
}

func TestComputeTimesheetIdempotent(t *testing.T) {
	rules := threeTierRules()
	ts := model.Timesheet{
		WorkDate:  timeutil.MustParseDate("2025-10-20"),
		StartTime: strp("07:45"),
		EndTime:   strp("15:45"),
	}

	_, err := ComputeTimesheet(&ts, rules)
	assert.NoError(t, err)
	first := ts

	// feeding the computed sheet back through unchanged rules changes nothing
	_, err = ComputeTimesheet(&ts, rules)
	assert.NoError(t, err)
	assert.Equal(t, first, ts)
}
