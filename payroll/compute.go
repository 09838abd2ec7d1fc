package payroll

import (
	"fmt"

	"shiftpay.net.au/shiftpay/model"
	"shiftpay.net.au/shiftpay/timeutil"
)

// ComputeTimesheet derives BreakMinutes and TotalHours on ts from its clock
// times and the client's break table, in place. An incomplete pair computes
// to zero. A manual break override is respected; everything else goes
// through ResolveBreak. The bool reports whether the deduction exceeded the
// shift and the total was clamped to zero, so callers can warn.
func ComputeTimesheet(ts *model.Timesheet, rules []model.BreakRule) (bool, error) {
	if !ts.Complete() {
		if !ts.BreakOverridden {
			ts.BreakMinutes = 0
		}
		ts.TotalHours = 0
		return false, nil
	}

	rawHours, err := timeutil.HoursBetween(*ts.StartTime, *ts.EndTime)
	if err != nil {
		return false, err
	}
	if rawHours < 0 {
		return false, fmt.Errorf("%w: %s-%s", ErrInvalidTimeRange, *ts.StartTime, *ts.EndTime)
	}

	if ts.BreakOverridden {
		res := applyBreak(rawHours, ts.BreakMinutes)
		ts.TotalHours = res.TotalHours
		return res.Clamped, nil
	}

	res, err := ResolveBreak(rules, rawHours)
	if err != nil {
		return false, err
	}
	ts.BreakMinutes = res.BreakMinutes
	ts.TotalHours = res.TotalHours
	return res.Clamped, nil
}
