package payroll

import "errors"

var (
	// ErrInvalidTimeRange means the end time is not after the start time.
	// Handlers validate before computing; the resolver itself treats an
	// incomplete pair as a zero-hours result, not an error.
	ErrInvalidTimeRange = errors.New("end time must be after start time")

	// ErrNoApplicableRule means the client's break table has no tier at or
	// below the shift duration. A valid table always has a tier at zero
	// hours, so this is a data integrity problem, not a bad shift.
	ErrNoApplicableRule = errors.New("no applicable break rule; rule set is missing its zero-hours tier")

	// ErrInvalidRuleSet is returned by ValidateRuleSet for tables that must
	// be rejected at save time.
	ErrInvalidRuleSet = errors.New("invalid break rule set")

	// ErrUnknownPin means no active employee of the client matched the PIN.
	ErrUnknownPin = errors.New("no active employee matches that PIN")

	// ErrAlreadyClockedOut means today's timesheet is already complete.
	ErrAlreadyClockedOut = errors.New("already clocked out for today")
)
