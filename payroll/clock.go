package payroll

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"shiftpay.net.au/shiftpay/model"
	"shiftpay.net.au/shiftpay/security"
	"shiftpay.net.au/shiftpay/timeutil"
)

const (
	PunchIn  = "in"
	PunchOut = "out"
)

// PunchResult reports what a keypad punch did.
type PunchResult struct {
	Employee  model.Employee
	Timesheet model.Timesheet
	Action    string
}

// Punch handles an employee keypad PIN entry: it opens today's timesheet on
// the first punch and completes it (running the break calculation) on the
// second. A third punch on the same day is rejected.
func Punch(db *gorm.DB, clientID int32, pin string, now time.Time) (PunchResult, error) {
	emp, err := findEmployeeByPin(db, clientID, pin)
	if err != nil {
		return PunchResult{}, err
	}

	workDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	clock := now.Format(timeutil.ClockLayout)

	var ts model.Timesheet
	err = db.Where("employee_id = ? AND work_date = ?", emp.ID, workDate).First(&ts).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		ts = model.Timesheet{
			ClientID:   clientID,
			EmployeeID: emp.ID,
			WorkDate:   workDate,
			StartTime:  &clock,
		}
		if err := db.Create(&ts).Error; err != nil {
			return PunchResult{}, fmt.Errorf("create timesheet: %w", err)
		}
		return PunchResult{Employee: emp, Timesheet: ts, Action: PunchIn}, nil
	}
	if err != nil {
		return PunchResult{}, fmt.Errorf("load timesheet: %w", err)
	}

	if ts.Complete() {
		return PunchResult{}, ErrAlreadyClockedOut
	}
	if ts.StartTime == nil {
		// manager created a partial entry; treat the punch as clock-in
		if ts.EndTime != nil && *ts.EndTime < clock {
			return PunchResult{}, fmt.Errorf("%w: %s-%s", ErrInvalidTimeRange, clock, *ts.EndTime)
		}
		ts.StartTime = &clock
		if ts.Complete() {
			// the punch completed an end-only entry
			rules, err := loadRules(db, clientID)
			if err != nil {
				return PunchResult{}, err
			}
			if _, err := ComputeTimesheet(&ts, rules); err != nil {
				return PunchResult{}, err
			}
		}
		if err := db.Save(&ts).Error; err != nil {
			return PunchResult{}, fmt.Errorf("save timesheet: %w", err)
		}
		return PunchResult{Employee: emp, Timesheet: ts, Action: PunchIn}, nil
	}

	if clock < *ts.StartTime {
		return PunchResult{}, fmt.Errorf("%w: %s-%s", ErrInvalidTimeRange, *ts.StartTime, clock)
	}

	ts.EndTime = &clock
	rules, err := loadRules(db, clientID)
	if err != nil {
		return PunchResult{}, err
	}
	if _, err := ComputeTimesheet(&ts, rules); err != nil {
		return PunchResult{}, err
	}
	if err := db.Save(&ts).Error; err != nil {
		return PunchResult{}, fmt.Errorf("save timesheet: %w", err)
	}
	return PunchResult{Employee: emp, Timesheet: ts, Action: PunchOut}, nil
}

func loadRules(db *gorm.DB, clientID int32) ([]model.BreakRule, error) {
	var rules []model.BreakRule
	if err := db.Where("client_id = ?", clientID).Find(&rules).Error; err != nil {
		return nil, fmt.Errorf("load break rules: %w", err)
	}
	return rules, nil
}

// findEmployeeByPin compares the punched PIN against every active
// employee's hash. Four-digit PINs keep the candidate set small enough for
// a scan, and the hashes never leave this function.
func findEmployeeByPin(db *gorm.DB, clientID int32, pin string) (model.Employee, error) {
	var employees []model.Employee
	if err := db.Where("client_id = ? AND status = ?", clientID, model.EmployeeStatusActive).
		Find(&employees).Error; err != nil {
		return model.Employee{}, fmt.Errorf("load employees: %w", err)
	}
	for _, emp := range employees {
		if security.VerifyPin(pin, emp.PinHash) {
			return emp, nil
		}
	}
	return model.Employee{}, ErrUnknownPin
}
