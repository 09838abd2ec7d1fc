package timesheet

import (
	"shiftpay.net.au/shiftpay/model"
	"shiftpay.net.au/shiftpay/timeutil"
)

type TimesheetDTO struct {
	ID              int32   `json:"id"`
	EmployeeID      int32   `json:"employeeId"`
	Employee        string  `json:"employee"`
	WorkDate        string  `json:"workDate"`
	DayType         string  `json:"dayType"`
	StartTime       *string `json:"startTime"`
	EndTime         *string `json:"endTime"`
	BreakMinutes    int32   `json:"breakMinutes"`
	BreakOverridden bool    `json:"breakOverridden"`
	TotalHours      float64 `json:"totalHours"`
	Notes           *string `json:"notes"`
	// Clamped is only set on create/update responses, when the break
	// deduction zeroed the shift out.
	Clamped bool `json:"clamped,omitempty"`
}

func toDTO(ts model.Timesheet, emp model.Employee) TimesheetDTO {
	return TimesheetDTO{
		ID:              ts.ID,
		EmployeeID:      ts.EmployeeID,
		Employee:        emp.FirstName + " " + emp.Surname,
		WorkDate:        ts.WorkDate.Format(timeutil.DateLayout),
		DayType:         string(timeutil.DayTypeOf(ts.WorkDate)),
		StartTime:       ts.StartTime,
		EndTime:         ts.EndTime,
		BreakMinutes:    ts.BreakMinutes,
		BreakOverridden: ts.BreakOverridden,
		TotalHours:      ts.TotalHours,
		Notes:           ts.Notes,
	}
}
