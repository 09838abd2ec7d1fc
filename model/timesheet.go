package model

import "time"

// Timesheet is one employee-day. StartTime and EndTime are "15:04"
// time-of-day strings and are independently nullable so an in-progress
// shift (clocked in, not out) is a legal row. BreakMinutes and TotalHours
// are computed from the client's break rules unless the break was manually
// overridden.
type Timesheet struct {
	ID              int32     `gorm:"primaryKey;column:id"`
	ClientID        int32     `gorm:"column:client_id;not null;index"`
	EmployeeID      int32     `gorm:"column:employee_id;not null;uniqueIndex:idx_employee_work_date"`
	WorkDate        time.Time `gorm:"column:work_date;type:date;not null;uniqueIndex:idx_employee_work_date"`
	StartTime       *string   `gorm:"column:start_time;type:varchar(8)"`
	EndTime         *string   `gorm:"column:end_time;type:varchar(8)"`
	BreakMinutes    int32     `gorm:"column:break_minutes;not null;default:0"`
	BreakOverridden bool      `gorm:"column:break_overridden;not null;default:false"`
	TotalHours      float64   `gorm:"column:total_hours;type:decimal(10,2);not null;default:0"`
	Notes           *string   `gorm:"column:notes;type:varchar(500)"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`

	Employee Employee `gorm:"foreignKey:EmployeeID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Timesheet) TableName() string {
	return "timesheets"
}

// Complete reports whether both clock times are present.
func (t Timesheet) Complete() bool {
	return t.StartTime != nil && t.EndTime != nil
}
