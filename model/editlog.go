package model

import (
	"time"

	"gorm.io/datatypes"
)

// TimesheetEditLog is an append-only audit record written alongside every
// timesheet edit or delete. Changes holds the previous and new clock times
// as a JSON document; rows are never updated or removed.
type TimesheetEditLog struct {
	ID          string         `gorm:"primaryKey;column:id;type:varchar(36)"`
	ClientID    int32          `gorm:"column:client_id;not null;index"`
	TimesheetID int32          `gorm:"column:timesheet_id;not null;index"`
	Action      string         `gorm:"column:action;type:varchar(20);not null"`
	EditedBy    string         `gorm:"column:edited_by;type:varchar(20);not null"`
	Changes     datatypes.JSON `gorm:"column:changes"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
}

func (TimesheetEditLog) TableName() string {
	return "timesheet_edit_logs"
}

const (
	EditActionEdit   = "edit"
	EditActionDelete = "delete"

	EditedByEmployee = "employee"
	EditedByManager  = "manager"
)

// EditChanges is the JSON payload stored in TimesheetEditLog.Changes.
type EditChanges struct {
	PrevStartTime *string `json:"prevStartTime"`
	PrevEndTime   *string `json:"prevEndTime"`
	NewStartTime  *string `json:"newStartTime"`
	NewEndTime    *string `json:"newEndTime"`
}
