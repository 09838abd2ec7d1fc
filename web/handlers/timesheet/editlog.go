package timesheet

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shiftpay.net.au/shiftpay/model"
)

// writeEditLog appends the audit entry for an edit or delete. after is nil
// for deletes. The log is the caller's responsibility, never the core's, so
// it lives here with the handlers.
func writeEditLog(tx *gorm.DB, clientID int32, before model.Timesheet, after *model.Timesheet, action, by string) error {
	changes := model.EditChanges{
		PrevStartTime: before.StartTime,
		PrevEndTime:   before.EndTime,
	}
	if after != nil {
		changes.NewStartTime = after.StartTime
		changes.NewEndTime = after.EndTime
	}
	payload, err := json.Marshal(changes)
	if err != nil {
		return err
	}

	return tx.Create(&model.TimesheetEditLog{
		ID:          uuid.NewString(),
		ClientID:    clientID,
		TimesheetID: before.ID,
		Action:      action,
		EditedBy:    by,
		Changes:     payload,
	}).Error
}
