package payroll

import (
	"fmt"

	"gorm.io/gorm"

	"shiftpay.net.au/shiftpay/model"
)

// ReplaceBreakRules swaps out a client's break table and recomputes every
// timesheet of that client inside one transaction. When it returns a nil
// error, no timesheet of the client still reflects the old table; on any
// failure the old table stays in place. The int counts timesheets whose
// total was clamped to zero under the new table, for operator warnings.
func ReplaceBreakRules(db *gorm.DB, clientID int32, rules []model.BreakRule) (int, error) {
	if err := ValidateRuleSet(rules); err != nil {
		return 0, err
	}

	var clamped int
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("client_id = ?", clientID).Delete(&model.BreakRule{}).Error; err != nil {
			return fmt.Errorf("delete old rules: %w", err)
		}
		for i := range rules {
			rules[i].ID = 0
			rules[i].ClientID = clientID
		}
		if err := tx.Create(&rules).Error; err != nil {
			return fmt.Errorf("insert rules: %w", err)
		}
		n, err := RecomputeClient(tx, clientID, rules)
		clamped = n
		return err
	})
	if err != nil {
		return 0, err
	}
	return clamped, nil
}

// RecomputeClient reruns the break calculation for every timesheet of the
// client against rules, returning how many were clamped to zero. Manual
// break overrides are recomputed too: a table replacement resets the whole
// client to computed breaks.
func RecomputeClient(tx *gorm.DB, clientID int32, rules []model.BreakRule) (int, error) {
	var timesheets []model.Timesheet
	if err := tx.Where("client_id = ?", clientID).Find(&timesheets).Error; err != nil {
		return 0, fmt.Errorf("load timesheets: %w", err)
	}

	clamped := 0
	for i := range timesheets {
		ts := &timesheets[i]
		ts.BreakOverridden = false
		wasClamped, err := ComputeTimesheet(ts, rules)
		if err != nil {
			return 0, fmt.Errorf("recompute timesheet %d: %w", ts.ID, err)
		}
		if wasClamped {
			clamped++
		}
		if err := tx.Model(&model.Timesheet{}).Where("id = ?", ts.ID).
			Updates(map[string]interface{}{
				"break_minutes":    ts.BreakMinutes,
				"break_overridden": false,
				"total_hours":      ts.TotalHours,
			}).Error; err != nil {
			return 0, fmt.Errorf("save timesheet %d: %w", ts.ID, err)
		}
	}
	return clamped, nil
}
