package model

// TenantModels lists everything migrated into each tenant schema.
func TenantModels() []interface{} {
	return []interface{}{
		&Employee{},
		&Manager{},
		&BreakRule{},
		&Timesheet{},
		&TimesheetEditLog{},
	}
}

// AdminModels lists what lives in the shared admin schema.
func AdminModels() []interface{} {
	return []interface{}{
		&Client{},
	}
}
