package payroll

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shiftpay.net.au/shiftpay/model"
	"shiftpay.net.au/shiftpay/timeutil"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.TenantModels()...))
	return db
}

func seedTimesheets(t *testing.T, db *gorm.DB, clientID int32) {
	t.Helper()
	require.NoError(t, db.Create(&[]model.Timesheet{
		{ClientID: clientID, EmployeeID: 1, WorkDate: timeutil.MustParseDate("2025-10-20"), StartTime: strp("08:00"), EndTime: strp("16:00")},
		{ClientID: clientID, EmployeeID: 1, WorkDate: timeutil.MustParseDate("2025-10-21"), StartTime: strp("09:00"), EndTime: strp("13:00")},
		{ClientID: clientID, EmployeeID: 2, WorkDate: timeutil.MustParseDate("2025-10-20"), StartTime: strp("07:00")},
	}).Error)
}

func TestReplaceBreakRulesRecomputesEverything(t *testing.T) {
	db := openTestDB(t)
	seedTimesheets(t, db, 1)

	// initial table: no deductions
	_, err := ReplaceBreakRules(db, 1, []model.BreakRule{{MinHours: 0, BreakMinutes: 0}})
	require.NoError(t, err)

	var ts model.Timesheet
	require.NoError(t, db.Where("employee_id = 1 AND total_hours = 8").First(&ts).Error)

	// tighten the table: 30 minutes from 5 hours up
	_, err = ReplaceBreakRules(db, 1, twoTierRules())
	require.NoError(t, err)

	var sheets []model.Timesheet
	require.NoError(t, db.Where("client_id = 1").Order("employee_id, work_date").Find(&sheets).Error)
	require.Len(t, sheets, 3)

	// 8h shift now deducts 30m
	assert.Equal(t, int32(30), sheets[0].BreakMinutes)
	assert.InDelta(t, 7.5, sheets[0].TotalHours, 1e-9)
	// 4h shift stays below the tier
	assert.Equal(t, int32(0), sheets[1].BreakMinutes)
	assert.InDelta(t, 4.0, sheets[1].TotalHours, 1e-9)
	// in-progress shift stays at zero
	assert.Equal(t, int32(0), sheets[2].BreakMinutes)
	assert.Zero(t, sheets[2].TotalHours)

	// no stale rule rows survive the replacement
	var rules []model.BreakRule
	require.NoError(t, db.Where("client_id = 1").Find(&rules).Error)
	assert.Len(t, rules, 2)
}

func TestReplaceBreakRulesRejectsInvalidSet(t *testing.T) {
	db := openTestDB(t)
	_, err := ReplaceBreakRules(db, 1, twoTierRules())
	require.NoError(t, err)

	_, err = ReplaceBreakRules(db, 1, []model.BreakRule{{MinHours: 5, BreakMinutes: 30}})
	assert.ErrorIs(t, err, ErrInvalidRuleSet)

	// old table untouched
	var count int64
	require.NoError(t, db.Model(&model.BreakRule{}).Where("client_id = 1").Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestReplaceBreakRulesScopedToClient(t *testing.T) {
	db := openTestDB(t)
	seedTimesheets(t, db, 1)
	require.NoError(t, db.Create(&model.Timesheet{
		ClientID: 2, EmployeeID: 9, WorkDate: timeutil.MustParseDate("2025-10-20"),
		StartTime: strp("08:00"), EndTime: strp("16:00"), TotalHours: 8,
	}).Error)

	_, err := ReplaceBreakRules(db, 1, twoTierRules())
	require.NoError(t, err)

	var other model.Timesheet
	require.NoError(t, db.Where("client_id = 2").First(&other).Error)
	assert.InDelta(t, 8.0, other.TotalHours, 1e-9)
	assert.Equal(t, int32(0), other.BreakMinutes)
}

func TestReplaceBreakRulesClearsOverrides(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Create(&model.Timesheet{
		ClientID: 1, EmployeeID: 1, WorkDate: timeutil.MustParseDate("2025-10-20"),
		StartTime: strp("08:00"), EndTime: strp("16:00"),
		BreakMinutes: 45, BreakOverridden: true, TotalHours: 7.25,
	}).Error)

	_, err := ReplaceBreakRules(db, 1, twoTierRules())
	require.NoError(t, err)

	var ts model.Timesheet
	require.NoError(t, db.First(&ts).Error)
	assert.False(t, ts.BreakOverridden)
	assert.Equal(t, int32(30), ts.BreakMinutes)
	assert.InDelta(t, 7.5, ts.TotalHours, 1e-9)
}

func TestReplaceBreakRulesReportsClampedCount(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Create(&[]model.Timesheet{
		{ClientID: 1, EmployeeID: 1, WorkDate: timeutil.MustParseDate("2025-10-20"), StartTime: strp("08:00"), EndTime: strp("09:00")},
		{ClientID: 1, EmployeeID: 1, WorkDate: timeutil.MustParseDate("2025-10-21"), StartTime: strp("08:00"), EndTime: strp("16:00")},
	}).Error)

	// 90-minute deduction from the floor zeroes the 1h shift only
	clamped, err := ReplaceBreakRules(db, 1, []model.BreakRule{{MinHours: 0, BreakMinutes: 90}})
	require.NoError(t, err)
	assert.Equal(t, 1, clamped)

	var short model.Timesheet
	require.NoError(t, db.Where("work_date = ?", timeutil.MustParseDate("2025-10-20")).First(&short).Error)
	assert.Zero(t, short.TotalHours)
}
