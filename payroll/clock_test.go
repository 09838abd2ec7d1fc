package payroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"shiftpay.net.au/shiftpay/model"
	"shiftpay.net.au/shiftpay/security"
)

func seedClockEmployee(t *testing.T, db *gorm.DB, clientID int32, pin string) model.Employee {
	t.Helper()
	hash, err := security.HashPin(pin)
	require.NoError(t, err)
	emp := model.Employee{
		ClientID:    clientID,
		FirstName:   "Dana",
		Surname:     "Hill",
		PinHash:     hash,
		WeekdayRate: 25,
		Status:      model.EmployeeStatusActive,
	}
	require.NoError(t, db.Create(&emp).Error)
	return emp
}

func TestPunchInThenOut(t *testing.T) {
	db := openTestDB(t)
	emp := seedClockEmployee(t, db, 1, "1234")
	require.NoError(t, db.Create(&[]model.BreakRule{
		{ClientID: 1, MinHours: 0, BreakMinutes: 0},
		{ClientID: 1, MinHours: 5, BreakMinutes: 30},
	}).Error)

	morning := time.Date(2025, 10, 20, 8, 0, 0, 0, time.UTC)
	res, err := Punch(db, 1, "1234", morning)
	require.NoError(t, err)
	assert.Equal(t, PunchIn, res.Action)
	assert.Equal(t, emp.ID, res.Employee.ID)
	require.NotNil(t, res.Timesheet.StartTime)
	assert.Equal(t, "08:00", *res.Timesheet.StartTime)
	assert.Zero(t, res.Timesheet.TotalHours)

	evening := morning.Add(8 * time.Hour)
	res, err = Punch(db, 1, "1234", evening)
	require.NoError(t, err)
	assert.Equal(t, PunchOut, res.Action)
	require.NotNil(t, res.Timesheet.EndTime)
	assert.Equal(t, "16:00", *res.Timesheet.EndTime)
	assert.Equal(t, int32(30), res.Timesheet.BreakMinutes)
	assert.InDelta(t, 7.5, res.Timesheet.TotalHours, 1e-9)

	// third punch same day
	_, err = Punch(db, 1, "1234", evening.Add(time.Minute))
	assert.ErrorIs(t, err, ErrAlreadyClockedOut)
}

func TestPunchUnknownPin(t *testing.T) {
	db := openTestDB(t)
	seedClockEmployee(t, db, 1, "1234")

	_, err := Punch(db, 1, "9999", time.Now().UTC())
	assert.ErrorIs(t, err, ErrUnknownPin)
}

func TestPunchInactiveEmployee(t *testing.T) {
	db := openTestDB(t)
	emp := seedClockEmployee(t, db, 1, "1234")
	require.NoError(t, db.Model(&emp).Update("status", model.EmployeeStatusInactive).Error)

	_, err := Punch(db, 1, "1234", time.Now().UTC())
	assert.ErrorIs(t, err, ErrUnknownPin)
}

func TestPunchScopedToClient(t *testing.T) {
	db := openTestDB(t)
	seedClockEmployee(t, db, 1, "1234")

	// same PIN digits are legal on another client; punching there must not
	// touch client 1's employee
	_, err := Punch(db, 2, "1234", time.Now().UTC())
	assert.ErrorIs(t, err, ErrUnknownPin)
}

func TestPunchOntoEndOnlyEntry(t *testing.T) {
	db := openTestDB(t)
	emp := seedClockEmployee(t, db, 1, "1234")
	require.NoError(t, db.Create(&[]model.BreakRule{
		{ClientID: 1, MinHours: 0, BreakMinutes: 0},
		{ClientID: 1, MinHours: 5, BreakMinutes: 30},
	}).Error)

	// manager pre-filled only the end time for today
	day := time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)
	end := "16:00"
	require.NoError(t, db.Create(&model.Timesheet{
		ClientID: 1, EmployeeID: emp.ID, WorkDate: day, EndTime: &end,
	}).Error)

	// punching before the end time completes the row and computes it
	res, err := Punch(db, 1, "1234", day.Add(8*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, PunchIn, res.Action)

	var ts model.Timesheet
	require.NoError(t, db.Where("employee_id = ?", emp.ID).First(&ts).Error)
	require.True(t, ts.Complete())
	assert.Equal(t, "08:00", *ts.StartTime)
	assert.Equal(t, int32(30), ts.BreakMinutes)
	assert.InDelta(t, 7.5, ts.TotalHours, 1e-9)
}

func TestPunchAfterEndOnlyEntryRejected(t *testing.T) {
	db := openTestDB(t)
	emp := seedClockEmployee(t, db, 1, "1234")

	day := time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)
	end := "12:00"
	require.NoError(t, db.Create(&model.Timesheet{
		ClientID: 1, EmployeeID: emp.ID, WorkDate: day, EndTime: &end,
	}).Error)

	// a punch after the recorded end would invert the pair
	_, err := Punch(db, 1, "1234", day.Add(14*time.Hour))
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	// row untouched
	var ts model.Timesheet
	require.NoError(t, db.Where("employee_id = ?", emp.ID).First(&ts).Error)
	assert.Nil(t, ts.StartTime)
	assert.Zero(t, ts.TotalHours)
}
