package employee

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shiftpay.net.au/shiftpay/model"
	"shiftpay.net.au/shiftpay/security"
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

func seedEmployee(t *testing.T, db *gorm.DB, clientID int32, pin, status string) model.Employee {
	t.Helper()
	hash, err := security.HashPin(pin)
	require.NoError(t, err)
	emp := model.Employee{
		ClientID:  clientID,
		FirstName: "Grace",
		Surname:   "Tran",
		PinHash:   hash,
		Status:    status,
	}
	require.NoError(t, db.Create(&emp).Error)
	return emp
}

func TestPinInUseCoversInactiveEmployees(t *testing.T) {
	db := openTestDB(t)
	seedEmployee(t, db, 1, "1234", model.EmployeeStatusInactive)

	// an inactive employee keeps their PIN reserved
	taken, err := pinInUse(db, 1, "1234", 0)
	require.NoError(t, err)
	assert.True(t, taken)

	_, err = createEmployee(db, 1, EmployeeCreateDTO{
		FirstName: "Marcus", Surname: "Webb", Pin: "1234",
	})
	assert.ErrorIs(t, err, errPinTaken)

	// a different PIN is fine
	taken, err = pinInUse(db, 1, "5678", 0)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestPinInUseScopedToClient(t *testing.T) {
	db := openTestDB(t)
	seedEmployee(t, db, 1, "1234", model.EmployeeStatusActive)

	taken, err := pinInUse(db, 2, "1234", 0)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestPinInUseExcludesSelf(t *testing.T) {
	db := openTestDB(t)
	emp := seedEmployee(t, db, 1, "1234", model.EmployeeStatusActive)

	// keeping your own PIN on edit is not a collision
	taken, err := pinInUse(db, 1, "1234", emp.ID)
	require.NoError(t, err)
	assert.False(t, taken)
}
