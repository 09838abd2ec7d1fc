package employee

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"shiftpay.net.au/shiftpay/model"
	"shiftpay.net.au/shiftpay/security"
	"shiftpay.net.au/shiftpay/utils"
	"shiftpay.net.au/shiftpay/web/common"
)

var errPinTaken = errors.New("that PIN is already in use for this client")

// Import bulk-creates employees from an uploaded CSV:
// firstName,surname,pin,weekdayRate,saturdayRate,sundayRate[,payType]
// The first row is a header. Rows are validated like the create endpoint;
// the whole file is applied or rejected as one unit.
func (ep *Endpoint) Import(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("A 'file' upload is required"))
		return
	}
	defer file.Close()

	records, err := utils.ParseCSV(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(fmt.Sprintf("Invalid CSV: %v", err)))
		return
	}
	if len(records) < 2 {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("CSV has no data rows"))
		return
	}

	client, db, conn, ok := ep.base.TenantDB(c)
	if !ok {
		return
	}
	defer conn.Close()

	var created []model.Employee
	err = db.Transaction(func(tx *gorm.DB) error {
		for i, row := range records[1:] {
			dto, err := rowToCreateDTO(row)
			if err != nil {
				return fmt.Errorf("row %d: %w", i+2, err)
			}
			emp, err := createEmployee(tx, client.ID, *dto)
			if err != nil {
				return fmt.Errorf("row %d: %w", i+2, err)
			}
			created = append(created, *emp)
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, common.NewSuccessResponse(utils.Map(created, toDTO)))
}

func rowToCreateDTO(row []string) (*EmployeeCreateDTO, error) {
	if len(row) < 6 {
		return nil, fmt.Errorf("expected at least 6 columns, got %d", len(row))
	}
	if row[0] == "" || row[1] == "" {
		return nil, errors.New("firstName and surname are required")
	}
	if err := security.ValidatePinFormat(row[2]); err != nil {
		return nil, err
	}
	dto := EmployeeCreateDTO{
		FirstName: row[0],
		Surname:   row[1],
		Pin:       row[2],
		PayType:   model.PayTypeHourly,
	}
	rates := []*float64{&dto.WeekdayRate, &dto.SaturdayRate, &dto.SundayRate}
	for i, target := range rates {
		v, err := strconv.ParseFloat(row[3+i], 64)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("invalid rate %q", row[3+i])
		}
		*target = v
	}
	if len(row) > 6 && row[6] != "" {
		if row[6] != model.PayTypeHourly && row[6] != model.PayTypeDayRate {
			return nil, fmt.Errorf("invalid pay type %q", row[6])
		}
		dto.PayType = row[6]
	}
	return &dto, nil
}

// createEmployee is shared by the create endpoint and the CSV import.
func createEmployee(db *gorm.DB, clientID int32, body EmployeeCreateDTO) (*model.Employee, error) {
	taken, err := pinInUse(db, clientID, body.Pin, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errPinTaken
	}

	hash, err := security.HashPin(body.Pin)
	if err != nil {
		return nil, err
	}

	payType := body.PayType
	if payType == "" {
		payType = model.PayTypeHourly
	}

	emp := model.Employee{
		ClientID:     clientID,
		FirstName:    body.FirstName,
		Surname:      body.Surname,
		PinHash:      hash,
		WeekdayRate:  body.WeekdayRate,
		SaturdayRate: body.SaturdayRate,
		SundayRate:   body.SundayRate,
		PayType:      payType,
		Status:       model.EmployeeStatusActive,
	}
	if err := db.Create(&emp).Error; err != nil {
		return nil, err
	}
	return &emp, nil
}

// pinInUse scans all of the client's employees for a hash matching pin,
// excluding the employee being edited. Inactive employees keep their PIN
// reserved; otherwise a reactivation could produce two active employees
// sharing one PIN and punches would be ambiguous. PINs are stored hashed,
// so uniqueness has to be checked by comparison before assignment.
func pinInUse(db *gorm.DB, clientID int32, pin string, excludeID int32) (bool, error) {
	var employees []model.Employee
	if err := db.Where("client_id = ?", clientID).Find(&employees).Error; err != nil {
		return false, err
	}
	matches := utils.Filter(employees, func(e model.Employee) bool {
		return e.ID != excludeID && security.VerifyPin(pin, e.PinHash)
	})
	return len(matches) > 0, nil
}
