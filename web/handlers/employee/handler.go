package employee

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"shiftpay.net.au/shiftpay/core"
	"shiftpay.net.au/shiftpay/model"
	"shiftpay.net.au/shiftpay/security"
	"shiftpay.net.au/shiftpay/utils"
	"shiftpay.net.au/shiftpay/web/common"
)

type Endpoint struct {
	base common.Handler
}

func Register(r *gin.RouterGroup, dm *core.DatabaseManager) {
	endpoint := &Endpoint{base: common.Handler{Dm: dm}}
	r.GET("/employees", endpoint.List)
	r.POST("/employees", endpoint.Create)
	r.POST("/employees/import", endpoint.Import)
	r.PUT("/employees/:id", endpoint.Update)
	r.DELETE("/employees/:id", endpoint.Delete)
}

type EmployeeDTO struct {
	ID           int32   `json:"id"`
	FirstName    string  `json:"firstName"`
	Surname      string  `json:"surname"`
	WeekdayRate  float64 `json:"weekdayRate"`
	SaturdayRate float64 `json:"saturdayRate"`
	SundayRate   float64 `json:"sundayRate"`
	PayType      string  `json:"payType"`
	Status       string  `json:"status"`
}

func toDTO(e model.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:           e.ID,
		FirstName:    e.FirstName,
		Surname:      e.Surname,
		WeekdayRate:  e.WeekdayRate,
		SaturdayRate: e.SaturdayRate,
		SundayRate:   e.SundayRate,
		PayType:      e.PayType,
		Status:       e.Status,
	}
}

func (ep *Endpoint) List(c *gin.Context) {
	client, db, conn, ok := ep.base.TenantDB(c)
	if !ok {
		return
	}
	defer conn.Close()

	var employees []model.Employee
	if err := db.Where("client_id = ?", client.ID).Order("surname, first_name").Find(&employees).Error; err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(utils.Map(employees, toDTO)))
}

type EmployeeCreateDTO struct {
	FirstName    string  `json:"firstName" binding:"required,max=80"`
	Surname      string  `json:"surname" binding:"required,max=80"`
	Pin          string  `json:"pin" binding:"required,len=4,numeric"`
	WeekdayRate  float64 `json:"weekdayRate" binding:"min=0"`
	SaturdayRate float64 `json:"saturdayRate" binding:"min=0"`
	SundayRate   float64 `json:"sundayRate" binding:"min=0"`
	PayType      string  `json:"payType" binding:"omitempty,oneof=hourly day_rate"`
}

func (ep *Endpoint) Create(c *gin.Context) {
	var body EmployeeCreateDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	client, db, conn, ok := ep.base.TenantDB(c)
	if !ok {
		return
	}
	defer conn.Close()

	emp, err := createEmployee(db, client.ID, body)
	if err == errPinTaken {
		c.JSON(http.StatusConflict, common.NewErrorResponse(err.Error()))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, common.NewSuccessResponse(toDTO(*emp)))
}

// EmployeeUpdateDTO enumerates every editable field; absent fields stay
// untouched.
type EmployeeUpdateDTO struct {
	FirstName    *string  `json:"firstName" binding:"omitempty,max=80"`
	Surname      *string  `json:"surname" binding:"omitempty,max=80"`
	Pin          *string  `json:"pin" binding:"omitempty,len=4,numeric"`
	WeekdayRate  *float64 `json:"weekdayRate" binding:"omitempty,min=0"`
	SaturdayRate *float64 `json:"saturdayRate" binding:"omitempty,min=0"`
	SundayRate   *float64 `json:"sundayRate" binding:"omitempty,min=0"`
	PayType      *string  `json:"payType" binding:"omitempty,oneof=hourly day_rate"`
	Status       *string  `json:"status" binding:"omitempty,oneof=active inactive"`
}

func (ep *Endpoint) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid id"))
		return
	}

	var body EmployeeUpdateDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	client, db, conn, ok := ep.base.TenantDB(c)
	if !ok {
		return
	}
	defer conn.Close()

	var emp model.Employee
	if err := db.Where("client_id = ?", client.ID).First(&emp, id).Error; err != nil {
		c.JSON(http.StatusNotFound, common.NewErrorResponse("Employee not found"))
		return
	}

	if body.FirstName != nil {
		emp.FirstName = *body.FirstName
	}
	if body.Surname != nil {
		emp.Surname = *body.Surname
	}
	if body.WeekdayRate != nil {
		emp.WeekdayRate = *body.WeekdayRate
	}
	if body.SaturdayRate != nil {
		emp.SaturdayRate = *body.SaturdayRate
	}
	if body.SundayRate != nil {
		emp.SundayRate = *body.SundayRate
	}
	if body.PayType != nil {
		emp.PayType = *body.PayType
	}
	if body.Status != nil {
		emp.Status = *body.Status
	}
	if body.Pin != nil {
		taken, err := pinInUse(db, client.ID, *body.Pin, emp.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}
		if taken {
			c.JSON(http.StatusConflict, common.NewErrorResponse(errPinTaken.Error()))
			return
		}
		hash, err := security.HashPin(*body.Pin)
		if err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error()))
			return
		}
		emp.PinHash = hash
	}

	if err := db.Save(&emp).Error; err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(toDTO(emp)))
}

// Delete removes the employee and, via the FK constraint, their
// timesheets. Soft-disable via status is the usual path; this is for
// mistakes, not offboarding.
func (ep *Endpoint) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid id"))
		return
	}

	client, db, conn, ok := ep.base.TenantDB(c)
	if !ok {
		return
	}
	defer conn.Close()

	if err := db.Transaction(func(tx *gorm.DB) error {
		var emp model.Employee
		if err := tx.Where("client_id = ?", client.ID).First(&emp, id).Error; err != nil {
			return err
		}
		if err := tx.Where("employee_id = ?", emp.ID).Delete(&model.Timesheet{}).Error; err != nil {
			return err
		}
		return tx.Delete(&emp).Error
	}); err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{}))
}
