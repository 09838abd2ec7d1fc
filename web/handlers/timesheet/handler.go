package timesheet

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"shiftpay.net.au/shiftpay/core"
	"shiftpay.net.au/shiftpay/model"
	"shiftpay.net.au/shiftpay/payroll"
	"shiftpay.net.au/shiftpay/web/common"
)

type Endpoint struct {
	base common.Handler
}

func Register(r *gin.RouterGroup, dm *core.DatabaseManager) {
	endpoint := &Endpoint{base: common.Handler{Dm: dm}}
	r.POST("/timesheets/search", endpoint.Search)
	r.POST("/timesheets", endpoint.Create)
	r.GET("/timesheets/:id", endpoint.Get)
	r.PUT("/timesheets/:id", endpoint.Update)
	r.DELETE("/timesheets/:id", endpoint.Delete)
}

type TimesheetCreateDTO struct {
	EmployeeID int32            `json:"employeeId" binding:"required"`
	WorkDate   *common.DateOnly `json:"workDate" binding:"required"`
	StartTime  *string          `json:"startTime" binding:"omitempty,datetime=15:04"`
	EndTime    *string          `json:"endTime" binding:"omitempty,datetime=15:04"`
	Notes      *string          `json:"notes" binding:"omitempty,max=500"`
}

func (ep *Endpoint) Create(c *gin.Context) {
	var body TimesheetCreateDTO
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
	if err := db.Where("client_id = ?", client.ID).First(&emp, body.EmployeeID).Error; err != nil {
		c.JSON(http.StatusNotFound, common.NewErrorResponse("Employee not found"))
		return
	}

	ts := model.Timesheet{
		ClientID:   client.ID,
		EmployeeID: emp.ID,
		WorkDate:   body.WorkDate.Time,
		StartTime:  body.StartTime,
		EndTime:    body.EndTime,
		Notes:      body.Notes,
	}
	clamped, ok := ep.compute(c, db, client.ID, &ts)
	if !ok {
		return
	}

	if err := db.Create(&ts).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, common.NewErrorResponse("A timesheet already exists for that employee and date"))
			return
		}
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	dto := toDTO(ts, emp)
	dto.Clamped = clamped
	c.JSON(http.StatusCreated, common.NewSuccessResponse(dto))
}

// TimesheetUpdateDTO enumerates every editable field; absent fields stay
// untouched, an empty time string clears it. RecomputeBreak drops a manual
// break override and goes back to the computed value.
type TimesheetUpdateDTO struct {
	StartTime      *string `json:"startTime" binding:"omitempty,datetime=15:04"`
	EndTime        *string `json:"endTime" binding:"omitempty,datetime=15:04"`
	BreakMinutes   *int32  `json:"breakMinutes" binding:"omitempty,min=0"`
	RecomputeBreak bool    `json:"recomputeBreak"`
	Notes          *string `json:"notes" binding:"omitempty,max=500"`
	EditedBy       string  `json:"editedBy" binding:"omitempty,oneof=employee manager"`
}

func (ep *Endpoint) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid id"))
		return
	}

	var body TimesheetUpdateDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	client, db, conn, ok := ep.base.TenantDB(c)
	if !ok {
		return
	}
	defer conn.Close()

	var ts model.Timesheet
	if err := db.Preload("Employee").Where("client_id = ?", client.ID).First(&ts, id).Error; err != nil {
		c.JSON(http.StatusNotFound, common.NewErrorResponse("Timesheet not found"))
		return
	}

	prev := ts
	applyTimeField(&ts.StartTime, body.StartTime)
	applyTimeField(&ts.EndTime, body.EndTime)
	if body.Notes != nil {
		ts.Notes = body.Notes
	}
	if body.RecomputeBreak {
		ts.BreakOverridden = false
	} else if body.BreakMinutes != nil {
		ts.BreakMinutes = *body.BreakMinutes
		ts.BreakOverridden = true
	}

	clamped, ok := ep.compute(c, db, client.ID, &ts)
	if !ok {
		return
	}

	if err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Employee").Save(&ts).Error; err != nil {
			return err
		}
		return writeEditLog(tx, client.ID, prev, &ts, model.EditActionEdit, editedBy(body.EditedBy))
	}); err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	dto := toDTO(ts, ts.Employee)
	dto.Clamped = clamped
	c.JSON(http.StatusOK, common.NewSuccessResponse(dto))
}

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

	var ts model.Timesheet
	if err := db.Where("client_id = ?", client.ID).First(&ts, id).Error; err != nil {
		c.JSON(http.StatusNotFound, common.NewErrorResponse("Timesheet not found"))
		return
	}

	if err := db.Transaction(func(tx *gorm.DB) error {
		if err := writeEditLog(tx, client.ID, ts, nil, model.EditActionDelete, model.EditedByManager); err != nil {
			return err
		}
		return tx.Delete(&ts).Error
	}); err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{}))
}

// compute runs the break calculation against the client's current table,
// mapping core errors onto responses. The bool reports whether it
// succeeded; clamped comes through so the response can flag a shift whose
// deduction zeroed it out.
func (ep *Endpoint) compute(c *gin.Context, db *gorm.DB, clientID int32, ts *model.Timesheet) (clamped, ok bool) {
	var rules []model.BreakRule
	if err := db.Where("client_id = ?", clientID).Find(&rules).Error; err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return false, false
	}

	clamped, err := payroll.ComputeTimesheet(ts, rules)
	switch {
	case errors.Is(err, payroll.ErrInvalidTimeRange):
		c.JSON(http.StatusUnprocessableEntity, common.NewErrorResponse(err.Error()))
		return false, false
	case errors.Is(err, payroll.ErrNoApplicableRule):
		// broken break table; a configuration problem, not a bad edit
		c.JSON(http.StatusConflict, common.NewErrorResponse(err.Error()))
		return false, false
	case err != nil:
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return false, false
	}
	return clamped, true
}

func applyTimeField(field **string, update *string) {
	if update == nil {
		return
	}
	if *update == "" {
		*field = nil
		return
	}
	*field = update
}

func editedBy(v string) string {
	if v == "" {
		return model.EditedByManager
	}
	return v
}
