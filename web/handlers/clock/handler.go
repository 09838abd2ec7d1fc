package clock

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shiftpay.net.au/shiftpay/core"
	"shiftpay.net.au/shiftpay/payroll"
	"shiftpay.net.au/shiftpay/timeutil"
	"shiftpay.net.au/shiftpay/web/common"
)

type Endpoint struct {
	base common.Handler
}

func Register(r *gin.RouterGroup, dm *core.DatabaseManager) {
	endpoint := &Endpoint{base: common.Handler{Dm: dm}}
	r.POST("/clock", endpoint.Punch)
}

type PunchDTO struct {
	Pin string `json:"pin" binding:"required,len=4,numeric"`
}

type PunchResultDTO struct {
	Action     string  `json:"action"`
	Employee   string  `json:"employee"`
	WorkDate   string  `json:"workDate"`
	StartTime  *string `json:"startTime"`
	EndTime    *string `json:"endTime"`
	TotalHours float64 `json:"totalHours"`
}

// Punch is the keypad endpoint. It takes no session; the tenant comes from
// the subdomain and the employee from the PIN.
func (ep *Endpoint) Punch(c *gin.Context) {
	var body PunchDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	client, db, conn, ok := ep.base.TenantDB(c)
	if !ok {
		return
	}
	defer conn.Close()

	res, err := payroll.Punch(db, client.ID, body.Pin, timeutil.Now())
	switch {
	case errors.Is(err, payroll.ErrUnknownPin):
		c.JSON(http.StatusUnauthorized, common.NewErrorResponse(err.Error()))
		return
	case errors.Is(err, payroll.ErrAlreadyClockedOut):
		c.JSON(http.StatusConflict, common.NewErrorResponse(err.Error()))
		return
	case errors.Is(err, payroll.ErrInvalidTimeRange):
		c.JSON(http.StatusUnprocessableEntity, common.NewErrorResponse(err.Error()))
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(PunchResultDTO{
		Action:     res.Action,
		Employee:   res.Employee.FirstName + " " + res.Employee.Surname,
		WorkDate:   res.Timesheet.WorkDate.Format(timeutil.DateLayout),
		StartTime:  res.Timesheet.StartTime,
		EndTime:    res.Timesheet.EndTime,
		TotalHours: res.Timesheet.TotalHours,
	}))
}
