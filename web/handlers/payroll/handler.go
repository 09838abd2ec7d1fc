package payroll

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"shiftpay.net.au/shiftpay/core"
	"shiftpay.net.au/shiftpay/model"
	paycore "shiftpay.net.au/shiftpay/payroll"
	"shiftpay.net.au/shiftpay/timeutil"
	"shiftpay.net.au/shiftpay/utils"
	"shiftpay.net.au/shiftpay/web/common"
)

type Endpoint struct {
	base common.Handler
}

func Register(r *gin.RouterGroup, dm *core.DatabaseManager) {
	endpoint := &Endpoint{base: common.Handler{Dm: dm}}
	r.POST("/payroll/summary", endpoint.Summary)
	r.GET("/payroll/week", endpoint.CurrentWeek)
	r.POST("/payroll/export", endpoint.Export)
}

type SummaryParams struct {
	StartDate *common.DateOnly `json:"startDate" binding:"required"`
	EndDate   *common.DateOnly `json:"endDate" binding:"required"`
	Employees []int32          `json:"employees"`
}

// SummaryRow is one employee's pay buckets over the requested range. Every
// surface (dashboard, employee page, exports) reads these rows; none of
// them re-derives the bucketing.
type SummaryRow struct {
	EmployeeID    int32   `json:"employeeId"`
	Name          string  `json:"name"`
	PayType       string  `json:"payType"`
	WeekdayHours  float64 `json:"weekdayHours"`
	SaturdayHours float64 `json:"saturdayHours"`
	SundayHours   float64 `json:"sundayHours"`
	TotalHours    float64 `json:"totalHours"`
	TotalPay      float64 `json:"totalPay"`
}

func (ep *Endpoint) Summary(c *gin.Context) {
	var params SummaryParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	client, db, conn, ok := ep.base.TenantDB(c)
	if !ok {
		return
	}
	defer conn.Close()

	rows, err := buildSummaries(db, client.ID, params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(rows))
}

// CurrentWeek is the dashboard view: summaries for the Monday..Sunday week
// containing today.
func (ep *Endpoint) CurrentWeek(c *gin.Context) {
	client, db, conn, ok := ep.base.TenantDB(c)
	if !ok {
		return
	}
	defer conn.Close()

	monday, sunday := timeutil.WeekBounds(timeutil.Now())
	params := SummaryParams{
		StartDate: &common.DateOnly{Time: monday},
		EndDate:   &common.DateOnly{Time: sunday},
	}

	rows, err := buildSummaries(db, client.ID, params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(rows))
}

func buildSummaries(db *gorm.DB, clientID int32, params SummaryParams) ([]SummaryRow, error) {
	empQuery := db.Where("client_id = ?", clientID)
	if len(params.Employees) > 0 {
		empQuery = empQuery.Where("id IN ?", params.Employees)
	}
	var employees []model.Employee
	if err := empQuery.Order("surname, first_name").Find(&employees).Error; err != nil {
		return nil, err
	}

	var timesheets []model.Timesheet
	tsQuery := db.Where("client_id = ?", clientID).
		Where("work_date BETWEEN ? AND ?",
			params.StartDate.Time.Format(timeutil.DateLayout),
			params.EndDate.Time.Format(timeutil.DateLayout))
	if len(params.Employees) > 0 {
		tsQuery = tsQuery.Where("employee_id IN ?", params.Employees)
	}
	if err := tsQuery.Find(&timesheets).Error; err != nil {
		return nil, err
	}

	byEmployee := utils.GroupBy(timesheets, func(ts model.Timesheet) int32 { return ts.EmployeeID })

	rows := make([]SummaryRow, 0, len(employees))
	for _, emp := range employees {
		s := paycore.Aggregate(byEmployee[emp.ID], emp)
		rows = append(rows, SummaryRow{
			EmployeeID:    emp.ID,
			Name:          emp.FirstName + " " + emp.Surname,
			PayType:       emp.PayType,
			WeekdayHours:  s.WeekdayHours,
			SaturdayHours: s.SaturdayHours,
			SundayHours:   s.SundayHours,
			TotalHours:    s.TotalHours,
			TotalPay:      s.TotalPay,
		})
	}
	return rows, nil
}
