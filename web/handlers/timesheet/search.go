package timesheet

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"shiftpay.net.au/shiftpay/timeutil"
	"shiftpay.net.au/shiftpay/web/common"
)

type Sort struct {
	Field string `json:"field"`
	Dir   string `json:"dir"`
}

type SearchParams struct {
	StartDate *common.DateOnly `json:"startDate" binding:"required"`
	EndDate   *common.DateOnly `json:"endDate" binding:"required"`
	Employees []int32          `json:"employees"`
	Sorts     []Sort           `json:"sorts"`
}

func (ep *Endpoint) Search(c *gin.Context) {
	var params SearchParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	limit := 1000
	offset := 0
	if val, err := strconv.Atoi(c.Query("limit")); err == nil {
		limit = val
	}
	if val, err := strconv.Atoi(c.Query("offset")); err == nil {
		offset = val
	}

	client, db, conn, ok := ep.base.TenantDB(c)
	if !ok {
		return
	}
	defer conn.Close()

	rows, total, err := SearchTimesheets(db, client.ID, params, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, common.NewSearchResponse(rows, total))
}

type searchRow struct {
	ID              int32
	EmployeeID      int32
	FirstName       string
	Surname         string
	WorkDate        time.Time
	StartTime       *string
	EndTime         *string
	BreakMinutes    int32
	BreakOverridden bool
	TotalHours      float64
	Notes           *string
}

func SearchTimesheets(db *gorm.DB, clientID int32, params SearchParams, limit, offset int) ([]TimesheetDTO, int64, error) {
	query := db.Table("timesheets t").
		Select(`t.id, t.employee_id, e.first_name, e.surname,
			t.work_date, t.start_time, t.end_time,
			t.break_minutes, t.break_overridden, t.total_hours, t.notes`).
		Joins("JOIN employees e ON e.id = t.employee_id").
		Where("t.client_id = ?", clientID).
		Where("t.work_date BETWEEN ? AND ?",
			params.StartDate.Time.Format(timeutil.DateLayout),
			params.EndDate.Time.Format(timeutil.DateLayout))

	if len(params.Employees) > 0 {
		query = query.Where("t.employee_id IN ?", params.Employees)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	fieldMap := map[string]string{
		"workDate":   "t.work_date",
		"totalHours": "t.total_hours",
		"employeeId": "t.employee_id",
		"name":       "concat(e.first_name, ' ', e.surname)",
	}
	for _, s := range params.Sorts {
		dbField, ok := fieldMap[s.Field]
		if !ok {
			continue
		}
		direction := "ASC"
		if strings.EqualFold(s.Dir, "desc") {
			direction = "DESC"
		}
		query = query.Order(fmt.Sprintf("%s %s", dbField, direction))
	}
	query = query.Order("t.work_date, t.employee_id")

	var rows []searchRow
	if err := query.Limit(limit).Offset(offset).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	dtos := make([]TimesheetDTO, len(rows))
	for i, r := range rows {
		date := r.WorkDate
		dtos[i] = TimesheetDTO{
			ID:              r.ID,
			EmployeeID:      r.EmployeeID,
			Employee:        r.FirstName + " " + r.Surname,
			WorkDate:        date.Format(timeutil.DateLayout),
			DayType:         string(timeutil.DayTypeOf(date)),
			StartTime:       r.StartTime,
			EndTime:         r.EndTime,
			BreakMinutes:    r.BreakMinutes,
			BreakOverridden: r.BreakOverridden,
			TotalHours:      r.TotalHours,
			Notes:           r.Notes,
		}
	}
	return dtos, total, nil
}
