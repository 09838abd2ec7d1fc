package payroll

import (
	"encoding/csv"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"shiftpay.net.au/shiftpay/timeutil"
	"shiftpay.net.au/shiftpay/web/common"
)

var exportHeader = []string{
	"Employee", "Pay Type",
	"Weekday Hours", "Saturday Hours", "Sunday Hours",
	"Total Hours", "Total Pay",
}

// Export downloads the payroll summary as a file. ?format=csv or xlsx
// (default). Rounding to cents happens here, at the formatting edge.
func (ep *Endpoint) Export(c *gin.Context) {
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

	filename := fmt.Sprintf("payroll_%s_%s_%s",
		client.Subdomain,
		params.StartDate.Time.Format(timeutil.DateLayout),
		params.EndDate.Time.Format(timeutil.DateLayout))

	switch c.DefaultQuery("format", "xlsx") {
	case "csv":
		ep.writeCSV(c, filename, rows)
	case "xlsx":
		ep.writeXLSX(c, filename, rows)
	default:
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("format must be csv or xlsx"))
	}
}

func (ep *Endpoint) writeCSV(c *gin.Context, filename string, rows []SummaryRow) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`.csv"`)

	w := csv.NewWriter(c.Writer)
	_ = w.Write(exportHeader)
	for _, r := range rows {
		_ = w.Write([]string{
			r.Name,
			r.PayType,
			formatHours(r.WeekdayHours),
			formatHours(r.SaturdayHours),
			formatHours(r.SundayHours),
			formatHours(r.TotalHours),
			formatMoney(r.TotalPay),
		})
	}
	w.Flush()
}

func (ep *Endpoint) writeXLSX(c *gin.Context, filename string, rows []SummaryRow) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Payroll"
	f.SetSheetName("Sheet1", sheet)

	for i, h := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for rowIdx, r := range rows {
		values := []interface{}{
			r.Name, r.PayType,
			r.WeekdayHours, r.SaturdayHours, r.SundayHours,
			r.TotalHours, roundCents(r.TotalPay),
		}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`.xlsx"`)
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
	}
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', 2, 64)
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(roundCents(v), 'f', 2, 64)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
