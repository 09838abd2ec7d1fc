package timesheet

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shiftpay.net.au/shiftpay/model"
	"shiftpay.net.au/shiftpay/web/common"
)

type TimesheetDetailDTO struct {
	TimesheetDTO
	EditLogs []EditLogDTO `json:"editLogs"`
}

type EditLogDTO struct {
	ID        string `json:"id"`
	Action    string `json:"action"`
	EditedBy  string `json:"editedBy"`
	Changes   string `json:"changes"`
	CreatedAt string `json:"createdAt"`
}

func (ep *Endpoint) Get(c *gin.Context) {
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
	if err := db.Preload("Employee").Where("client_id = ?", client.ID).First(&ts, id).Error; err != nil {
		c.JSON(http.StatusNotFound, common.NewErrorResponse("Timesheet not found"))
		return
	}

	var logs []model.TimesheetEditLog
	if err := db.Where("timesheet_id = ?", ts.ID).Order("created_at").Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to fetch edit logs"))
		return
	}

	logDTOs := make([]EditLogDTO, len(logs))
	for i, l := range logs {
		logDTOs[i] = EditLogDTO{
			ID:        l.ID,
			Action:    l.Action,
			EditedBy:  l.EditedBy,
			Changes:   string(l.Changes),
			CreatedAt: l.CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(TimesheetDetailDTO{
		TimesheetDTO: toDTO(ts, ts.Employee),
		EditLogs:     logDTOs,
	}))
}
