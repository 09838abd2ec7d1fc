package breakrule

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shiftpay.net.au/shiftpay/core"
	"shiftpay.net.au/shiftpay/infrastructure/communication"
	"shiftpay.net.au/shiftpay/model"
	"shiftpay.net.au/shiftpay/payroll"
	"shiftpay.net.au/shiftpay/utils"
	"shiftpay.net.au/shiftpay/web/common"
)

type Endpoint struct {
	base     common.Handler
	notifier *communication.Slack
}

func Register(r *gin.RouterGroup, dm *core.DatabaseManager, notifier *communication.Slack) {
	endpoint := &Endpoint{base: common.Handler{Dm: dm}, notifier: notifier}
	r.GET("/break-rules", endpoint.List)
	r.PUT("/break-rules", endpoint.Replace)
}

type BreakRuleDTO struct {
	MinHours     float64 `json:"minHours"`
	BreakMinutes int32   `json:"breakMinutes"`
}

func (ep *Endpoint) List(c *gin.Context) {
	client, db, conn, ok := ep.base.TenantDB(c)
	if !ok {
		return
	}
	defer conn.Close()

	var rules []model.BreakRule
	if err := db.Where("client_id = ?", client.ID).Order("min_hours").Find(&rules).Error; err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(utils.Map(rules, func(r model.BreakRule) BreakRuleDTO {
		return BreakRuleDTO{MinHours: r.MinHours, BreakMinutes: r.BreakMinutes}
	})))
}

type ReplaceRulesDTO struct {
	Rules []BreakRuleDTO `json:"rules" binding:"required,min=1"`
}

// Replace swaps the client's break table and recomputes all their
// timesheets in the same unit of work. A table that fails validation never
// reaches the database; a recompute failure rolls the whole change back.
func (ep *Endpoint) Replace(c *gin.Context) {
	var body ReplaceRulesDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	client, db, conn, ok := ep.base.TenantDB(c)
	if !ok {
		return
	}
	defer conn.Close()

	rules := utils.Map(body.Rules, func(r BreakRuleDTO) model.BreakRule {
		return model.BreakRule{MinHours: r.MinHours, BreakMinutes: r.BreakMinutes}
	})

	clamped, err := payroll.ReplaceBreakRules(db, client.ID, rules)
	if errors.Is(err, payroll.ErrInvalidRuleSet) {
		c.JSON(http.StatusUnprocessableEntity, common.NewErrorResponse(err.Error()))
		return
	}
	if err != nil {
		ep.notifier.Errorf("break rule replacement failed for client %s: %v", client.Subdomain, err)
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	if clamped > 0 {
		ep.notifier.Errorf("break rules for client %s clamp %d timesheet(s) to zero hours", client.Subdomain, clamped)
	}
	ep.notifier.Infof("break rules replaced for client %s (%d tiers), timesheets recomputed", client.Subdomain, len(rules))
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"clampedTimesheets": clamped}))
}
