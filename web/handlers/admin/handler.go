package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"shiftpay.net.au/shiftpay/core"
	"shiftpay.net.au/shiftpay/infrastructure/communication"
	"shiftpay.net.au/shiftpay/model"
	"shiftpay.net.au/shiftpay/utils"
	"shiftpay.net.au/shiftpay/web/common"
)

type Endpoint struct {
	base     common.Handler
	notifier *communication.Slack
}

func Register(r *gin.RouterGroup, dm *core.DatabaseManager, notifier *communication.Slack) {
	endpoint := &Endpoint{base: common.Handler{Dm: dm}, notifier: notifier}
	r.GET("/clients", endpoint.List)
	r.POST("/clients", endpoint.Provision)
	r.POST("/clients/:id/suspend", endpoint.Suspend)
}

type ClientDTO struct {
	ID        int32  `json:"id"`
	Name      string `json:"name"`
	Subdomain string `json:"subdomain"`
	Status    string `json:"status"`
}

func toDTO(c model.Client) ClientDTO {
	return ClientDTO{ID: c.ID, Name: c.Name, Subdomain: c.Subdomain, Status: c.Status}
}

func (ep *Endpoint) List(c *gin.Context) {
	var clients []model.Client
	if err := ep.base.Dm.ExecAdmin(c.Request.Context(), func(db *gorm.DB) error {
		return db.Order("name").Find(&clients).Error
	}); err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(utils.Map(clients, toDTO)))
}

type ProvisionDTO struct {
	Name        string `json:"name" binding:"required,max=120"`
	Subdomain   string `json:"subdomain" binding:"required,max=63,lowercase,hostname_rfc1123"`
	ManagerName string `json:"managerName" binding:"required,max=120"`
	ManagerPin  string `json:"managerPin" binding:"required,len=4,numeric"`
}

// Provision registers a new client tenant: row in the registry, dedicated
// schema, default break table and the first admin manager.
func (ep *Endpoint) Provision(c *gin.Context) {
	var body ProvisionDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	client, err := ep.base.Dm.Provision(c.Request.Context(), core.ProvisionInput{
		Name:        body.Name,
		Subdomain:   body.Subdomain,
		ManagerName: body.ManagerName,
		ManagerPin:  body.ManagerPin,
	})
	switch {
	case errors.Is(err, core.ErrSubdomainTaken):
		c.JSON(http.StatusConflict, common.NewErrorResponse(err.Error()))
		return
	case errors.Is(err, core.ErrInvalidSubdomain):
		c.JSON(http.StatusUnprocessableEntity, common.NewErrorResponse(err.Error()))
		return
	case err != nil:
		ep.notifier.Errorf("tenant provisioning failed for %q: %v", body.Subdomain, err)
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	ep.notifier.Infof("tenant %s provisioned (%s)", client.Subdomain, client.Name)
	c.JSON(http.StatusCreated, common.NewSuccessResponse(toDTO(*client)))
}

func (ep *Endpoint) Suspend(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid id"))
		return
	}

	if err := ep.base.Dm.Suspend(c.Request.Context(), int32(id)); err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{}))
}
