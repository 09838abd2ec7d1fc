package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shiftpay.net.au/shiftpay/core"
	"shiftpay.net.au/shiftpay/model"
	"shiftpay.net.au/shiftpay/security"
	"shiftpay.net.au/shiftpay/utils"
	"shiftpay.net.au/shiftpay/web/common"
	"shiftpay.net.au/shiftpay/web/middlewares"
)

const sessionSeconds = 12 * 3600

type Endpoint struct {
	base         common.Handler
	base64Secret string
}

func Register(r *gin.RouterGroup, dm *core.DatabaseManager, base64Secret string) {
	endpoint := &Endpoint{base: common.Handler{Dm: dm}, base64Secret: base64Secret}
	r.POST("/auth/login", endpoint.Login)
}

type LoginDTO struct {
	Pin string `json:"pin" binding:"required,len=4,numeric"`
}

type ManagerDTO struct {
	ID   int32  `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// Login verifies a manager PIN for the request's tenant and issues a
// session token, both in the body and as the application cookie.
func (ep *Endpoint) Login(c *gin.Context) {
	var body LoginDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	client, db, conn, ok := ep.base.TenantDB(c)
	if !ok {
		return
	}
	defer conn.Close()

	var managers []model.Manager
	if err := db.Where("client_id = ?", client.ID).Find(&managers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	manager := utils.Find(managers, func(m model.Manager) bool {
		return security.VerifyPin(body.Pin, m.PinHash)
	})
	if manager == nil {
		c.JSON(http.StatusUnauthorized, common.NewErrorResponse("invalid PIN"))
		return
	}

	token, err := security.CreateIdentityToken(&security.Identity{
		ManagerID: manager.ID,
		ClientID:  client.ID,
		Name:      manager.Name,
		Role:      manager.Role,
	}, ep.base64Secret, sessionSeconds)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	c.SetCookie(middlewares.SessionCookie, token, sessionSeconds, "/", "", false, true)
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{
		"token":   token,
		"manager": ManagerDTO{ID: manager.ID, Name: manager.Name, Role: manager.Role},
	}))
}
