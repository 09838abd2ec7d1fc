package common

import (
	"database/sql"
	"errors"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"shiftpay.net.au/shiftpay/core"
	"shiftpay.net.au/shiftpay/model"
	"shiftpay.net.au/shiftpay/security"
)

// IdentityKey is the gin context key the authentication middleware stores
// the session identity under.
const IdentityKey = "identity"

// Handler is the base every endpoint embeds: it owns the pool and resolves
// the request's tenant from the Host subdomain.
type Handler struct {
	Dm *core.DatabaseManager
}

func GetHostname(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}

// TenantDB resolves the request's client and opens its schema on a
// dedicated connection. The caller must close conn. On failure it has
// already written the response.
func (h *Handler) TenantDB(c *gin.Context) (*model.Client, *gorm.DB, *sql.Conn, bool) {
	hostname := GetHostname(c.Request.Host)
	client, err := h.Dm.ResolveClient(c.Request.Context(), hostname)
	if errors.Is(err, core.ErrUnknownTenant) || errors.Is(err, core.ErrInvalidSubdomain) {
		c.JSON(http.StatusNotFound, NewErrorResponse("Unknown tenant"))
		return nil, nil, nil, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(err.Error()))
		return nil, nil, nil, false
	}

	// a session issued for one tenant must not reach another tenant's schema
	if scope, ok := c.Get(IdentityKey); ok {
		if id, ok := scope.(*security.Identity); ok && id.ClientID != client.ID {
			c.JSON(http.StatusForbidden, NewErrorResponse("session does not belong to this tenant"))
			return nil, nil, nil, false
		}
	}

	db, conn, err := h.Dm.GetDB(c.Request.Context(), client.Subdomain)
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(err.Error()))
		return nil, nil, nil, false
	}
	return client, db, conn, true
}
