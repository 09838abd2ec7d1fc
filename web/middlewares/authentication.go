package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"shiftpay.net.au/shiftpay/model"
	"shiftpay.net.au/shiftpay/security"
	"shiftpay.net.au/shiftpay/web/common"
)

// SessionCookie is where the browser dashboard keeps its token; API
// clients send a Bearer header instead.
const SessionCookie = "shiftpay.SessionCookie"

func parseJwt(tokenStr string, jwtSecret []byte) (*security.IdentityClaims, error) {
	claims := &security.IdentityClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// Authentication checks for a valid manager session, from the
// Authorization header or the application cookie, and puts the identity on
// the context.
func Authentication(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := ""

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			tokenStr = cookie
		} else {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			tokenStr = parts[1]
		}

		claims, err := parseJwt(tokenStr, jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("invalid or expired token"))
			return
		}

		c.Set(common.IdentityKey, &claims.Identity)
		c.Next()
	}
}

// AdminOnly gates the tenant-provisioning surface. Requires Authentication
// to have run first.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := GetIdentity(c)
		if identity == nil || identity.Role != model.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, common.NewErrorResponse("admin role required"))
			return
		}
		c.Next()
	}
}

// GetIdentity returns the authenticated manager, or nil on unauthenticated
// routes.
func GetIdentity(c *gin.Context) *security.Identity {
	if v, ok := c.Get(common.IdentityKey); ok {
		if id, ok := v.(*security.Identity); ok {
			return id
		}
	}
	return nil
}
