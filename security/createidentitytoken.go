package security

import (
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the authenticated principal carried in the session token:
// a manager (or admin) of one client. Handlers trust the ClientID scope in
// these claims; nothing downstream re-authenticates.
type Identity struct {
	ManagerID int32  `json:"nameid"`
	ClientID  int32  `json:"clientid"`
	Name      string `json:"unique_name"`
	Role      string `json:"role"`
}

type IdentityClaims struct {
	Identity
	jwt.RegisteredClaims
}

// CreateIdentityToken signs a session token for a manager login.
// The secret is base64-encoded in the environment.
func CreateIdentityToken(identity *Identity, base64Secret string, expiresInSeconds int64) (string, error) {
	secretBytes, err := base64.StdEncoding.DecodeString(base64Secret)
	if err != nil {
		return "", err
	}
	claims := IdentityClaims{
		Identity: *identity,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "shiftpay",
			Audience:  []string{"*.shiftpay.net.au"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(expiresInSeconds) * time.Second)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretBytes)
}
