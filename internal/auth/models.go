package auth

import (
	"github.com/golang-jwt/jwt/v4"
)

const (
	RoleAdmin       = "ADMIN"
	TokenTypeAccess = "access"
	issuer          = "villa"
)

// AdminClaims represents the session token claims
type AdminClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	Type     string `json:"type"`
	jwt.RegisteredClaims
}
