package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the wire payload of an issued bearer token: subject is the
// username, plus userId and the granted authority codes. Only flat
// string/integer claims, no nested objects.
type TokenClaims struct {
	UserID int64    `json:"userId"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}
