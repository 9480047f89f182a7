package model

import "github.com/golang-jwt/jwt/v5"

// AppClaims is the payload of the signed session cookie. It is the explicit
// session object handed to every authenticated handler via the request
// context.
type AppClaims struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
