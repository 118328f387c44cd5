package models

import "github.com/golang-jwt/jwt/v5"

// AuthClaims represents the claims issued by the hosted auth provider.
type AuthClaims struct {
	jwt.RegisteredClaims
	Email       string `json:"email"`
	Sub         string `json:"sub"`
	Role        string `json:"role"`
	AppMetadata struct {
		Provider string `json:"provider"`
	} `json:"app_metadata"`
}
