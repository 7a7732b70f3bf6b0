// internal/utils/jwt.go
package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// NodeClaims binds a caller to a node and a role. The middleware rejects
// tokens minted for the other node, so a branch token can never act at the
// hub.
type NodeClaims struct {
	Node string `json:"node"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

var jwtSecret = []byte("techstore-secret-change-in-production")

func SetJWTSecret(secret string) {
	jwtSecret = []byte(secret)
}

func GenerateNodeToken(node, role, subject string, ttlHours int) (string, error) {
	claims := NodeClaims{
		Node: node,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(ttlHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "techstore",
			Subject:   subject,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func ValidateNodeToken(tokenString string) (*NodeClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &NodeClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*NodeClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
