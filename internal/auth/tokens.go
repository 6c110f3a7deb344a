// Package auth issues and verifies the JWTs that distinguish the two
// principal types: shoppers (userId claim) and store owners (ownerId claim).
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

type Claims struct {
	UserID  *int64 `json:"userId,omitempty"`
	OwnerID *int64 `json:"ownerId,omitempty"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

func (c *Claims) IsOwner() bool {
	return c.OwnerID != nil
}

func CreateUserToken(secret string, userID int64, isAdmin bool) (string, error) {
	return sign(secret, &Claims{UserID: &userID, IsAdmin: isAdmin})
}

func CreateOwnerToken(secret string, ownerID int64, isAdmin bool) (string, error) {
	return sign(secret, &Claims{OwnerID: &ownerID, IsAdmin: isAdmin})
}

func sign(secret string, claims *Claims) (string, error) {
	claims.IssuedAt = jwt.NewNumericDate(time.Now())
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func VerifyToken(secret, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
