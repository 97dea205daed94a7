// Package jwt emite y valida los tokens de sesión (HS256).
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Errores de Parse; los de la librería quedan envueltos.
var (
	ErrEmptySecret = errors.New("jwt: secret vacío")
	ErrExpired     = errors.New("jwt: token expirado")
	ErrInvalid     = errors.New("jwt: token inválido")
)

// clockSkew tolerancia entre relojes de emisor y servidor.
const clockSkew = 30 * time.Second

// Claims de sesión. El rol viaja en el token pero el middleware lo contrasta con la base.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Role   string `json:"role"` // admin | staff
}

// Generate firma un token para el usuario; expMinutes negativo produce un token ya vencido.
func Generate(secret, userID, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID: userID,
		Role:   role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Parse valida firma y vencimiento y devuelve userID y rol.
func Parse(secret, tokenString string) (userID, role string, err error) {
	if secret == "" {
		return "", "", ErrEmptySecret
	}
	claims := &Claims{}
	_, err = jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return []byte(secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(clockSkew),
		jwt.WithExpirationRequired(),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", "", fmt.Errorf("%w: %v", ErrExpired, err)
	case err != nil:
		return "", "", fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	userID = claims.UserID
	if userID == "" {
		userID = claims.Subject
	}
	if userID == "" {
		return "", "", fmt.Errorf("%w: sin usuario", ErrInvalid)
	}
	return userID, claims.Role, nil
}
