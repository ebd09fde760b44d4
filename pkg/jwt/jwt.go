package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrEmptySecret firmar o validar sin JWT_SECRET configurado.
var ErrEmptySecret = errors.New("jwt: secret vacío")

// Principal identidad que viaja en el token de acceso. Role va en el token para que
// RequireRole y los casos de uso decidan sin consultar la DB.
type Principal struct {
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role"` // ADMIN | FACTORY_MANAGER | VIEWER
}

type claims struct {
	jwt.RegisteredClaims
	Principal
}

// Sign emite un token HS256 para p, válido durante ttl. sub = UserID.
func Sign(secret, issuer string, ttl time.Duration, p Principal) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   p.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Principal: p,
	})
	return token.SignedString([]byte(secret))
}

// Parse valida firma y expiración y devuelve la identidad del token.
func Parse(secret, tokenString string) (*Principal, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("jwt: token inválido")
	}
	return &c.Principal, nil
}
