package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims incluye los claims estándar JWT más la identidad resuelta en el login.
// MustChangePassword viaja en el token para que el middleware bloquee rutas sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID             string `json:"user_id"`
	TenantID           string `json:"tenant_id"`
	Role               string `json:"role"` // "Master" | "Gerente" | "Operador"
	MustChangePassword bool   `json:"must_change_password"`
}

// Subject datos de la identidad que se firman en el token.
type Subject struct {
	UserID             string
	TenantID           string
	Role               string
	MustChangePassword bool
}

// Generate genera un token JWT firmado (HS256) para el subject.
func Generate(secret, issuer string, expMinutes int, s Subject) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   s.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:             s.UserID,
		TenantID:           s.TenantID,
		Role:               s.Role,
		MustChangePassword: s.MustChangePassword,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve el subject.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (*Subject, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return &Subject{
		UserID:             claims.UserID,
		TenantID:           claims.TenantID,
		Role:               claims.Role,
		MustChangePassword: claims.MustChangePassword,
	}, nil
}
