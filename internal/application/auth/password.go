package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength longitud mínima de una contraseña nueva.
const MinPasswordLength = 6

// TempPasswordLength longitud de la contraseña temporal generada en el reset.
const TempPasswordLength = 8

const tempPasswordChars = "abcdefghijklmnopqrstuvwxyz0123456789"

// PasswordHasher abstrae el hash adaptativo con sal (bcrypt).
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify compara en tiempo constante; false ante cualquier error.
	Verify(password, hash string) bool
}

// BcryptHasher implementación de PasswordHasher con bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher construye el hasher. cost <= 0 usa bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash genera el hash bcrypt de password.
func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify compara password contra hash.
func (h *BcryptHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateTempPassword genera una contraseña alfanumérica aleatoria de TempPasswordLength caracteres (crypto/rand).
func GenerateTempPassword() (string, error) {
	result := make([]byte, TempPasswordLength)
	charsetLen := big.NewInt(int64(len(tempPasswordChars)))
	for i := range result {
		idx, err := rand.Int(rand.Reader, charsetLen)
		if err != nil {
			return "", fmt.Errorf("generar contraseña temporal: %w", err)
		}
		result[i] = tempPasswordChars[idx.Int64()]
	}
	return string(result), nil
}
