package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")

	// ErrInvalidCredentials es el único error que ve el cliente cuando falla el login,
	// sin importar la etapa (tenant, empleado, password actual).
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrWeakPassword       = errors.New("la contraseña debe tener al menos 6 caracteres")
	ErrStoreUnavailable   = errors.New("almacenamiento no disponible")
)

// AsStoreError deja pasar los errores de dominio y convierte cualquier otro fallo de
// persistencia en ErrStoreUnavailable, conservando la causa.
func AsStoreError(err error) error {
	if err == nil {
		return nil
	}
	for _, known := range []error{
		ErrNotFound, ErrEmailAlreadyExists, ErrInvalidInput, ErrDuplicate,
		ErrUnauthorized, ErrForbidden, ErrInvalidCredentials, ErrWeakPassword, ErrStoreUnavailable,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
