package util

import "errors"

var (
	ErrUnknownTable       = errors.New("Tabla no reconocida o no especificada")
	ErrNotFound           = errors.New("registro no encontrado")
	ErrInUse              = errors.New("el registro está referenciado por otros registros")
	ErrDuplicate          = errors.New("registro duplicado")
	ErrMissingParent      = errors.New("el registro referenciado no existe")
	ErrNothingToUpdate    = errors.New("No hay datos para actualizar")
	ErrInvalidInput       = errors.New("datos no válidos")
	ErrUserNotFound       = errors.New("Usuario no encontrado")
	ErrInvalidCredentials = errors.New("Credenciales incorrectas")
	ErrUpstream           = errors.New("servicio externo no disponible")
)
