package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrDocumentoExists    = errors.New("ya existe un paciente con ese documento")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrTransicionInvalida = errors.New("transición de estado no permitida")
	ErrPacienteInactivo   = errors.New("el paciente no está activo")
	ErrIngresoAbierto     = errors.New("el paciente ya tiene un ingreso abierto")
)
