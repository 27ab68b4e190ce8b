package dto

import "time"

// RegisterRequest entrada para registro de usuarios (solo admin).
// PacienteID es obligatorio cuando el rol es familiar.
type RegisterRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	Nombre     string `json:"nombre" validate:"omitempty,max=200"`
	Role       string `json:"role" validate:"required,oneof=admin medico familiar"`
	Telefono   string `json:"telefono" validate:"omitempty,max=30"`
	PacienteID string `json:"paciente_id" validate:"omitempty,uuid"`
}

// UpdateUserRequest campos editables de un usuario.
type UpdateUserRequest struct {
	Nombre     string `json:"nombre" validate:"omitempty,max=200"`
	Telefono   string `json:"telefono" validate:"omitempty,max=30"`
	Role       string `json:"role" validate:"omitempty,oneof=admin medico familiar"`
	PacienteID string `json:"paciente_id" validate:"omitempty,uuid"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Nombre     string    `json:"nombre"`
	Role       string    `json:"role"`
	Telefono   string    `json:"telefono,omitempty"`
	PacienteID string    `json:"paciente_id,omitempty"`
	Estado     string    `json:"estado"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
