package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleMedico   = "medico"
	RoleFamiliar = "familiar"
)

// User representa un usuario del sistema. Los usuarios con rol "familiar"
// quedan vinculados a su paciente vía PacienteID.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Nombre       string
	Role         string // admin, medico, familiar
	Telefono     string
	PacienteID   string // solo para rol familiar; vacío en los demás
	Estado       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
