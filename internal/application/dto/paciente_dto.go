package dto

import "time"

// CreatePacienteRequest body para POST /api/pacientes. El ingreso inicial se
// crea en la misma transacción que el paciente.
type CreatePacienteRequest struct {
	Nombre          string     `json:"nombre" validate:"required,max=200"`
	Apellido        string     `json:"apellido" validate:"required,max=200"`
	Documento       string     `json:"documento" validate:"required,max=30"`
	FechaNacimiento *time.Time `json:"fecha_nacimiento" validate:"omitempty"`
	Telefono        string     `json:"telefono" validate:"omitempty,max=30"`
	Direccion       string     `json:"direccion" validate:"omitempty,max=300"`
	EPS             string     `json:"eps" validate:"omitempty,max=100"`
	FechaIngreso    time.Time  `json:"fecha_ingreso" validate:"required"`
	MotivoIngreso   string     `json:"motivo_ingreso" validate:"omitempty,max=500"`
	Voluntario      bool       `json:"voluntario"`
}

// UpdatePacienteRequest campos editables de un paciente (no toca estado ni ingresos).
type UpdatePacienteRequest struct {
	Nombre          string     `json:"nombre" validate:"omitempty,max=200"`
	Apellido        string     `json:"apellido" validate:"omitempty,max=200"`
	FechaNacimiento *time.Time `json:"fecha_nacimiento"`
	Telefono        string     `json:"telefono" validate:"omitempty,max=30"`
	Direccion       string     `json:"direccion" validate:"omitempty,max=300"`
	EPS             string     `json:"eps" validate:"omitempty,max=100"`
}

// SalidaRequest body para POST /api/pacientes/:id/salida (egreso).
type SalidaRequest struct {
	FechaSalida  time.Time `json:"fecha_salida" validate:"required"`
	MotivoSalida string    `json:"motivo_salida" validate:"omitempty,max=500"`
}

// ReingresoRequest body para POST /api/pacientes/:id/reingreso.
type ReingresoRequest struct {
	FechaIngreso  time.Time `json:"fecha_ingreso" validate:"required"`
	MotivoIngreso string    `json:"motivo_ingreso" validate:"omitempty,max=500"`
	Voluntario    bool      `json:"voluntario"`
}

// ListPacientesRequest query params de GET /api/pacientes.
type ListPacientesRequest struct {
	PageRequest
	Estado string `query:"estado" validate:"omitempty,oneof=activo inactivo"`
	Q      string `query:"q" validate:"omitempty,max=100"`
}

// PacienteResponse paciente en respuestas de listado.
type PacienteResponse struct {
	ID              string     `json:"id"`
	Nombre          string     `json:"nombre"`
	Apellido        string     `json:"apellido"`
	Documento       string     `json:"documento"`
	FechaNacimiento *time.Time `json:"fecha_nacimiento,omitempty"`
	Telefono        string     `json:"telefono,omitempty"`
	Direccion       string     `json:"direccion,omitempty"`
	EPS             string     `json:"eps,omitempty"`
	Estado          string     `json:"estado"`
	FotoURL         string     `json:"foto_url,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// IngresoResponse registro de admisión.
type IngresoResponse struct {
	ID            string     `json:"id"`
	FechaIngreso  time.Time  `json:"fecha_ingreso"`
	FechaSalida   *time.Time `json:"fecha_salida,omitempty"`
	MotivoIngreso string     `json:"motivo_ingreso,omitempty"`
	MotivoSalida  string     `json:"motivo_salida,omitempty"`
	Voluntario    bool       `json:"voluntario"`
}

// FamiliarResponse contacto familiar.
type FamiliarResponse struct {
	ID         string `json:"id"`
	PacienteID string `json:"paciente_id"`
	Nombre     string `json:"nombre"`
	Parentesco string `json:"parentesco"`
	Telefono   string `json:"telefono,omitempty"`
	Telefono2  string `json:"telefono2,omitempty"`
	Email      string `json:"email,omitempty"`
}

// PacienteDetailResponse paciente con su historial de ingresos y familiares
// para GET /api/pacientes/:id.
type PacienteDetailResponse struct {
	PacienteResponse
	Ingresos   []IngresoResponse  `json:"ingresos"`
	Familiares []FamiliarResponse `json:"familiares"`
}

// CreateFamiliarRequest body para POST /api/pacientes/:id/familiares.
type CreateFamiliarRequest struct {
	Nombre     string `json:"nombre" validate:"required,max=200"`
	Parentesco string `json:"parentesco" validate:"required,max=50"`
	Telefono   string `json:"telefono" validate:"omitempty,max=30"`
	Telefono2  string `json:"telefono2" validate:"omitempty,max=30"`
	Email      string `json:"email" validate:"omitempty,email"`
}

// UpdateFamiliarRequest campos editables de un familiar.
type UpdateFamiliarRequest struct {
	Nombre     string `json:"nombre" validate:"omitempty,max=200"`
	Parentesco string `json:"parentesco" validate:"omitempty,max=50"`
	Telefono   string `json:"telefono" validate:"omitempty,max=30"`
	Telefono2  string `json:"telefono2" validate:"omitempty,max=30"`
	Email      string `json:"email" validate:"omitempty,email"`
}
