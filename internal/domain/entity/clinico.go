package entity

import "time"

// Registros clínicos simples por paciente. Todos usan eliminación lógica vía
// Activo; los listados por defecto filtran Activo = true.

// Medicamento es un medicamento asignado al paciente con su pauta.
type Medicamento struct {
	ID         string
	PacienteID string
	Nombre     string
	Dosis      string
	Frecuencia string
	Horario    string
	Activo     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Formula es una fórmula médica (prescripción) emitida por un médico.
type Formula struct {
	ID          string
	PacienteID  string
	MedicoID    string
	Fecha       time.Time
	Descripcion string
	Vigencia    *time.Time // fecha de vencimiento, opcional
	Activo      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Seguimiento es una nota de evolución clínica del paciente.
type Seguimiento struct {
	ID         string
	PacienteID string
	MedicoID   string
	Fecha      time.Time
	Tipo       string // terapia, consulta, control
	Nota       string
	Activo     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Visita registra la visita de un familiar al paciente.
type Visita struct {
	ID            string
	PacienteID    string
	FamiliarID    string // opcional
	Fecha         time.Time
	Observaciones string
	Activo        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Novedad es un evento relevante del día a día del paciente (incidentes,
// permisos, cambios de conducta).
type Novedad struct {
	ID          string
	PacienteID  string
	Fecha       time.Time
	Tipo        string
	Descripcion string
	Activo      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
