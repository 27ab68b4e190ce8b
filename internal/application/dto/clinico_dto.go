package dto

import "time"

// Registros clínicos por paciente. El create y el update comparten forma; el
// borrado es lógico (activo = false) vía DELETE.

// CreateMedicamentoRequest body para POST /api/pacientes/:id/medicamentos.
type CreateMedicamentoRequest struct {
	Nombre     string `json:"nombre" validate:"required,max=200"`
	Dosis      string `json:"dosis" validate:"omitempty,max=100"`
	Frecuencia string `json:"frecuencia" validate:"omitempty,max=100"`
	Horario    string `json:"horario" validate:"omitempty,max=100"`
}

// MedicamentoResponse medicamento en respuestas.
type MedicamentoResponse struct {
	ID         string    `json:"id"`
	PacienteID string    `json:"paciente_id"`
	Nombre     string    `json:"nombre"`
	Dosis      string    `json:"dosis,omitempty"`
	Frecuencia string    `json:"frecuencia,omitempty"`
	Horario    string    `json:"horario,omitempty"`
	Activo     bool      `json:"activo"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateFormulaRequest body para POST /api/pacientes/:id/formulas.
type CreateFormulaRequest struct {
	Fecha       time.Time  `json:"fecha" validate:"required"`
	Descripcion string     `json:"descripcion" validate:"required,max=2000"`
	Vigencia    *time.Time `json:"vigencia"`
}

// FormulaResponse fórmula médica en respuestas.
type FormulaResponse struct {
	ID          string     `json:"id"`
	PacienteID  string     `json:"paciente_id"`
	MedicoID    string     `json:"medico_id"`
	Fecha       time.Time  `json:"fecha"`
	Descripcion string     `json:"descripcion"`
	Vigencia    *time.Time `json:"vigencia,omitempty"`
	Activo      bool       `json:"activo"`
	CreatedAt   time.Time  `json:"created_at"`
}

// CreateSeguimientoRequest body para POST /api/pacientes/:id/seguimientos.
type CreateSeguimientoRequest struct {
	Fecha time.Time `json:"fecha" validate:"required"`
	Tipo  string    `json:"tipo" validate:"omitempty,oneof=terapia consulta control"`
	Nota  string    `json:"nota" validate:"required,max=2000"`
}

// SeguimientoResponse nota de evolución en respuestas.
type SeguimientoResponse struct {
	ID         string    `json:"id"`
	PacienteID string    `json:"paciente_id"`
	MedicoID   string    `json:"medico_id"`
	Fecha      time.Time `json:"fecha"`
	Tipo       string    `json:"tipo,omitempty"`
	Nota       string    `json:"nota"`
	Activo     bool      `json:"activo"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateVisitaRequest body para POST /api/pacientes/:id/visitas.
type CreateVisitaRequest struct {
	FamiliarID    string    `json:"familiar_id" validate:"omitempty,uuid"`
	Fecha         time.Time `json:"fecha" validate:"required"`
	Observaciones string    `json:"observaciones" validate:"omitempty,max=1000"`
}

// VisitaResponse visita en respuestas.
type VisitaResponse struct {
	ID            string    `json:"id"`
	PacienteID    string    `json:"paciente_id"`
	FamiliarID    string    `json:"familiar_id,omitempty"`
	Fecha         time.Time `json:"fecha"`
	Observaciones string    `json:"observaciones,omitempty"`
	Activo        bool      `json:"activo"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateNovedadRequest body para POST /api/pacientes/:id/novedades.
type CreateNovedadRequest struct {
	Fecha       time.Time `json:"fecha" validate:"required"`
	Tipo        string    `json:"tipo" validate:"required,max=100"`
	Descripcion string    `json:"descripcion" validate:"required,max=2000"`
}

// NovedadResponse novedad en respuestas.
type NovedadResponse struct {
	ID          string    `json:"id"`
	PacienteID  string    `json:"paciente_id"`
	Fecha       time.Time `json:"fecha"`
	Tipo        string    `json:"tipo"`
	Descripcion string    `json:"descripcion"`
	Activo      bool      `json:"activo"`
	CreatedAt   time.Time `json:"created_at"`
}
