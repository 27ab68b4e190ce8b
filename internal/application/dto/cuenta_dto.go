package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCuentaRequest body para POST /api/cuentas. La cuenta nace en estado
// "generada" y sin eventos de auditoría.
type CreateCuentaRequest struct {
	PacienteID   string          `json:"paciente_id" validate:"required,uuid"`
	FamiliarID   string          `json:"familiar_id" validate:"omitempty,uuid"`
	Monto        decimal.Decimal `json:"monto" validate:"required"`
	PeriodoDesde time.Time       `json:"periodo_desde" validate:"required"`
	PeriodoHasta time.Time       `json:"periodo_hasta" validate:"required"`
	Concepto     string          `json:"concepto" validate:"required,max=300"`
	MetodoPago   string          `json:"metodo_pago" validate:"omitempty,oneof=efectivo transferencia"`
	Notas        string          `json:"notas" validate:"omitempty,max=1000"`
}

// UpdateCuentaRequest campos editables (agrega un evento "editado" al historial).
type UpdateCuentaRequest struct {
	Monto      *decimal.Decimal `json:"monto"`
	Concepto   string           `json:"concepto" validate:"omitempty,max=300"`
	MetodoPago string           `json:"metodo_pago" validate:"omitempty,oneof=efectivo transferencia"`
	Notas      string           `json:"notas" validate:"omitempty,max=1000"`
}

// CambiarEstadoRequest body para POST /api/cuentas/:id/estado.
// ComprobanteURL solo aplica al pasar a "pagada".
type CambiarEstadoRequest struct {
	Estado         string `json:"estado" validate:"required,oneof=generada enviada pagada anulada rechazada"`
	Nota           string `json:"nota" validate:"omitempty,max=500"`
	ComprobanteURL string `json:"comprobante_url" validate:"omitempty,url"`
}

// ListCuentasRequest query params de GET /api/cuentas.
type ListCuentasRequest struct {
	PageRequest
	PacienteID string `query:"paciente_id" validate:"omitempty,uuid"`
	Estado     string `query:"estado" validate:"omitempty,oneof=generada enviada pagada anulada rechazada"`
}

// CuentaResponse cuenta de cobro en respuestas.
type CuentaResponse struct {
	ID             string          `json:"id"`
	PacienteID     string          `json:"paciente_id"`
	FamiliarID     string          `json:"familiar_id,omitempty"`
	Monto          decimal.Decimal `json:"monto"`
	PeriodoDesde   time.Time       `json:"periodo_desde"`
	PeriodoHasta   time.Time       `json:"periodo_hasta"`
	Concepto       string          `json:"concepto"`
	MetodoPago     string          `json:"metodo_pago,omitempty"`
	Estado         string          `json:"estado"`
	Notas          string          `json:"notas,omitempty"`
	ComprobanteURL string          `json:"comprobante_url,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// EventoResponse entrada del historial de auditoría.
type EventoResponse struct {
	ID             string    `json:"id"`
	Accion         string    `json:"accion"`
	ActorID        string    `json:"actor_id"`
	Notas          string    `json:"notas,omitempty"`
	ComprobanteURL string    `json:"comprobante_url,omitempty"`
	Fecha          time.Time `json:"fecha"`
}

// CuentaDetailResponse cuenta con su historial (más reciente primero).
type CuentaDetailResponse struct {
	CuentaResponse
	Historial []EventoResponse `json:"historial"`
}

// CreatePagoRequest body para POST /api/pagos.
type CreatePagoRequest struct {
	PacienteID     string          `json:"paciente_id" validate:"required,uuid"`
	CuentaCobroID  string          `json:"cuenta_cobro_id" validate:"omitempty,uuid"`
	Monto          decimal.Decimal `json:"monto" validate:"required"`
	Metodo         string          `json:"metodo" validate:"required,oneof=efectivo transferencia"`
	Fecha          time.Time       `json:"fecha" validate:"required"`
	Pendiente      bool            `json:"pendiente"` // true = requiere aprobación
	ComprobanteURL string          `json:"comprobante_url" validate:"omitempty,url"`
}

// ListPagosRequest query params de GET /api/pagos.
type ListPagosRequest struct {
	PageRequest
	PacienteID      string `query:"paciente_id" validate:"omitempty,uuid"`
	IncluirBorrados bool   `query:"incluir_borrados"`
}

// PagoResponse pago en respuestas.
type PagoResponse struct {
	ID             string          `json:"id"`
	PacienteID     string          `json:"paciente_id"`
	CuentaCobroID  string          `json:"cuenta_cobro_id,omitempty"`
	Monto          decimal.Decimal `json:"monto"`
	Metodo         string          `json:"metodo"`
	Fecha          time.Time       `json:"fecha"`
	Estado         string          `json:"estado"`
	ComprobanteURL string          `json:"comprobante_url,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// PagoDetailResponse pago con su historial.
type PagoDetailResponse struct {
	PagoResponse
	Historial []EventoResponse `json:"historial"`
}
