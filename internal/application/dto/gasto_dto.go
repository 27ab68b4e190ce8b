package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateGastoRequest body para POST /api/gastos.
type CreateGastoRequest struct {
	Concepto  string          `json:"concepto" validate:"required,max=300"`
	Categoria string          `json:"categoria" validate:"required"`
	Monto     decimal.Decimal `json:"monto" validate:"required"`
	Fecha     time.Time       `json:"fecha" validate:"required"`
	Notas     string          `json:"notas" validate:"omitempty,max=1000"`
}

// ListGastosRequest query params de GET /api/gastos.
type ListGastosRequest struct {
	PageRequest
	Categoria         string     `query:"categoria"`
	Desde             *time.Time `query:"desde"`
	Hasta             *time.Time `query:"hasta"`
	IncluirEliminados bool       `query:"incluir_eliminados"`
}

// GastoResponse gasto en respuestas.
type GastoResponse struct {
	ID        string          `json:"id"`
	Concepto  string          `json:"concepto"`
	Categoria string          `json:"categoria"`
	Monto     decimal.Decimal `json:"monto"`
	Fecha     time.Time       `json:"fecha"`
	Estado    string          `json:"estado"`
	Notas     string          `json:"notas,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// GastoDetailResponse gasto con su historial de auditoría.
type GastoDetailResponse struct {
	GastoResponse
	Historial []EventoResponse `json:"historial"`
}
