package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// CategoriaGastoResult total de gasto por categoría, resultado crudo de la
// consulta agrupada. Lo produce la DB; el use case lo convierte en DTO.
type CategoriaGastoResult struct {
	Categoria string
	Total     decimal.Decimal
}

// AnalyticsRepository define las consultas de lectura para el dashboard.
// Las implementaciones son read-only (no modifican datos).
type AnalyticsRepository interface {
	// CountPacientesActivos devuelve cuántos pacientes están en estado activo.
	CountPacientesActivos(ctx context.Context) (int, error)

	// CountIngresos devuelve cuántos ingresos (admisiones) se abrieron en el rango.
	CountIngresos(ctx context.Context, desde, hasta time.Time) (int, error)

	// GetTotalPagos suma los pagos completados en el rango de fechas.
	// Usa COALESCE para devolver cero si no hay pagos en el período.
	GetTotalPagos(ctx context.Context, desde, hasta time.Time) (decimal.Decimal, error)

	// GetTotalGastos suma los gastos confirmados en el rango de fechas.
	GetTotalGastos(ctx context.Context, desde, hasta time.Time) (decimal.Decimal, error)

	// GetGastosPorCategoria devuelve el total de gastos confirmados del rango
	// agrupado por categoría, ordenado por monto descendente.
	GetGastosPorCategoria(ctx context.Context, desde, hasta time.Time) ([]CategoriaGastoResult, error)
}
