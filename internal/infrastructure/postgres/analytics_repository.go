package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/renacer/clinica-api/internal/domain/entity"
	"github.com/renacer/clinica-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard administrativo.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// CountPacientesActivos devuelve cuántos pacientes están en estado activo.
func (r *AnalyticsRepo) CountPacientesActivos(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM pacientes WHERE estado = $1`, entity.PacienteActivo,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("analytics.CountPacientesActivos: %w", err)
	}
	return count, nil
}

// CountIngresos devuelve cuántas admisiones se abrieron en el rango.
func (r *AnalyticsRepo) CountIngresos(ctx context.Context, desde, hasta time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM ingresos WHERE fecha_ingreso BETWEEN $1 AND $2`, desde, hasta,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("analytics.CountIngresos: %w", err)
	}
	return count, nil
}

// GetTotalPagos suma los pagos completados del período.
// Usa COALESCE para devolver cero si no hay filas (período sin pagos).
func (r *AnalyticsRepo) GetTotalPagos(ctx context.Context, desde, hasta time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(monto), 0) FROM pagos WHERE estado = $1 AND fecha BETWEEN $2 AND $3`,
		entity.PagoCompletado, desde, hasta,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("analytics.GetTotalPagos: %w", err)
	}
	return total, nil
}

// GetTotalGastos suma los gastos confirmados del período.
func (r *AnalyticsRepo) GetTotalGastos(ctx context.Context, desde, hasta time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(monto), 0) FROM gastos WHERE estado = $1 AND fecha BETWEEN $2 AND $3`,
		entity.GastoConfirmado, desde, hasta,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("analytics.GetTotalGastos: %w", err)
	}
	return total, nil
}

// GetGastosPorCategoria agrupa los gastos confirmados del período por
// categoría, de mayor a menor total.
func (r *AnalyticsRepo) GetGastosPorCategoria(ctx context.Context, desde, hasta time.Time) ([]repository.CategoriaGastoResult, error) {
	const query = `
		SELECT categoria, SUM(monto) AS total
		FROM gastos
		WHERE estado = $1 AND fecha BETWEEN $2 AND $3
		GROUP BY categoria
		ORDER BY total DESC`
	rows, err := r.pool.Query(ctx, query, entity.GastoConfirmado, desde, hasta)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetGastosPorCategoria: %w", err)
	}
	defer rows.Close()

	var results []repository.CategoriaGastoResult
	for rows.Next() {
		var row repository.CategoriaGastoResult
		if err := rows.Scan(&row.Categoria, &row.Total); err != nil {
			return nil, fmt.Errorf("analytics.GetGastosPorCategoria scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
