// Package analytics contiene el caso de uso del resumen financiero y
// operativo del dashboard administrativo.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/renacer/clinica-api/internal/application/dto"
	"github.com/renacer/clinica-api/internal/domain/repository"
)

// DashboardUseCase genera el resumen del mes en curso.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
// No accede directamente a las tablas; delega todo en el repositorio.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetSummary construye el DashboardSummaryDTO del mes en curso.
//
// Cuatro consultas en paralelo:
//  1. CountPacientesActivos
//  2. CountIngresos(mes)
//  3. GetTotalPagos(mes) y GetTotalGastos(mes)
//  4. GetGastosPorCategoria(mes)
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := time.Now()

	// Mes en curso: día 1 a las 00:00 hasta hoy 23:59:59.999
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		Add(24*time.Hour - time.Nanosecond)

	type countResult struct {
		n   int
		err error
	}
	type totalesResult struct {
		pagos, gastos decimal.Decimal
		err           error
	}
	type categoriasResult struct {
		porCategoria []repository.CategoriaGastoResult
		err          error
	}

	activosCh := make(chan countResult, 1)
	ingresosCh := make(chan countResult, 1)
	totalesCh := make(chan totalesResult, 1)
	categoriasCh := make(chan categoriasResult, 1)

	go func() {
		n, err := uc.analyticsRepo.CountPacientesActivos(ctx)
		activosCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.CountIngresos(ctx, monthStart, monthEnd)
		ingresosCh <- countResult{n, err}
	}()
	go func() {
		pagos, err := uc.analyticsRepo.GetTotalPagos(ctx, monthStart, monthEnd)
		if err != nil {
			totalesCh <- totalesResult{err: err}
			return
		}
		gastos, err := uc.analyticsRepo.GetTotalGastos(ctx, monthStart, monthEnd)
		totalesCh <- totalesResult{pagos: pagos, gastos: gastos, err: err}
	}()
	go func() {
		m, err := uc.analyticsRepo.GetGastosPorCategoria(ctx, monthStart, monthEnd)
		categoriasCh <- categoriasResult{m, err}
	}()

	activos := <-activosCh
	if activos.err != nil {
		return nil, fmt.Errorf("dashboard: pacientes activos: %w", activos.err)
	}
	ingresos := <-ingresosCh
	if ingresos.err != nil {
		return nil, fmt.Errorf("dashboard: ingresos del mes: %w", ingresos.err)
	}
	totales := <-totalesCh
	if totales.err != nil {
		return nil, fmt.Errorf("dashboard: totales del mes: %w", totales.err)
	}
	categorias := <-categoriasCh
	if categorias.err != nil {
		return nil, fmt.Errorf("dashboard: gastos por categoría: %w", categorias.err)
	}

	summary := &dto.DashboardSummaryDTO{
		PacientesActivos: activos.n,
		IngresosMes:      ingresos.n,
		PagosMes:         totales.pagos,
		GastosMes:        totales.gastos,
		Saldo:            totales.pagos.Sub(totales.gastos),
	}
	for _, c := range categorias.porCategoria {
		summary.GastosCategoria = append(summary.GastosCategoria, dto.CategoriaGastoDTO{
			Categoria: c.Categoria,
			Total:     c.Total,
		})
	}
	return summary, nil
}
