package dto

import "github.com/shopspring/decimal"

// CategoriaGastoDTO total de gasto agrupado por categoría.
type CategoriaGastoDTO struct {
	Categoria string          `json:"categoria"`
	Total     decimal.Decimal `json:"total"`
}

// DashboardSummaryDTO resumen del mes en curso para GET /api/dashboard.
// Saldo = PagosMes - GastosMes.
type DashboardSummaryDTO struct {
	PacientesActivos int                 `json:"pacientes_activos"`
	IngresosMes      int                 `json:"ingresos_mes"`
	PagosMes         decimal.Decimal     `json:"pagos_mes"`
	GastosMes        decimal.Decimal     `json:"gastos_mes"`
	Saldo            decimal.Decimal     `json:"saldo"`
	GastosCategoria  []CategoriaGastoDTO `json:"gastos_por_categoria"`
}
