package repository

import (
	"time"

	"github.com/renacer/clinica-api/internal/domain/entity"
)

// GastoFilter filtros de listado de gastos. IncluirEliminados es opt-in.
type GastoFilter struct {
	Categoria         string
	Desde, Hasta      *time.Time
	IncluirEliminados bool
	Limit             int
	Offset            int
}

// GastoRepository define el puerto de persistencia para Gasto.
type GastoRepository interface {
	Create(g *entity.Gasto) error
	GetByID(id string) (*entity.Gasto, error)
	List(filter GastoFilter) ([]*entity.Gasto, error)
	Update(g *entity.Gasto) error
}
