package repository

import "github.com/renacer/clinica-api/internal/domain/entity"

// CuentaFilter filtros de listado de cuentas de cobro.
type CuentaFilter struct {
	PacienteID string
	Estado     string
	Limit      int
	Offset     int
}

// CuentaCobroRepository define el puerto de persistencia para CuentaCobro.
type CuentaCobroRepository interface {
	Create(c *entity.CuentaCobro) error
	GetByID(id string) (*entity.CuentaCobro, error)
	List(filter CuentaFilter) ([]*entity.CuentaCobro, error)
	// Update persiste campos editables y estado; el historial va por separado
	// en AuditoriaRepository dentro de la misma transacción.
	Update(c *entity.CuentaCobro) error
}

// PagoFilter filtros de listado de pagos. IncluirBorrados es opt-in: por
// defecto los pagos con estado "borrado" no aparecen.
type PagoFilter struct {
	PacienteID      string
	IncluirBorrados bool
	Limit           int
	Offset          int
}

// PagoRepository define el puerto de persistencia para Pago.
type PagoRepository interface {
	Create(p *entity.Pago) error
	GetByID(id string) (*entity.Pago, error)
	List(filter PagoFilter) ([]*entity.Pago, error)
	Update(p *entity.Pago) error
}

// AuditoriaRepository define el puerto del historial de auditoría unificado.
// Append-only: no existe Update ni Delete.
type AuditoriaRepository interface {
	Append(e *entity.EventoAuditoria) error
	// ListByEntidad devuelve los eventos de una entidad ordenados por fecha
	// descendente (el más reciente primero).
	ListByEntidad(entidad, entidadID string) ([]*entity.EventoAuditoria, error)
}
