package repository

import "github.com/renacer/clinica-api/internal/domain/entity"

// Puertos de los registros clínicos por paciente. Todos comparten la misma
// forma: crear, obtener, listar por paciente (solo activos salvo opt-in),
// actualizar y desactivar (eliminación lógica vía Activo = false).

// MedicamentoRepository persistencia de medicamentos asignados.
type MedicamentoRepository interface {
	Create(m *entity.Medicamento) error
	GetByID(id string) (*entity.Medicamento, error)
	ListByPaciente(pacienteID string, incluirInactivos bool) ([]*entity.Medicamento, error)
	Update(m *entity.Medicamento) error
}

// FormulaRepository persistencia de fórmulas médicas.
type FormulaRepository interface {
	Create(f *entity.Formula) error
	GetByID(id string) (*entity.Formula, error)
	ListByPaciente(pacienteID string, incluirInactivos bool) ([]*entity.Formula, error)
	Update(f *entity.Formula) error
}

// SeguimientoRepository persistencia de notas de evolución.
type SeguimientoRepository interface {
	Create(s *entity.Seguimiento) error
	GetByID(id string) (*entity.Seguimiento, error)
	ListByPaciente(pacienteID string, incluirInactivos bool) ([]*entity.Seguimiento, error)
	Update(s *entity.Seguimiento) error
}

// VisitaRepository persistencia de visitas de familiares.
type VisitaRepository interface {
	Create(v *entity.Visita) error
	GetByID(id string) (*entity.Visita, error)
	ListByPaciente(pacienteID string, incluirInactivos bool) ([]*entity.Visita, error)
	Update(v *entity.Visita) error
}

// NovedadRepository persistencia de novedades.
type NovedadRepository interface {
	Create(n *entity.Novedad) error
	GetByID(id string) (*entity.Novedad, error)
	ListByPaciente(pacienteID string, incluirInactivos bool) ([]*entity.Novedad, error)
	Update(n *entity.Novedad) error
}
