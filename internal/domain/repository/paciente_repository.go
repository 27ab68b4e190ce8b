package repository

import "github.com/renacer/clinica-api/internal/domain/entity"

// PacienteFilter filtros de listado de pacientes. Query se compara de forma
// normalizada (sin tildes, case-insensitive) contra nombre, apellido y documento.
type PacienteFilter struct {
	Estado string // vacío = todos
	Query  string
	Limit  int
	Offset int
}

// PacienteRepository define el puerto de persistencia para Paciente.
type PacienteRepository interface {
	Create(p *entity.Paciente) error
	GetByID(id string) (*entity.Paciente, error)
	GetByDocumento(documento string) (*entity.Paciente, error)
	List(filter PacienteFilter) ([]*entity.Paciente, error)
	Update(p *entity.Paciente) error
}

// IngresoRepository define el puerto de persistencia para los registros de
// admisión. Los ingresos solo se actualizan para cerrar (fecha y motivo de salida).
type IngresoRepository interface {
	Create(i *entity.Ingreso) error
	GetAbiertoByPaciente(pacienteID string) (*entity.Ingreso, error)
	ListByPaciente(pacienteID string) ([]*entity.Ingreso, error)
	Cerrar(i *entity.Ingreso) error
}

// FamiliarRepository define el puerto de persistencia para Familiar.
type FamiliarRepository interface {
	Create(f *entity.Familiar) error
	GetByID(id string) (*entity.Familiar, error)
	ListByPaciente(pacienteID string) ([]*entity.Familiar, error)
	Update(f *entity.Familiar) error
	Delete(id string) error
}
