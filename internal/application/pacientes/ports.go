package pacientes

import (
	"context"

	"github.com/renacer/clinica-api/internal/domain/repository"
)

// PacienteTxRunner ejecuta una función dentro de una transacción con los repos
// de paciente e ingreso. Crear un paciente con su ingreso inicial, cerrar un
// egreso o reingresar son pares de escrituras que confirman o revierten juntos.
type PacienteTxRunner interface {
	RunPaciente(ctx context.Context, fn func(
		pacienteRepo repository.PacienteRepository,
		ingresoRepo repository.IngresoRepository,
	) error) error
}
