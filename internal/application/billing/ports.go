package billing

import (
	"context"

	"github.com/renacer/clinica-api/internal/domain/entity"
	"github.com/renacer/clinica-api/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción que incluye el
// repo de la entidad facturable y el historial de auditoría. La actualización
// de estado y el append del evento deben confirmar o revertir juntos.
type BillingTxRunner interface {
	RunCuenta(ctx context.Context, fn func(
		cuentaRepo repository.CuentaCobroRepository,
		auditRepo repository.AuditoriaRepository,
	) error) error

	RunPago(ctx context.Context, fn func(
		pagoRepo repository.PagoRepository,
		auditRepo repository.AuditoriaRepository,
	) error) error
}

// CuentaPDFGenerator genera la representación en PDF de una cuenta de cobro.
type CuentaPDFGenerator interface {
	GenerateCuentaPDF(
		ctx context.Context,
		cuenta *entity.CuentaCobro,
		paciente *entity.Paciente,
		familiar *entity.Familiar, // nil si la cuenta no tiene destinatario
	) ([]byte, error)
}

// ObjectStore sube archivos (comprobantes, fotos) y devuelve la URL de lectura
// que se guarda en la fila dueña. La clave sigue {entidad}/{timestamp}-{filename}.
type ObjectStore interface {
	Upload(ctx context.Context, entidad, filename, contentType string, data []byte) (url string, err error)
}
