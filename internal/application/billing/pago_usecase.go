package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/renacer/clinica-api/internal/application/dto"
	"github.com/renacer/clinica-api/internal/domain"
	domainbilling "github.com/renacer/clinica-api/internal/domain/billing"
	"github.com/renacer/clinica-api/internal/domain/entity"
	"github.com/renacer/clinica-api/internal/domain/repository"
)

// PagoUseCase casos de uso de pagos: registro, aprobación, borrado lógico y
// reactivación. Toda transición de estado agrega un evento al historial
// unificado de auditoría dentro de la misma transacción.
type PagoUseCase struct {
	txRunner     BillingTxRunner
	pagoRepo     repository.PagoRepository
	auditRepo    repository.AuditoriaRepository
	pacienteRepo repository.PacienteRepository
	cuentaRepo   repository.CuentaCobroRepository
}

// NewPagoUseCase construye el caso de uso.
func NewPagoUseCase(
	txRunner BillingTxRunner,
	pagoRepo repository.PagoRepository,
	auditRepo repository.AuditoriaRepository,
	pacienteRepo repository.PacienteRepository,
	cuentaRepo repository.CuentaCobroRepository,
) *PagoUseCase {
	return &PagoUseCase{
		txRunner:     txRunner,
		pagoRepo:     pagoRepo,
		auditRepo:    auditRepo,
		pacienteRepo: pacienteRepo,
		cuentaRepo:   cuentaRepo,
	}
}

// Create registra un pago. Nace "completado" salvo que se marque pendiente
// (requiere aprobación posterior). La creación no agrega eventos.
func (uc *PagoUseCase) Create(ctx context.Context, in dto.CreatePagoRequest) (*dto.PagoResponse, error) {
	if in.Monto.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	paciente, err := uc.pacienteRepo.GetByID(in.PacienteID)
	if err != nil {
		return nil, err
	}
	if paciente == nil {
		return nil, domain.ErrNotFound
	}
	if in.CuentaCobroID != "" {
		cuenta, err := uc.cuentaRepo.GetByID(in.CuentaCobroID)
		if err != nil {
			return nil, err
		}
		if cuenta == nil || cuenta.PacienteID != in.PacienteID {
			return nil, domain.ErrNotFound
		}
	}

	estado := entity.PagoCompletado
	if in.Pendiente {
		estado = entity.PagoPendiente
	}
	now := time.Now()
	pago := &entity.Pago{
		ID:             uuid.New().String(),
		PacienteID:     in.PacienteID,
		CuentaCobroID:  in.CuentaCobroID,
		Monto:          in.Monto,
		Metodo:         in.Metodo,
		Fecha:          in.Fecha,
		Estado:         estado,
		ComprobanteURL: in.ComprobanteURL,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.pagoRepo.Create(pago); err != nil {
		return nil, err
	}
	return toPagoResponse(pago), nil
}

// Aprobar pasa un pago pendiente a completado (acción "aprobado").
func (uc *PagoUseCase) Aprobar(ctx context.Context, pagoID, actorID, nota string) (*dto.PagoDetailResponse, error) {
	return uc.transicionar(ctx, pagoID, entity.PagoCompletado, actorID, nota)
}

// Borrar marca un pago completado como borrado (eliminación lógica, acción
// "eliminado"). El pago deja de aparecer en los listados por defecto.
func (uc *PagoUseCase) Borrar(ctx context.Context, pagoID, actorID, nota string) (*dto.PagoDetailResponse, error) {
	return uc.transicionar(ctx, pagoID, entity.PagoBorrado, actorID, nota)
}

// Reactivar devuelve un pago borrado a completado (acción "reactivado").
func (uc *PagoUseCase) Reactivar(ctx context.Context, pagoID, actorID, nota string) (*dto.PagoDetailResponse, error) {
	return uc.transicionar(ctx, pagoID, entity.PagoCompletado, actorID, nota)
}

// transicionar valida la transición contra la tabla legal y escribe estado +
// evento en una sola transacción.
func (uc *PagoUseCase) transicionar(ctx context.Context, pagoID, hacia, actorID, nota string) (*dto.PagoDetailResponse, error) {
	pago, err := uc.pagoRepo.GetByID(pagoID)
	if err != nil {
		return nil, err
	}
	if pago == nil {
		return nil, domain.ErrNotFound
	}

	accion, err := domainbilling.TransicionPago(pago.Estado, hacia)
	if err != nil {
		return nil, err
	}

	pago.Estado = hacia
	pago.UpdatedAt = time.Now()

	evento := &entity.EventoAuditoria{
		ID:        uuid.New().String(),
		Entidad:   entity.EntidadPago,
		EntidadID: pago.ID,
		Accion:    accion,
		ActorID:   actorID,
		Notas:     nota,
		Fecha:     time.Now(),
	}

	err = uc.txRunner.RunPago(ctx, func(
		pagoRepo repository.PagoRepository,
		auditRepo repository.AuditoriaRepository,
	) error {
		if err := pagoRepo.Update(pago); err != nil {
			return err
		}
		return auditRepo.Append(evento)
	})
	if err != nil {
		return nil, err
	}
	return uc.detail(pago)
}

// GetByID devuelve el pago con su historial.
func (uc *PagoUseCase) GetByID(ctx context.Context, pagoID string) (*dto.PagoDetailResponse, error) {
	pago, err := uc.pagoRepo.GetByID(pagoID)
	if err != nil {
		return nil, err
	}
	if pago == nil {
		return nil, domain.ErrNotFound
	}
	return uc.detail(pago)
}

// List lista pagos; los borrados solo aparecen con IncluirBorrados.
func (uc *PagoUseCase) List(ctx context.Context, in dto.ListPagosRequest) ([]*dto.PagoResponse, error) {
	in.DefaultPage()
	list, err := uc.pagoRepo.List(repository.PagoFilter{
		PacienteID:      in.PacienteID,
		IncluirBorrados: in.IncluirBorrados,
		Limit:           in.Limit,
		Offset:          in.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PagoResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPagoResponse(p))
	}
	return out, nil
}

func (uc *PagoUseCase) detail(pago *entity.Pago) (*dto.PagoDetailResponse, error) {
	eventos, err := uc.auditRepo.ListByEntidad(entity.EntidadPago, pago.ID)
	if err != nil {
		return nil, err
	}
	return &dto.PagoDetailResponse{
		PagoResponse: *toPagoResponse(pago),
		Historial:    toEventosResponse(eventos),
	}, nil
}

func toPagoResponse(p *entity.Pago) *dto.PagoResponse {
	return &dto.PagoResponse{
		ID:             p.ID,
		PacienteID:     p.PacienteID,
		CuentaCobroID:  p.CuentaCobroID,
		Monto:          p.Monto,
		Metodo:         p.Metodo,
		Fecha:          p.Fecha,
		Estado:         p.Estado,
		ComprobanteURL: p.ComprobanteURL,
		CreatedAt:      p.CreatedAt,
	}
}
