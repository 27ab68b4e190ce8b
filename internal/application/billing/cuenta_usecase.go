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

// CuentaUseCase casos de uso de cuentas de cobro: creación, edición, cambio de
// estado con auditoría y consulta con historial.
type CuentaUseCase struct {
	txRunner     BillingTxRunner
	cuentaRepo   repository.CuentaCobroRepository
	auditRepo    repository.AuditoriaRepository
	pacienteRepo repository.PacienteRepository
	familiarRepo repository.FamiliarRepository
}

// NewCuentaUseCase construye el caso de uso.
func NewCuentaUseCase(
	txRunner BillingTxRunner,
	cuentaRepo repository.CuentaCobroRepository,
	auditRepo repository.AuditoriaRepository,
	pacienteRepo repository.PacienteRepository,
	familiarRepo repository.FamiliarRepository,
) *CuentaUseCase {
	return &CuentaUseCase{
		txRunner:     txRunner,
		cuentaRepo:   cuentaRepo,
		auditRepo:    auditRepo,
		pacienteRepo: pacienteRepo,
		familiarRepo: familiarRepo,
	}
}

// Create crea una cuenta de cobro en estado "generada". La creación no agrega
// eventos: el historial arranca con el primer cambio de estado o edición.
func (uc *CuentaUseCase) Create(ctx context.Context, in dto.CreateCuentaRequest) (*dto.CuentaResponse, error) {
	if in.Monto.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.PeriodoHasta.Before(in.PeriodoDesde) {
		return nil, domain.ErrInvalidInput
	}
	paciente, err := uc.pacienteRepo.GetByID(in.PacienteID)
	if err != nil {
		return nil, err
	}
	if paciente == nil {
		return nil, domain.ErrNotFound
	}
	if in.FamiliarID != "" {
		familiar, err := uc.familiarRepo.GetByID(in.FamiliarID)
		if err != nil {
			return nil, err
		}
		// El destinatario debe ser un familiar del mismo paciente.
		if familiar == nil || familiar.PacienteID != in.PacienteID {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	cuenta := &entity.CuentaCobro{
		ID:           uuid.New().String(),
		PacienteID:   in.PacienteID,
		FamiliarID:   in.FamiliarID,
		Monto:        in.Monto,
		PeriodoDesde: in.PeriodoDesde,
		PeriodoHasta: in.PeriodoHasta,
		Concepto:     in.Concepto,
		MetodoPago:   in.MetodoPago,
		Estado:       entity.CuentaGenerada,
		Notas:        in.Notas,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.cuentaRepo.Create(cuenta); err != nil {
		return nil, err
	}
	return toCuentaResponse(cuenta), nil
}

// CambiarEstado aplica una transición del ciclo de vida. Valida contra la
// tabla de transiciones legales y, en la misma transacción, actualiza el
// estado y agrega exactamente un evento de auditoría con la acción
// correspondiente. Una transición ilegal no escribe nada.
func (uc *CuentaUseCase) CambiarEstado(ctx context.Context, cuentaID, actorID string, in dto.CambiarEstadoRequest) (*dto.CuentaDetailResponse, error) {
	cuenta, err := uc.cuentaRepo.GetByID(cuentaID)
	if err != nil {
		return nil, err
	}
	if cuenta == nil {
		return nil, domain.ErrNotFound
	}

	accion, err := domainbilling.TransicionCuenta(cuenta.Estado, in.Estado)
	if err != nil {
		return nil, err
	}

	cuenta.Estado = in.Estado
	cuenta.UpdatedAt = time.Now()
	if in.ComprobanteURL != "" {
		cuenta.ComprobanteURL = in.ComprobanteURL
	}

	evento := &entity.EventoAuditoria{
		ID:             uuid.New().String(),
		Entidad:        entity.EntidadCuentaCobro,
		EntidadID:      cuenta.ID,
		Accion:         accion,
		ActorID:        actorID,
		Notas:          in.Nota,
		ComprobanteURL: in.ComprobanteURL,
		Fecha:          time.Now(),
	}

	err = uc.txRunner.RunCuenta(ctx, func(
		cuentaRepo repository.CuentaCobroRepository,
		auditRepo repository.AuditoriaRepository,
	) error {
		if err := cuentaRepo.Update(cuenta); err != nil {
			return err
		}
		return auditRepo.Append(evento)
	})
	if err != nil {
		return nil, err
	}
	return uc.detail(cuenta)
}

// Update edita los campos de la cuenta y agrega un evento "editado" al
// historial, en la misma transacción. El estado no cambia por esta vía y una
// cuenta en estado terminal (pagada, anulada) ya no se puede editar.
func (uc *CuentaUseCase) Update(ctx context.Context, cuentaID, actorID string, in dto.UpdateCuentaRequest) (*dto.CuentaDetailResponse, error) {
	cuenta, err := uc.cuentaRepo.GetByID(cuentaID)
	if err != nil {
		return nil, err
	}
	if cuenta == nil {
		return nil, domain.ErrNotFound
	}
	if domainbilling.EstadoCuentaTerminal(cuenta.Estado) {
		return nil, domain.ErrConflict
	}

	if in.Monto != nil {
		if in.Monto.LessThanOrEqual(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		cuenta.Monto = *in.Monto
	}
	if in.Concepto != "" {
		cuenta.Concepto = in.Concepto
	}
	if in.MetodoPago != "" {
		cuenta.MetodoPago = in.MetodoPago
	}
	if in.Notas != "" {
		cuenta.Notas = in.Notas
	}
	cuenta.UpdatedAt = time.Now()

	evento := &entity.EventoAuditoria{
		ID:        uuid.New().String(),
		Entidad:   entity.EntidadCuentaCobro,
		EntidadID: cuenta.ID,
		Accion:    entity.AccionEditado,
		ActorID:   actorID,
		Fecha:     time.Now(),
	}

	err = uc.txRunner.RunCuenta(ctx, func(
		cuentaRepo repository.CuentaCobroRepository,
		auditRepo repository.AuditoriaRepository,
	) error {
		if err := cuentaRepo.Update(cuenta); err != nil {
			return err
		}
		return auditRepo.Append(evento)
	})
	if err != nil {
		return nil, err
	}
	return uc.detail(cuenta)
}

// GetByID devuelve la cuenta con su historial de auditoría.
func (uc *CuentaUseCase) GetByID(ctx context.Context, cuentaID string) (*dto.CuentaDetailResponse, error) {
	cuenta, err := uc.cuentaRepo.GetByID(cuentaID)
	if err != nil {
		return nil, err
	}
	if cuenta == nil {
		return nil, domain.ErrNotFound
	}
	return uc.detail(cuenta)
}

// List lista cuentas de cobro con filtros.
func (uc *CuentaUseCase) List(ctx context.Context, in dto.ListCuentasRequest) ([]*dto.CuentaResponse, error) {
	in.DefaultPage()
	list, err := uc.cuentaRepo.List(repository.CuentaFilter{
		PacienteID: in.PacienteID,
		Estado:     in.Estado,
		Limit:      in.Limit,
		Offset:     in.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CuentaResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCuentaResponse(c))
	}
	return out, nil
}

// SetComprobante guarda la URL del comprobante subido al almacenamiento de
// objetos sin tocar el estado ni el historial.
func (uc *CuentaUseCase) SetComprobante(ctx context.Context, cuentaID, url string) error {
	cuenta, err := uc.cuentaRepo.GetByID(cuentaID)
	if err != nil {
		return err
	}
	if cuenta == nil {
		return domain.ErrNotFound
	}
	cuenta.ComprobanteURL = url
	cuenta.UpdatedAt = time.Now()
	return uc.cuentaRepo.Update(cuenta)
}

func (uc *CuentaUseCase) detail(cuenta *entity.CuentaCobro) (*dto.CuentaDetailResponse, error) {
	eventos, err := uc.auditRepo.ListByEntidad(entity.EntidadCuentaCobro, cuenta.ID)
	if err != nil {
		return nil, err
	}
	return &dto.CuentaDetailResponse{
		CuentaResponse: *toCuentaResponse(cuenta),
		Historial:      toEventosResponse(eventos),
	}, nil
}

func toCuentaResponse(c *entity.CuentaCobro) *dto.CuentaResponse {
	return &dto.CuentaResponse{
		ID:             c.ID,
		PacienteID:     c.PacienteID,
		FamiliarID:     c.FamiliarID,
		Monto:          c.Monto,
		PeriodoDesde:   c.PeriodoDesde,
		PeriodoHasta:   c.PeriodoHasta,
		Concepto:       c.Concepto,
		MetodoPago:     c.MetodoPago,
		Estado:         c.Estado,
		Notas:          c.Notas,
		ComprobanteURL: c.ComprobanteURL,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func toEventosResponse(eventos []*entity.EventoAuditoria) []dto.EventoResponse {
	out := make([]dto.EventoResponse, 0, len(eventos))
	for _, e := range eventos {
		out = append(out, dto.EventoResponse{
			ID:             e.ID,
			Accion:         e.Accion,
			ActorID:        e.ActorID,
			Notas:          e.Notas,
			ComprobanteURL: e.ComprobanteURL,
			Fecha:          e.Fecha,
		})
	}
	return out
}
