// Package gastos contiene los casos de uso de gastos operativos, con borrado
// lógico y reactivación auditados en el historial unificado.
package gastos

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

// GastoTxRunner ejecuta estado + evento de auditoría en una transacción.
type GastoTxRunner interface {
	RunGasto(ctx context.Context, fn func(
		gastoRepo repository.GastoRepository,
		auditRepo repository.AuditoriaRepository,
	) error) error
}

// UseCase casos de uso de gastos.
type UseCase struct {
	txRunner  GastoTxRunner
	gastoRepo repository.GastoRepository
	auditRepo repository.AuditoriaRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner GastoTxRunner, gastoRepo repository.GastoRepository, auditRepo repository.AuditoriaRepository) *UseCase {
	return &UseCase{txRunner: txRunner, gastoRepo: gastoRepo, auditRepo: auditRepo}
}

// Create registra un gasto confirmado. La categoría debe pertenecer a la lista fija.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateGastoRequest) (*dto.GastoResponse, error) {
	if in.Monto.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if !entity.CategoriaGastoValida(in.Categoria) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	gasto := &entity.Gasto{
		ID:        uuid.New().String(),
		Concepto:  in.Concepto,
		Categoria: in.Categoria,
		Monto:     in.Monto,
		Fecha:     in.Fecha,
		Estado:    entity.GastoConfirmado,
		Notas:     in.Notas,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.gastoRepo.Create(gasto); err != nil {
		return nil, err
	}
	return toGastoResponse(gasto), nil
}

// Eliminar marca el gasto como eliminado (borrado lógico) y agrega el evento.
func (uc *UseCase) Eliminar(ctx context.Context, gastoID, actorID, nota string) (*dto.GastoDetailResponse, error) {
	return uc.transicionar(ctx, gastoID, entity.GastoEliminado, actorID, nota)
}

// Reactivar devuelve un gasto eliminado a confirmado.
func (uc *UseCase) Reactivar(ctx context.Context, gastoID, actorID, nota string) (*dto.GastoDetailResponse, error) {
	return uc.transicionar(ctx, gastoID, entity.GastoConfirmado, actorID, nota)
}

func (uc *UseCase) transicionar(ctx context.Context, gastoID, hacia, actorID, nota string) (*dto.GastoDetailResponse, error) {
	gasto, err := uc.gastoRepo.GetByID(gastoID)
	if err != nil {
		return nil, err
	}
	if gasto == nil {
		return nil, domain.ErrNotFound
	}

	accion, err := domainbilling.TransicionGasto(gasto.Estado, hacia)
	if err != nil {
		return nil, err
	}

	gasto.Estado = hacia
	gasto.UpdatedAt = time.Now()

	evento := &entity.EventoAuditoria{
		ID:        uuid.New().String(),
		Entidad:   entity.EntidadGasto,
		EntidadID: gasto.ID,
		Accion:    accion,
		ActorID:   actorID,
		Notas:     nota,
		Fecha:     time.Now(),
	}

	err = uc.txRunner.RunGasto(ctx, func(
		gastoRepo repository.GastoRepository,
		auditRepo repository.AuditoriaRepository,
	) error {
		if err := gastoRepo.Update(gasto); err != nil {
			return err
		}
		return auditRepo.Append(evento)
	})
	if err != nil {
		return nil, err
	}

	eventos, err := uc.auditRepo.ListByEntidad(entity.EntidadGasto, gasto.ID)
	if err != nil {
		return nil, err
	}
	detail := &dto.GastoDetailResponse{GastoResponse: *toGastoResponse(gasto)}
	for _, e := range eventos {
		detail.Historial = append(detail.Historial, dto.EventoResponse{
			ID:      e.ID,
			Accion:  e.Accion,
			ActorID: e.ActorID,
			Notas:   e.Notas,
			Fecha:   e.Fecha,
		})
	}
	return detail, nil
}

// List lista gastos con filtros; los eliminados solo con IncluirEliminados.
func (uc *UseCase) List(ctx context.Context, in dto.ListGastosRequest) ([]*dto.GastoResponse, error) {
	in.DefaultPage()
	list, err := uc.gastoRepo.List(repository.GastoFilter{
		Categoria:         in.Categoria,
		Desde:             in.Desde,
		Hasta:             in.Hasta,
		IncluirEliminados: in.IncluirEliminados,
		Limit:             in.Limit,
		Offset:            in.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.GastoResponse, 0, len(list))
	for _, g := range list {
		out = append(out, toGastoResponse(g))
	}
	return out, nil
}

// Categorias devuelve la lista fija de categorías de gasto.
func (uc *UseCase) Categorias() []string {
	return entity.CategoriasGasto
}

func toGastoResponse(g *entity.Gasto) *dto.GastoResponse {
	return &dto.GastoResponse{
		ID:        g.ID,
		Concepto:  g.Concepto,
		Categoria: g.Categoria,
		Monto:     g.Monto,
		Fecha:     g.Fecha,
		Estado:    g.Estado,
		Notas:     g.Notas,
		CreatedAt: g.CreatedAt,
	}
}
