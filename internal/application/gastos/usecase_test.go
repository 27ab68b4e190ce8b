package gastos_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renacer/clinica-api/internal/application/dto"
	"github.com/renacer/clinica-api/internal/application/gastos"
	"github.com/renacer/clinica-api/internal/domain"
	"github.com/renacer/clinica-api/internal/domain/entity"
	"github.com/renacer/clinica-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeGastoRepo struct {
	gastos map[string]*entity.Gasto
}

func newFakeGastoRepo() *fakeGastoRepo {
	return &fakeGastoRepo{gastos: make(map[string]*entity.Gasto)}
}

func (r *fakeGastoRepo) Create(g *entity.Gasto) error {
	cp := *g
	r.gastos[g.ID] = &cp
	return nil
}

func (r *fakeGastoRepo) GetByID(id string) (*entity.Gasto, error) {
	g, ok := r.gastos[id]
	if !ok {
		return nil, nil
	}
	cp := *g
	return &cp, nil
}

func (r *fakeGastoRepo) List(filter repository.GastoFilter) ([]*entity.Gasto, error) {
	var out []*entity.Gasto
	for _, g := range r.gastos {
		if filter.Categoria != "" && g.Categoria != filter.Categoria {
			continue
		}
		if filter.Desde != nil && g.Fecha.Before(*filter.Desde) {
			continue
		}
		if filter.Hasta != nil && g.Fecha.After(*filter.Hasta) {
			continue
		}
		if !filter.IncluirEliminados && g.Estado == entity.GastoEliminado {
			continue
		}
		cp := *g
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeGastoRepo) Update(g *entity.Gasto) error {
	cp := *g
	r.gastos[g.ID] = &cp
	return nil
}

type fakeAuditRepo struct {
	eventos []*entity.EventoAuditoria
}

func (r *fakeAuditRepo) Append(e *entity.EventoAuditoria) error {
	cp := *e
	r.eventos = append(r.eventos, &cp)
	return nil
}

func (r *fakeAuditRepo) ListByEntidad(entidad, entidadID string) ([]*entity.EventoAuditoria, error) {
	var out []*entity.EventoAuditoria
	for i := len(r.eventos) - 1; i >= 0; i-- {
		e := r.eventos[i]
		if e.Entidad == entidad && e.EntidadID == entidadID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeTxRunner struct {
	gastoRepo *fakeGastoRepo
	auditRepo *fakeAuditRepo
}

func (t *fakeTxRunner) RunGasto(ctx context.Context, fn func(
	gastoRepo repository.GastoRepository,
	auditRepo repository.AuditoriaRepository,
) error) error {
	return fn(t.gastoRepo, t.auditRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const testActorID = "00000000-0000-0000-0000-00000000000c"

func newGastoUseCase() *gastos.UseCase {
	repo := newFakeGastoRepo()
	audit := &fakeAuditRepo{}
	return gastos.NewUseCase(&fakeTxRunner{gastoRepo: repo, auditRepo: audit}, repo, audit)
}

func createGastoRequest() dto.CreateGastoRequest {
	return dto.CreateGastoRequest{
		Concepto:  "Mercado semanal",
		Categoria: "alimentacion",
		Monto:     decimal.NewFromInt(350_000),
		Fecha:     time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestGastoCreate_NaceConfirmado(t *testing.T) {
	uc := newGastoUseCase()

	resp, err := uc.Create(context.Background(), createGastoRequest())
	require.NoError(t, err)
	assert.Equal(t, entity.GastoConfirmado, resp.Estado)
}

// La categoría debe pertenecer a la lista fija de la institución.
func TestGastoCreate_CategoriaDesconocidaRechazada(t *testing.T) {
	uc := newGastoUseCase()
	in := createGastoRequest()
	in.Categoria = "loteria"

	_, err := uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGastoCreate_MontoCeroRechazado(t *testing.T) {
	uc := newGastoUseCase()
	in := createGastoRequest()
	in.Monto = decimal.Zero

	_, err := uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Eliminar es borrado lógico: el gasto sale de los listados por defecto y el
// historial registra la acción.
func TestGastoEliminar_SaleDeLosListados(t *testing.T) {
	uc := newGastoUseCase()
	ctx := context.Background()
	resp, err := uc.Create(ctx, createGastoRequest())
	require.NoError(t, err)

	detail, err := uc.Eliminar(ctx, resp.ID, testActorID, "factura duplicada")
	require.NoError(t, err)
	assert.Equal(t, entity.GastoEliminado, detail.Estado)
	require.Len(t, detail.Historial, 1)
	assert.Equal(t, entity.AccionEliminado, detail.Historial[0].Accion)
	assert.Equal(t, "factura duplicada", detail.Historial[0].Notas)

	visibles, err := uc.List(ctx, dto.ListGastosRequest{})
	require.NoError(t, err)
	assert.Empty(t, visibles, "un gasto eliminado no debe aparecer por defecto")

	todos, err := uc.List(ctx, dto.ListGastosRequest{IncluirEliminados: true})
	require.NoError(t, err)
	assert.Len(t, todos, 1)
}

func TestGastoEliminar_DosVecesRechazado(t *testing.T) {
	uc := newGastoUseCase()
	ctx := context.Background()
	resp, err := uc.Create(ctx, createGastoRequest())
	require.NoError(t, err)

	_, err = uc.Eliminar(ctx, resp.ID, testActorID, "")
	require.NoError(t, err)
	_, err = uc.Eliminar(ctx, resp.ID, testActorID, "")
	assert.ErrorIs(t, err, domain.ErrTransicionInvalida)
}

func TestGastoReactivar_VuelveAConfirmado(t *testing.T) {
	uc := newGastoUseCase()
	ctx := context.Background()
	resp, err := uc.Create(ctx, createGastoRequest())
	require.NoError(t, err)

	_, err = uc.Eliminar(ctx, resp.ID, testActorID, "error de digitación")
	require.NoError(t, err)
	detail, err := uc.Reactivar(ctx, resp.ID, testActorID, "sí era válido")
	require.NoError(t, err)

	assert.Equal(t, entity.GastoConfirmado, detail.Estado)
	require.Len(t, detail.Historial, 2)
	assert.Equal(t, entity.AccionReactivado, detail.Historial[0].Accion)
	assert.Equal(t, entity.AccionEliminado, detail.Historial[1].Accion)
}

func TestGastoList_FiltraPorCategoriaYFecha(t *testing.T) {
	uc := newGastoUseCase()
	ctx := context.Background()

	_, err := uc.Create(ctx, createGastoRequest())
	require.NoError(t, err)

	otro := createGastoRequest()
	otro.Concepto, otro.Categoria = "Recibo de luz", "servicios_publicos"
	otro.Fecha = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	_, err = uc.Create(ctx, otro)
	require.NoError(t, err)

	res, err := uc.List(ctx, dto.ListGastosRequest{Categoria: "servicios_publicos"})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "Recibo de luz", res[0].Concepto)

	desde := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	res, err = uc.List(ctx, dto.ListGastosRequest{Desde: &desde})
	require.NoError(t, err)
	assert.Len(t, res, 1)
}

func TestGastoCategorias_ListaFija(t *testing.T) {
	uc := newGastoUseCase()
	cats := uc.Categorias()
	assert.Contains(t, cats, "alimentacion")
	assert.Contains(t, cats, "nomina")
	assert.Len(t, cats, len(entity.CategoriasGasto))
}
