package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renacer/clinica-api/internal/application/dto"
	"github.com/renacer/clinica-api/internal/domain"
	"github.com/renacer/clinica-api/internal/domain/entity"
)

func createPagoRequest() dto.CreatePagoRequest {
	return dto.CreatePagoRequest{
		PacienteID: testPacienteID,
		Monto:      decimal.NewFromInt(500_000),
		Metodo:     entity.MetodoTransferencia,
		Fecha:      time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Create
// ──────────────────────────────────────────────────────────────────────────────

// Un pago nace "completado" salvo que se marque pendiente, y sin eventos.
func TestPagoCreate_NaceCompletado(t *testing.T) {
	f := newBillingFixture()

	resp, err := f.pagoUC.Create(context.Background(), createPagoRequest())
	require.NoError(t, err)

	assert.Equal(t, entity.PagoCompletado, resp.Estado)

	detail, err := f.pagoUC.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Empty(t, detail.Historial, "crear un pago no debe agregar eventos")
}

func TestPagoCreate_PendienteRequiereAprobacion(t *testing.T) {
	f := newBillingFixture()
	in := createPagoRequest()
	in.Pendiente = true

	resp, err := f.pagoUC.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, entity.PagoPendiente, resp.Estado)
}

func TestPagoCreate_MontoCeroRechazado(t *testing.T) {
	f := newBillingFixture()
	in := createPagoRequest()
	in.Monto = decimal.Zero

	_, err := f.pagoUC.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// La cuenta vinculada debe existir y pertenecer al mismo paciente.
func TestPagoCreate_CuentaDeOtroPacienteRechazada(t *testing.T) {
	f := newBillingFixture()
	in := createPagoRequest()
	in.CuentaCobroID = "00000000-0000-0000-0000-0000000000fd"

	_, err := f.pagoUC.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPagoCreate_VinculadoACuentaDelPaciente(t *testing.T) {
	f := newBillingFixture()
	ctx := context.Background()

	cuenta, err := f.uc.Create(ctx, createCuentaRequest())
	require.NoError(t, err)

	in := createPagoRequest()
	in.CuentaCobroID = cuenta.ID
	resp, err := f.pagoUC.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, cuenta.ID, resp.CuentaCobroID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de ciclo de vida: aprobar, borrar, reactivar
// ──────────────────────────────────────────────────────────────────────────────

func TestPagoAprobar_PendientePasaACompletado(t *testing.T) {
	f := newBillingFixture()
	in := createPagoRequest()
	in.Pendiente = true
	resp, err := f.pagoUC.Create(context.Background(), in)
	require.NoError(t, err)

	detail, err := f.pagoUC.Aprobar(context.Background(), resp.ID, testActorID, "verificado contra extracto")
	require.NoError(t, err)

	assert.Equal(t, entity.PagoCompletado, detail.Estado)
	require.Len(t, detail.Historial, 1)
	assert.Equal(t, entity.AccionAprobado, detail.Historial[0].Accion)
	assert.Equal(t, "verificado contra extracto", detail.Historial[0].Notas)
}

// Aprobar un pago ya completado es ilegal.
func TestPagoAprobar_CompletadoRechazado(t *testing.T) {
	f := newBillingFixture()
	resp, err := f.pagoUC.Create(context.Background(), createPagoRequest())
	require.NoError(t, err)

	_, err = f.pagoUC.Aprobar(context.Background(), resp.ID, testActorID, "")
	assert.ErrorIs(t, err, domain.ErrTransicionInvalida)
}

// Borrar es eliminación lógica: el pago sale de los listados por defecto pero
// sigue recuperable por ID y con su historial.
func TestPagoBorrar_SaleDeLosListados(t *testing.T) {
	f := newBillingFixture()
	ctx := context.Background()
	resp, err := f.pagoUC.Create(ctx, createPagoRequest())
	require.NoError(t, err)

	detail, err := f.pagoUC.Borrar(ctx, resp.ID, testActorID, "registrado por error")
	require.NoError(t, err)
	assert.Equal(t, entity.PagoBorrado, detail.Estado)
	require.Len(t, detail.Historial, 1)
	assert.Equal(t, entity.AccionEliminado, detail.Historial[0].Accion)

	visibles, err := f.pagoUC.List(ctx, dto.ListPagosRequest{PacienteID: testPacienteID})
	require.NoError(t, err)
	assert.Empty(t, visibles, "un pago borrado no debe aparecer por defecto")

	todos, err := f.pagoUC.List(ctx, dto.ListPagosRequest{PacienteID: testPacienteID, IncluirBorrados: true})
	require.NoError(t, err)
	assert.Len(t, todos, 1, "con incluir_borrados el pago debe aparecer")
}

// Un pago pendiente no puede borrarse: primero se aprueba o se corrige.
func TestPagoBorrar_PendienteRechazado(t *testing.T) {
	f := newBillingFixture()
	in := createPagoRequest()
	in.Pendiente = true
	resp, err := f.pagoUC.Create(context.Background(), in)
	require.NoError(t, err)

	_, err = f.pagoUC.Borrar(context.Background(), resp.ID, testActorID, "")
	assert.ErrorIs(t, err, domain.ErrTransicionInvalida)
}

// borrar → reactivar devuelve el pago a completado y acumula el historial.
func TestPagoReactivar_VuelveACompletado(t *testing.T) {
	f := newBillingFixture()
	ctx := context.Background()
	resp, err := f.pagoUC.Create(ctx, createPagoRequest())
	require.NoError(t, err)

	_, err = f.pagoUC.Borrar(ctx, resp.ID, testActorID, "duplicado")
	require.NoError(t, err)
	detail, err := f.pagoUC.Reactivar(ctx, resp.ID, testActorID, "no era duplicado")
	require.NoError(t, err)

	assert.Equal(t, entity.PagoCompletado, detail.Estado)
	require.Len(t, detail.Historial, 2)
	assert.Equal(t, entity.AccionReactivado, detail.Historial[0].Accion)
	assert.Equal(t, entity.AccionEliminado, detail.Historial[1].Accion)

	visibles, err := f.pagoUC.List(ctx, dto.ListPagosRequest{PacienteID: testPacienteID})
	require.NoError(t, err)
	assert.Len(t, visibles, 1, "el pago reactivado vuelve a los listados")
}

func TestPagoGetByID_Inexistente(t *testing.T) {
	f := newBillingFixture()
	_, err := f.pagoUC.GetByID(context.Background(), "00000000-0000-0000-0000-0000000000fc")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
