package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renacer/clinica-api/internal/application/billing"
	"github.com/renacer/clinica-api/internal/application/dto"
	"github.com/renacer/clinica-api/internal/domain"
	"github.com/renacer/clinica-api/internal/domain/entity"
	"github.com/renacer/clinica-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria — implementan los puertos de repositorio sin PostgreSQL.
// El fakeTxRunner ejecuta la función directamente sobre los mismos fakes; la
// atomicidad real se prueba contra la base, aquí se valida la lógica.
// ──────────────────────────────────────────────────────────────────────────────

type fakeCuentaRepo struct {
	cuentas map[string]*entity.CuentaCobro
}

func newFakeCuentaRepo() *fakeCuentaRepo {
	return &fakeCuentaRepo{cuentas: make(map[string]*entity.CuentaCobro)}
}

func (r *fakeCuentaRepo) Create(c *entity.CuentaCobro) error {
	cp := *c
	r.cuentas[c.ID] = &cp
	return nil
}

func (r *fakeCuentaRepo) GetByID(id string) (*entity.CuentaCobro, error) {
	c, ok := r.cuentas[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCuentaRepo) List(filter repository.CuentaFilter) ([]*entity.CuentaCobro, error) {
	var out []*entity.CuentaCobro
	for _, c := range r.cuentas {
		if filter.PacienteID != "" && c.PacienteID != filter.PacienteID {
			continue
		}
		if filter.Estado != "" && c.Estado != filter.Estado {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeCuentaRepo) Update(c *entity.CuentaCobro) error {
	cp := *c
	r.cuentas[c.ID] = &cp
	return nil
}

type fakePagoRepo struct {
	pagos map[string]*entity.Pago
}

func newFakePagoRepo() *fakePagoRepo {
	return &fakePagoRepo{pagos: make(map[string]*entity.Pago)}
}

func (r *fakePagoRepo) Create(p *entity.Pago) error {
	cp := *p
	r.pagos[p.ID] = &cp
	return nil
}

func (r *fakePagoRepo) GetByID(id string) (*entity.Pago, error) {
	p, ok := r.pagos[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePagoRepo) List(filter repository.PagoFilter) ([]*entity.Pago, error) {
	var out []*entity.Pago
	for _, p := range r.pagos {
		if filter.PacienteID != "" && p.PacienteID != filter.PacienteID {
			continue
		}
		if !filter.IncluirBorrados && p.Estado == entity.PagoBorrado {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakePagoRepo) Update(p *entity.Pago) error {
	cp := *p
	r.pagos[p.ID] = &cp
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
	// Más reciente primero, como el repo real.
	for i := len(r.eventos) - 1; i >= 0; i-- {
		e := r.eventos[i]
		if e.Entidad == entidad && e.EntidadID == entidadID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakePacienteRepo struct {
	pacientes map[string]*entity.Paciente
}

func newFakePacienteRepo(ps ...*entity.Paciente) *fakePacienteRepo {
	r := &fakePacienteRepo{pacientes: make(map[string]*entity.Paciente)}
	for _, p := range ps {
		r.pacientes[p.ID] = p
	}
	return r
}

func (r *fakePacienteRepo) Create(p *entity.Paciente) error {
	r.pacientes[p.ID] = p
	return nil
}

func (r *fakePacienteRepo) GetByID(id string) (*entity.Paciente, error) {
	return r.pacientes[id], nil
}

func (r *fakePacienteRepo) GetByDocumento(documento string) (*entity.Paciente, error) {
	for _, p := range r.pacientes {
		if p.Documento == documento {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakePacienteRepo) List(filter repository.PacienteFilter) ([]*entity.Paciente, error) {
	var out []*entity.Paciente
	for _, p := range r.pacientes {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakePacienteRepo) Update(p *entity.Paciente) error {
	r.pacientes[p.ID] = p
	return nil
}

type fakeFamiliarRepo struct {
	familiares map[string]*entity.Familiar
}

func newFakeFamiliarRepo(fs ...*entity.Familiar) *fakeFamiliarRepo {
	r := &fakeFamiliarRepo{familiares: make(map[string]*entity.Familiar)}
	for _, f := range fs {
		r.familiares[f.ID] = f
	}
	return r
}

func (r *fakeFamiliarRepo) Create(f *entity.Familiar) error {
	r.familiares[f.ID] = f
	return nil
}

func (r *fakeFamiliarRepo) GetByID(id string) (*entity.Familiar, error) {
	return r.familiares[id], nil
}

func (r *fakeFamiliarRepo) ListByPaciente(pacienteID string) ([]*entity.Familiar, error) {
	var out []*entity.Familiar
	for _, f := range r.familiares {
		if f.PacienteID == pacienteID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeFamiliarRepo) Update(f *entity.Familiar) error {
	r.familiares[f.ID] = f
	return nil
}

func (r *fakeFamiliarRepo) Delete(id string) error {
	delete(r.familiares, id)
	return nil
}

// fakeTxRunner pasa los mismos fakes a la función transaccional.
type fakeTxRunner struct {
	cuentaRepo *fakeCuentaRepo
	pagoRepo   *fakePagoRepo
	auditRepo  *fakeAuditRepo
}

func (t *fakeTxRunner) RunCuenta(ctx context.Context, fn func(
	cuentaRepo repository.CuentaCobroRepository,
	auditRepo repository.AuditoriaRepository,
) error) error {
	return fn(t.cuentaRepo, t.auditRepo)
}

func (t *fakeTxRunner) RunPago(ctx context.Context, fn func(
	pagoRepo repository.PagoRepository,
	auditRepo repository.AuditoriaRepository,
) error) error {
	return fn(t.pagoRepo, t.auditRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	testPacienteID = "00000000-0000-0000-0000-00000000000a"
	testFamiliarID = "00000000-0000-0000-0000-00000000000b"
	testActorID    = "00000000-0000-0000-0000-00000000000c"
)

type billingFixture struct {
	uc        *billing.CuentaUseCase
	pagoUC    *billing.PagoUseCase
	cuentas   *fakeCuentaRepo
	pagos     *fakePagoRepo
	auditoria *fakeAuditRepo
}

func newBillingFixture() *billingFixture {
	cuentas := newFakeCuentaRepo()
	pagos := newFakePagoRepo()
	auditoria := &fakeAuditRepo{}
	pacientes := newFakePacienteRepo(&entity.Paciente{
		ID: testPacienteID, Nombre: "Carlos", Apellido: "Díaz",
		Documento: "1020304050", Estado: entity.PacienteActivo,
	})
	familiares := newFakeFamiliarRepo(&entity.Familiar{
		ID: testFamiliarID, PacienteID: testPacienteID,
		Nombre: "Marta Díaz", Parentesco: "madre",
	})
	tx := &fakeTxRunner{cuentaRepo: cuentas, pagoRepo: pagos, auditRepo: auditoria}

	return &billingFixture{
		uc:        billing.NewCuentaUseCase(tx, cuentas, auditoria, pacientes, familiares),
		pagoUC:    billing.NewPagoUseCase(tx, pagos, auditoria, pacientes, cuentas),
		cuentas:   cuentas,
		pagos:     pagos,
		auditoria: auditoria,
	}
}

func createCuentaRequest() dto.CreateCuentaRequest {
	return dto.CreateCuentaRequest{
		PacienteID:   testPacienteID,
		FamiliarID:   testFamiliarID,
		Monto:        decimal.NewFromInt(500_000),
		PeriodoDesde: time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC),
		PeriodoHasta: time.Date(2025, 5, 17, 0, 0, 0, 0, time.UTC),
		Concepto:     "Mensualidad mayo",
		MetodoPago:   entity.MetodoTransferencia,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Create
// ──────────────────────────────────────────────────────────────────────────────

// La cuenta nace en "generada" y con el historial vacío: la creación no es un
// evento auditable.
func TestCuentaCreate_NaceGeneradaSinEventos(t *testing.T) {
	f := newBillingFixture()

	resp, err := f.uc.Create(context.Background(), createCuentaRequest())
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, entity.CuentaGenerada, resp.Estado, "toda cuenta nueva debe nacer en generada")
	assert.True(t, resp.Monto.Equal(decimal.NewFromInt(500_000)))

	detail, err := f.uc.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Empty(t, detail.Historial, "crear una cuenta no debe agregar eventos de auditoría")
}

func TestCuentaCreate_MontoCeroRechazado(t *testing.T) {
	f := newBillingFixture()
	in := createCuentaRequest()
	in.Monto = decimal.Zero

	_, err := f.uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCuentaCreate_PeriodoInvertidoRechazado(t *testing.T) {
	f := newBillingFixture()
	in := createCuentaRequest()
	in.PeriodoDesde, in.PeriodoHasta = in.PeriodoHasta, in.PeriodoDesde

	_, err := f.uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCuentaCreate_PacienteInexistente(t *testing.T) {
	f := newBillingFixture()
	in := createCuentaRequest()
	in.PacienteID = "00000000-0000-0000-0000-0000000000ff"

	_, err := f.uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// El destinatario debe ser un familiar del mismo paciente.
func TestCuentaCreate_FamiliarDeOtroPacienteRechazado(t *testing.T) {
	f := newBillingFixture()
	in := createCuentaRequest()
	in.FamiliarID = "00000000-0000-0000-0000-0000000000fe"

	_, err := f.uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CambiarEstado — ciclo de vida y auditoría
// ──────────────────────────────────────────────────────────────────────────────

// generada → pagada es legal y agrega exactamente un evento "pagado" con la
// nota y el comprobante.
func TestCuentaCambiarEstado_PagadaAgregaEventoPagado(t *testing.T) {
	f := newBillingFixture()
	resp, err := f.uc.Create(context.Background(), createCuentaRequest())
	require.NoError(t, err)

	detail, err := f.uc.CambiarEstado(context.Background(), resp.ID, testActorID, dto.CambiarEstadoRequest{
		Estado:         entity.CuentaPagada,
		Nota:           "Consignación Bancolombia",
		ComprobanteURL: "https://bucket.s3.amazonaws.com/cuentas/123-recibo.pdf",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.CuentaPagada, detail.Estado)
	require.Len(t, detail.Historial, 1, "la transición debe agregar exactamente un evento")
	assert.Equal(t, entity.AccionPagado, detail.Historial[0].Accion)
	assert.Equal(t, testActorID, detail.Historial[0].ActorID)
	assert.Equal(t, "Consignación Bancolombia", detail.Historial[0].Notas)
	assert.NotEmpty(t, detail.Historial[0].ComprobanteURL)
}

// Una transición ilegal no cambia el estado ni escribe eventos.
func TestCuentaCambiarEstado_TransicionIlegalNoEscribeNada(t *testing.T) {
	f := newBillingFixture()
	resp, err := f.uc.Create(context.Background(), createCuentaRequest())
	require.NoError(t, err)

	// generada → rechazada no es legal (solo una cuenta enviada puede rechazarse)
	_, err = f.uc.CambiarEstado(context.Background(), resp.ID, testActorID, dto.CambiarEstadoRequest{
		Estado: entity.CuentaRechazada,
	})
	assert.ErrorIs(t, err, domain.ErrTransicionInvalida)

	detail, err := f.uc.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.CuentaGenerada, detail.Estado, "el estado no debe cambiar")
	assert.Empty(t, detail.Historial, "no debe quedar ningún evento")
}

// Los estados terminales (pagada, anulada) no admiten más transiciones.
func TestCuentaCambiarEstado_EstadoTerminalBloqueado(t *testing.T) {
	f := newBillingFixture()
	resp, err := f.uc.Create(context.Background(), createCuentaRequest())
	require.NoError(t, err)

	_, err = f.uc.CambiarEstado(context.Background(), resp.ID, testActorID, dto.CambiarEstadoRequest{Estado: entity.CuentaAnulada})
	require.NoError(t, err)

	_, err = f.uc.CambiarEstado(context.Background(), resp.ID, testActorID, dto.CambiarEstadoRequest{Estado: entity.CuentaEnviada})
	assert.ErrorIs(t, err, domain.ErrTransicionInvalida)
}

// enviada → rechazada → enviada: una cuenta rechazada puede reenviarse y el
// historial conserva ambos eventos (más reciente primero).
func TestCuentaCambiarEstado_RechazadaPuedeReenviarse(t *testing.T) {
	f := newBillingFixture()
	resp, err := f.uc.Create(context.Background(), createCuentaRequest())
	require.NoError(t, err)

	ctx := context.Background()
	_, err = f.uc.CambiarEstado(ctx, resp.ID, testActorID, dto.CambiarEstadoRequest{Estado: entity.CuentaEnviada})
	require.NoError(t, err)
	_, err = f.uc.CambiarEstado(ctx, resp.ID, testActorID, dto.CambiarEstadoRequest{Estado: entity.CuentaRechazada, Nota: "familiar pide desglose"})
	require.NoError(t, err)
	detail, err := f.uc.CambiarEstado(ctx, resp.ID, testActorID, dto.CambiarEstadoRequest{Estado: entity.CuentaEnviada})
	require.NoError(t, err)

	assert.Equal(t, entity.CuentaEnviada, detail.Estado)
	require.Len(t, detail.Historial, 3)
	assert.Equal(t, entity.AccionEnviado, detail.Historial[0].Accion, "el evento más reciente va primero")
	assert.Equal(t, entity.AccionRechazado, detail.Historial[1].Accion)
	assert.Equal(t, entity.AccionEnviado, detail.Historial[2].Accion)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Update
// ──────────────────────────────────────────────────────────────────────────────

// Editar una cuenta agrega un evento "editado" pero no toca el estado.
func TestCuentaUpdate_AgregaEventoEditado(t *testing.T) {
	f := newBillingFixture()
	resp, err := f.uc.Create(context.Background(), createCuentaRequest())
	require.NoError(t, err)

	nuevoMonto := decimal.NewFromInt(550_000)
	detail, err := f.uc.Update(context.Background(), resp.ID, testActorID, dto.UpdateCuentaRequest{
		Monto:    &nuevoMonto,
		Concepto: "Mensualidad mayo + medicamentos",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.CuentaGenerada, detail.Estado, "editar no cambia el estado")
	assert.True(t, detail.Monto.Equal(nuevoMonto))
	assert.Equal(t, "Mensualidad mayo + medicamentos", detail.Concepto)
	require.Len(t, detail.Historial, 1)
	assert.Equal(t, entity.AccionEditado, detail.Historial[0].Accion)
}

func TestCuentaUpdate_MontoNegativoRechazado(t *testing.T) {
	f := newBillingFixture()
	resp, err := f.uc.Create(context.Background(), createCuentaRequest())
	require.NoError(t, err)

	negativo := decimal.NewFromInt(-1)
	_, err = f.uc.Update(context.Background(), resp.ID, testActorID, dto.UpdateCuentaRequest{Monto: &negativo})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Una cuenta en estado terminal ya no se puede editar: no cambia nada y no se
// agrega evento "editado" al historial.
func TestCuentaUpdate_EstadoTerminalNoEditable(t *testing.T) {
	f := newBillingFixture()
	resp, err := f.uc.Create(context.Background(), createCuentaRequest())
	require.NoError(t, err)
	_, err = f.uc.CambiarEstado(context.Background(), resp.ID, testActorID, dto.CambiarEstadoRequest{Estado: entity.CuentaPagada})
	require.NoError(t, err)

	nuevoMonto := decimal.NewFromInt(600_000)
	_, err = f.uc.Update(context.Background(), resp.ID, testActorID, dto.UpdateCuentaRequest{Monto: &nuevoMonto})
	assert.ErrorIs(t, err, domain.ErrConflict)

	detail, err := f.uc.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.True(t, detail.Monto.Equal(decimal.NewFromInt(500_000)), "el monto no debe cambiar")
	require.Len(t, detail.Historial, 1, "solo debe existir el evento del pago")
	assert.Equal(t, entity.AccionPagado, detail.Historial[0].Accion)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests List
// ──────────────────────────────────────────────────────────────────────────────

func TestCuentaList_FiltraPorEstado(t *testing.T) {
	f := newBillingFixture()
	ctx := context.Background()

	a, err := f.uc.Create(ctx, createCuentaRequest())
	require.NoError(t, err)
	_, err = f.uc.Create(ctx, createCuentaRequest())
	require.NoError(t, err)
	_, err = f.uc.CambiarEstado(ctx, a.ID, testActorID, dto.CambiarEstadoRequest{Estado: entity.CuentaEnviada})
	require.NoError(t, err)

	enviadas, err := f.uc.List(ctx, dto.ListCuentasRequest{Estado: entity.CuentaEnviada})
	require.NoError(t, err)
	require.Len(t, enviadas, 1)
	assert.Equal(t, a.ID, enviadas[0].ID)
}
