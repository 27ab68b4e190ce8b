package pacientes_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renacer/clinica-api/internal/application/dto"
	"github.com/renacer/clinica-api/internal/application/pacientes"
	"github.com/renacer/clinica-api/internal/domain"
	"github.com/renacer/clinica-api/internal/domain/entity"
	"github.com/renacer/clinica-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

// coincide emula el filtro de búsqueda del repo real: la consulta llega ya
// normalizada desde el caso de uso y se compara contra los campos normalizados.
func coincide(query string, campos ...string) bool {
	if query == "" {
		return true
	}
	for _, campo := range campos {
		if strings.Contains(pacientes.Normalizar(campo), query) {
			return true
		}
	}
	return false
}

type fakePacienteRepo struct {
	pacientes map[string]*entity.Paciente
	failOn    string // nombre de método que debe fallar, para probar el rollback
}

func newFakePacienteRepo() *fakePacienteRepo {
	return &fakePacienteRepo{pacientes: make(map[string]*entity.Paciente)}
}

func (r *fakePacienteRepo) Create(p *entity.Paciente) error {
	if r.failOn == "Create" {
		return errors.New("fallo simulado")
	}
	cp := *p
	r.pacientes[p.ID] = &cp
	return nil
}

func (r *fakePacienteRepo) GetByID(id string) (*entity.Paciente, error) {
	p, ok := r.pacientes[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePacienteRepo) GetByDocumento(documento string) (*entity.Paciente, error) {
	for _, p := range r.pacientes {
		if p.Documento == documento {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakePacienteRepo) List(filter repository.PacienteFilter) ([]*entity.Paciente, error) {
	var out []*entity.Paciente
	for _, p := range r.pacientes {
		if filter.Estado != "" && p.Estado != filter.Estado {
			continue
		}
		if !coincide(filter.Query, p.Nombre, p.Apellido, p.Documento) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakePacienteRepo) Update(p *entity.Paciente) error {
	if r.failOn == "Update" {
		return errors.New("fallo simulado")
	}
	cp := *p
	r.pacientes[p.ID] = &cp
	return nil
}

type fakeIngresoRepo struct {
	ingresos map[string]*entity.Ingreso
	failOn   string
}

func newFakeIngresoRepo() *fakeIngresoRepo {
	return &fakeIngresoRepo{ingresos: make(map[string]*entity.Ingreso)}
}

func (r *fakeIngresoRepo) Create(i *entity.Ingreso) error {
	if r.failOn == "Create" {
		return errors.New("fallo simulado")
	}
	cp := *i
	r.ingresos[i.ID] = &cp
	return nil
}

func (r *fakeIngresoRepo) GetAbiertoByPaciente(pacienteID string) (*entity.Ingreso, error) {
	for _, i := range r.ingresos {
		if i.PacienteID == pacienteID && i.Abierto() {
			cp := *i
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeIngresoRepo) ListByPaciente(pacienteID string) ([]*entity.Ingreso, error) {
	var out []*entity.Ingreso
	for _, i := range r.ingresos {
		if i.PacienteID == pacienteID {
			cp := *i
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeIngresoRepo) Cerrar(i *entity.Ingreso) error {
	cp := *i
	r.ingresos[i.ID] = &cp
	return nil
}

type fakeFamiliarRepo struct {
	familiares map[string]*entity.Familiar
}

func newFakeFamiliarRepo() *fakeFamiliarRepo {
	return &fakeFamiliarRepo{familiares: make(map[string]*entity.Familiar)}
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

// fakeTxRunner simula el rollback: toma una copia de ambos mapas antes de fn y
// la restaura si fn falla.
type fakeTxRunner struct {
	pacienteRepo *fakePacienteRepo
	ingresoRepo  *fakeIngresoRepo
}

func (t *fakeTxRunner) RunPaciente(ctx context.Context, fn func(
	pacienteRepo repository.PacienteRepository,
	ingresoRepo repository.IngresoRepository,
) error) error {
	pacSnap := make(map[string]*entity.Paciente, len(t.pacienteRepo.pacientes))
	for k, v := range t.pacienteRepo.pacientes {
		pacSnap[k] = v
	}
	ingSnap := make(map[string]*entity.Ingreso, len(t.ingresoRepo.ingresos))
	for k, v := range t.ingresoRepo.ingresos {
		ingSnap[k] = v
	}
	if err := fn(t.pacienteRepo, t.ingresoRepo); err != nil {
		t.pacienteRepo.pacientes = pacSnap
		t.ingresoRepo.ingresos = ingSnap
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

type pacienteFixture struct {
	uc        *pacientes.UseCase
	pacientes *fakePacienteRepo
	ingresos  *fakeIngresoRepo
}

func newPacienteFixture() *pacienteFixture {
	pacs := newFakePacienteRepo()
	ings := newFakeIngresoRepo()
	tx := &fakeTxRunner{pacienteRepo: pacs, ingresoRepo: ings}
	return &pacienteFixture{
		uc:        pacientes.NewUseCase(tx, pacs, ings, newFakeFamiliarRepo()),
		pacientes: pacs,
		ingresos:  ings,
	}
}

func createPacienteRequest() dto.CreatePacienteRequest {
	return dto.CreatePacienteRequest{
		Nombre:        "Andrés",
		Apellido:      "Gómez",
		Documento:     "1020304050",
		FechaIngreso:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		MotivoIngreso: "consumo de sustancias",
		Voluntario:    true,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Create
// ──────────────────────────────────────────────────────────────────────────────

// La admisión crea el paciente activo y su ingreso inicial abierto.
func TestPacienteCreate_CreaPacienteConIngresoAbierto(t *testing.T) {
	f := newPacienteFixture()

	resp, err := f.uc.Create(context.Background(), createPacienteRequest())
	require.NoError(t, err)
	assert.Equal(t, entity.PacienteActivo, resp.Estado)

	detail, err := f.uc.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	require.Len(t, detail.Ingresos, 1, "la admisión debe dejar exactamente un ingreso")
	assert.Nil(t, detail.Ingresos[0].FechaSalida, "el ingreso inicial debe quedar abierto")
	assert.True(t, detail.Ingresos[0].Voluntario)
}

func TestPacienteCreate_DocumentoDuplicado(t *testing.T) {
	f := newPacienteFixture()
	_, err := f.uc.Create(context.Background(), createPacienteRequest())
	require.NoError(t, err)

	_, err = f.uc.Create(context.Background(), createPacienteRequest())
	assert.ErrorIs(t, err, domain.ErrDocumentoExists)
}

// Si el ingreso falla, el paciente tampoco queda creado: el par de escrituras
// confirma o revierte junto.
func TestPacienteCreate_FalloEnIngresoRevierteTodo(t *testing.T) {
	f := newPacienteFixture()
	f.ingresos.failOn = "Create"

	_, err := f.uc.Create(context.Background(), createPacienteRequest())
	require.Error(t, err)
	assert.Empty(t, f.pacientes.pacientes, "el paciente no debe quedar creado si el ingreso falla")
	assert.Empty(t, f.ingresos.ingresos)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Salida / Reingreso
// ──────────────────────────────────────────────────────────────────────────────

func TestPacienteSalida_CierraIngresoYMarcaInactivo(t *testing.T) {
	f := newPacienteFixture()
	ctx := context.Background()
	resp, err := f.uc.Create(ctx, createPacienteRequest())
	require.NoError(t, err)

	salida, err := f.uc.Salida(ctx, resp.ID, dto.SalidaRequest{
		FechaSalida:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		MotivoSalida: "alta médica",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PacienteInactivo, salida.Estado)

	detail, err := f.uc.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	require.Len(t, detail.Ingresos, 1)
	require.NotNil(t, detail.Ingresos[0].FechaSalida, "el ingreso debe quedar cerrado")
	assert.Equal(t, "alta médica", detail.Ingresos[0].MotivoSalida)
}

// Un paciente ya inactivo no puede egresar de nuevo.
func TestPacienteSalida_InactivoRechazado(t *testing.T) {
	f := newPacienteFixture()
	ctx := context.Background()
	resp, err := f.uc.Create(ctx, createPacienteRequest())
	require.NoError(t, err)
	_, err = f.uc.Salida(ctx, resp.ID, dto.SalidaRequest{FechaSalida: time.Now()})
	require.NoError(t, err)

	_, err = f.uc.Salida(ctx, resp.ID, dto.SalidaRequest{FechaSalida: time.Now()})
	assert.ErrorIs(t, err, domain.ErrPacienteInactivo)
}

// El reingreso abre un segundo ingreso y reactiva al paciente.
func TestPacienteReingreso_AbreNuevoIngreso(t *testing.T) {
	f := newPacienteFixture()
	ctx := context.Background()
	resp, err := f.uc.Create(ctx, createPacienteRequest())
	require.NoError(t, err)
	_, err = f.uc.Salida(ctx, resp.ID, dto.SalidaRequest{FechaSalida: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	re, err := f.uc.Reingreso(ctx, resp.ID, dto.ReingresoRequest{
		FechaIngreso:  time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC),
		MotivoIngreso: "recaída",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PacienteActivo, re.Estado)

	detail, err := f.uc.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Ingresos, 2, "el historial debe conservar ambos ingresos")
}

// No se puede reingresar mientras exista un ingreso abierto.
func TestPacienteReingreso_ConIngresoAbiertoRechazado(t *testing.T) {
	f := newPacienteFixture()
	ctx := context.Background()
	resp, err := f.uc.Create(ctx, createPacienteRequest())
	require.NoError(t, err)

	_, err = f.uc.Reingreso(ctx, resp.ID, dto.ReingresoRequest{FechaIngreso: time.Now()})
	assert.ErrorIs(t, err, domain.ErrIngresoAbierto)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests List — búsqueda insensible a tildes y mayúsculas
// ──────────────────────────────────────────────────────────────────────────────

func TestPacienteList_BusquedaSinTildes(t *testing.T) {
	f := newPacienteFixture()
	ctx := context.Background()

	in := createPacienteRequest()
	in.Nombre, in.Apellido = "José", "Pérez"
	_, err := f.uc.Create(ctx, in)
	require.NoError(t, err)

	otro := createPacienteRequest()
	otro.Nombre, otro.Apellido, otro.Documento = "Luis", "Martínez", "9988776655"
	_, err = f.uc.Create(ctx, otro)
	require.NoError(t, err)

	// "perez" sin tilde debe encontrar a "Pérez"
	res, err := f.uc.List(ctx, dto.ListPacientesRequest{Q: "perez"})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "Pérez", res[0].Apellido)

	// búsqueda por documento parcial
	res, err = f.uc.List(ctx, dto.ListPacientesRequest{Q: "99887"})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "Martínez", res[0].Apellido)
}

func TestPacienteList_FiltraPorEstado(t *testing.T) {
	f := newPacienteFixture()
	ctx := context.Background()

	a, err := f.uc.Create(ctx, createPacienteRequest())
	require.NoError(t, err)
	otro := createPacienteRequest()
	otro.Documento = "5544332211"
	_, err = f.uc.Create(ctx, otro)
	require.NoError(t, err)

	_, err = f.uc.Salida(ctx, a.ID, dto.SalidaRequest{FechaSalida: time.Now()})
	require.NoError(t, err)

	activos, err := f.uc.List(ctx, dto.ListPacientesRequest{Estado: entity.PacienteActivo})
	require.NoError(t, err)
	assert.Len(t, activos, 1)

	inactivos, err := f.uc.List(ctx, dto.ListPacientesRequest{Estado: entity.PacienteInactivo})
	require.NoError(t, err)
	assert.Len(t, inactivos, 1)
}
