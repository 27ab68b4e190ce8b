package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renacer/clinica-api/internal/application/billing"
	"github.com/renacer/clinica-api/internal/domain/entity"
	"github.com/renacer/clinica-api/internal/domain/repository"
	apphttp "github.com/renacer/clinica-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Stubs en memoria — lo mínimo para montar el handler de cuentas con la cadena
// real de middlewares (JWT + RBAC) y la ruta del PDF.
// ──────────────────────────────────────────────────────────────────────────────

// otroPacienteID es un paciente distinto al del claim paciente_id del token
// familiar (testPacienteID).
const otroPacienteID = "00000000-0000-0000-0000-0000000000aa"

type stubCuentaRepo struct {
	cuentas map[string]*entity.CuentaCobro
}

func (r *stubCuentaRepo) Create(c *entity.CuentaCobro) error {
	r.cuentas[c.ID] = c
	return nil
}

func (r *stubCuentaRepo) GetByID(id string) (*entity.CuentaCobro, error) {
	return r.cuentas[id], nil
}

func (r *stubCuentaRepo) List(filter repository.CuentaFilter) ([]*entity.CuentaCobro, error) {
	return nil, nil
}

func (r *stubCuentaRepo) Update(c *entity.CuentaCobro) error {
	r.cuentas[c.ID] = c
	return nil
}

type stubAuditRepo struct{}

func (stubAuditRepo) Append(e *entity.EventoAuditoria) error { return nil }

func (stubAuditRepo) ListByEntidad(entidad, entidadID string) ([]*entity.EventoAuditoria, error) {
	return nil, nil
}

type stubPacienteRepo struct {
	pacientes map[string]*entity.Paciente
}

func (r *stubPacienteRepo) Create(p *entity.Paciente) error { return nil }

func (r *stubPacienteRepo) GetByID(id string) (*entity.Paciente, error) {
	return r.pacientes[id], nil
}

func (r *stubPacienteRepo) GetByDocumento(documento string) (*entity.Paciente, error) {
	return nil, nil
}

func (r *stubPacienteRepo) List(filter repository.PacienteFilter) ([]*entity.Paciente, error) {
	return nil, nil
}

func (r *stubPacienteRepo) Update(p *entity.Paciente) error { return nil }

type stubFamiliarRepo struct{}

func (stubFamiliarRepo) Create(f *entity.Familiar) error             { return nil }
func (stubFamiliarRepo) GetByID(id string) (*entity.Familiar, error) { return nil, nil }
func (stubFamiliarRepo) ListByPaciente(pacienteID string) ([]*entity.Familiar, error) {
	return nil, nil
}
func (stubFamiliarRepo) Update(f *entity.Familiar) error { return nil }
func (stubFamiliarRepo) Delete(id string) error          { return nil }

type stubTxRunner struct {
	cuentaRepo *stubCuentaRepo
	auditRepo  stubAuditRepo
}

func (t *stubTxRunner) RunCuenta(ctx context.Context, fn func(
	cuentaRepo repository.CuentaCobroRepository,
	auditRepo repository.AuditoriaRepository,
) error) error {
	return fn(t.cuentaRepo, t.auditRepo)
}

func (t *stubTxRunner) RunPago(ctx context.Context, fn func(
	pagoRepo repository.PagoRepository,
	auditRepo repository.AuditoriaRepository,
) error) error {
	return fn(nil, t.auditRepo)
}

type stubPDFGenerator struct{}

func (stubPDFGenerator) GenerateCuentaPDF(
	ctx context.Context,
	cuenta *entity.CuentaCobro,
	paciente *entity.Paciente,
	familiar *entity.Familiar,
) ([]byte, error) {
	return []byte("%PDF-1.4 stub"), nil
}

// buildCuentaPDFApp monta GET /api/cuentas/:id/pdf con los middlewares reales
// y una cuenta sembrada para el paciente indicado.
func buildCuentaPDFApp(t *testing.T, cuentaID, pacienteID string) *fiber.App {
	t.Helper()

	cuentaRepo := &stubCuentaRepo{cuentas: map[string]*entity.CuentaCobro{
		cuentaID: {
			ID:           cuentaID,
			PacienteID:   pacienteID,
			Monto:        decimal.NewFromInt(500_000),
			PeriodoDesde: time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC),
			PeriodoHasta: time.Date(2025, 5, 17, 0, 0, 0, 0, time.UTC),
			Concepto:     "Mensualidad mayo",
			MetodoPago:   entity.MetodoTransferencia,
			Estado:       entity.CuentaGenerada,
		},
	}}
	pacienteRepo := &stubPacienteRepo{pacientes: map[string]*entity.Paciente{
		testPacienteID: {ID: testPacienteID, Nombre: "Carlos", Apellido: "Díaz", Documento: "1020304050"},
		otroPacienteID: {ID: otroPacienteID, Nombre: "Laura", Apellido: "Mora", Documento: "9988776655"},
	}}
	tx := &stubTxRunner{cuentaRepo: cuentaRepo}

	uc := billing.NewCuentaUseCase(tx, cuentaRepo, stubAuditRepo{}, pacienteRepo, stubFamiliarRepo{})
	pdfUC := billing.NewPDFUseCase(cuentaRepo, pacienteRepo, stubFamiliarRepo{}, stubPDFGenerator{})
	handler := apphttp.NewCuentaHandler(uc, pdfUC, nil)

	app := fiber.New()
	app.Get("/api/cuentas/:id/pdf",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(entity.RoleAdmin, entity.RoleFamiliar),
		handler.DownloadPDF,
	)
	return app
}

func requestPDF(t *testing.T, app *fiber.App, cuentaID, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/cuentas/"+cuentaID+"/pdf", nil)
	req.Header.Set("Authorization", authHeader)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests descarga del PDF
// ──────────────────────────────────────────────────────────────────────────────

// Un familiar solo puede descargar las cuentas de su propio paciente: pedir la
// de otro paciente debe rechazarse con 403 sin entregar el documento.
func TestCuentaPDF_FamiliarDeOtroPacienteBloqueado(t *testing.T) {
	const cuentaID = "00000000-0000-0000-0000-0000000000c1"
	app := buildCuentaPDFApp(t, cuentaID, otroPacienteID)

	resp := requestPDF(t, app, cuentaID, tokenForRole(t, entity.RoleFamiliar))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"el familiar no debe poder descargar el PDF de la cuenta de otro paciente")
	assert.NotEqual(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
}

// La cuenta del propio paciente sí se entrega.
func TestCuentaPDF_FamiliarDescargaLaDeSuPaciente(t *testing.T) {
	const cuentaID = "00000000-0000-0000-0000-0000000000c2"
	app := buildCuentaPDFApp(t, cuentaID, testPacienteID)

	resp := requestPDF(t, app, cuentaID, tokenForRole(t, entity.RoleFamiliar))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
}

// El admin no está acotado a un paciente.
func TestCuentaPDF_AdminDescargaCualquiera(t *testing.T) {
	const cuentaID = "00000000-0000-0000-0000-0000000000c3"
	app := buildCuentaPDFApp(t, cuentaID, otroPacienteID)

	resp := requestPDF(t, app, cuentaID, tokenForRole(t, entity.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
}
