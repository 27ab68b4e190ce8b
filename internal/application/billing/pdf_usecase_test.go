package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renacer/clinica-api/internal/application/billing"
	"github.com/renacer/clinica-api/internal/domain"
	"github.com/renacer/clinica-api/internal/domain/entity"
)

type fakePDFGenerator struct {
	llamado bool
}

func (g *fakePDFGenerator) GenerateCuentaPDF(
	ctx context.Context,
	cuenta *entity.CuentaCobro,
	paciente *entity.Paciente,
	familiar *entity.Familiar,
) ([]byte, error) {
	g.llamado = true
	return []byte("%PDF-1.4 test"), nil
}

const testCuentaPDFID = "00000000-0000-0000-0000-0000000000d1"

func seedCuentaParaPDF(cuentas *fakeCuentaRepo, pacienteID string) {
	_ = cuentas.Create(&entity.CuentaCobro{
		ID:           testCuentaPDFID,
		PacienteID:   pacienteID,
		Monto:        decimal.NewFromInt(500_000),
		PeriodoDesde: time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC),
		PeriodoHasta: time.Date(2025, 5, 17, 0, 0, 0, 0, time.UTC),
		Concepto:     "Mensualidad mayo",
		MetodoPago:   entity.MetodoTransferencia,
		Estado:       entity.CuentaGenerada,
	})
}

func TestPDFDownload_GeneraConNombreDeArchivo(t *testing.T) {
	cuentas := newFakeCuentaRepo()
	seedCuentaParaPDF(cuentas, testPacienteID)
	pacientes := newFakePacienteRepo(&entity.Paciente{
		ID: testPacienteID, Nombre: "Carlos", Apellido: "Díaz", Documento: "1020304050",
	})
	gen := &fakePDFGenerator{}
	uc := billing.NewPDFUseCase(cuentas, pacientes, newFakeFamiliarRepo(), gen)

	pdfBytes, filename, err := uc.DownloadCuentaPDF(context.Background(), testCuentaPDFID)
	require.NoError(t, err)

	assert.NotEmpty(t, pdfBytes)
	assert.Equal(t, "cuenta-cobro-1020304050-2025-05.pdf", filename)
	assert.True(t, gen.llamado)
}

func TestPDFDownload_CuentaInexistenteNotFound(t *testing.T) {
	uc := billing.NewPDFUseCase(newFakeCuentaRepo(), newFakePacienteRepo(), newFakeFamiliarRepo(), &fakePDFGenerator{})

	_, _, err := uc.DownloadCuentaPDF(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Una cuenta cuyo paciente ya no existe debe reportarse como no encontrada,
// no como error interno, y sin intentar generar el documento.
func TestPDFDownload_PacienteHuerfanoNotFound(t *testing.T) {
	cuentas := newFakeCuentaRepo()
	seedCuentaParaPDF(cuentas, "paciente-borrado")
	gen := &fakePDFGenerator{}
	uc := billing.NewPDFUseCase(cuentas, newFakePacienteRepo(), newFakeFamiliarRepo(), gen)

	_, _, err := uc.DownloadCuentaPDF(context.Background(), testCuentaPDFID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.False(t, gen.llamado, "no debe generarse un PDF sin paciente")
}
