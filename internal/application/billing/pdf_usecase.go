package billing

import (
	"context"
	"fmt"

	"github.com/renacer/clinica-api/internal/domain"
	"github.com/renacer/clinica-api/internal/domain/entity"
	"github.com/renacer/clinica-api/internal/domain/repository"
)

// PDFUseCase genera el PDF de una cuenta de cobro para impresión o envío.
type PDFUseCase struct {
	cuentaRepo   repository.CuentaCobroRepository
	pacienteRepo repository.PacienteRepository
	familiarRepo repository.FamiliarRepository
	generator    CuentaPDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando sus dependencias.
func NewPDFUseCase(
	cuentaRepo repository.CuentaCobroRepository,
	pacienteRepo repository.PacienteRepository,
	familiarRepo repository.FamiliarRepository,
	generator CuentaPDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		cuentaRepo:   cuentaRepo,
		pacienteRepo: pacienteRepo,
		familiarRepo: familiarRepo,
		generator:    generator,
	}
}

// DownloadCuentaPDF recupera la cuenta con su paciente y destinatario y genera
// el PDF. Retorna también el nombre de archivo sugerido.
func (uc *PDFUseCase) DownloadCuentaPDF(ctx context.Context, cuentaID string) (pdfBytes []byte, filename string, err error) {
	cuenta, err := uc.cuentaRepo.GetByID(cuentaID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener cuenta: %w", err)
	}
	if cuenta == nil {
		return nil, "", domain.ErrNotFound
	}

	paciente, err := uc.pacienteRepo.GetByID(cuenta.PacienteID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener paciente: %w", err)
	}
	if paciente == nil {
		return nil, "", domain.ErrNotFound
	}

	familiar, err := uc.destinatario(cuenta.FamiliarID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener familiar: %w", err)
	}

	bytes, err := uc.generator.GenerateCuentaPDF(ctx, cuenta, paciente, familiar)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar: %w", err)
	}

	filename = fmt.Sprintf("cuenta-cobro-%s-%s.pdf", paciente.Documento, cuenta.PeriodoDesde.Format("2006-01"))
	return bytes, filename, nil
}

// destinatario resuelve el familiar destinatario; nil si la cuenta no tiene.
func (uc *PDFUseCase) destinatario(familiarID string) (*entity.Familiar, error) {
	if familiarID == "" {
		return nil, nil
	}
	return uc.familiarRepo.GetByID(familiarID)
}
