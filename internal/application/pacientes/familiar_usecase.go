package pacientes

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/renacer/clinica-api/internal/application/dto"
	"github.com/renacer/clinica-api/internal/domain"
	"github.com/renacer/clinica-api/internal/domain/entity"
	"github.com/renacer/clinica-api/internal/domain/repository"
)

// FamiliarUseCase casos de uso de contactos familiares de un paciente.
type FamiliarUseCase struct {
	familiarRepo repository.FamiliarRepository
	pacienteRepo repository.PacienteRepository
}

// NewFamiliarUseCase construye el caso de uso.
func NewFamiliarUseCase(familiarRepo repository.FamiliarRepository, pacienteRepo repository.PacienteRepository) *FamiliarUseCase {
	return &FamiliarUseCase{familiarRepo: familiarRepo, pacienteRepo: pacienteRepo}
}

// Create registra un familiar para el paciente dado.
func (uc *FamiliarUseCase) Create(ctx context.Context, pacienteID string, in dto.CreateFamiliarRequest) (*dto.FamiliarResponse, error) {
	paciente, err := uc.pacienteRepo.GetByID(pacienteID)
	if err != nil {
		return nil, err
	}
	if paciente == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	familiar := &entity.Familiar{
		ID:         uuid.New().String(),
		PacienteID: pacienteID,
		Nombre:     in.Nombre,
		Parentesco: in.Parentesco,
		Telefono:   in.Telefono,
		Telefono2:  in.Telefono2,
		Email:      in.Email,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.familiarRepo.Create(familiar); err != nil {
		return nil, err
	}
	out := toFamiliarResponse(familiar)
	return &out, nil
}

// ListByPaciente lista los familiares del paciente.
func (uc *FamiliarUseCase) ListByPaciente(ctx context.Context, pacienteID string) ([]dto.FamiliarResponse, error) {
	list, err := uc.familiarRepo.ListByPaciente(pacienteID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FamiliarResponse, 0, len(list))
	for _, f := range list {
		out = append(out, toFamiliarResponse(f))
	}
	return out, nil
}

// Update edita los datos de contacto de un familiar.
func (uc *FamiliarUseCase) Update(ctx context.Context, familiarID string, in dto.UpdateFamiliarRequest) (*dto.FamiliarResponse, error) {
	familiar, err := uc.familiarRepo.GetByID(familiarID)
	if err != nil {
		return nil, err
	}
	if familiar == nil {
		return nil, domain.ErrNotFound
	}
	if in.Nombre != "" {
		familiar.Nombre = in.Nombre
	}
	if in.Parentesco != "" {
		familiar.Parentesco = in.Parentesco
	}
	if in.Telefono != "" {
		familiar.Telefono = in.Telefono
	}
	if in.Telefono2 != "" {
		familiar.Telefono2 = in.Telefono2
	}
	if in.Email != "" {
		familiar.Email = in.Email
	}
	familiar.UpdatedAt = time.Now()
	if err := uc.familiarRepo.Update(familiar); err != nil {
		return nil, err
	}
	out := toFamiliarResponse(familiar)
	return &out, nil
}

// Delete elimina el contacto. Los familiares son datos de contacto simples,
// no registros auditables: aquí sí hay borrado físico.
func (uc *FamiliarUseCase) Delete(ctx context.Context, familiarID string) error {
	familiar, err := uc.familiarRepo.GetByID(familiarID)
	if err != nil {
		return err
	}
	if familiar == nil {
		return domain.ErrNotFound
	}
	return uc.familiarRepo.Delete(familiarID)
}
