package usecase

import (
	"time"

	"github.com/renacer/clinica-api/internal/application/dto"
	"github.com/renacer/clinica-api/internal/domain"
	"github.com/renacer/clinica-api/internal/domain/entity"
	"github.com/renacer/clinica-api/internal/domain/repository"
)

// UserUseCase administración de usuarios (solo admin).
type UserUseCase struct {
	repo         repository.UserRepository
	pacienteRepo repository.PacienteRepository
}

// NewUserUseCase construye el caso de uso con los puertos de persistencia.
func NewUserUseCase(repo repository.UserRepository, pacienteRepo repository.PacienteRepository) *UserUseCase {
	return &UserUseCase{repo: repo, pacienteRepo: pacienteRepo}
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return entityToUserResponse(user), nil
}

// List lista usuarios con paginación.
func (uc *UserUseCase) List(limit, offset int) ([]*dto.UserResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, entityToUserResponse(u))
	}
	return out, nil
}

// Update edita nombre, teléfono, rol y vínculo con paciente.
func (uc *UserUseCase) Update(id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if in.Nombre != "" {
		user.Nombre = in.Nombre
	}
	if in.Telefono != "" {
		user.Telefono = in.Telefono
	}
	if in.Role != "" {
		user.Role = in.Role
	}
	if in.PacienteID != "" {
		if user.Role != entity.RoleFamiliar {
			return nil, domain.ErrInvalidInput
		}
		paciente, err := uc.pacienteRepo.GetByID(in.PacienteID)
		if err != nil {
			return nil, err
		}
		if paciente == nil {
			return nil, domain.ErrNotFound
		}
		user.PacienteID = in.PacienteID
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// Deactivate marca el usuario como inactivo (no hay borrado físico).
func (uc *UserUseCase) Deactivate(id string) error {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	user.Estado = "inactive"
	user.UpdatedAt = time.Now()
	return uc.repo.Update(user)
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Nombre:     u.Nombre,
		Role:       u.Role,
		Telefono:   u.Telefono,
		PacienteID: u.PacienteID,
		Estado:     u.Estado,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
