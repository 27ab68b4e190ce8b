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

// UseCase casos de uso de pacientes: admisión, egreso, reingreso, edición y
// consulta. Las operaciones que tocan paciente e ingreso a la vez van por el
// TxRunner para que ninguna falla intermedia deje datos inconsistentes.
type UseCase struct {
	txRunner     PacienteTxRunner
	pacienteRepo repository.PacienteRepository
	ingresoRepo  repository.IngresoRepository
	familiarRepo repository.FamiliarRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner PacienteTxRunner,
	pacienteRepo repository.PacienteRepository,
	ingresoRepo repository.IngresoRepository,
	familiarRepo repository.FamiliarRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		pacienteRepo: pacienteRepo,
		ingresoRepo:  ingresoRepo,
		familiarRepo: familiarRepo,
	}
}

// Create admite un paciente nuevo: crea el paciente activo y su ingreso
// inicial en una sola transacción. Siempre queda exactamente un ingreso
// abierto con la fecha de admisión y sin fecha de salida.
func (uc *UseCase) Create(ctx context.Context, in dto.CreatePacienteRequest) (*dto.PacienteResponse, error) {
	existing, err := uc.pacienteRepo.GetByDocumento(in.Documento)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDocumentoExists
	}

	now := time.Now()
	paciente := &entity.Paciente{
		ID:              uuid.New().String(),
		Nombre:          in.Nombre,
		Apellido:        in.Apellido,
		Documento:       in.Documento,
		FechaNacimiento: in.FechaNacimiento,
		Telefono:        in.Telefono,
		Direccion:       in.Direccion,
		EPS:             in.EPS,
		Estado:          entity.PacienteActivo,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	ingreso := &entity.Ingreso{
		ID:            uuid.New().String(),
		PacienteID:    paciente.ID,
		FechaIngreso:  in.FechaIngreso,
		MotivoIngreso: in.MotivoIngreso,
		Voluntario:    in.Voluntario,
		CreatedAt:     now,
	}

	err = uc.txRunner.RunPaciente(ctx, func(
		pacienteRepo repository.PacienteRepository,
		ingresoRepo repository.IngresoRepository,
	) error {
		if err := pacienteRepo.Create(paciente); err != nil {
			return err
		}
		return ingresoRepo.Create(ingreso)
	})
	if err != nil {
		return nil, err
	}
	return toPacienteResponse(paciente), nil
}

// Salida registra el egreso: cierra el ingreso abierto y marca el paciente
// inactivo, en una sola transacción.
func (uc *UseCase) Salida(ctx context.Context, pacienteID string, in dto.SalidaRequest) (*dto.PacienteResponse, error) {
	paciente, err := uc.pacienteRepo.GetByID(pacienteID)
	if err != nil {
		return nil, err
	}
	if paciente == nil {
		return nil, domain.ErrNotFound
	}
	if paciente.Estado != entity.PacienteActivo {
		return nil, domain.ErrPacienteInactivo
	}
	abierto, err := uc.ingresoRepo.GetAbiertoByPaciente(pacienteID)
	if err != nil {
		return nil, err
	}
	if abierto == nil {
		return nil, domain.ErrConflict // activo sin ingreso abierto: dato legado
	}

	fechaSalida := in.FechaSalida
	abierto.FechaSalida = &fechaSalida
	abierto.MotivoSalida = in.MotivoSalida
	paciente.Estado = entity.PacienteInactivo
	paciente.UpdatedAt = time.Now()

	err = uc.txRunner.RunPaciente(ctx, func(
		pacienteRepo repository.PacienteRepository,
		ingresoRepo repository.IngresoRepository,
	) error {
		if err := ingresoRepo.Cerrar(abierto); err != nil {
			return err
		}
		return pacienteRepo.Update(paciente)
	})
	if err != nil {
		return nil, err
	}
	return toPacienteResponse(paciente), nil
}

// Reingreso readmite un paciente inactivo: abre un ingreso nuevo y lo marca
// activo, en una sola transacción.
func (uc *UseCase) Reingreso(ctx context.Context, pacienteID string, in dto.ReingresoRequest) (*dto.PacienteResponse, error) {
	paciente, err := uc.pacienteRepo.GetByID(pacienteID)
	if err != nil {
		return nil, err
	}
	if paciente == nil {
		return nil, domain.ErrNotFound
	}
	abierto, err := uc.ingresoRepo.GetAbiertoByPaciente(pacienteID)
	if err != nil {
		return nil, err
	}
	if abierto != nil {
		return nil, domain.ErrIngresoAbierto
	}

	ingreso := &entity.Ingreso{
		ID:            uuid.New().String(),
		PacienteID:    pacienteID,
		FechaIngreso:  in.FechaIngreso,
		MotivoIngreso: in.MotivoIngreso,
		Voluntario:    in.Voluntario,
		CreatedAt:     time.Now(),
	}
	paciente.Estado = entity.PacienteActivo
	paciente.UpdatedAt = time.Now()

	err = uc.txRunner.RunPaciente(ctx, func(
		pacienteRepo repository.PacienteRepository,
		ingresoRepo repository.IngresoRepository,
	) error {
		if err := ingresoRepo.Create(ingreso); err != nil {
			return err
		}
		return pacienteRepo.Update(paciente)
	})
	if err != nil {
		return nil, err
	}
	return toPacienteResponse(paciente), nil
}

// Update edita los datos de contacto e identidad del paciente.
func (uc *UseCase) Update(ctx context.Context, pacienteID string, in dto.UpdatePacienteRequest) (*dto.PacienteResponse, error) {
	paciente, err := uc.pacienteRepo.GetByID(pacienteID)
	if err != nil {
		return nil, err
	}
	if paciente == nil {
		return nil, domain.ErrNotFound
	}
	if in.Nombre != "" {
		paciente.Nombre = in.Nombre
	}
	if in.Apellido != "" {
		paciente.Apellido = in.Apellido
	}
	if in.FechaNacimiento != nil {
		paciente.FechaNacimiento = in.FechaNacimiento
	}
	if in.Telefono != "" {
		paciente.Telefono = in.Telefono
	}
	if in.Direccion != "" {
		paciente.Direccion = in.Direccion
	}
	if in.EPS != "" {
		paciente.EPS = in.EPS
	}
	paciente.UpdatedAt = time.Now()
	if err := uc.pacienteRepo.Update(paciente); err != nil {
		return nil, err
	}
	return toPacienteResponse(paciente), nil
}

// SetFoto guarda la URL de la foto subida al almacenamiento de objetos.
func (uc *UseCase) SetFoto(ctx context.Context, pacienteID, url string) error {
	paciente, err := uc.pacienteRepo.GetByID(pacienteID)
	if err != nil {
		return err
	}
	if paciente == nil {
		return domain.ErrNotFound
	}
	paciente.FotoURL = url
	paciente.UpdatedAt = time.Now()
	return uc.pacienteRepo.Update(paciente)
}

// List lista pacientes con búsqueda normalizada y filtro de estado.
func (uc *UseCase) List(ctx context.Context, in dto.ListPacientesRequest) ([]*dto.PacienteResponse, error) {
	in.DefaultPage()
	list, err := uc.pacienteRepo.List(repository.PacienteFilter{
		Estado: in.Estado,
		Query:  Normalizar(in.Q),
		Limit:  in.Limit,
		Offset: in.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PacienteResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPacienteResponse(p))
	}
	return out, nil
}

// GetByID devuelve el paciente con su historial de ingresos y sus familiares.
func (uc *UseCase) GetByID(ctx context.Context, pacienteID string) (*dto.PacienteDetailResponse, error) {
	paciente, err := uc.pacienteRepo.GetByID(pacienteID)
	if err != nil {
		return nil, err
	}
	if paciente == nil {
		return nil, domain.ErrNotFound
	}
	ingresos, err := uc.ingresoRepo.ListByPaciente(pacienteID)
	if err != nil {
		return nil, err
	}
	familiares, err := uc.familiarRepo.ListByPaciente(pacienteID)
	if err != nil {
		return nil, err
	}

	detail := &dto.PacienteDetailResponse{
		PacienteResponse: *toPacienteResponse(paciente),
		Ingresos:         make([]dto.IngresoResponse, 0, len(ingresos)),
		Familiares:       make([]dto.FamiliarResponse, 0, len(familiares)),
	}
	for _, i := range ingresos {
		detail.Ingresos = append(detail.Ingresos, dto.IngresoResponse{
			ID:            i.ID,
			FechaIngreso:  i.FechaIngreso,
			FechaSalida:   i.FechaSalida,
			MotivoIngreso: i.MotivoIngreso,
			MotivoSalida:  i.MotivoSalida,
			Voluntario:    i.Voluntario,
		})
	}
	for _, f := range familiares {
		detail.Familiares = append(detail.Familiares, toFamiliarResponse(f))
	}
	return detail, nil
}

func toPacienteResponse(p *entity.Paciente) *dto.PacienteResponse {
	return &dto.PacienteResponse{
		ID:              p.ID,
		Nombre:          p.Nombre,
		Apellido:        p.Apellido,
		Documento:       p.Documento,
		FechaNacimiento: p.FechaNacimiento,
		Telefono:        p.Telefono,
		Direccion:       p.Direccion,
		EPS:             p.EPS,
		Estado:          p.Estado,
		FotoURL:         p.FotoURL,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func toFamiliarResponse(f *entity.Familiar) dto.FamiliarResponse {
	return dto.FamiliarResponse{
		ID:         f.ID,
		PacienteID: f.PacienteID,
		Nombre:     f.Nombre,
		Parentesco: f.Parentesco,
		Telefono:   f.Telefono,
		Telefono2:  f.Telefono2,
		Email:      f.Email,
	}
}
