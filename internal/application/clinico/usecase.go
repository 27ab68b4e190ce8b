// Package clinico contiene los casos de uso de los registros clínicos por
// paciente: medicamentos, fórmulas, seguimientos, visitas y novedades. Todos
// comparten el mismo contrato: creación contra un paciente existente, listado
// por defecto solo de registros activos y eliminación lógica vía Activo.
package clinico

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/renacer/clinica-api/internal/application/dto"
	"github.com/renacer/clinica-api/internal/domain"
	"github.com/renacer/clinica-api/internal/domain/entity"
	"github.com/renacer/clinica-api/internal/domain/repository"
)

// UseCase agrupa los registros clínicos de un paciente.
type UseCase struct {
	pacienteRepo    repository.PacienteRepository
	medicamentoRepo repository.MedicamentoRepository
	formulaRepo     repository.FormulaRepository
	seguimientoRepo repository.SeguimientoRepository
	visitaRepo      repository.VisitaRepository
	novedadRepo     repository.NovedadRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	pacienteRepo repository.PacienteRepository,
	medicamentoRepo repository.MedicamentoRepository,
	formulaRepo repository.FormulaRepository,
	seguimientoRepo repository.SeguimientoRepository,
	visitaRepo repository.VisitaRepository,
	novedadRepo repository.NovedadRepository,
) *UseCase {
	return &UseCase{
		pacienteRepo:    pacienteRepo,
		medicamentoRepo: medicamentoRepo,
		formulaRepo:     formulaRepo,
		seguimientoRepo: seguimientoRepo,
		visitaRepo:      visitaRepo,
		novedadRepo:     novedadRepo,
	}
}

// validarPaciente verifica que el paciente exista antes de escribir registros clínicos.
func (uc *UseCase) validarPaciente(pacienteID string) error {
	p, err := uc.pacienteRepo.GetByID(pacienteID)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return nil
}

// ── Medicamentos ──────────────────────────────────────────────────────────────

// CreateMedicamento asigna un medicamento al paciente.
func (uc *UseCase) CreateMedicamento(ctx context.Context, pacienteID string, in dto.CreateMedicamentoRequest) (*dto.MedicamentoResponse, error) {
	if err := uc.validarPaciente(pacienteID); err != nil {
		return nil, err
	}
	now := time.Now()
	m := &entity.Medicamento{
		ID:         uuid.New().String(),
		PacienteID: pacienteID,
		Nombre:     in.Nombre,
		Dosis:      in.Dosis,
		Frecuencia: in.Frecuencia,
		Horario:    in.Horario,
		Activo:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.medicamentoRepo.Create(m); err != nil {
		return nil, err
	}
	return toMedicamentoResponse(m), nil
}

// ListMedicamentos lista los medicamentos activos del paciente.
func (uc *UseCase) ListMedicamentos(ctx context.Context, pacienteID string, incluirInactivos bool) ([]*dto.MedicamentoResponse, error) {
	list, err := uc.medicamentoRepo.ListByPaciente(pacienteID, incluirInactivos)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MedicamentoResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMedicamentoResponse(m))
	}
	return out, nil
}

// DesactivarMedicamento elimina lógicamente el medicamento.
func (uc *UseCase) DesactivarMedicamento(ctx context.Context, id string) error {
	m, err := uc.medicamentoRepo.GetByID(id)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.ErrNotFound
	}
	m.Activo = false
	m.UpdatedAt = time.Now()
	return uc.medicamentoRepo.Update(m)
}

// ── Fórmulas ──────────────────────────────────────────────────────────────────

// CreateFormula registra una fórmula médica emitida por el médico autenticado.
func (uc *UseCase) CreateFormula(ctx context.Context, pacienteID, medicoID string, in dto.CreateFormulaRequest) (*dto.FormulaResponse, error) {
	if err := uc.validarPaciente(pacienteID); err != nil {
		return nil, err
	}
	now := time.Now()
	f := &entity.Formula{
		ID:          uuid.New().String(),
		PacienteID:  pacienteID,
		MedicoID:    medicoID,
		Fecha:       in.Fecha,
		Descripcion: in.Descripcion,
		Vigencia:    in.Vigencia,
		Activo:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.formulaRepo.Create(f); err != nil {
		return nil, err
	}
	return toFormulaResponse(f), nil
}

// ListFormulas lista las fórmulas activas del paciente.
func (uc *UseCase) ListFormulas(ctx context.Context, pacienteID string, incluirInactivos bool) ([]*dto.FormulaResponse, error) {
	list, err := uc.formulaRepo.ListByPaciente(pacienteID, incluirInactivos)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.FormulaResponse, 0, len(list))
	for _, f := range list {
		out = append(out, toFormulaResponse(f))
	}
	return out, nil
}

// DesactivarFormula elimina lógicamente la fórmula.
func (uc *UseCase) DesactivarFormula(ctx context.Context, id string) error {
	f, err := uc.formulaRepo.GetByID(id)
	if err != nil {
		return err
	}
	if f == nil {
		return domain.ErrNotFound
	}
	f.Activo = false
	f.UpdatedAt = time.Now()
	return uc.formulaRepo.Update(f)
}

// ── Seguimientos ──────────────────────────────────────────────────────────────

// CreateSeguimiento registra una nota de evolución del médico autenticado.
func (uc *UseCase) CreateSeguimiento(ctx context.Context, pacienteID, medicoID string, in dto.CreateSeguimientoRequest) (*dto.SeguimientoResponse, error) {
	if err := uc.validarPaciente(pacienteID); err != nil {
		return nil, err
	}
	now := time.Now()
	s := &entity.Seguimiento{
		ID:         uuid.New().String(),
		PacienteID: pacienteID,
		MedicoID:   medicoID,
		Fecha:      in.Fecha,
		Tipo:       in.Tipo,
		Nota:       in.Nota,
		Activo:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.seguimientoRepo.Create(s); err != nil {
		return nil, err
	}
	return toSeguimientoResponse(s), nil
}

// ListSeguimientos lista las notas activas del paciente.
func (uc *UseCase) ListSeguimientos(ctx context.Context, pacienteID string, incluirInactivos bool) ([]*dto.SeguimientoResponse, error) {
	list, err := uc.seguimientoRepo.ListByPaciente(pacienteID, incluirInactivos)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SeguimientoResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSeguimientoResponse(s))
	}
	return out, nil
}

// DesactivarSeguimiento elimina lógicamente la nota.
func (uc *UseCase) DesactivarSeguimiento(ctx context.Context, id string) error {
	s, err := uc.seguimientoRepo.GetByID(id)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrNotFound
	}
	s.Activo = false
	s.UpdatedAt = time.Now()
	return uc.seguimientoRepo.Update(s)
}

// ── Visitas ───────────────────────────────────────────────────────────────────

// CreateVisita registra la visita de un familiar.
func (uc *UseCase) CreateVisita(ctx context.Context, pacienteID string, in dto.CreateVisitaRequest) (*dto.VisitaResponse, error) {
	if err := uc.validarPaciente(pacienteID); err != nil {
		return nil, err
	}
	now := time.Now()
	v := &entity.Visita{
		ID:            uuid.New().String(),
		PacienteID:    pacienteID,
		FamiliarID:    in.FamiliarID,
		Fecha:         in.Fecha,
		Observaciones: in.Observaciones,
		Activo:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.visitaRepo.Create(v); err != nil {
		return nil, err
	}
	return toVisitaResponse(v), nil
}

// ListVisitas lista las visitas activas del paciente.
func (uc *UseCase) ListVisitas(ctx context.Context, pacienteID string, incluirInactivos bool) ([]*dto.VisitaResponse, error) {
	list, err := uc.visitaRepo.ListByPaciente(pacienteID, incluirInactivos)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.VisitaResponse, 0, len(list))
	for _, v := range list {
		out = append(out, toVisitaResponse(v))
	}
	return out, nil
}

// DesactivarVisita elimina lógicamente la visita.
func (uc *UseCase) DesactivarVisita(ctx context.Context, id string) error {
	v, err := uc.visitaRepo.GetByID(id)
	if err != nil {
		return err
	}
	if v == nil {
		return domain.ErrNotFound
	}
	v.Activo = false
	v.UpdatedAt = time.Now()
	return uc.visitaRepo.Update(v)
}

// ── Novedades ─────────────────────────────────────────────────────────────────

// CreateNovedad registra una novedad del paciente.
func (uc *UseCase) CreateNovedad(ctx context.Context, pacienteID string, in dto.CreateNovedadRequest) (*dto.NovedadResponse, error) {
	if err := uc.validarPaciente(pacienteID); err != nil {
		return nil, err
	}
	now := time.Now()
	n := &entity.Novedad{
		ID:          uuid.New().String(),
		PacienteID:  pacienteID,
		Fecha:       in.Fecha,
		Tipo:        in.Tipo,
		Descripcion: in.Descripcion,
		Activo:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.novedadRepo.Create(n); err != nil {
		return nil, err
	}
	return toNovedadResponse(n), nil
}

// ListNovedades lista las novedades activas del paciente.
func (uc *UseCase) ListNovedades(ctx context.Context, pacienteID string, incluirInactivos bool) ([]*dto.NovedadResponse, error) {
	list, err := uc.novedadRepo.ListByPaciente(pacienteID, incluirInactivos)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.NovedadResponse, 0, len(list))
	for _, n := range list {
		out = append(out, toNovedadResponse(n))
	}
	return out, nil
}

// DesactivarNovedad elimina lógicamente la novedad.
func (uc *UseCase) DesactivarNovedad(ctx context.Context, id string) error {
	n, err := uc.novedadRepo.GetByID(id)
	if err != nil {
		return err
	}
	if n == nil {
		return domain.ErrNotFound
	}
	n.Activo = false
	n.UpdatedAt = time.Now()
	return uc.novedadRepo.Update(n)
}

// ── Conversión a DTO ──────────────────────────────────────────────────────────

func toMedicamentoResponse(m *entity.Medicamento) *dto.MedicamentoResponse {
	return &dto.MedicamentoResponse{
		ID:         m.ID,
		PacienteID: m.PacienteID,
		Nombre:     m.Nombre,
		Dosis:      m.Dosis,
		Frecuencia: m.Frecuencia,
		Horario:    m.Horario,
		Activo:     m.Activo,
		CreatedAt:  m.CreatedAt,
	}
}

func toFormulaResponse(f *entity.Formula) *dto.FormulaResponse {
	return &dto.FormulaResponse{
		ID:          f.ID,
		PacienteID:  f.PacienteID,
		MedicoID:    f.MedicoID,
		Fecha:       f.Fecha,
		Descripcion: f.Descripcion,
		Vigencia:    f.Vigencia,
		Activo:      f.Activo,
		CreatedAt:   f.CreatedAt,
	}
}

func toSeguimientoResponse(s *entity.Seguimiento) *dto.SeguimientoResponse {
	return &dto.SeguimientoResponse{
		ID:         s.ID,
		PacienteID: s.PacienteID,
		MedicoID:   s.MedicoID,
		Fecha:      s.Fecha,
		Tipo:       s.Tipo,
		Nota:       s.Nota,
		Activo:     s.Activo,
		CreatedAt:  s.CreatedAt,
	}
}

func toVisitaResponse(v *entity.Visita) *dto.VisitaResponse {
	return &dto.VisitaResponse{
		ID:            v.ID,
		PacienteID:    v.PacienteID,
		FamiliarID:    v.FamiliarID,
		Fecha:         v.Fecha,
		Observaciones: v.Observaciones,
		Activo:        v.Activo,
		CreatedAt:     v.CreatedAt,
	}
}

func toNovedadResponse(n *entity.Novedad) *dto.NovedadResponse {
	return &dto.NovedadResponse{
		ID:          n.ID,
		PacienteID:  n.PacienteID,
		Fecha:       n.Fecha,
		Tipo:        n.Tipo,
		Descripcion: n.Descripcion,
		Activo:      n.Activo,
		CreatedAt:   n.CreatedAt,
	}
}
