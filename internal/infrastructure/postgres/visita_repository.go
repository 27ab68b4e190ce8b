package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/renacer/clinica-api/internal/domain/entity"
	"github.com/renacer/clinica-api/internal/domain/repository"
)

var _ repository.VisitaRepository = (*VisitaRepo)(nil)

// VisitaRepo implementación de VisitaRepository sobre PostgreSQL.
type VisitaRepo struct {
	q Querier
}

// NewVisitaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVisitaRepository(q Querier) *VisitaRepo {
	return &VisitaRepo{q: q}
}

// Create persiste una visita.
func (r *VisitaRepo) Create(v *entity.Visita) error {
	query := `
		INSERT INTO visitas (id, paciente_id, familiar_id, fecha, observaciones, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		v.ID, v.PacienteID, nullIfEmpty(v.FamiliarID), v.Fecha, nullIfEmpty(v.Observaciones),
		v.Activo, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert visita: %w", err)
	}
	return nil
}

// GetByID obtiene una visita por ID.
func (r *VisitaRepo) GetByID(id string) (*entity.Visita, error) {
	query := `
		SELECT id, paciente_id, COALESCE(familiar_id, ''), fecha, COALESCE(observaciones, ''), activo, created_at, updated_at
		FROM visitas WHERE id = $1`
	var v entity.Visita
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&v.ID, &v.PacienteID, &v.FamiliarID, &v.Fecha, &v.Observaciones,
		&v.Activo, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get visita: %w", err)
	}
	return &v, nil
}

// ListByPaciente lista las visitas del paciente, la más reciente primero.
func (r *VisitaRepo) ListByPaciente(pacienteID string, incluirInactivos bool) ([]*entity.Visita, error) {
	query := `
		SELECT id, paciente_id, COALESCE(familiar_id, ''), fecha, COALESCE(observaciones, ''), activo, created_at, updated_at
		FROM visitas WHERE paciente_id = $1`
	if !incluirInactivos {
		query += ` AND activo`
	}
	query += ` ORDER BY fecha DESC`
	rows, err := r.q.Query(context.Background(), query, pacienteID)
	if err != nil {
		return nil, fmt.Errorf("list visitas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Visita
	for rows.Next() {
		var v entity.Visita
		if err := rows.Scan(&v.ID, &v.PacienteID, &v.FamiliarID, &v.Fecha, &v.Observaciones,
			&v.Activo, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan visita: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// Update actualiza una visita.
func (r *VisitaRepo) Update(v *entity.Visita) error {
	query := `
		UPDATE visitas SET familiar_id = $2, fecha = $3, observaciones = $4, activo = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		v.ID, nullIfEmpty(v.FamiliarID), v.Fecha, nullIfEmpty(v.Observaciones), v.Activo, v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update visita: %w", err)
	}
	return nil
}
