package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/renacer/clinica-api/internal/domain/entity"
	"github.com/renacer/clinica-api/internal/domain/repository"
)

var _ repository.SeguimientoRepository = (*SeguimientoRepo)(nil)

// SeguimientoRepo implementación de SeguimientoRepository sobre PostgreSQL.
type SeguimientoRepo struct {
	q Querier
}

// NewSeguimientoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSeguimientoRepository(q Querier) *SeguimientoRepo {
	return &SeguimientoRepo{q: q}
}

// Create persiste una nota de evolución.
func (r *SeguimientoRepo) Create(s *entity.Seguimiento) error {
	query := `
		INSERT INTO seguimientos (id, paciente_id, medico_id, fecha, tipo, nota, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.PacienteID, s.MedicoID, s.Fecha, s.Tipo, s.Nota,
		s.Activo, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert seguimiento: %w", err)
	}
	return nil
}

// GetByID obtiene un seguimiento por ID.
func (r *SeguimientoRepo) GetByID(id string) (*entity.Seguimiento, error) {
	query := `
		SELECT id, paciente_id, medico_id, fecha, tipo, nota, activo, created_at, updated_at
		FROM seguimientos WHERE id = $1`
	var s entity.Seguimiento
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.PacienteID, &s.MedicoID, &s.Fecha, &s.Tipo, &s.Nota,
		&s.Activo, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get seguimiento: %w", err)
	}
	return &s, nil
}

// ListByPaciente lista los seguimientos del paciente, el más reciente primero.
func (r *SeguimientoRepo) ListByPaciente(pacienteID string, incluirInactivos bool) ([]*entity.Seguimiento, error) {
	query := `
		SELECT id, paciente_id, medico_id, fecha, tipo, nota, activo, created_at, updated_at
		FROM seguimientos WHERE paciente_id = $1`
	if !incluirInactivos {
		query += ` AND activo`
	}
	query += ` ORDER BY fecha DESC`
	rows, err := r.q.Query(context.Background(), query, pacienteID)
	if err != nil {
		return nil, fmt.Errorf("list seguimientos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Seguimiento
	for rows.Next() {
		var s entity.Seguimiento
		if err := rows.Scan(&s.ID, &s.PacienteID, &s.MedicoID, &s.Fecha, &s.Tipo, &s.Nota,
			&s.Activo, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan seguimiento: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Update actualiza un seguimiento.
func (r *SeguimientoRepo) Update(s *entity.Seguimiento) error {
	query := `
		UPDATE seguimientos SET fecha = $2, tipo = $3, nota = $4, activo = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.Fecha, s.Tipo, s.Nota, s.Activo, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update seguimiento: %w", err)
	}
	return nil
}
