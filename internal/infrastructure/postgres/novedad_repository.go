package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/renacer/clinica-api/internal/domain/entity"
	"github.com/renacer/clinica-api/internal/domain/repository"
)

var _ repository.NovedadRepository = (*NovedadRepo)(nil)

// NovedadRepo implementación de NovedadRepository sobre PostgreSQL.
type NovedadRepo struct {
	q Querier
}

// NewNovedadRepository construye el adaptador. Pasar pool o tx (Querier).
func NewNovedadRepository(q Querier) *NovedadRepo {
	return &NovedadRepo{q: q}
}

// Create persiste una novedad.
func (r *NovedadRepo) Create(n *entity.Novedad) error {
	query := `
		INSERT INTO novedades (id, paciente_id, fecha, tipo, descripcion, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		n.ID, n.PacienteID, n.Fecha, n.Tipo, n.Descripcion,
		n.Activo, n.CreatedAt, n.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert novedad: %w", err)
	}
	return nil
}

// GetByID obtiene una novedad por ID.
func (r *NovedadRepo) GetByID(id string) (*entity.Novedad, error) {
	query := `
		SELECT id, paciente_id, fecha, tipo, descripcion, activo, created_at, updated_at
		FROM novedades WHERE id = $1`
	var n entity.Novedad
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&n.ID, &n.PacienteID, &n.Fecha, &n.Tipo, &n.Descripcion,
		&n.Activo, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get novedad: %w", err)
	}
	return &n, nil
}

// ListByPaciente lista las novedades del paciente, la más reciente primero.
func (r *NovedadRepo) ListByPaciente(pacienteID string, incluirInactivos bool) ([]*entity.Novedad, error) {
	query := `
		SELECT id, paciente_id, fecha, tipo, descripcion, activo, created_at, updated_at
		FROM novedades WHERE paciente_id = $1`
	if !incluirInactivos {
		query += ` AND activo`
	}
	query += ` ORDER BY fecha DESC`
	rows, err := r.q.Query(context.Background(), query, pacienteID)
	if err != nil {
		return nil, fmt.Errorf("list novedades: %w", err)
	}
	defer rows.Close()
	var list []*entity.Novedad
	for rows.Next() {
		var n entity.Novedad
		if err := rows.Scan(&n.ID, &n.PacienteID, &n.Fecha, &n.Tipo, &n.Descripcion,
			&n.Activo, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan novedad: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

// Update actualiza una novedad.
func (r *NovedadRepo) Update(n *entity.Novedad) error {
	query := `
		UPDATE novedades SET fecha = $2, tipo = $3, descripcion = $4, activo = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		n.ID, n.Fecha, n.Tipo, n.Descripcion, n.Activo, n.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update novedad: %w", err)
	}
	return nil
}
