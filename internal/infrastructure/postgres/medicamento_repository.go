package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/renacer/clinica-api/internal/domain/entity"
	"github.com/renacer/clinica-api/internal/domain/repository"
)

var _ repository.MedicamentoRepository = (*MedicamentoRepo)(nil)

// MedicamentoRepo implementación de MedicamentoRepository sobre PostgreSQL.
type MedicamentoRepo struct {
	q Querier
}

// NewMedicamentoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMedicamentoRepository(q Querier) *MedicamentoRepo {
	return &MedicamentoRepo{q: q}
}

// Create persiste un medicamento asignado.
func (r *MedicamentoRepo) Create(m *entity.Medicamento) error {
	query := `
		INSERT INTO medicamentos (id, paciente_id, nombre, dosis, frecuencia, horario, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.PacienteID, m.Nombre, m.Dosis, m.Frecuencia, nullIfEmpty(m.Horario),
		m.Activo, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert medicamento: %w", err)
	}
	return nil
}

// GetByID obtiene un medicamento por ID.
func (r *MedicamentoRepo) GetByID(id string) (*entity.Medicamento, error) {
	query := `
		SELECT id, paciente_id, nombre, dosis, frecuencia, COALESCE(horario, ''), activo, created_at, updated_at
		FROM medicamentos WHERE id = $1`
	var m entity.Medicamento
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.PacienteID, &m.Nombre, &m.Dosis, &m.Frecuencia, &m.Horario,
		&m.Activo, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get medicamento: %w", err)
	}
	return &m, nil
}

// ListByPaciente lista los medicamentos del paciente; por defecto solo activos.
func (r *MedicamentoRepo) ListByPaciente(pacienteID string, incluirInactivos bool) ([]*entity.Medicamento, error) {
	query := `
		SELECT id, paciente_id, nombre, dosis, frecuencia, COALESCE(horario, ''), activo, created_at, updated_at
		FROM medicamentos WHERE paciente_id = $1`
	if !incluirInactivos {
		query += ` AND activo`
	}
	query += ` ORDER BY nombre`
	rows, err := r.q.Query(context.Background(), query, pacienteID)
	if err != nil {
		return nil, fmt.Errorf("list medicamentos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Medicamento
	for rows.Next() {
		var m entity.Medicamento
		if err := rows.Scan(&m.ID, &m.PacienteID, &m.Nombre, &m.Dosis, &m.Frecuencia, &m.Horario,
			&m.Activo, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan medicamento: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Update actualiza un medicamento (la desactivación pasa por aquí, activo = false).
func (r *MedicamentoRepo) Update(m *entity.Medicamento) error {
	query := `
		UPDATE medicamentos SET nombre = $2, dosis = $3, frecuencia = $4, horario = $5, activo = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Nombre, m.Dosis, m.Frecuencia, nullIfEmpty(m.Horario), m.Activo, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update medicamento: %w", err)
	}
	return nil
}
