package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/renacer/clinica-api/internal/domain/entity"
	"github.com/renacer/clinica-api/internal/domain/repository"
)

var _ repository.FormulaRepository = (*FormulaRepo)(nil)

// FormulaRepo implementación de FormulaRepository sobre PostgreSQL.
type FormulaRepo struct {
	q Querier
}

// NewFormulaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFormulaRepository(q Querier) *FormulaRepo {
	return &FormulaRepo{q: q}
}

// Create persiste una fórmula médica.
func (r *FormulaRepo) Create(f *entity.Formula) error {
	query := `
		INSERT INTO formulas (id, paciente_id, medico_id, fecha, descripcion, vigencia, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		f.ID, f.PacienteID, f.MedicoID, f.Fecha, f.Descripcion, f.Vigencia,
		f.Activo, f.CreatedAt, f.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert formula: %w", err)
	}
	return nil
}

// GetByID obtiene una fórmula por ID.
func (r *FormulaRepo) GetByID(id string) (*entity.Formula, error) {
	query := `
		SELECT id, paciente_id, medico_id, fecha, descripcion, vigencia, activo, created_at, updated_at
		FROM formulas WHERE id = $1`
	var f entity.Formula
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&f.ID, &f.PacienteID, &f.MedicoID, &f.Fecha, &f.Descripcion, &f.Vigencia,
		&f.Activo, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get formula: %w", err)
	}
	return &f, nil
}

// ListByPaciente lista las fórmulas del paciente, la más reciente primero.
func (r *FormulaRepo) ListByPaciente(pacienteID string, incluirInactivos bool) ([]*entity.Formula, error) {
	query := `
		SELECT id, paciente_id, medico_id, fecha, descripcion, vigencia, activo, created_at, updated_at
		FROM formulas WHERE paciente_id = $1`
	if !incluirInactivos {
		query += ` AND activo`
	}
	query += ` ORDER BY fecha DESC`
	rows, err := r.q.Query(context.Background(), query, pacienteID)
	if err != nil {
		return nil, fmt.Errorf("list formulas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Formula
	for rows.Next() {
		var f entity.Formula
		if err := rows.Scan(&f.ID, &f.PacienteID, &f.MedicoID, &f.Fecha, &f.Descripcion, &f.Vigencia,
			&f.Activo, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan formula: %w", err)
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}

// Update actualiza una fórmula.
func (r *FormulaRepo) Update(f *entity.Formula) error {
	query := `
		UPDATE formulas SET fecha = $2, descripcion = $3, vigencia = $4, activo = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		f.ID, f.Fecha, f.Descripcion, f.Vigencia, f.Activo, f.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update formula: %w", err)
	}
	return nil
}
