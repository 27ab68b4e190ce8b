package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/renacer/clinica-api/internal/domain/entity"
	"github.com/renacer/clinica-api/internal/domain/repository"
)

var _ repository.FamiliarRepository = (*FamiliarRepo)(nil)

// FamiliarRepo implementación de FamiliarRepository (usable con pool o tx).
type FamiliarRepo struct {
	q Querier
}

// NewFamiliarRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFamiliarRepository(q Querier) *FamiliarRepo {
	return &FamiliarRepo{q: q}
}

// Create persiste un contacto familiar.
func (r *FamiliarRepo) Create(f *entity.Familiar) error {
	query := `
		INSERT INTO familiares (id, paciente_id, nombre, parentesco, telefono, telefono2, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		f.ID, f.PacienteID, f.Nombre, f.Parentesco, f.Telefono,
		nullIfEmpty(f.Telefono2), nullIfEmpty(f.Email), f.CreatedAt, f.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert familiar: %w", err)
	}
	return nil
}

// GetByID obtiene un familiar por ID.
func (r *FamiliarRepo) GetByID(id string) (*entity.Familiar, error) {
	query := `
		SELECT id, paciente_id, nombre, parentesco, telefono, COALESCE(telefono2, ''), COALESCE(email, ''), created_at, updated_at
		FROM familiares WHERE id = $1`
	var f entity.Familiar
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&f.ID, &f.PacienteID, &f.Nombre, &f.Parentesco, &f.Telefono,
		&f.Telefono2, &f.Email, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get familiar: %w", err)
	}
	return &f, nil
}

// ListByPaciente lista los contactos del paciente.
func (r *FamiliarRepo) ListByPaciente(pacienteID string) ([]*entity.Familiar, error) {
	query := `
		SELECT id, paciente_id, nombre, parentesco, telefono, COALESCE(telefono2, ''), COALESCE(email, ''), created_at, updated_at
		FROM familiares WHERE paciente_id = $1 ORDER BY nombre`
	rows, err := r.q.Query(context.Background(), query, pacienteID)
	if err != nil {
		return nil, fmt.Errorf("list familiares: %w", err)
	}
	defer rows.Close()
	var list []*entity.Familiar
	for rows.Next() {
		var f entity.Familiar
		if err := rows.Scan(&f.ID, &f.PacienteID, &f.Nombre, &f.Parentesco, &f.Telefono,
			&f.Telefono2, &f.Email, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan familiar: %w", err)
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}

// Update actualiza un contacto familiar.
func (r *FamiliarRepo) Update(f *entity.Familiar) error {
	query := `
		UPDATE familiares SET nombre = $2, parentesco = $3, telefono = $4, telefono2 = $5, email = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		f.ID, f.Nombre, f.Parentesco, f.Telefono, nullIfEmpty(f.Telefono2), nullIfEmpty(f.Email), f.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update familiar: %w", err)
	}
	return nil
}

// Delete elimina un contacto familiar por ID.
func (r *FamiliarRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM familiares WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete familiar: %w", err)
	}
	return nil
}
