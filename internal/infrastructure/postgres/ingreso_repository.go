package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/renacer/clinica-api/internal/domain/entity"
	"github.com/renacer/clinica-api/internal/domain/repository"
)

var _ repository.IngresoRepository = (*IngresoRepo)(nil)

// IngresoRepo implementación de IngresoRepository (usable con pool o tx).
type IngresoRepo struct {
	q Querier
}

// NewIngresoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewIngresoRepository(q Querier) *IngresoRepo {
	return &IngresoRepo{q: q}
}

// Create persiste un registro de admisión.
func (r *IngresoRepo) Create(i *entity.Ingreso) error {
	query := `
		INSERT INTO ingresos (id, paciente_id, fecha_ingreso, fecha_salida, motivo_ingreso, motivo_salida, voluntario, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		i.ID, i.PacienteID, i.FechaIngreso, i.FechaSalida,
		i.MotivoIngreso, nullIfEmpty(i.MotivoSalida), i.Voluntario, i.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ingreso: %w", err)
	}
	return nil
}

// GetAbiertoByPaciente devuelve el ingreso vigente del paciente (fecha_salida
// NULL) o nil si no tiene ninguno abierto.
func (r *IngresoRepo) GetAbiertoByPaciente(pacienteID string) (*entity.Ingreso, error) {
	query := `
		SELECT id, paciente_id, fecha_ingreso, fecha_salida, motivo_ingreso, COALESCE(motivo_salida, ''), voluntario, created_at
		FROM ingresos WHERE paciente_id = $1 AND fecha_salida IS NULL
		ORDER BY fecha_ingreso DESC LIMIT 1`
	var i entity.Ingreso
	err := r.q.QueryRow(context.Background(), query, pacienteID).Scan(
		&i.ID, &i.PacienteID, &i.FechaIngreso, &i.FechaSalida,
		&i.MotivoIngreso, &i.MotivoSalida, &i.Voluntario, &i.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ingreso abierto: %w", err)
	}
	return &i, nil
}

// ListByPaciente lista el historial de ingresos del paciente, el más reciente primero.
func (r *IngresoRepo) ListByPaciente(pacienteID string) ([]*entity.Ingreso, error) {
	query := `
		SELECT id, paciente_id, fecha_ingreso, fecha_salida, motivo_ingreso, COALESCE(motivo_salida, ''), voluntario, created_at
		FROM ingresos WHERE paciente_id = $1 ORDER BY fecha_ingreso DESC`
	rows, err := r.q.Query(context.Background(), query, pacienteID)
	if err != nil {
		return nil, fmt.Errorf("list ingresos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Ingreso
	for rows.Next() {
		var i entity.Ingreso
		if err := rows.Scan(&i.ID, &i.PacienteID, &i.FechaIngreso, &i.FechaSalida,
			&i.MotivoIngreso, &i.MotivoSalida, &i.Voluntario, &i.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ingreso: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}

// Cerrar registra la salida del ingreso (fecha y motivo).
func (r *IngresoRepo) Cerrar(i *entity.Ingreso) error {
	query := `
		UPDATE ingresos SET fecha_salida = $2, motivo_salida = $3
		WHERE id = $1 AND fecha_salida IS NULL`
	cmd, err := r.q.Exec(context.Background(), query, i.ID, i.FechaSalida, nullIfEmpty(i.MotivoSalida))
	if err != nil {
		return fmt.Errorf("cerrar ingreso: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("cerrar ingreso %s: ya estaba cerrado", i.ID)
	}
	return nil
}
