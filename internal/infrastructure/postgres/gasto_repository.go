package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/renacer/clinica-api/internal/domain/entity"
	"github.com/renacer/clinica-api/internal/domain/repository"
)

var _ repository.GastoRepository = (*GastoRepo)(nil)

// GastoRepo implementación de GastoRepository (usable con pool o tx).
type GastoRepo struct {
	q Querier
}

// NewGastoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewGastoRepository(q Querier) *GastoRepo {
	return &GastoRepo{q: q}
}

// Create persiste un gasto.
func (r *GastoRepo) Create(g *entity.Gasto) error {
	query := `
		INSERT INTO gastos (id, concepto, categoria, monto, fecha, estado, notas, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		g.ID, g.Concepto, g.Categoria, g.Monto, g.Fecha, g.Estado,
		nullIfEmpty(g.Notas), g.CreatedAt, g.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert gasto: %w", err)
	}
	return nil
}

// GetByID obtiene un gasto por ID (incluye eliminados).
func (r *GastoRepo) GetByID(id string) (*entity.Gasto, error) {
	query := `
		SELECT id, concepto, categoria, monto, fecha, estado, COALESCE(notas, ''), created_at, updated_at
		FROM gastos WHERE id = $1`
	var g entity.Gasto
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&g.ID, &g.Concepto, &g.Categoria, &g.Monto, &g.Fecha, &g.Estado,
		&g.Notas, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get gasto: %w", err)
	}
	return &g, nil
}

// List lista gastos con filtros y paginación. Los gastos en estado "eliminado"
// solo aparecen con IncluirEliminados.
func (r *GastoRepo) List(filter repository.GastoFilter) ([]*entity.Gasto, error) {
	query := `
		SELECT id, concepto, categoria, monto, fecha, estado, COALESCE(notas, ''), created_at, updated_at
		FROM gastos WHERE 1=1`
	args := []any{}
	if filter.Categoria != "" {
		args = append(args, filter.Categoria)
		query += fmt.Sprintf(" AND categoria = $%d", len(args))
	}
	if filter.Desde != nil {
		args = append(args, *filter.Desde)
		query += fmt.Sprintf(" AND fecha >= $%d", len(args))
	}
	if filter.Hasta != nil {
		args = append(args, *filter.Hasta)
		query += fmt.Sprintf(" AND fecha <= $%d", len(args))
	}
	if !filter.IncluirEliminados {
		args = append(args, entity.GastoEliminado)
		query += fmt.Sprintf(" AND estado <> $%d", len(args))
	}
	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(" ORDER BY fecha DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list gastos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Gasto
	for rows.Next() {
		var g entity.Gasto
		if err := rows.Scan(&g.ID, &g.Concepto, &g.Categoria, &g.Monto, &g.Fecha, &g.Estado,
			&g.Notas, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan gasto: %w", err)
		}
		list = append(list, &g)
	}
	return list, rows.Err()
}

// Update persiste el estado y los campos editables del gasto.
func (r *GastoRepo) Update(g *entity.Gasto) error {
	query := `
		UPDATE gastos SET concepto = $2, categoria = $3, monto = $4, fecha = $5, estado = $6, notas = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		g.ID, g.Concepto, g.Categoria, g.Monto, g.Fecha, g.Estado, nullIfEmpty(g.Notas), g.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update gasto: %w", err)
	}
	return nil
}
