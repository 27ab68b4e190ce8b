package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/renacer/clinica-api/internal/domain/entity"
	"github.com/renacer/clinica-api/internal/domain/repository"
)

var _ repository.CuentaCobroRepository = (*CuentaCobroRepo)(nil)

// CuentaCobroRepo implementación de CuentaCobroRepository (usable con pool o tx).
type CuentaCobroRepo struct {
	q Querier
}

// NewCuentaCobroRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCuentaCobroRepository(q Querier) *CuentaCobroRepo {
	return &CuentaCobroRepo{q: q}
}

// Create persiste una cuenta de cobro.
func (r *CuentaCobroRepo) Create(c *entity.CuentaCobro) error {
	query := `
		INSERT INTO cuentas_cobro (id, paciente_id, familiar_id, monto, periodo_desde, periodo_hasta, concepto, metodo_pago, estado, notas, comprobante_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.PacienteID, nullIfEmpty(c.FamiliarID), c.Monto,
		c.PeriodoDesde, c.PeriodoHasta, c.Concepto, c.MetodoPago, c.Estado,
		nullIfEmpty(c.Notas), nullIfEmpty(c.ComprobanteURL), c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cuenta de cobro: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta de cobro por ID.
func (r *CuentaCobroRepo) GetByID(id string) (*entity.CuentaCobro, error) {
	query := `
		SELECT id, paciente_id, COALESCE(familiar_id, ''), monto, periodo_desde, periodo_hasta, concepto, metodo_pago, estado, COALESCE(notas, ''), COALESCE(comprobante_url, ''), created_at, updated_at
		FROM cuentas_cobro WHERE id = $1`
	var c entity.CuentaCobro
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.PacienteID, &c.FamiliarID, &c.Monto,
		&c.PeriodoDesde, &c.PeriodoHasta, &c.Concepto, &c.MetodoPago, &c.Estado,
		&c.Notas, &c.ComprobanteURL, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cuenta de cobro: %w", err)
	}
	return &c, nil
}

// List lista cuentas de cobro con filtros y paginación, la más reciente primero.
func (r *CuentaCobroRepo) List(filter repository.CuentaFilter) ([]*entity.CuentaCobro, error) {
	query := `
		SELECT id, paciente_id, COALESCE(familiar_id, ''), monto, periodo_desde, periodo_hasta, concepto, metodo_pago, estado, COALESCE(notas, ''), COALESCE(comprobante_url, ''), created_at, updated_at
		FROM cuentas_cobro WHERE 1=1`
	args := []any{}
	if filter.PacienteID != "" {
		args = append(args, filter.PacienteID)
		query += fmt.Sprintf(" AND paciente_id = $%d", len(args))
	}
	if filter.Estado != "" {
		args = append(args, filter.Estado)
		query += fmt.Sprintf(" AND estado = $%d", len(args))
	}
	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(" ORDER BY periodo_desde DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list cuentas de cobro: %w", err)
	}
	defer rows.Close()
	var list []*entity.CuentaCobro
	for rows.Next() {
		var c entity.CuentaCobro
		if err := rows.Scan(&c.ID, &c.PacienteID, &c.FamiliarID, &c.Monto,
			&c.PeriodoDesde, &c.PeriodoHasta, &c.Concepto, &c.MetodoPago, &c.Estado,
			&c.Notas, &c.ComprobanteURL, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cuenta de cobro: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update persiste los campos editables y el estado de la cuenta. El historial
// de cambios va por AuditoriaRepository en la misma transacción.
func (r *CuentaCobroRepo) Update(c *entity.CuentaCobro) error {
	query := `
		UPDATE cuentas_cobro SET familiar_id = $2, monto = $3, periodo_desde = $4, periodo_hasta = $5, concepto = $6, metodo_pago = $7, estado = $8, notas = $9, comprobante_url = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, nullIfEmpty(c.FamiliarID), c.Monto, c.PeriodoDesde, c.PeriodoHasta,
		c.Concepto, c.MetodoPago, c.Estado, nullIfEmpty(c.Notas), nullIfEmpty(c.ComprobanteURL), c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update cuenta de cobro: %w", err)
	}
	return nil
}
