package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/renacer/clinica-api/internal/domain/entity"
	"github.com/renacer/clinica-api/internal/domain/repository"
)

var _ repository.PagoRepository = (*PagoRepo)(nil)

// PagoRepo implementación de PagoRepository (usable con pool o tx).
type PagoRepo struct {
	q Querier
}

// NewPagoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPagoRepository(q Querier) *PagoRepo {
	return &PagoRepo{q: q}
}

// Create persiste un pago.
func (r *PagoRepo) Create(p *entity.Pago) error {
	query := `
		INSERT INTO pagos (id, paciente_id, cuenta_cobro_id, monto, metodo, fecha, estado, comprobante_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.PacienteID, nullIfEmpty(p.CuentaCobroID), p.Monto, p.Metodo,
		p.Fecha, p.Estado, nullIfEmpty(p.ComprobanteURL), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert pago: %w", err)
	}
	return nil
}

// GetByID obtiene un pago por ID (incluye borrados: el detalle muestra el
// historial completo).
func (r *PagoRepo) GetByID(id string) (*entity.Pago, error) {
	query := `
		SELECT id, paciente_id, COALESCE(cuenta_cobro_id, ''), monto, metodo, fecha, estado, COALESCE(comprobante_url, ''), created_at, updated_at
		FROM pagos WHERE id = $1`
	var p entity.Pago
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.PacienteID, &p.CuentaCobroID, &p.Monto, &p.Metodo,
		&p.Fecha, &p.Estado, &p.ComprobanteURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pago: %w", err)
	}
	return &p, nil
}

// List lista pagos con filtros y paginación. Los pagos en estado "borrado"
// solo aparecen con IncluirBorrados.
func (r *PagoRepo) List(filter repository.PagoFilter) ([]*entity.Pago, error) {
	query := `
		SELECT id, paciente_id, COALESCE(cuenta_cobro_id, ''), monto, metodo, fecha, estado, COALESCE(comprobante_url, ''), created_at, updated_at
		FROM pagos WHERE 1=1`
	args := []any{}
	if filter.PacienteID != "" {
		args = append(args, filter.PacienteID)
		query += fmt.Sprintf(" AND paciente_id = $%d", len(args))
	}
	if !filter.IncluirBorrados {
		args = append(args, entity.PagoBorrado)
		query += fmt.Sprintf(" AND estado <> $%d", len(args))
	}
	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(" ORDER BY fecha DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list pagos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Pago
	for rows.Next() {
		var p entity.Pago
		if err := rows.Scan(&p.ID, &p.PacienteID, &p.CuentaCobroID, &p.Monto, &p.Metodo,
			&p.Fecha, &p.Estado, &p.ComprobanteURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan pago: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update persiste el estado y los campos editables del pago.
func (r *PagoRepo) Update(p *entity.Pago) error {
	query := `
		UPDATE pagos SET monto = $2, metodo = $3, fecha = $4, estado = $5, comprobante_url = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Monto, p.Metodo, p.Fecha, p.Estado, nullIfEmpty(p.ComprobanteURL), p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update pago: %w", err)
	}
	return nil
}
