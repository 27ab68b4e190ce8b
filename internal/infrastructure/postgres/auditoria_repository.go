package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/renacer/clinica-api/internal/domain/entity"
	"github.com/renacer/clinica-api/internal/domain/repository"
)

var _ repository.AuditoriaRepository = (*AuditoriaRepo)(nil)

// AuditoriaRepo implementación del historial de auditoría (usable con pool o tx).
// La tabla es append-only: no hay UPDATE ni DELETE sobre eventos.
type AuditoriaRepo struct {
	q Querier
}

// NewAuditoriaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditoriaRepository(q Querier) *AuditoriaRepo {
	return &AuditoriaRepo{q: q}
}

// Append agrega un evento al historial de una entidad.
func (r *AuditoriaRepo) Append(e *entity.EventoAuditoria) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	query := `
		INSERT INTO eventos_auditoria (id, entidad, entidad_id, accion, actor_id, notas, comprobante_url, fecha)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.Entidad, e.EntidadID, e.Accion, e.ActorID,
		nullIfEmpty(e.Notas), nullIfEmpty(e.ComprobanteURL), e.Fecha,
	)
	if err != nil {
		return fmt.Errorf("insert evento auditoria: %w", err)
	}
	return nil
}

// ListByEntidad devuelve los eventos de una entidad, el más reciente primero.
func (r *AuditoriaRepo) ListByEntidad(entidad, entidadID string) ([]*entity.EventoAuditoria, error) {
	query := `
		SELECT id, entidad, entidad_id, accion, actor_id, COALESCE(notas, ''), COALESCE(comprobante_url, ''), fecha
		FROM eventos_auditoria WHERE entidad = $1 AND entidad_id = $2
		ORDER BY fecha DESC`
	rows, err := r.q.Query(context.Background(), query, entidad, entidadID)
	if err != nil {
		return nil, fmt.Errorf("list eventos auditoria: %w", err)
	}
	defer rows.Close()
	var list []*entity.EventoAuditoria
	for rows.Next() {
		var e entity.EventoAuditoria
		if err := rows.Scan(&e.ID, &e.Entidad, &e.EntidadID, &e.Accion, &e.ActorID,
			&e.Notas, &e.ComprobanteURL, &e.Fecha); err != nil {
			return nil, fmt.Errorf("scan evento auditoria: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
