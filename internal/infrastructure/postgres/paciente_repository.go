package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/renacer/clinica-api/internal/domain"
	"github.com/renacer/clinica-api/internal/domain/entity"
	"github.com/renacer/clinica-api/internal/domain/repository"
)

var _ repository.PacienteRepository = (*PacienteRepo)(nil)

// PacienteRepo implementación del puerto PacienteRepository sobre PostgreSQL (usable con pool o tx).
type PacienteRepo struct {
	q Querier
}

// NewPacienteRepository construye el adaptador de persistencia para pacientes. Pasar pool o tx (Querier).
func NewPacienteRepository(q Querier) *PacienteRepo {
	return &PacienteRepo{q: q}
}

// Create persiste un nuevo paciente.
func (r *PacienteRepo) Create(p *entity.Paciente) error {
	query := `
		INSERT INTO pacientes (id, nombre, apellido, documento, fecha_nacimiento, telefono, direccion, eps, estado, foto_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Nombre, p.Apellido, p.Documento, p.FechaNacimiento,
		p.Telefono, p.Direccion, p.EPS, p.Estado, nullIfEmpty(p.FotoURL),
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDocumentoExists
		}
		return fmt.Errorf("insert paciente: %w", err)
	}
	return nil
}

// GetByID obtiene un paciente por ID.
func (r *PacienteRepo) GetByID(id string) (*entity.Paciente, error) {
	return r.get(`WHERE id = $1`, id)
}

// GetByDocumento obtiene un paciente por número de documento.
func (r *PacienteRepo) GetByDocumento(documento string) (*entity.Paciente, error) {
	return r.get(`WHERE documento = $1`, documento)
}

func (r *PacienteRepo) get(where string, arg any) (*entity.Paciente, error) {
	query := `
		SELECT id, nombre, apellido, documento, fecha_nacimiento, telefono, direccion, eps, estado, COALESCE(foto_url, ''), created_at, updated_at
		FROM pacientes ` + where
	var p entity.Paciente
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.Nombre, &p.Apellido, &p.Documento, &p.FechaNacimiento,
		&p.Telefono, &p.Direccion, &p.EPS, &p.Estado, &p.FotoURL,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get paciente: %w", err)
	}
	return &p, nil
}

// List lista pacientes con filtros y paginación. Query llega ya normalizada
// (minúsculas y sin tildes) y se compara contra nombre, apellido y documento
// normalizados del lado del servidor.
func (r *PacienteRepo) List(filter repository.PacienteFilter) ([]*entity.Paciente, error) {
	query := `
		SELECT id, nombre, apellido, documento, fecha_nacimiento, telefono, direccion, eps, estado, COALESCE(foto_url, ''), created_at, updated_at
		FROM pacientes WHERE 1=1`
	args := []any{}
	if filter.Estado != "" {
		args = append(args, filter.Estado)
		query += fmt.Sprintf(" AND estado = $%d", len(args))
	}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		n := len(args)
		query += fmt.Sprintf(
			" AND (translate(lower(nombre || ' ' || apellido), 'áéíóúüñ', 'aeiouun') LIKE $%d OR documento LIKE $%d)",
			n, n,
		)
	}
	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(" ORDER BY apellido, nombre LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list pacientes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Paciente
	for rows.Next() {
		var p entity.Paciente
		if err := rows.Scan(&p.ID, &p.Nombre, &p.Apellido, &p.Documento, &p.FechaNacimiento,
			&p.Telefono, &p.Direccion, &p.EPS, &p.Estado, &p.FotoURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan paciente: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza los datos de un paciente (incluye estado y foto).
func (r *PacienteRepo) Update(p *entity.Paciente) error {
	query := `
		UPDATE pacientes SET nombre = $2, apellido = $3, fecha_nacimiento = $4, telefono = $5, direccion = $6, eps = $7, estado = $8, foto_url = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Nombre, p.Apellido, p.FechaNacimiento, p.Telefono, p.Direccion,
		p.EPS, p.Estado, nullIfEmpty(p.FotoURL), p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update paciente: %w", err)
	}
	return nil
}
