package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/renacer/clinica-api/internal/application/billing"
	"github.com/renacer/clinica-api/internal/application/gastos"
	"github.com/renacer/clinica-api/internal/application/pacientes"
	"github.com/renacer/clinica-api/internal/domain/repository"
)

// Ensure TxRunner implements los puertos transaccionales de la capa de aplicación.
var _ billing.BillingTxRunner = (*TxRunner)(nil)
var _ pacientes.PacienteTxRunner = (*TxRunner)(nil)
var _ gastos.GastoTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunCuenta inicia una transacción con los repos de cuenta de cobro y auditoría.
// El cambio de estado y el evento de historial confirman o revierten juntos.
func (r *TxRunner) RunCuenta(ctx context.Context, fn func(
	cuentaRepo repository.CuentaCobroRepository,
	auditRepo repository.AuditoriaRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewCuentaCobroRepository(tx), NewAuditoriaRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunPago inicia una transacción con los repos de pago y auditoría.
func (r *TxRunner) RunPago(ctx context.Context, fn func(
	pagoRepo repository.PagoRepository,
	auditRepo repository.AuditoriaRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewPagoRepository(tx), NewAuditoriaRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunGasto inicia una transacción con los repos de gasto y auditoría.
func (r *TxRunner) RunGasto(ctx context.Context, fn func(
	gastoRepo repository.GastoRepository,
	auditRepo repository.AuditoriaRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewGastoRepository(tx), NewAuditoriaRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunPaciente inicia una transacción con los repos de paciente e ingreso
// (alta con ingreso inicial, salida y reingreso escriben ambos).
func (r *TxRunner) RunPaciente(ctx context.Context, fn func(
	pacienteRepo repository.PacienteRepository,
	ingresoRepo repository.IngresoRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewPacienteRepository(tx), NewIngresoRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
