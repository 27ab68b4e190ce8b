package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados canónicos de una cuenta de cobro. La tabla de transiciones legales
// vive en internal/domain/billing.
const (
	CuentaGenerada  = "generada"
	CuentaEnviada   = "enviada"
	CuentaPagada    = "pagada"
	CuentaAnulada   = "anulada"
	CuentaRechazada = "rechazada"
)

// Métodos de pago aceptados.
const (
	MetodoEfectivo      = "efectivo"
	MetodoTransferencia = "transferencia"
)

// CuentaCobro es la cuenta mensual (o por periodo) emitida por el cuidado de
// un paciente. FamiliarID es el contacto al que se le envía, si aplica.
type CuentaCobro struct {
	ID             string
	PacienteID     string
	FamiliarID     string // opcional
	Monto          decimal.Decimal
	PeriodoDesde   time.Time
	PeriodoHasta   time.Time
	Concepto       string
	MetodoPago     string
	Estado         string // ver constantes Cuenta*
	Notas          string
	ComprobanteURL string // comprobante de pago en el almacenamiento de objetos
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Estados de un pago. "borrado" es eliminación lógica; reactivar devuelve el
// pago a "completado".
const (
	PagoPendiente  = "pendiente"
	PagoCompletado = "completado"
	PagoBorrado    = "borrado"
)

// Pago es un abono registrado, opcionalmente vinculado a una cuenta de cobro.
type Pago struct {
	ID             string
	PacienteID     string
	CuentaCobroID  string // opcional
	Monto          decimal.Decimal
	Metodo         string // efectivo, transferencia
	Fecha          time.Time
	Estado         string // ver constantes Pago*
	ComprobanteURL string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
