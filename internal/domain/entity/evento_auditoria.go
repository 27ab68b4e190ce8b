package entity

import "time"

// Entidades auditables. Cada mutación de estado de estas entidades agrega un
// EventoAuditoria; los eventos nunca se modifican ni se borran.
const (
	EntidadCuentaCobro = "cuenta_cobro"
	EntidadPago        = "pago"
	EntidadGasto       = "gasto"
)

// Acciones del vocabulario de auditoría.
const (
	AccionCreado     = "creado"
	AccionAprobado   = "aprobado"
	AccionEnviado    = "enviado"
	AccionPagado     = "pagado"
	AccionEditado    = "editado"
	AccionAnulado    = "anulado"
	AccionRechazado  = "rechazado"
	AccionEliminado  = "eliminado"
	AccionReactivado = "reactivado"
)

// EventoAuditoria es una entrada inmutable del historial de una entidad
// auditable. Se lista por fecha descendente.
type EventoAuditoria struct {
	ID             string
	Entidad        string // cuenta_cobro, pago, gasto
	EntidadID      string
	Accion         string
	ActorID        string // usuario que disparó la acción
	Notas          string
	ComprobanteURL string
	Fecha          time.Time
}
