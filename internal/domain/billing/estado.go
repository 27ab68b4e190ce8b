// Package billing define el ciclo de vida de estados de las cuentas de cobro
// y los pagos: el enum canónico, la tabla de transiciones legales y la acción
// de auditoría que corresponde a cada transición.
//
// Contrato: toda transición legal produce exactamente un EventoAuditoria con
// la acción correspondiente; una transición ilegal se rechaza con
// ErrTransicionInvalida y no produce evento alguno.
package billing

import (
	"fmt"

	"github.com/renacer/clinica-api/internal/domain"
	"github.com/renacer/clinica-api/internal/domain/entity"
)

// transicionesCuenta: estado origen -> destinos permitidos.
//
//	generada ─→ enviada ─→ pagada
//	    │          │  └──→ rechazada ─→ enviada
//	    │          └─────→ anulada
//	    ├────────────────→ pagada
//	    └────────────────→ anulada
//
// "pagada" y "anulada" son terminales.
var transicionesCuenta = map[string][]string{
	entity.CuentaGenerada:  {entity.CuentaEnviada, entity.CuentaPagada, entity.CuentaAnulada},
	entity.CuentaEnviada:   {entity.CuentaPagada, entity.CuentaRechazada, entity.CuentaAnulada},
	entity.CuentaRechazada: {entity.CuentaEnviada, entity.CuentaAnulada},
	entity.CuentaPagada:    {},
	entity.CuentaAnulada:   {},
}

// accionCuenta: estado destino -> acción de auditoría.
var accionCuenta = map[string]string{
	entity.CuentaEnviada:   entity.AccionEnviado,
	entity.CuentaPagada:    entity.AccionPagado,
	entity.CuentaAnulada:   entity.AccionAnulado,
	entity.CuentaRechazada: entity.AccionRechazado,
}

// EstadoCuentaValido indica si el estado pertenece al enum canónico.
func EstadoCuentaValido(estado string) bool {
	_, ok := transicionesCuenta[estado]
	return ok
}

// EstadoCuentaTerminal indica si el estado no admite más transiciones. Una
// cuenta en estado terminal tampoco se puede editar.
func EstadoCuentaTerminal(estado string) bool {
	return EstadoCuentaValido(estado) && len(transicionesCuenta[estado]) == 0
}

// TransicionCuenta valida el paso de una cuenta de cobro de "desde" a "hacia"
// y devuelve la acción de auditoría a registrar.
func TransicionCuenta(desde, hacia string) (accion string, err error) {
	if !EstadoCuentaValido(desde) || !EstadoCuentaValido(hacia) {
		return "", fmt.Errorf("estado desconocido %q -> %q: %w", desde, hacia, domain.ErrInvalidInput)
	}
	for _, permitido := range transicionesCuenta[desde] {
		if permitido == hacia {
			return accionCuenta[hacia], nil
		}
	}
	return "", fmt.Errorf("%q -> %q: %w", desde, hacia, domain.ErrTransicionInvalida)
}

// transicionesPago: flujo de borrado lógico y reactivación de pagos.
// pendiente -> completado (aprobado); completado -> borrado (eliminado);
// borrado -> completado (reactivado).
var transicionesPago = map[string]map[string]string{
	entity.PagoPendiente:  {entity.PagoCompletado: entity.AccionAprobado},
	entity.PagoCompletado: {entity.PagoBorrado: entity.AccionEliminado},
	entity.PagoBorrado:    {entity.PagoCompletado: entity.AccionReactivado},
}

// EstadoPagoValido indica si el estado pertenece al enum de pagos.
func EstadoPagoValido(estado string) bool {
	_, ok := transicionesPago[estado]
	return ok
}

// TransicionPago valida el paso de un pago de "desde" a "hacia" y devuelve la
// acción de auditoría a registrar.
func TransicionPago(desde, hacia string) (accion string, err error) {
	if !EstadoPagoValido(desde) || !EstadoPagoValido(hacia) {
		return "", fmt.Errorf("estado desconocido %q -> %q: %w", desde, hacia, domain.ErrInvalidInput)
	}
	accion, ok := transicionesPago[desde][hacia]
	if !ok {
		return "", fmt.Errorf("%q -> %q: %w", desde, hacia, domain.ErrTransicionInvalida)
	}
	return accion, nil
}

// TransicionGasto valida el borrado lógico / reactivación de un gasto.
// confirmado -> eliminado (eliminado); eliminado -> confirmado (reactivado).
func TransicionGasto(desde, hacia string) (accion string, err error) {
	switch {
	case desde == entity.GastoConfirmado && hacia == entity.GastoEliminado:
		return entity.AccionEliminado, nil
	case desde == entity.GastoEliminado && hacia == entity.GastoConfirmado:
		return entity.AccionReactivado, nil
	}
	return "", fmt.Errorf("%q -> %q: %w", desde, hacia, domain.ErrTransicionInvalida)
}
