package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un gasto.
const (
	GastoConfirmado = "confirmado"
	GastoEliminado  = "eliminado"
)

// CategoriasGasto es la lista fija de categorías de gasto de la institución.
var CategoriasGasto = []string{
	"alimentacion",
	"medicamentos",
	"servicios_publicos",
	"arriendo",
	"nomina",
	"transporte",
	"aseo",
	"mantenimiento",
	"papeleria",
	"recreacion",
	"imprevistos",
	"otros",
}

// CategoriaGastoValida indica si la categoría pertenece a la lista fija.
func CategoriaGastoValida(c string) bool {
	for _, v := range CategoriasGasto {
		if v == c {
			return true
		}
	}
	return false
}

// Gasto es un egreso operativo de la institución.
type Gasto struct {
	ID        string
	Concepto  string
	Categoria string
	Monto     decimal.Decimal
	Fecha     time.Time
	Estado    string // confirmado, eliminado
	Notas     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
