// Package pdf implementa la representación imprimible de la cuenta de cobro
// que se envía al acudiente del paciente.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre institución  │  CUENTA DE COBRO + Periodo   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PACIENTE: Nombre + Documento + EPS                         │
//	│  DESTINATARIO: Familiar + parentesco + contacto             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Concepto | Periodo | Valor                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL A PAGAR + método de pago + estado                    │
//	│  FOOTER: notas + leyenda                                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appbilling "github.com/renacer/clinica-api/internal/application/billing"
	"github.com/renacer/clinica-api/internal/domain/entity"
)

const nombreInstitucion = "Clínica de Rehabilitación Renacer"

var _ appbilling.CuentaPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 16, Green: 93, Blue: 70}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.CuentaPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateCuentaPDF genera el PDF y devuelve sus bytes. familiar puede ser nil
// si la cuenta no tiene destinatario asignado.
func (g *MarotoPDFGenerator) GenerateCuentaPDF(
	_ context.Context,
	cuenta *entity.CuentaCobro,
	paciente *entity.Paciente,
	familiar *entity.Familiar,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Cuenta de Cobro", true).
		WithAuthor(nombreInstitucion, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(cuenta))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(pacienteRow(paciente))
	m.AddRows(destinatarioRow(familiar))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(conceptoRow(cuenta))

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(cuenta))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range footerRows(cuenta) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre de la institución (izq) y título + periodo (der).
func headerRow(cuenta *entity.CuentaCobro) core.Row {
	periodo := fmt.Sprintf("%s — %s",
		cuenta.PeriodoDesde.Format("02/01/2006"),
		cuenta.PeriodoHasta.Format("02/01/2006"),
	)
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nombreInstitucion, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Comunidad terapéutica residencial", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("CUENTA DE COBRO", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Periodo: "+periodo, props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
			text.New("Estado: "+strings.ToUpper(cuenta.Estado), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 14,
			}),
		),
	)
}

// pacienteRow: datos del residente.
func pacienteRow(paciente *entity.Paciente) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("PACIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(paciente.Nombre+" "+paciente.Apellido, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Documento: %s   |   EPS: %s",
				paciente.Documento,
				nonEmpty(paciente.EPS, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// destinatarioRow: familiar responsable del pago, si está asignado.
func destinatarioRow(familiar *entity.Familiar) core.Row {
	if familiar == nil {
		return row.New(8).Add(col.New(12).Add(
			text.New("DESTINATARIO: sin asignar", props.Text{
				Size: 8, Color: colorGray, Top: 2,
			}),
		))
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("DESTINATARIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(familiar.Nombre, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Parentesco: %s   |   Tel: %s   |   Email: %s",
				nonEmpty(familiar.Parentesco, "—"),
				nonEmpty(familiar.Telefono, "—"),
				nonEmpty(familiar.Email, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de conceptos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Concepto", 6, align.Left),
		h("Periodo", 3, align.Center),
		h("Valor", 3, align.Right),
	)
}

// conceptoRow: la línea única de la cuenta (concepto del periodo).
func conceptoRow(cuenta *entity.CuentaCobro) core.Row {
	periodo := fmt.Sprintf("%s a %s",
		cuenta.PeriodoDesde.Format("02/01/2006"),
		cuenta.PeriodoHasta.Format("02/01/2006"),
	)
	return row.New(8).Add(
		col.New(6).Add(text.New(
			cuenta.Concepto,
			props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
		)),
		col.New(3).Add(text.New(
			periodo,
			props.Text{Size: 8, Align: align.Center, Top: 1},
		)),
		col.New(3).Add(text.New(
			"$"+formatMoney(cuenta.Monto.StringFixed(0)),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
	)
}

// totalRow: total a pagar y método de pago.
func totalRow(cuenta *entity.CuentaCobro) core.Row {
	return row.New(16).Add(
		col.New(6).Add(
			text.New("Método de pago: "+nonEmpty(cuenta.MetodoPago, "—"), props.Text{
				Size: 8, Top: 4, Color: colorGray,
			}),
		),
		col.New(3).Add(
			text.New("TOTAL A PAGAR:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 3, Right: 2,
			}),
		),
		col.New(3).Add(
			text.New("$"+formatMoney(cuenta.Monto.StringFixed(0)), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 3, Right: 1,
			}),
		),
	)
}

// footerRows: notas de la cuenta + leyenda.
func footerRows(cuenta *entity.CuentaCobro) []core.Row {
	var rows []core.Row
	if cuenta.Notas != "" {
		rows = append(rows, row.New(10).Add(col.New(12).Add(
			text.New("Notas: "+cuenta.Notas, props.Text{
				Size: 8, Color: colorGray, Top: 2,
			}),
		)))
	}
	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New(
			"Favor realizar el pago dentro de los cinco (5) días siguientes al recibo de esta cuenta. "+
				"Conserve el comprobante de pago para su registro.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	)))
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
