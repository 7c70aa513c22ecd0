// Package pdf implementa la generación del comprobante de donación en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Organización  │  N° Comprobante + Fecha            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DONANTE: Nombre + documento + contacto                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | Categoría | Efectivo           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL EFECTIVO (si aplica)                                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda de agradecimiento                          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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

	appdonation "github.com/jhoicas/donaciones-api/internal/application/donation"
	"github.com/jhoicas/donaciones-api/internal/domain/entity"
)

// Ensure interface compliance.
var _ appdonation.ReceiptGenerator = (*MarotoReceiptGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 102, Blue: 68}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReceiptGenerator implementa donation.ReceiptGenerator usando Maroto v2.
type MarotoReceiptGenerator struct {
	orgName string
}

// NewMarotoReceiptGenerator construye el generador con el nombre de la organización.
func NewMarotoReceiptGenerator(orgName string) *MarotoReceiptGenerator {
	return &MarotoReceiptGenerator{orgName: orgName}
}

// GenerateReceipt genera el PDF del comprobante y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceipt(
	_ context.Context,
	donation *entity.Donation,
	donor *entity.Donor,
	items []*entity.DonationItem,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de Donación", true).
		WithAuthor(g.orgName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(donation))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(donorRow(donor))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(items) {
		m.AddRows(r)
	}

	if total := entity.TotalCash(items); total != nil {
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(cashTotalRow(total.StringFixed(0)))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: organización (izq) y N° de comprobante + fecha (der).
func (g *MarotoReceiptGenerator) headerRow(donation *entity.Donation) core.Row {
	fecha := donation.Date.Format("02/01/2006")
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.orgName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Inventario de donaciones", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("COMPROBANTE DE DONACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(donation.ID, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// donorRow: datos del donante.
func donorRow(donor *entity.Donor) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("DONANTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(donor.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Documento: %s   |   Email: %s   |   Tel: %s",
				nonEmpty(donor.Document, "—"),
				nonEmpty(donor.Email, "—"),
				nonEmpty(donor.Phone, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de items.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Descripción", 6, align.Left),
		h("Categoría", 3, align.Left),
		h("Efectivo", 2, align.Right),
	)
}

// tableItemRows: una fila por item de la donación.
func tableItemRows(items []*entity.DonationItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		cash := "—"
		if it.IsCash() && it.CashAmount != nil {
			cash = "$" + formatMoney(it.CashAmount.StringFixed(0))
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", it.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				it.Description,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				it.CategoryLabel,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				cash,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// cashTotalRow: total en efectivo alineado a la derecha.
func cashTotalRow(total string) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(4).Add(text.New("TOTAL EFECTIVO:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})),
		col.New(2).Add(text.New("$"+formatMoney(total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})),
	)
}

// footerRow: leyenda de agradecimiento.
func footerRow() core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(
			"Gracias por su donación. Este comprobante certifica la recepción de los "+
				"bienes y aportes descritos. Consérvelo como soporte.",
			props.Text{Size: 7, Color: colorGray, Top: 2},
		),
	))
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
