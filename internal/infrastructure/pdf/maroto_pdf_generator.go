// Package pdf genera la liquidación impresa del impuesto de transferencia.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + año gravable  │  ID de cálculo + fecha     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  INMUEBLE: referencia / valor en pesos / valor en UVT        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Concepto | Valor                                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL: tramo + tarifa + IMPUESTO A PAGAR                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: tramos vigentes + QR con el ID de cálculo           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inmuebles-api/internal/application/dto"
	apptax "github.com/jhoicas/Inmuebles-api/internal/application/tax"
	"github.com/jhoicas/Inmuebles-api/internal/domain/tax"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// conceptLabels nombres en español de los conceptos del desglose.
var conceptLabels = map[string]string{
	tax.ConceptExemptAmount:      "Monto exento",
	tax.ConceptLowBracketAmount:  "Base gravable tramo bajo",
	tax.ConceptHighBracketAmount: "Base gravable tramo alto",
	tax.ConceptLowBracketTax:     "Impuesto tramo bajo",
	tax.ConceptHighBracketTax:    "Impuesto tramo alto",
	tax.ConceptFixedAmount:       "Valor fijo tramo alto",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa tax.LiquidationPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateLiquidationPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateLiquidationPDF(_ context.Context, data apptax.LiquidationForPDF) ([]byte, error) {
	calc := data.Calculation
	if calc == nil {
		return nil, fmt.Errorf("pdf: la liquidación no tiene cálculo")
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Liquidación impuesto de transferencia", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(calc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(propertyRow(calc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range breakdownRows(calc.Breakdown) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(calc))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range footerRows(calc, data.Table, data.Brackets) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(calc *dto.TransferTaxResponse) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("LIQUIDACIÓN IMPUESTO DE TRANSFERENCIA", props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Año gravable %d", calc.TaxYear), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ID de cálculo", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(calc.CalculationID, props.Text{
				Size: 7, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+calc.CalculatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func propertyRow(calc *dto.TransferTaxResponse) core.Row {
	return row.New(21).Add(
		col.New(12).Add(
			text.New("INMUEBLE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New("Referencia: "+nonEmpty(calc.Label, "—"), props.Text{
				Size: 9, Top: 6,
			}),
			text.New(fmt.Sprintf("Valor de venta: %s   |   Equivalente: %s UVT",
				money(calc.ValueInCurrency), calc.ValueInUnitsFormatted,
			), props.Text{Size: 8, Top: 11, Color: colorGray}),
			text.New(fmt.Sprintf("NIT vendedor: %s   |   NIT comprador: %s",
				nonEmpty(calc.SellerNIT, "—"), nonEmpty(calc.BuyerNIT, "—"),
			), props.Text{Size: 8, Top: 16, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	return row.New(7).Add(
		col.New(8).Add(text.New("Concepto", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1, Left: 1,
		})),
		col.New(4).Add(text.New("Valor", props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1, Right: 1,
		})),
	)
}

func breakdownRows(items []dto.BreakdownItemResponse) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(6).Add(
			col.New(8).Add(text.New(
				nonEmpty(conceptLabels[it.Concept], it.Concept),
				props.Text{Size: 8, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				money(it.Amount),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

func totalRow(calc *dto.TransferTaxResponse) core.Row {
	rate := decimal.NewFromFloat(calc.TaxRate).Mul(decimal.NewFromInt(100))
	return row.New(16).Add(
		col.New(7).Add(
			text.New("Tramo: "+calc.BracketDescription, props.Text{Size: 8, Top: 1}),
			text.New("Tarifa marginal: "+rate.StringFixed(1)+"%", props.Text{
				Size: 8, Top: 6, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("IMPUESTO A PAGAR:", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 1, Right: 1,
			}),
			text.New(money(calc.TaxAmount), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Top: 7, Right: 1,
			}),
		),
	)
}

func footerRows(calc *dto.TransferTaxResponse, table dto.TaxTableResponse, brackets []dto.BracketResponse) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New(fmt.Sprintf("TRAMOS VIGENTES (1 UVT = %s)", money(table.UnitValue)), props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	for _, b := range brackets {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New("• "+b.Description, props.Text{Size: 7.5, Color: colorGray, Top: 0.5, Left: 2}),
		)))
	}

	rows = append(rows, row.New(3))
	rows = append(rows, row.New(35).Add(
		col.New(3).Add(code.NewQr(calc.CalculationID, props.Rect{
			Percent: 95,
			Center:  true,
		})),
		col.New(9).Add(
			text.New("Documento informativo. El valor definitivo lo determina la autoridad tributaria.", props.Text{
				Size: 7, Top: 4, Left: 3, Color: colorGray,
			}),
		),
	))
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func money(d decimal.Decimal) string {
	return tax.FormatCurrency(d.InexactFloat64())
}
