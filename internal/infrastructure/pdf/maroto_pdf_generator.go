// Package pdf genera los documentos PDF de la aplicación con Maroto v2:
// el comprobante de un log de recepción y la hoja de precios de materia prima.
//
// Layout del comprobante (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre comercial + empresa │ Comprobante + fecha    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RECEPCIÓN: producto, empaque, marca, vendedor, origen...    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PRECIO: pagado vs. costo de mercado + clasificación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el id del log + leyenda                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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

	"github.com/jhoicas/producepricer-api/internal/application/analytics"
	"github.com/jhoicas/producepricer-api/internal/application/dto"
	"github.com/jhoicas/producepricer-api/internal/application/receiving"
	"github.com/jhoicas/producepricer-api/internal/domain/entity"
	"github.com/jhoicas/producepricer-api/internal/domain/pricing"
)

var (
	_ receiving.ReceivingLogPDFGenerator  = (*MarotoPDFGenerator)(nil)
	_ analytics.RawPriceSheetPDFGenerator = (*MarotoPDFGenerator)(nil)
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorGreen   = &props.Color{Red: 0, Green: 120, Blue: 60}
	colorRed     = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// classificationLabels texto impreso por clasificación.
var classificationLabels = map[string]string{
	string(pricing.BelowMarket):  "BAJO EL MERCADO",
	string(pricing.AboveMarket):  "SOBRE EL MERCADO",
	string(pricing.AtMarket):     "A PRECIO DE MERCADO",
	string(pricing.NoPrice):      "SIN PRECIO REGISTRADO",
	string(pricing.NoMarketData): "SIN DATOS DE MERCADO",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa los puertos de PDF usando Maroto v2.
type MarotoPDFGenerator struct {
	displayName string
}

// NewMarotoPDFGenerator construye el generador. displayName es el nombre comercial
// impreso en el encabezado (COMPANY_DISPLAY_NAME).
func NewMarotoPDFGenerator(displayName string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{displayName: displayName}
}

func (g *MarotoPDFGenerator) newDocument(title, author string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(nonEmpty(author, g.displayName), true).
		Build()
	return maroto.New(cfg)
}

// GenerateReceivingLogPDF genera el comprobante de recepción y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateReceivingLogPDF(
	_ context.Context,
	company *entity.Company,
	log *dto.ReceivingLogResponse,
) ([]byte, error) {
	m := g.newDocument("Comprobante de recepción", company.Name)

	m.AddRows(g.headerRow(company.Name, "COMPROBANTE DE RECEPCIÓN", log.ReceivedAt.Format("02/01/2006 15:04")))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionTitle("DATOS DE LA RECEPCIÓN"))
	for _, r := range receivingRows(log) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionTitle("COMPARACIÓN CONTRA COSTO DE MERCADO"))
	for _, r := range comparisonRows(log) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(log.ID))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre comercial + empresa (izq) y título + fecha (der).
func (g *MarotoPDFGenerator) headerRow(companyName, title, date string) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(g.displayName, companyName), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(companyName, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(date, props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func sectionTitle(s string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

// kvRow: etiqueta a la izquierda, valor a la derecha.
func kvRow(label, value string, valueColor *props.Color) core.Row {
	vp := props.Text{Size: 9, Top: 1}
	if valueColor != nil {
		vp.Color = valueColor
		vp.Style = fontstyle.Bold
	}
	return row.New(6).Add(
		col.New(4).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Top: 1, Color: colorGray})),
		col.New(8).Add(text.New(value, vp)),
	)
}

func receivingRows(l *dto.ReceivingLogResponse) []core.Row {
	temp := "—"
	if l.Temperature != nil {
		temp = l.Temperature.StringFixed(1) + " °F"
	}
	status := "En espera (hold)"
	if l.HoldOrUsed == entity.ReceivingUsed {
		status = "Usado (used)"
	}
	return []core.Row{
		kvRow("Materia prima", l.RawProductName, nil),
		kvRow("Empaque", l.PackSize.String()+" "+l.PackSizeUnit, nil),
		kvRow("Cantidad recibida", fmt.Sprintf("%d", l.QuantityReceived), nil),
		kvRow("Marca", l.BrandName, nil),
		kvRow("Vendedor", l.SellerName, nil),
		kvRow("Productor / distribuidor", l.GrowerOrDistributorName, nil),
		kvRow("País de origen", l.CountryOfOrigin, nil),
		kvRow("Temperatura", temp, nil),
		kvRow("Estado", status, nil),
		kvRow("Recibido por", nonEmpty(l.ReceivedBy, "—"), nil),
		kvRow("Devuelto", nonEmpty(l.Returned, "—"), nil),
	}
}

func comparisonRows(l *dto.ReceivingLogResponse) []core.Row {
	c := l.PriceComparison
	if c == nil {
		return []core.Row{kvRow("Clasificación", "—", nil)}
	}
	marketDate := "—"
	if c.MarketCostDate != nil {
		marketDate = *c.MarketCostDate
	}
	pct := "—"
	if c.Percentage != nil {
		pct = c.Percentage.StringFixed(2) + "%"
	}
	return []core.Row{
		kvRow("Precio pagado", moneyOrDash(c.PricePaid), nil),
		kvRow("Costo de mercado", moneyOrDash(c.MarketCost), nil),
		kvRow("Fecha del costo", marketDate, nil),
		kvRow("Diferencia", moneyOrDash(c.Delta), nil),
		kvRow("Diferencia %", pct, nil),
		kvRow("Clasificación", nonEmpty(classificationLabels[c.Classification], c.Classification), classificationColor(c.Classification)),
	}
}

// footerRow: QR con el id del log + leyenda.
func footerRow(logID string) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr("receiving-log:"+logID, props.Rect{
			Percent: 95,
			Center:  true,
		})),
		col.New(9).Add(
			text.New("ID del registro: "+logID, props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("El costo de mercado es la entrada más reciente del historial "+
				"dentro de la ventana previa a la fecha de recepción.", props.Text{
				Size: 7, Top: 12, Left: 3, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func classificationColor(c string) *props.Color {
	switch c {
	case string(pricing.BelowMarket):
		return colorGreen
	case string(pricing.AboveMarket):
		return colorRed
	default:
		return colorPrimary
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func moneyOrDash(d *decimal.Decimal) string {
	if d == nil {
		return "—"
	}
	return formatMoney(*d)
}

// formatMoney formatea con separador de miles y dos decimales.
// Ej: 25000 → "$25,000.00", -1234.5 → "-$1,234.50"
func formatMoney(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	s := d.StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return sign + "$" + string(buf) + "." + frac
}
