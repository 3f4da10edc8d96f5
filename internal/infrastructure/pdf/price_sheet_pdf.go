package pdf

import (
	"context"
	"fmt"

	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/producepricer-api/internal/application/analytics"
	"github.com/jhoicas/producepricer-api/internal/application/dto"
)

// sheetColumn columna de la tabla; las de costo anterior/variación se ocultan con HidePrevious.
type sheetColumn struct {
	label    string
	size     int
	align    align.Type
	previous bool
	value    func(dto.RawPriceSheetItem) string
}

var sheetColumns = []sheetColumn{
	{label: "Materia prima", size: 3, align: align.Left, value: func(it dto.RawPriceSheetItem) string { return it.Name }},
	{label: "Último costo", size: 2, align: align.Right, value: func(it dto.RawPriceSheetItem) string { return moneyOrDash(it.LatestCost) }},
	{label: "Fecha", size: 2, align: align.Center, value: func(it dto.RawPriceSheetItem) string { return strOrDash(it.LatestDate) }},
	{label: "Anterior", size: 2, align: align.Right, previous: true, value: func(it dto.RawPriceSheetItem) string { return moneyOrDash(it.PreviousCost) }},
	{label: "Var. %", size: 1, align: align.Right, previous: true, value: func(it dto.RawPriceSheetItem) string {
		if it.ChangePercent == nil {
			return "—"
		}
		return it.ChangePercent.StringFixed(2) + "%"
	}},
	{label: "Promedio", size: 2, align: align.Right, value: func(it dto.RawPriceSheetItem) string { return moneyOrDash(it.AverageCost) }},
}

// GenerateRawPriceSheetPDF genera la hoja de precios en formato tabla.
func (g *MarotoPDFGenerator) GenerateRawPriceSheetPDF(
	_ context.Context,
	sheet *dto.RawPriceSheetResponse,
	opts analytics.PriceSheetPDFOptions,
) ([]byte, error) {
	title := nonEmpty(opts.Title, "Hoja de precios de materia prima")
	m := g.newDocument(title, sheet.CompanyName)

	m.AddRows(g.headerRow(sheet.CompanyName, title, "Generado: "+sheet.GeneratedAt.Format("02/01/2006 15:04")+" UTC"))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	cols := visibleColumns(opts.HidePrevious)
	m.AddRows(sheetHeaderRow(cols))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	for _, it := range sheet.Items {
		m.AddRows(sheetItemRow(cols, it))
	}
	if len(sheet.Items) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Sin materias primas registradas.", props.Text{Size: 9, Align: align.Center, Top: 3, Color: colorGray}),
		)))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(row.New(6).Add(col.New(12).Add(
		text.New(fmt.Sprintf("%d materias primas", len(sheet.Items)), props.Text{Size: 7, Color: colorGray, Align: align.Right}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// visibleColumns reparte el ancho de las columnas ocultas en la de nombre.
func visibleColumns(hidePrevious bool) []sheetColumn {
	out := make([]sheetColumn, 0, len(sheetColumns))
	freed := 0
	for _, c := range sheetColumns {
		if hidePrevious && c.previous {
			freed += c.size
			continue
		}
		out = append(out, c)
	}
	out[0].size += freed
	return out
}

func sheetHeaderRow(cols []sheetColumn) core.Row {
	r := row.New(8)
	for _, c := range cols {
		r.Add(col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		})))
	}
	return r
}

func sheetItemRow(cols []sheetColumn, it dto.RawPriceSheetItem) core.Row {
	r := row.New(7)
	for _, c := range cols {
		r.Add(col.New(c.size).Add(text.New(c.value(it), props.Text{
			Size: 8, Align: c.align, Top: 1, Left: 1, Right: 1,
		})))
	}
	return r
}

func strOrDash(s *string) string {
	if s == nil {
		return "—"
	}
	return *s
}
