// Package pdf genera la ficha PDF del catálogo de un proveedor.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del proveedor + email │ Fecha + N° productos │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Descripción | Precio | Disponible         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda de confidencialidad                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Marketplace-api/internal/application/catalog"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
)

var _ catalog.SheetGenerator = (*CatalogSheetGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// CatalogSheetGenerator implementa catalog.SheetGenerator usando Maroto v2.
type CatalogSheetGenerator struct {
	now func() time.Time
}

// NewCatalogSheetGenerator construye el generador.
func NewCatalogSheetGenerator() *CatalogSheetGenerator {
	return &CatalogSheetGenerator{now: time.Now}
}

// GenerateCatalogPDF genera el PDF y devuelve sus bytes.
func (g *CatalogSheetGenerator) GenerateCatalogPDF(
	ctx context.Context,
	supplier *entity.User,
	products []*entity.Product,
) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := supplierName(supplier)
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Catálogo "+name, true).
		WithAuthor(name, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(headerRow(name, supplier.Email, g.now(), len(products)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	if len(products) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("El proveedor no tiene productos publicados.", props.Text{
				Size: 9, Align: align.Center, Top: 3, Color: colorGray,
			}),
		)))
	}
	m.AddRows(productRows(products)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New("Precios de referencia para clientes vinculados. Documento de uso exclusivo del destinatario.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar catálogo: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(name, email string, at time.Time, count int) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(name, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New(email, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("CATÁLOGO DE PRODUCTOS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%d productos", count), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+at.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 4, align.Left),
		h("Descripción", 4, align.Left),
		h("Precio", 2, align.Right),
		h("Disponible", 2, align.Right),
	)
}

func productRows(products []*entity.Product) []core.Row {
	rows := make([]core.Row, 0, len(products))
	for _, p := range products {
		desc := ""
		if p.Description != nil {
			desc = *p.Description
		}
		rows = append(rows, row.New(7).Add(
			col.New(4).Add(text.New(p.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(desc, props.Text{Size: 7.5, Top: 1, Left: 1, Color: colorGray})),
			col.New(2).Add(text.New("$"+formatPrice(p.Price), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", p.Quantity), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func supplierName(u *entity.User) string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}

// formatPrice usa punto de miles y coma decimal: 1234567.5 → "1.234.567,50".
func formatPrice(d decimal.Decimal) string {
	s := d.StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	sign := ""
	if strings.HasPrefix(intPart, "-") {
		sign, intPart = "-", intPart[1:]
	}
	n := len(intPart)
	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}
	return sign + b.String() + "," + frac
}
