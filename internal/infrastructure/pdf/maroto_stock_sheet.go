// Package pdf genera la hoja de stock imprimible que se entrega al personal de la tienda
// después del cierre de mes.
//
// Diseño de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  CABECERA: tienda + código      │  impreso el               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | código | nombre | disponible | contado          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PIE: número de líneas + cantidad total                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

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
	"github.com/johnfercher/maroto/v2/pkg/repository"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
)

var _ inventory.SheetRenderer = (*MarotoStockSheet)(nil)

// ── Paleta ────────────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorHeader  = &props.Color{Red: 225, Green: 234, Blue: 242}
)

const hangulFamily = "hangul"

// ── Renderer ──────────────────────────────────────────────────────────────────

// MarotoStockSheet implementa inventory.SheetRenderer con Maroto v2.
type MarotoStockSheet struct {
	fontPath string
	printer  *message.Printer
}

// NewMarotoStockSheet construye el renderer. fontPath es un TTF opcional con glifos Hangul;
// sin él los nombres de ítem se dibujan con la fuente latina incorporada.
func NewMarotoStockSheet(fontPath string) *MarotoStockSheet {
	return &MarotoStockSheet{
		fontPath: fontPath,
		printer:  message.NewPrinter(language.Korean),
	}
}

// RenderStockSheet devuelve los bytes del PDF.
func (g *MarotoStockSheet) RenderStockSheet(_ context.Context, sheet inventory.StockSheet) ([]byte, error) {
	family := "helvetica"
	builder := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithTitle("Stock sheet "+sheet.StoreID, true)

	if g.fontPath != "" {
		fonts, err := repository.New().
			AddUTF8Font(hangulFamily, fontstyle.Normal, g.fontPath).
			AddUTF8Font(hangulFamily, fontstyle.Bold, g.fontPath).
			Load()
		if err != nil {
			return nil, fmt.Errorf("pdf: load font %s: %w", g.fontPath, err)
		}
		builder = builder.WithCustomFonts(fonts)
		family = hangulFamily
	}
	cfg := builder.WithDefaultFont(&props.Font{Family: family, Size: 9}).Build()

	m := maroto.New(cfg)
	m.AddRows(g.headerRow(sheet))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for i, r := range sheet.Rows {
		m.AddRows(g.detailRow(i+1, r.ItemCode, r.ItemName, r.CurrentQty))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.footerRow(sheet))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoStockSheet) headerRow(sheet inventory.StockSheet) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(sheet.StoreName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Store "+sheet.StoreID, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("STOCK SHEET", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Printed "+sheet.PrintedAt.Format("2006-01-02 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Item code", 2, align.Left),
		h("Item name", 5, align.Left),
		h("On hand", 2, align.Right),
		h("Counted", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorHeader})
}

func (g *MarotoStockSheet) detailRow(n int, code, name string, qty decimal.Decimal) core.Row {
	return row.New(7).Add(
		col.New(1).Add(text.New(strconv.Itoa(n), props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(2).Add(text.New(code, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(5).Add(text.New(name, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(2).Add(text.New(g.formatQty(qty), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		// en blanco para que quien cuenta lo llene a mano
		col.New(2).Add(text.New("________", props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: colorGray})),
	)
}

func (g *MarotoStockSheet) footerRow(sheet inventory.StockSheet) core.Row {
	total := decimal.Zero
	for _, r := range sheet.Rows {
		total = total.Add(r.CurrentQty)
	}
	return row.New(10).Add(
		col.New(8).Add(text.New(g.printer.Sprintf("%d items", len(sheet.Rows)), props.Text{
			Size: 8, Top: 2, Color: colorGray,
		})),
		col.New(4).Add(text.New("Total "+g.formatQty(total), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2, Right: 1,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatQty agrupa miles y conserva hasta tres decimales: 1234.5 -> "1,234.5".
func (g *MarotoStockSheet) formatQty(q decimal.Decimal) string {
	return g.printer.Sprint(number.Decimal(q.InexactFloat64(), number.MaxFractionDigits(3)))
}
