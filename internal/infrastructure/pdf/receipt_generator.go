// Package pdf genera el comprovante de venta (documento no fiscal) con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Ótica + local       │  N° Venta + Fecha + Estado   │
//	│  CLIENTE: Nombre + CPF/CNPJ + contacto                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | P.Unit | Desc. | Subtotal          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Descuento / Impuesto / TOTAL            │
//	│  PAGOS: medio + monto, saldo                                 │
//	│  FOOTER: QR con el número de venta + leyenda                 │
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
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jhoicas/optica-erp/internal/application/sales"
	"github.com/jhoicas/optica-erp/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var _ sales.ReceiptGenerator = (*ReceiptGenerator)(nil)

// ReceiptGenerator implementa sales.ReceiptGenerator usando Maroto v2.
type ReceiptGenerator struct {
	printer *message.Printer
}

// NewReceiptGenerator construye el generador con formato monetario pt-BR.
func NewReceiptGenerator() *ReceiptGenerator {
	return &ReceiptGenerator{printer: message.NewPrinter(language.BrazilianPortuguese)}
}

// GenerateReceipt genera el PDF y devuelve sus bytes.
func (g *ReceiptGenerator) GenerateReceipt(_ context.Context, data sales.ReceiptData) ([]byte, error) {
	if data.Sale == nil {
		return nil, fmt.Errorf("pdf: venta vacía")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprovante de venda "+data.Sale.SaleNumber, true).
		WithAuthor(data.StoreName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(data.Client))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(g.itemRows(data)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(data.Sale))
	if len(data.Payments) > 0 {
		m.AddRows(g.paymentRows(data.Sale, data.Payments)...)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(data.Sale))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// BRL formatea un monto como "R$ 1.234,56".
func (g *ReceiptGenerator) BRL(v decimal.Decimal) string {
	return "R$ " + g.printer.Sprint(number.Decimal(v.Round(2).InexactFloat64(), number.Scale(2)))
}

func (g *ReceiptGenerator) headerRow(data sales.ReceiptData) core.Row {
	s := data.Sale
	fecha := s.CreatedAt.Format("02/01/2006 15:04")
	if s.ConfirmedAt != nil {
		fecha = s.ConfirmedAt.Format("02/01/2006 15:04")
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(data.StoreName, "Ótica"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Local: "+s.Location, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(documentTitle(s.Kind), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(s.SaleNumber, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7}),
			text.New(fecha+"  |  "+s.Status, props.Text{Size: 8, Align: align.Right, Top: 14, Color: colorGray}),
		),
	)
}

func clientRow(client *entity.Client) core.Row {
	if client == nil {
		return row.New(8).Add(col.New(12).Add(
			text.New("CLIENTE NÃO IDENTIFICADO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorGray, Top: 2}),
		))
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(client.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("CPF/CNPJ: %s   |   Email: %s   |   Tel: %s",
				nonEmpty(client.TaxID, "—"),
				nonEmpty(client.Email, "—"),
				nonEmpty(client.Phone, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qtd.", 1, align.Center),
		h("Produto", 5, align.Left),
		h("Preço unit.", 2, align.Right),
		h("Desc.", 1, align.Right),
		h("Subtotal", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func (g *ReceiptGenerator) itemRows(data sales.ReceiptData) []core.Row {
	result := make([]core.Row, 0, len(data.Sale.Items))
	for _, it := range data.Sale.Items {
		name := it.ProductID
		if p, ok := data.Products[it.ProductID]; ok {
			name = p.SKU + " - " + p.Name
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(it.Quantity.String(), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(name, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(g.BRL(it.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(g.BRL(it.DiscountAmount), props.Text{Size: 7, Align: align.Right, Top: 1})),
			col.New(3).Add(text.New(g.BRL(it.Subtotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func (g *ReceiptGenerator) totalsRow(s *entity.Sale) core.Row {
	label := func(v string) core.Component {
		return text.New(v, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(v string) core.Component {
		return text.New(v, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grand := func(v string, right float64) core.Component {
		return text.New(v, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: right})
	}
	return row.New(30).Add(
		col.New(6),
		col.New(3).Add(
			label("Subtotal:"),
			label("Desconto:"),
			label("Impostos:"),
			grand("TOTAL:", 2),
		),
		col.New(3).Add(
			value(g.BRL(s.Subtotal)),
			value(g.BRL(s.Discount)),
			value(g.BRL(s.Tax)),
			grand(g.BRL(s.Total), 1),
		),
	)
}

func (g *ReceiptGenerator) paymentRows(s *entity.Sale, payments []*entity.Payment) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("PAGAMENTOS", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		)),
	}
	for _, p := range payments {
		rows = append(rows, row.New(5).Add(
			col.New(6).Add(text.New(p.PaidAt.Format("02/01/2006")+"  "+p.Method, props.Text{Size: 8, Left: 2})),
			col.New(6).Add(text.New(g.BRL(p.Amount), props.Text{Size: 8, Align: align.Right, Right: 1})),
		))
	}
	rows = append(rows, row.New(6).Add(
		col.New(6).Add(text.New("Saldo", props.Text{Style: fontstyle.Bold, Size: 8, Left: 2, Top: 1})),
		col.New(6).Add(text.New(g.BRL(s.Total.Sub(s.PaidAmount)), props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Right: 1, Top: 1})),
	))
	return rows
}

func footerRow(s *entity.Sale) core.Row {
	return row.New(36).Add(
		col.New(3).Add(code.NewQr(s.SaleNumber+"|"+s.ID, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Documento sem valor fiscal.", props.Text{Style: fontstyle.Bold, Size: 9, Top: 6, Left: 3, Color: colorPrimary}),
			text.New("Apresente este comprovante na retirada dos óculos ou lentes.", props.Text{Size: 8, Top: 14, Left: 3, Color: colorGray}),
		),
	)
}

func documentTitle(kind string) string {
	if kind == entity.SaleKindTSO {
		return "ORDEM DE SERVIÇO (TSO)"
	}
	return "COMPROVANTE DE VENDA"
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
