// Package pdf turns structured invoice data into printable PDF bytes.
// Layout is delegated entirely to maroto; callers provide amounts already
// computed and formatted identifiers.
package pdf

import (
	"os"
	"strconv"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// AbonoLine is one payment row on the printed invoice.
type AbonoLine struct {
	Fecha string
	Monto string
}

// FacturaData carries everything the printable invoice shows. Money fields
// arrive pre-formatted so the document and the HTML views cannot disagree.
type FacturaData struct {
	Numero       string // e.g. JTT-00042
	Fecha        string
	Cliente      string
	Articulo     string
	Cantidad     int
	Precio       string
	Notas        string
	Total        string
	TotalAbonado string
	Saldo        string
	Abonos       []AbonoLine
	LogoPath     string // absolute path; skipped when the file is absent
}

// FacturaPDF renders the invoice document and returns its bytes.
func FacturaPDF(d FacturaData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithLeftMargin(15).
		WithRightMargin(15).
		WithTopMargin(15).
		Build()
	m := maroto.New(cfg)

	addHeader(m, d)

	m.AddRow(8,
		text.NewCol(6, "Cliente: "+d.Cliente, props.Text{Size: 10}),
		text.NewCol(6, "Fecha: "+d.Fecha, props.Text{Size: 10, Align: align.Right}),
	)
	m.AddRow(4, line.NewCol(12))

	// item table: header then the single line the invoice carries
	m.AddRow(7,
		text.NewCol(6, "Artículo", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Cantidad", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Precio", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Total", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)
	m.AddRow(6,
		text.NewCol(6, d.Articulo, props.Text{Size: 9}),
		text.NewCol(2, strconv.Itoa(d.Cantidad), props.Text{Size: 9, Align: align.Right}),
		text.NewCol(2, d.Precio, props.Text{Size: 9, Align: align.Right}),
		text.NewCol(2, d.Total, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(4, line.NewCol(12))

	if len(d.Abonos) > 0 {
		m.AddRow(7, text.NewCol(12, "Abonos", props.Text{Style: fontstyle.Bold, Size: 10}))
		for _, a := range d.Abonos {
			m.AddRow(5,
				text.NewCol(6, a.Fecha, props.Text{Size: 9}),
				text.NewCol(6, a.Monto, props.Text{Size: 9, Align: align.Right}),
			)
		}
		m.AddRow(4, line.NewCol(12))
	}

	m.AddRow(6,
		col.New(6),
		text.NewCol(3, "Total abonado:", props.Text{Size: 9, Align: align.Right}),
		text.NewCol(3, d.TotalAbonado, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(7,
		col.New(6),
		text.NewCol(3, "Saldo pendiente:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right}),
		text.NewCol(3, d.Saldo, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right}),
	)

	if d.Notas != "" {
		m.AddRow(10, text.NewCol(12, "Notas: "+d.Notas, props.Text{Size: 8}))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

func addHeader(m core.Maroto, d FacturaData) {
	cols := []core.Col{}
	if d.LogoPath != "" {
		if fi, err := os.Stat(d.LogoPath); err == nil && !fi.IsDir() {
			cols = append(cols, image.NewFromFileCol(3, d.LogoPath, props.Rect{Percent: 90}))
		}
	}
	if len(cols) == 0 {
		cols = append(cols, col.New(3))
	}
	cols = append(cols,
		col.New(3),
		text.NewCol(6, "FACTURA "+d.Numero, props.Text{Style: fontstyle.Bold, Size: 16, Align: align.Right, Top: 3}),
	)
	m.AddRow(16, cols...)
	m.AddRow(4, line.NewCol(12))
}
