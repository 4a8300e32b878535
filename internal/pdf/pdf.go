// Package pdf renders printable documents. All figures arrive already
// computed; nothing here recalculates a total.
package pdf

import (
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/titosse/facturacao/internal/format"
	"github.com/titosse/facturacao/internal/ledger"
	"github.com/titosse/facturacao/internal/models"
)

const dateLayout = "02/01/2006"

// Invoice renders a facture/quotation/cash-sale document. A nil client means
// "Consumidor Final".
func Invoice(inv models.Invoice, items []models.InvoiceItem, st models.Settings, client *models.Client) ([]byte, error) {
	m := maroto.New()

	addCompanyHeader(m, st)
	m.AddRow(8,
		text.NewCol(6, inv.Type, props.Text{Size: 14, Style: fontstyle.Bold}),
		text.NewCol(6, format.DocumentCode(inv.Type, int64(inv.ID)), props.Text{Size: 12, Align: align.Right}),
	)
	m.AddRow(5, text.NewCol(12, "Data: "+inv.Date.Format(dateLayout), props.Text{Size: 9, Align: align.Right}))
	m.AddRows(line.NewRow(4))

	clientName := "Consumidor Final"
	if client != nil {
		clientName = client.Name
	}
	m.AddRow(6, text.NewCol(12, "Cliente: "+clientName, props.Text{Size: 10, Style: fontstyle.Bold}))
	if client != nil {
		if client.NUIT != "" {
			m.AddRow(5, text.NewCol(12, "NUIT: "+client.NUIT, props.Text{Size: 9}))
		}
		if client.Address != "" {
			m.AddRow(5, text.NewCol(12, client.Address, props.Text{Size: 9}))
		}
	}
	m.AddRows(line.NewRow(4))

	m.AddRow(7,
		text.NewCol(6, "Descrição", props.Text{Size: 9, Style: fontstyle.Bold}),
		text.NewCol(2, "Qtd", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Preço Unit.", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Total", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
	)
	for _, it := range items {
		m.AddRow(6,
			text.NewCol(6, it.Description, props.Text{Size: 9}),
			text.NewCol(2, it.Quantity.String(), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, it.UnitPrice.StringFixed(2), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, it.Total.StringFixed(2), props.Text{Size: 9, Align: align.Right}),
		)
	}
	m.AddRows(line.NewRow(4))

	addTotalRow(m, "Subtotal", inv.Subtotal, st.Currency, false)
	addTotalRow(m, "IVA", inv.TaxTotal, st.Currency, false)
	addTotalRow(m, "Total", inv.Total, st.Currency, true)

	m.AddRow(10, text.NewCol(12, "Processado por computador.", props.Text{Size: 7, Align: align.Center, Top: 4}))

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

// Journal renders the full cash journal with its closing balance.
func Journal(entries []models.JournalEntry, st models.Settings) ([]byte, error) {
	return journalReport("Diário de Operações", entries, st)
}

// SalesMap renders inflow entries only.
func SalesMap(entries []models.JournalEntry, st models.Settings) ([]byte, error) {
	return journalReport("Mapa de Vendas", ledger.Sales(entries), st)
}

func journalReport(title string, entries []models.JournalEntry, st models.Settings) ([]byte, error) {
	m := maroto.New()

	addCompanyHeader(m, st)
	m.AddRow(8, text.NewCol(12, title, props.Text{Size: 13, Style: fontstyle.Bold}))
	m.AddRows(line.NewRow(4))

	m.AddRow(7,
		text.NewCol(2, "Data", props.Text{Size: 9, Style: fontstyle.Bold}),
		text.NewCol(5, "Descrição", props.Text{Size: 9, Style: fontstyle.Bold}),
		text.NewCol(3, "Categoria", props.Text{Size: 9, Style: fontstyle.Bold}),
		text.NewCol(2, "Valor", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
	)
	for _, e := range entries {
		amount := e.Amount.StringFixed(2)
		if e.Type == models.EntryInflow {
			amount = "+" + amount
		} else {
			amount = "-" + amount
		}
		m.AddRow(6,
			text.NewCol(2, e.Date.Format(dateLayout), props.Text{Size: 9}),
			text.NewCol(5, e.Description, props.Text{Size: 9}),
			text.NewCol(3, e.Category, props.Text{Size: 9}),
			text.NewCol(2, amount, props.Text{Size: 9, Align: align.Right}),
		)
	}
	m.AddRows(line.NewRow(4))
	addTotalRow(m, "Saldo", ledger.Balance(entries), st.Currency, true)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

func addCompanyHeader(m core.Maroto, st models.Settings) {
	m.AddRow(8, text.NewCol(12, st.CompanyName, props.Text{Size: 15, Style: fontstyle.Bold}))
	if st.Address != "" {
		m.AddRow(5, text.NewCol(12, st.Address, props.Text{Size: 9}))
	}
	if st.Phone != "" {
		m.AddRow(5, text.NewCol(12, "Tel: "+st.Phone, props.Text{Size: 9}))
	}
	if st.Email != "" {
		m.AddRow(5, text.NewCol(12, "Email: "+st.Email, props.Text{Size: 9}))
	}
	if st.NUIT != "" {
		m.AddRow(5, text.NewCol(12, "NUIT: "+st.NUIT, props.Text{Size: 9}))
	}
	m.AddRows(line.NewRow(6))
}

func addTotalRow(m core.Maroto, label string, value decimal.Decimal, currency string, grand bool) {
	size := 10.0
	style := fontstyle.Normal
	if grand {
		size = 12
		style = fontstyle.Bold
	}
	m.AddRow(6,
		text.NewCol(8, label+":", props.Text{Size: size, Style: style, Align: align.Right}),
		text.NewCol(4, value.StringFixed(2)+" "+currency, props.Text{Size: size, Style: style, Align: align.Right}),
	)
}
