// Package export builds XLSX workbooks for the journal reports.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/titosse/facturacao/internal/ledger"
	"github.com/titosse/facturacao/internal/models"
)

const dateLayout = "2006-01-02"

// JournalWorkbook writes every journal entry to a "Diario" sheet, one row
// per entry, with the running balance in the final row.
func JournalWorkbook(entries []models.JournalEntry) ([]byte, error) {
	return workbook("Diario", entries, true)
}

// SalesMapWorkbook writes inflow entries to a "MapaVendas" sheet.
func SalesMapWorkbook(entries []models.JournalEntry) ([]byte, error) {
	return workbook("MapaVendas", ledger.Sales(entries), false)
}

func workbook(sheet string, entries []models.JournalEntry, withBalance bool) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	header := []any{"ID", "Tipo", "Valor", "Descrição", "Data", "Categoria", "Documento"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, e := range entries {
		document := ""
		if e.InvoiceID != nil && e.DocumentType != "" {
			document = fmt.Sprintf("%s #%d", e.DocumentType, *e.InvoiceID)
		}
		amount, _ := e.Amount.Float64()
		row := []any{e.ID, e.Type, amount, e.Description, e.Date.Format(dateLayout), e.Category, document}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}
	if withBalance {
		balance, _ := ledger.Balance(entries).Float64()
		cell := fmt.Sprintf("A%d", len(entries)+3)
		row := []any{"", "SALDO", balance}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
