package export_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/titosse/facturacao/internal/export"
	"github.com/titosse/facturacao/internal/models"
)

func sampleEntries() []models.JournalEntry {
	invID := uint(7)
	return []models.JournalEntry{
		{ID: 1, Type: models.EntryInflow, Amount: decimal.NewFromInt(100), Description: "Venda", Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Category: "Vendas", DocumentType: models.TypeVD, InvoiceID: &invID},
		{ID: 2, Type: models.EntryOutflow, Amount: decimal.NewFromInt(40), Description: "Transporte", Date: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)},
	}
}

func TestJournalWorkbook(t *testing.T) {
	data, err := export.JournalWorkbook(sampleEntries())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Diario")
	require.NoError(t, err)
	// header, two entries, blank spacer, balance
	require.Len(t, rows, 5)
	assert.Equal(t, "Descrição", rows[0][3])
	assert.Equal(t, "VD #7", rows[1][6])
	assert.Equal(t, "SALDO", rows[4][1])
	assert.Equal(t, "60", rows[4][2])
}

func TestSalesMapWorkbook(t *testing.T) {
	data, err := export.SalesMapWorkbook(sampleEntries())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("MapaVendas")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "ENTRY", rows[1][1])
}
