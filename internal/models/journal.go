package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Journal entry types. Amount is always stored positive; the sign is derived
// from Type when the balance is folded.
const (
	EntryInflow  = "ENTRY"
	EntryOutflow = "EXIT"
)

// JournalEntry is one cash movement. InvoiceID is a weak back-reference:
// deleting the invoice nulls it, the entry itself survives.
type JournalEntry struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Type         string          `gorm:"not null" json:"type"`
	Amount       decimal.Decimal `gorm:"not null;type:numeric" json:"amount"`
	Description  string          `gorm:"not null" json:"description"`
	Date         time.Time       `json:"date"`
	Category     string          `json:"category"`
	DocumentType string          `gorm:"column:document_type" json:"document_type"`
	InvoiceID    *uint           `gorm:"column:invoice_id" json:"invoice_id"`
}
