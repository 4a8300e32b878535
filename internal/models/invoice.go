package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Document types as stored in invoices.type.
const (
	TypeFactura = "FACTURA" // invoice
	TypeCotacao = "COTACAO" // quotation
	TypeVD      = "VD"      // venda a dinheiro (cash sale)
	TypeRecibo  = "RECIBO"  // receipt (print-time only, never stored)
)

// Invoice statuses.
const (
	StatusDraft = "DRAFT"
	StatusSent  = "SENT"
	StatusPaid  = "PAID"
)

// Invoice owns its Items exclusively; Subtotal/TaxTotal/Total are always
// derived from the current item set at write time, never edited directly.
type Invoice struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Type          string          `gorm:"not null" json:"type"`
	ClientID      *uint           `gorm:"column:client_id" json:"client_id"`
	Date          time.Time       `json:"date"`
	DueDate       time.Time       `gorm:"column:due_date" json:"due_date"`
	Subtotal      decimal.Decimal `gorm:"not null;type:numeric" json:"subtotal"`
	TaxTotal      decimal.Decimal `gorm:"column:tax_total;not null;type:numeric" json:"tax_total"`
	DiscountTotal decimal.Decimal `gorm:"column:discount_total;type:numeric" json:"discount_total"`
	Total         decimal.Decimal `gorm:"not null;type:numeric" json:"total"`
	Status        string          `gorm:"default:'DRAFT'" json:"status"`
	InvoiceNumber string          `gorm:"column:invoice_number" json:"invoice_number"`
	Items         []InvoiceItem   `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
}

// InvoiceItem has no meaning outside its invoice. Total is always
// quantity * unit_price; TaxRate is stored per item but document totals
// apply the single settings-level percentage.
type InvoiceItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	InvoiceID   uint            `gorm:"column:invoice_id;not null;index" json:"invoice_id"`
	ProductID   *uint           `gorm:"column:product_id" json:"product_id"`
	Description string          `gorm:"not null" json:"description"`
	Quantity    decimal.Decimal `gorm:"not null;type:numeric" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;not null;type:numeric" json:"unit_price"`
	TaxRate     decimal.Decimal `gorm:"column:tax_rate;type:numeric" json:"tax_rate"`
	Total       decimal.Decimal `gorm:"not null;type:numeric" json:"total"`
}
