package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry consumed read-only when building invoice items.
type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"not null;index" json:"name"`
	Code        string          `json:"code"`
	Price       decimal.Decimal `gorm:"not null;type:numeric" json:"price"`
	TaxRate     decimal.Decimal `gorm:"column:tax_rate;type:numeric" json:"tax_rate"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}
