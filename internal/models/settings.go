package models

import "github.com/shopspring/decimal"

// Settings is the single company profile row (id = 1). It is created by the
// initial migration/seed and only ever updated afterwards.
type Settings struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	CompanyName   string          `gorm:"column:company_name" json:"company_name"`
	NUIT          string          `gorm:"column:nuit" json:"nuit"`
	Address       string          `json:"address"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	LogoURI       string          `gorm:"column:logo_uri" json:"logo_uri"`
	Locale        string          `gorm:"default:'pt-MZ'" json:"locale"`
	Currency      string          `gorm:"default:'MZN'" json:"currency"`
	TaxPercentage decimal.Decimal `gorm:"column:tax_percentage;type:numeric" json:"tax_percentage"`
}

func (Settings) TableName() string { return "settings" }
