package models

import "time"

// Client is a billing counterparty. Invoices reference it weakly: a nil
// ClientID on an invoice means "Consumidor Final" (walk-in consumer).
type Client struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;index" json:"name"`
	NUIT      string    `gorm:"column:nuit" json:"nuit"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}
