package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/titosse/facturacao/internal/models"
	"github.com/titosse/facturacao/internal/money"
)

var (
	// ErrNoItems rejects documents with an empty item list before anything
	// touches the database.
	ErrNoItems = errors.New("invoice requires at least one item")
	// ErrNegativeAmount rejects negative quantities or unit prices.
	ErrNegativeAmount = errors.New("quantity and unit price must not be negative")
)

// ItemInput is one line of a document as entered. Line totals are never
// taken from the caller; they are recomputed here.
type ItemInput struct {
	ProductID   *uint
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal
}

// InvoiceFields are the scalar columns an update may touch. Totals are not
// among them: they are always derived from the item set.
type InvoiceFields struct {
	Type     string
	ClientID *uint
	Date     time.Time
	DueDate  time.Time
}

// InvoiceService keeps an invoice's stored totals consistent with its items
// and unlinks dependent journal rows on delete. Every multi-statement write
// runs inside a single transaction.
type InvoiceService struct {
	DB *gorm.DB
}

func NewInvoiceService(db *gorm.DB) *InvoiceService { return &InvoiceService{DB: db} }

// RecomputeTotals derives the document footer from the current item set.
// Called on every create and update; stored totals are never trusted.
func (s *InvoiceService) RecomputeTotals(items []ItemInput, taxPercentage decimal.Decimal) money.Totals {
	lines := make([]decimal.Decimal, 0, len(items))
	for _, it := range items {
		lines = append(lines, money.LineTotal(it.Quantity, it.UnitPrice))
	}
	return money.DocumentTotals(lines, taxPercentage)
}

func validateItems(items []ItemInput) error {
	if len(items) == 0 {
		return ErrNoItems
	}
	for _, it := range items {
		if it.Quantity.Sign() < 0 || it.UnitPrice.Sign() < 0 {
			return ErrNegativeAmount
		}
	}
	return nil
}

// Create inserts the invoice row (status DRAFT) and its items atomically and
// returns the persisted aggregate.
func (s *InvoiceService) Create(fields InvoiceFields, items []ItemInput, taxPercentage decimal.Decimal) (models.Invoice, error) {
	if err := validateItems(items); err != nil {
		return models.Invoice{}, err
	}
	totals := s.RecomputeTotals(items, taxPercentage)
	inv := models.Invoice{
		Type:     fields.Type,
		ClientID: fields.ClientID,
		Date:     fields.Date,
		DueDate:  fields.DueDate,
		Subtotal: totals.Subtotal,
		TaxTotal: totals.Tax,
		Total:    totals.Total,
		Status:   models.StatusDraft,
	}
	if inv.Date.IsZero() {
		inv.Date = time.Now()
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&inv).Error; err != nil {
			return err
		}
		rows := buildItems(inv.ID, items)
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
		inv.Items = rows
		return nil
	})
	if err != nil {
		return models.Invoice{}, err
	}
	return inv, nil
}

// Update rewrites the invoice's scalar fields and performs a full item
// replacement: delete every existing row, insert the new set. Item ids are
// not preserved across edits.
func (s *InvoiceService) Update(id uint, fields InvoiceFields, items []ItemInput, taxPercentage decimal.Decimal) error {
	if err := validateItems(items); err != nil {
		return err
	}
	totals := s.RecomputeTotals(items, taxPercentage)
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var inv models.Invoice
		if err := tx.First(&inv, id).Error; err != nil {
			return err
		}
		updates := map[string]any{
			"type":      fields.Type,
			"client_id": fields.ClientID,
			"date":      fields.Date,
			"due_date":  fields.DueDate,
			"subtotal":  totals.Subtotal,
			"tax_total": totals.Tax,
			"total":     totals.Total,
		}
		if err := tx.Model(&models.Invoice{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.Where("invoice_id = ?", id).Delete(&models.InvoiceItem{}).Error; err != nil {
			return err
		}
		rows := buildItems(id, items)
		return tx.Create(&rows).Error
	})
}

// Delete removes the invoice and its items. Journal entries referencing the
// invoice are unlinked first, never deleted: the cash movement stays in the
// ledger with its back-reference nulled.
func (s *InvoiceService) Delete(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var inv models.Invoice
		if err := tx.First(&inv, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.JournalEntry{}).Where("invoice_id = ?", id).Update("invoice_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("invoice_id = ?", id).Delete(&models.InvoiceItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Invoice{}, id).Error
	})
}

// SetStatus flips the status field only. No other column moves.
func (s *InvoiceService) SetStatus(id uint, status string) error {
	res := s.DB.Model(&models.Invoice{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func buildItems(invoiceID uint, items []ItemInput) []models.InvoiceItem {
	rows := make([]models.InvoiceItem, 0, len(items))
	for _, it := range items {
		rows = append(rows, models.InvoiceItem{
			InvoiceID:   invoiceID,
			ProductID:   it.ProductID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TaxRate:     it.TaxRate,
			Total:       money.LineTotal(it.Quantity, it.UnitPrice),
		})
	}
	return rows
}
