package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/titosse/facturacao/internal/models"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Settings{}, &models.Client{}, &models.Product{}, &models.Invoice{}, &models.InvoiceItem{}, &models.JournalEntry{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func dec(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestCreateComputesTotals(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewInvoiceService(db)

	inv, err := svc.Create(InvoiceFields{Type: models.TypeFactura}, []ItemInput{
		{Description: "Serviço A", Quantity: dec("2"), UnitPrice: dec("50")},
		{Description: "Serviço B", Quantity: dec("1"), UnitPrice: dec("30")},
	}, dec("16"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if inv.Status != models.StatusDraft {
		t.Fatalf("expected DRAFT got %s", inv.Status)
	}
	if !inv.Subtotal.Equal(dec("130")) || !inv.TaxTotal.Equal(dec("20.8")) || !inv.Total.Equal(dec("150.8")) {
		t.Fatalf("totals mismatch: %s / %s / %s", inv.Subtotal, inv.TaxTotal, inv.Total)
	}

	var stored models.Invoice
	if err := db.Preload("Items").First(&stored, inv.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(stored.Items) != 2 {
		t.Fatalf("expected 2 items got %d", len(stored.Items))
	}
	if !stored.Items[0].Total.Equal(dec("100")) {
		t.Fatalf("line total mismatch: %s", stored.Items[0].Total)
	}
}

func TestCreateRejectsEmptyAndNegative(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewInvoiceService(db)

	if _, err := svc.Create(InvoiceFields{Type: models.TypeFactura}, nil, dec("16")); !errors.Is(err, ErrNoItems) {
		t.Fatalf("expected ErrNoItems got %v", err)
	}
	_, err := svc.Create(InvoiceFields{Type: models.TypeFactura}, []ItemInput{
		{Description: "x", Quantity: dec("-1"), UnitPrice: dec("10")},
	}, dec("16"))
	if !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("expected ErrNegativeAmount got %v", err)
	}

	var count int64
	db.Model(&models.Invoice{}).Count(&count)
	if count != 0 {
		t.Fatalf("no invoice should exist after rejected creates, got %d", count)
	}
}

func TestUpdateReplacesItems(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewInvoiceService(db)

	inv, err := svc.Create(InvoiceFields{Type: models.TypeCotacao}, []ItemInput{
		{Description: "A", Quantity: dec("1"), UnitPrice: dec("10")},
		{Description: "B", Quantity: dec("1"), UnitPrice: dec("20")},
	}, dec("16"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	err = svc.Update(inv.ID, InvoiceFields{Type: models.TypeFactura}, []ItemInput{
		{Description: "C", Quantity: dec("3"), UnitPrice: dec("5")},
	}, dec("16"))
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	var items []models.InvoiceItem
	if err := db.Where("invoice_id = ?", inv.ID).Find(&items).Error; err != nil {
		t.Fatalf("load items: %v", err)
	}
	if len(items) != 1 || items[0].Description != "C" {
		t.Fatalf("expected exactly [C], got %#v", items)
	}

	var updated models.Invoice
	if err := db.First(&updated, inv.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if updated.Type != models.TypeFactura {
		t.Fatalf("type not updated: %s", updated.Type)
	}
	if !updated.Subtotal.Equal(dec("15")) || !updated.Total.Equal(dec("17.4")) {
		t.Fatalf("totals not recomputed: %s / %s", updated.Subtotal, updated.Total)
	}
}

func TestDeleteUnlinksJournalEntries(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewInvoiceService(db)

	inv, err := svc.Create(InvoiceFields{Type: models.TypeVD}, []ItemInput{
		{Description: "A", Quantity: dec("1"), UnitPrice: dec("100")},
	}, dec("16"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	entry := models.JournalEntry{
		Type:         models.EntryInflow,
		Amount:       dec("116"),
		Description:  "Venda a dinheiro",
		DocumentType: models.TypeVD,
		InvoiceID:    &inv.ID,
	}
	if err := db.Create(&entry).Error; err != nil {
		t.Fatalf("journal: %v", err)
	}

	if err := svc.Delete(inv.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var invCount, itemCount int64
	db.Model(&models.Invoice{}).Where("id = ?", inv.ID).Count(&invCount)
	db.Model(&models.InvoiceItem{}).Where("invoice_id = ?", inv.ID).Count(&itemCount)
	if invCount != 0 || itemCount != 0 {
		t.Fatalf("invoice rows should be gone: inv=%d items=%d", invCount, itemCount)
	}

	var kept models.JournalEntry
	if err := db.First(&kept, entry.ID).Error; err != nil {
		t.Fatalf("journal row must survive: %v", err)
	}
	if kept.InvoiceID != nil {
		t.Fatalf("journal back-reference should be null, got %v", *kept.InvoiceID)
	}
}

func TestDeleteMissingInvoice(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewInvoiceService(db)
	if err := svc.Delete(999); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record not found, got %v", err)
	}
}
