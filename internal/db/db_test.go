package db

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/titosse/facturacao/internal/models"
)

func TestSeedSettingsIdempotent(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := conn.AutoMigrate(&models.Settings{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	if err := SeedSettings(conn); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := SeedSettings(conn); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	var count int64
	conn.Model(&models.Settings{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly one settings row, got %d", count)
	}

	var s models.Settings
	if err := conn.First(&s, 1).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.CompanyName != "Minha Empresa" || s.Currency != "MZN" || s.Locale != "pt-MZ" {
		t.Fatalf("unexpected defaults: %#v", s)
	}
	if !s.TaxPercentage.Equal(decimal.NewFromInt(16)) {
		t.Fatalf("tax percentage default = %s", s.TaxPercentage)
	}
}

func TestConnectAndMigrateSqlite(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := ConnectAndMigrate(dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	for _, table := range []string{"settings", "clients", "products", "invoices", "invoice_items", "journal_entries"} {
		if !conn.Migrator().HasTable(table) {
			t.Fatalf("missing table after migration: %s", table)
		}
	}
}

func TestConnectAndMigrateEmptyDSN(t *testing.T) {
	if _, err := ConnectAndMigrate(""); err == nil {
		t.Fatal("expected error for empty DSN")
	}
}
