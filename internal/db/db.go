package db

import (
	"fmt"
	"log"
	"os"
	"strings"

	migrate "github.com/golang-migrate/migrate/v4"
	// Blank imports register the migration drivers and the file source.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/titosse/facturacao/internal/models"
)

// ConnectAndMigrate opens the store named by dsn and brings the schema up to
// date. A postgres:// DSN selects the postgres driver; anything else is
// treated as a sqlite file path (the default, embedded deployment).
//
// With MIGRATIONS=1 the versioned SQL in ./migrations runs via
// golang-migrate; otherwise AutoMigrate keeps the schema current (dev
// convenience). Either way the singleton settings row is seeded afterwards.
func ConnectAndMigrate(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("empty database DSN")
	}
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	var (
		db  *gorm.DB
		err error
	)
	if isPostgres(dsn) {
		db, err = gorm.Open(postgres.Open(dsn), cfg)
	} else {
		db, err = gorm.Open(sqlite.Open(dsn), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	if pingErr := db.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}

	if v := strings.ToLower(os.Getenv("MIGRATIONS")); v == "1" || v == "true" || v == "yes" {
		if err := runSQLMigrations(dsn); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	} else {
		modelsToMigrate := []interface{}{
			&models.Settings{}, &models.Client{}, &models.Product{}, &models.Invoice{}, &models.InvoiceItem{}, &models.JournalEntry{},
		}
		for _, m := range modelsToMigrate {
			if migErr := db.AutoMigrate(m); migErr != nil {
				return nil, fmt.Errorf("automigrate %T: %w", m, migErr)
			}
		}
	}

	if err := SeedSettings(db); err != nil {
		return nil, err
	}
	return db, nil
}

// SeedSettings inserts the singleton settings row on first run. Exactly one
// row exists at all times; updates go through the settings handler.
func SeedSettings(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Settings{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count settings: %w", err)
	}
	if count > 0 {
		return nil
	}
	defaults := models.Settings{
		ID:            1,
		CompanyName:   "Minha Empresa",
		Locale:        "pt-MZ",
		Currency:      "MZN",
		TaxPercentage: decimal.NewFromInt(16),
	}
	if err := db.Create(&defaults).Error; err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}
	log.Println("[DB] seeded default settings row")
	return nil
}

func isPostgres(dsn string) bool {
	lower := strings.ToLower(dsn)
	return strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://")
}

// runSQLMigrations executes migrations in ./migrations using the
// golang-migrate file source.
func runSQLMigrations(dsn string) error {
	target := dsn
	if !isPostgres(dsn) {
		target = "sqlite3://" + dsn
	}
	m, err := migrate.New("file://migrations", target)
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
