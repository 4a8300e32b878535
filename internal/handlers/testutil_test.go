package handlers

import (
	"fmt"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/titosse/facturacao/internal/db"
	"github.com/titosse/facturacao/internal/models"
	"github.com/titosse/facturacao/internal/services"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := conn.AutoMigrate(&models.Settings{}, &models.Client{}, &models.Product{}, &models.Invoice{}, &models.InvoiceItem{}, &models.JournalEntry{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.SeedSettings(conn); err != nil {
		t.Fatalf("seed settings: %v", err)
	}
	return conn
}

// testRouter mounts every handler the way the server package does, so tests
// exercise real route parameters.
func testRouter(conn *gorm.DB) *chi.Mux {
	r := chi.NewRouter()

	ch := NewClientHandler(conn)
	r.Route("/clients", func(r chi.Router) {
		r.Get("/", ch.List)
		r.Post("/", ch.Create)
		r.Get("/{id}", ch.Get)
		r.Put("/{id}", ch.Update)
		r.Delete("/{id}", ch.Delete)
	})

	ph := NewProductHandler(conn)
	r.Route("/products", func(r chi.Router) {
		r.Get("/", ph.List)
		r.Post("/", ph.Create)
		r.Get("/{id}", ph.Get)
		r.Put("/{id}", ph.Update)
		r.Delete("/{id}", ph.Delete)
	})

	ih := NewInvoiceHandler(conn, services.NewInvoiceService(conn))
	r.Route("/invoices", func(r chi.Router) {
		r.Get("/", ih.List)
		r.Post("/", ih.Create)
		r.Get("/{id}", ih.Get)
		r.Put("/{id}", ih.Update)
		r.Delete("/{id}", ih.Delete)
		r.Put("/{id}/status", ih.SetStatus)
		r.Get("/{id}/pdf", ih.PDF)
	})

	jh := NewJournalHandler(conn)
	r.Route("/journal", func(r chi.Router) {
		r.Get("/", jh.List)
		r.Get("/balance", jh.Balance)
		r.Post("/", jh.Create)
		r.Get("/{id}", jh.Get)
		r.Put("/{id}", jh.Update)
		r.Delete("/{id}", jh.Delete)
	})

	sh := NewSettingsHandler(conn)
	r.Get("/settings", sh.Get)
	r.Put("/settings", sh.Update)

	rh := NewReportHandler(conn)
	r.Route("/reports", func(r chi.Router) {
		r.Get("/journal.xlsx", rh.JournalXLSX)
		r.Get("/journal.pdf", rh.JournalPDF)
		r.Get("/sales.xlsx", rh.SalesXLSX)
		r.Get("/sales.pdf", rh.SalesPDF)
	})

	return r
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}
