package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"gorm.io/gorm"

	"github.com/titosse/facturacao/internal/handlers"
	"github.com/titosse/facturacao/internal/httpx"
	"github.com/titosse/facturacao/internal/services"
)

// New constructs the root handler with all routes and middlewares applied.
func New(db *gorm.DB) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	ch := handlers.NewClientHandler(db)
	r.Route("/clients", func(r chi.Router) {
		r.Get("/", ch.List)
		r.Post("/", ch.Create)
		r.Get("/{id}", ch.Get)
		r.Put("/{id}", ch.Update)
		r.Delete("/{id}", ch.Delete)
	})

	ph := handlers.NewProductHandler(db)
	r.Route("/products", func(r chi.Router) {
		r.Get("/", ph.List)
		r.Post("/", ph.Create)
		r.Get("/{id}", ph.Get)
		r.Put("/{id}", ph.Update)
		r.Delete("/{id}", ph.Delete)
	})

	ih := handlers.NewInvoiceHandler(db, services.NewInvoiceService(db))
	r.Route("/invoices", func(r chi.Router) {
		r.Get("/", ih.List)
		r.Post("/", ih.Create)
		r.Get("/{id}", ih.Get)
		r.Put("/{id}", ih.Update)
		r.Delete("/{id}", ih.Delete)
		r.Put("/{id}/status", ih.SetStatus)
		r.Get("/{id}/pdf", ih.PDF)
	})

	jh := handlers.NewJournalHandler(db)
	r.Route("/journal", func(r chi.Router) {
		r.Get("/", jh.List)
		r.Get("/balance", jh.Balance)
		r.Post("/", jh.Create)
		r.Get("/{id}", jh.Get)
		r.Put("/{id}", jh.Update)
		r.Delete("/{id}", jh.Delete)
	})

	sh := handlers.NewSettingsHandler(db)
	r.Get("/settings", sh.Get)
	r.Put("/settings", sh.Update)

	rh := handlers.NewReportHandler(db)
	r.Route("/reports", func(r chi.Router) {
		r.Get("/journal.xlsx", rh.JournalXLSX)
		r.Get("/journal.pdf", rh.JournalPDF)
		r.Get("/sales.xlsx", rh.SalesXLSX)
		r.Get("/sales.pdf", rh.SalesPDF)
	})

	return r
}
