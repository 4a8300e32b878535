package handlers

import (
	"fmt"
	"log"
	"net/http"

	"gorm.io/gorm"

	"github.com/titosse/facturacao/internal/export"
	"github.com/titosse/facturacao/internal/httpx"
	"github.com/titosse/facturacao/internal/models"
	"github.com/titosse/facturacao/internal/pdf"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler serves the journal and sales-map exports.
type ReportHandler struct {
	DB *gorm.DB
}

func NewReportHandler(db *gorm.DB) *ReportHandler { return &ReportHandler{DB: db} }

func (h *ReportHandler) entries(w http.ResponseWriter) ([]models.JournalEntry, bool) {
	var entries []models.JournalEntry
	if err := h.DB.Order("date desc").Find(&entries).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_journal", nil)
		return nil, false
	}
	return entries, true
}

// JournalXLSX: GET /reports/journal.xlsx
func (h *ReportHandler) JournalXLSX(w http.ResponseWriter, r *http.Request) {
	entries, ok := h.entries(w)
	if !ok {
		return
	}
	data, err := export.JournalWorkbook(entries)
	if err != nil {
		log.Printf("journal xlsx: %v", err)
		httpx.JSONError(w, http.StatusInternalServerError, "export_failed", nil)
		return
	}
	serveFile(w, data, xlsxContentType, "diario_operacoes.xlsx")
}

// SalesXLSX: GET /reports/sales.xlsx
func (h *ReportHandler) SalesXLSX(w http.ResponseWriter, r *http.Request) {
	entries, ok := h.entries(w)
	if !ok {
		return
	}
	data, err := export.SalesMapWorkbook(entries)
	if err != nil {
		log.Printf("sales xlsx: %v", err)
		httpx.JSONError(w, http.StatusInternalServerError, "export_failed", nil)
		return
	}
	serveFile(w, data, xlsxContentType, "mapa_vendas.xlsx")
}

// JournalPDF: GET /reports/journal.pdf
func (h *ReportHandler) JournalPDF(w http.ResponseWriter, r *http.Request) {
	entries, ok := h.entries(w)
	if !ok {
		return
	}
	settings, err := loadSettings(h.DB)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_settings", nil)
		return
	}
	data, err := pdf.Journal(entries, settings)
	if err != nil {
		log.Printf("journal pdf: %v", err)
		httpx.JSONError(w, http.StatusInternalServerError, "export_failed", nil)
		return
	}
	serveFile(w, data, "application/pdf", "diario_operacoes.pdf")
}

// SalesPDF: GET /reports/sales.pdf
func (h *ReportHandler) SalesPDF(w http.ResponseWriter, r *http.Request) {
	entries, ok := h.entries(w)
	if !ok {
		return
	}
	settings, err := loadSettings(h.DB)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_settings", nil)
		return
	}
	data, err := pdf.SalesMap(entries, settings)
	if err != nil {
		log.Printf("sales pdf: %v", err)
		httpx.JSONError(w, http.StatusInternalServerError, "export_failed", nil)
		return
	}
	serveFile(w, data, "application/pdf", "mapa_vendas.pdf")
}

func serveFile(w http.ResponseWriter, data []byte, contentType, filename string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
