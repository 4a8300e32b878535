package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/titosse/facturacao/internal/httpx"
	"github.com/titosse/facturacao/internal/ledger"
	"github.com/titosse/facturacao/internal/models"
	"github.com/titosse/facturacao/internal/validation"
)

type JournalHandler struct {
	DB *gorm.DB
}

func NewJournalHandler(db *gorm.DB) *JournalHandler { return &JournalHandler{DB: db} }

var entryTypes = []string{models.EntryInflow, models.EntryOutflow}

type journalReq struct {
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	Date         *time.Time      `json:"date"`
	Category     string          `json:"category"`
	DocumentType string          `json:"document_type"`
	InvoiceID    *uint           `json:"invoice_id"`
}

func (req journalReq) validate() validation.Violations {
	v := validation.Violations{}
	validation.OneOf("type", req.Type, entryTypes, v)
	validation.Required("description", req.Description, v)
	validation.Positive("amount", req.Amount, v)
	return v
}

func (req journalReq) model() models.JournalEntry {
	e := models.JournalEntry{
		Type:         req.Type,
		Amount:       req.Amount,
		Description:  req.Description,
		Category:     req.Category,
		DocumentType: req.DocumentType,
		InvoiceID:    req.InvoiceID,
	}
	if req.Date != nil {
		e.Date = *req.Date
	} else {
		e.Date = time.Now()
	}
	return e
}

// List: GET /journal – newest first.
func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	var entries []models.JournalEntry
	if err := h.DB.Order("date desc").Find(&entries).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_journal", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": entries, "total": len(entries)})
}

// Balance: GET /journal/balance – folded fresh from every row on each call.
func (h *JournalHandler) Balance(w http.ResponseWriter, r *http.Request) {
	var entries []models.JournalEntry
	if err := h.DB.Select("type", "amount").Find(&entries).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_compute_balance", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"balance": ledger.Balance(entries)})
}

// Create: POST /journal
func (h *JournalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req journalReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if v := req.validate(); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	entry := req.model()
	if err := h.DB.Create(&entry).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_entry", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, entry)
}

// Get: GET /journal/{id}
func (h *JournalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var entry models.JournalEntry
	if err := h.DB.First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_entry", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, entry)
}

// Update: PUT /journal/{id}
func (h *JournalHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req journalReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if v := req.validate(); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	entry := req.model()
	updates := map[string]any{
		"type":          entry.Type,
		"amount":        entry.Amount,
		"description":   entry.Description,
		"date":          entry.Date,
		"category":      entry.Category,
		"document_type": entry.DocumentType,
		"invoice_id":    entry.InvoiceID,
	}
	res := h.DB.Model(&models.JournalEntry{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_entry", nil)
		return
	}
	if res.RowsAffected == 0 {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// Delete: DELETE /journal/{id}
func (h *JournalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	res := h.DB.Delete(&models.JournalEntry{}, id)
	if res.Error != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_entry", nil)
		return
	}
	if res.RowsAffected == 0 {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
