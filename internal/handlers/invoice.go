package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/titosse/facturacao/internal/httpx"
	"github.com/titosse/facturacao/internal/models"
	"github.com/titosse/facturacao/internal/pdf"
	"github.com/titosse/facturacao/internal/services"
	"github.com/titosse/facturacao/internal/validation"
)

type InvoiceHandler struct {
	DB  *gorm.DB
	Svc *services.InvoiceService
}

func NewInvoiceHandler(db *gorm.DB, svc *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{DB: db, Svc: svc}
}

var documentTypes = []string{models.TypeFactura, models.TypeCotacao, models.TypeVD}
var documentStatuses = []string{models.StatusDraft, models.StatusSent, models.StatusPaid}

type itemReq struct {
	ProductID   *uint           `json:"product_id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
}

type invoiceReq struct {
	Type     string     `json:"type"`
	ClientID *uint      `json:"client_id"`
	Date     *time.Time `json:"date"`
	DueDate  *time.Time `json:"due_date"`
	Items    []itemReq  `json:"items"`
}

func (req invoiceReq) validate() validation.Violations {
	v := validation.Violations{}
	validation.OneOf("type", req.Type, documentTypes, v)
	if len(req.Items) == 0 {
		v["items"] = "required"
	}
	for i, it := range req.Items {
		field := fmt.Sprintf("items[%d]", i)
		validation.Required(field+".description", it.Description, v)
		validation.NonNegative(field+".quantity", it.Quantity, v)
		validation.NonNegative(field+".unit_price", it.UnitPrice, v)
	}
	return v
}

func (req invoiceReq) fields() services.InvoiceFields {
	f := services.InvoiceFields{Type: req.Type, ClientID: req.ClientID}
	if req.Date != nil {
		f.Date = *req.Date
	}
	if req.DueDate != nil {
		f.DueDate = *req.DueDate
	}
	return f
}

func (req invoiceReq) items() []services.ItemInput {
	items := make([]services.ItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, services.ItemInput{
			ProductID:   it.ProductID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TaxRate:     it.TaxRate,
		})
	}
	return items
}

// invoiceListRow joins the client name into the listing, the shape the
// document list screen reads.
type invoiceListRow struct {
	models.Invoice
	ClientName string `json:"client_name"`
}

// List: GET /invoices – most recent first, with client names joined in.
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	var rows []invoiceListRow
	err := h.DB.Model(&models.Invoice{}).
		Select("invoices.*, clients.name as client_name").
		Joins("LEFT JOIN clients ON invoices.client_id = clients.id").
		Order("invoices.date desc").
		Scan(&rows).Error
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_invoices", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": rows, "total": len(rows)})
}

// Create: POST /invoices
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req invoiceReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if v := req.validate(); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	settings, err := loadSettings(h.DB)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_settings", nil)
		return
	}
	inv, err := h.Svc.Create(req.fields(), req.items(), settings.TaxPercentage)
	if err != nil {
		if errors.Is(err, services.ErrNoItems) || errors.Is(err, services.ErrNegativeAmount) {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"items": err.Error()})
			return
		}
		log.Printf("create invoice: %v", err)
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_invoice", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, inv)
}

// Get: GET /invoices/{id} – the aggregate with its items, plus the client
// when one is linked.
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var inv models.Invoice
	if err := h.DB.Preload("Items").First(&inv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_invoice", nil)
		return
	}
	payload := map[string]any{"invoice": inv}
	if inv.ClientID != nil {
		var client models.Client
		if err := h.DB.First(&client, *inv.ClientID).Error; err == nil {
			payload["client"] = client
		}
	}
	httpx.JSON(w, http.StatusOK, payload)
}

// Update: PUT /invoices/{id} – full item replacement, totals recomputed.
func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req invoiceReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if v := req.validate(); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	settings, err := loadSettings(h.DB)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_settings", nil)
		return
	}
	if err := h.Svc.Update(id, req.fields(), req.items(), settings.TaxPercentage); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		case errors.Is(err, services.ErrNoItems), errors.Is(err, services.ErrNegativeAmount):
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"items": err.Error()})
		default:
			log.Printf("update invoice %d: %v", id, err)
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_invoice", nil)
		}
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// Delete: DELETE /invoices/{id}
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.Svc.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		log.Printf("delete invoice %d: %v", id, err)
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_invoice", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// SetStatus: PUT /invoices/{id}/status
func (h *InvoiceHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.OneOf("status", req.Status, documentStatuses, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	if err := h.Svc.SetStatus(id, req.Status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_status", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": req.Status})
}

// PDF: GET /invoices/{id}/pdf – renders the stored figures, nothing is
// recomputed here.
func (h *InvoiceHandler) PDF(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var inv models.Invoice
	if err := h.DB.Preload("Items").First(&inv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_invoice", nil)
		return
	}
	settings, err := loadSettings(h.DB)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_settings", nil)
		return
	}
	var client *models.Client
	if inv.ClientID != nil {
		var c models.Client
		if err := h.DB.First(&c, *inv.ClientID).Error; err == nil {
			client = &c
		}
	}
	data, err := pdf.Invoice(inv, inv.Items, settings, client)
	if err != nil {
		log.Printf("invoice pdf %d: %v", id, err)
		httpx.JSONError(w, http.StatusInternalServerError, "pdf_generation_failed", nil)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("documento-%d.pdf", inv.ID)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// loadSettings fetches the singleton configuration row. Loaded once per
// operation and passed by value; nothing caches it.
func loadSettings(db *gorm.DB) (models.Settings, error) {
	var s models.Settings
	err := db.First(&s, 1).Error
	return s, err
}
