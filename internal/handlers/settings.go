package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/titosse/facturacao/internal/httpx"
	"github.com/titosse/facturacao/internal/models"
	"github.com/titosse/facturacao/internal/validation"
)

type SettingsHandler struct {
	DB *gorm.DB
}

func NewSettingsHandler(db *gorm.DB) *SettingsHandler { return &SettingsHandler{DB: db} }

// Get: GET /settings – the singleton row.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := loadSettings(h.DB)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_settings", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, settings)
}

// Update: PUT /settings – full overwrite of the singleton row (id stays 1).
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CompanyName   string          `json:"company_name"`
		NUIT          string          `json:"nuit"`
		Address       string          `json:"address"`
		Email         string          `json:"email"`
		Phone         string          `json:"phone"`
		LogoURI       string          `json:"logo_uri"`
		Locale        string          `json:"locale"`
		Currency      string          `json:"currency"`
		TaxPercentage decimal.Decimal `json:"tax_percentage"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("company_name", req.CompanyName, v)
	validation.NonNegative("tax_percentage", req.TaxPercentage, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	updates := map[string]any{
		"company_name":   req.CompanyName,
		"nuit":           req.NUIT,
		"address":        req.Address,
		"email":          req.Email,
		"phone":          req.Phone,
		"logo_uri":       req.LogoURI,
		"locale":         req.Locale,
		"currency":       req.Currency,
		"tax_percentage": req.TaxPercentage,
	}
	if err := h.DB.Model(&models.Settings{}).Where("id = ?", 1).Updates(updates).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_settings", nil)
		return
	}
	settings, err := loadSettings(h.DB)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_settings", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, settings)
}
