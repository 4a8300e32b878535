package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/titosse/facturacao/internal/models"
)

func postEntry(t *testing.T, r http.Handler, body string) uint {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/journal", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var created struct {
		ID uint `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return created.ID
}

func balanceOf(t *testing.T, r http.Handler) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/journal/balance", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("balance expected 200 got %d", w.Code)
	}
	var resp struct {
		Balance string `json:"balance"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode balance: %v", err)
	}
	return resp.Balance
}

func TestJournalBalanceRecomputedPerRead(t *testing.T) {
	conn := setupTestDB(t)
	r := testRouter(conn)

	if got := balanceOf(t, r); got != "0" {
		t.Fatalf("empty journal balance = %s", got)
	}

	postEntry(t, r, `{"type":"ENTRY","amount":100,"description":"Venda"}`)
	if got := balanceOf(t, r); got != "100" {
		t.Fatalf("after inflow balance = %s", got)
	}

	id := postEntry(t, r, `{"type":"EXIT","amount":40,"description":"Transporte","category":"Transporte"}`)
	if got := balanceOf(t, r); got != "60" {
		t.Fatalf("after outflow balance = %s", got)
	}

	// deleting the outflow restores the inflow-only position
	req := httptest.NewRequest(http.MethodDelete, "/journal/"+strconv.Itoa(int(id)), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("delete expected 200 got %d", w.Code)
	}
	if got := balanceOf(t, r); got != "100" {
		t.Fatalf("after delete balance = %s", got)
	}
}

func TestJournalValidation(t *testing.T) {
	conn := setupTestDB(t)
	r := testRouter(conn)

	cases := []string{
		`{"type":"ENTRY","amount":0,"description":"zero amount"}`,
		`{"type":"ENTRY","amount":-5,"description":"negative"}`,
		`{"type":"ENTRY","amount":10,"description":""}`,
		`{"type":"SIDEWAYS","amount":10,"description":"bad type"}`,
	}
	for _, body := range cases {
		req := httptest.NewRequest(http.MethodPost, "/journal", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400 got %d", body, w.Code)
		}
	}
	var count int64
	conn.Model(&models.JournalEntry{}).Count(&count)
	if count != 0 {
		t.Fatalf("no entry should be written, got %d", count)
	}
}

func TestJournalUpdateKeepsDocumentLink(t *testing.T) {
	conn := setupTestDB(t)
	r := testRouter(conn)

	invID := createInvoice(t, r, `{"type":"VD","items":[{"description":"A","quantity":1,"unit_price":50}]}`)
	id := postEntry(t, r, `{"type":"ENTRY","amount":58,"description":"VD","document_type":"VD","invoice_id":`+strconv.Itoa(int(invID))+`}`)

	body := `{"type":"ENTRY","amount":60,"description":"VD corrigida","document_type":"VD","invoice_id":` + strconv.Itoa(int(invID)) + `}`
	req := httptest.NewRequest(http.MethodPut, "/journal/"+strconv.Itoa(int(id)), strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("update expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	var entry models.JournalEntry
	if err := conn.First(&entry, id).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if entry.InvoiceID == nil || *entry.InvoiceID != invID {
		t.Fatalf("document link lost: %#v", entry.InvoiceID)
	}
	if !entry.Amount.Equal(mustDecimal(t, "60")) {
		t.Fatalf("amount not updated: %s", entry.Amount)
	}
}
