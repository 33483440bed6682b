package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/khata-dev/khata/internal/bsdate"
	"github.com/khata-dev/khata/internal/ledger"
)

type createVoucherRequest struct {
	Type      ledger.VoucherType `json:"type"`
	Date      string             `json:"date,omitempty"`
	DateBS    string             `json:"date_bs,omitempty"`
	Narration string             `json:"narration"`
	Entries   []ledger.Entry     `json:"entries"`

	Party     string          `json:"party,omitempty"`
	PartyPAN  string          `json:"party_pan,omitempty"`
	Subtotal  decimal.Decimal `json:"subtotal,omitempty"`
	VATAmount decimal.Decimal `json:"vat_amount,omitempty"`
	Total     decimal.Decimal `json:"total,omitempty"`
}

func (s *Server) createVoucher(w http.ResponseWriter, r *http.Request) {
	var req createVoucherRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	date := time.Now().UTC()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date: "+err.Error())
			return
		}
		date = parsed
	}
	var dateBS bsdate.Date
	if req.DateBS != "" {
		parsed, err := bsdate.Parse(req.DateBS)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date_bs: "+err.Error())
			return
		}
		dateBS = parsed
	}

	voucher, err := s.vouchers.CreateVoucher(r.Context(), ledger.CreateVoucherInput{
		Type:      req.Type,
		Date:      date,
		DateBS:    dateBS,
		Narration: req.Narration,
		Entries:   req.Entries,
		Party:     req.Party,
		PartyPAN:  req.PartyPAN,
		Subtotal:  req.Subtotal,
		VATAmount: req.VATAmount,
		Total:     req.Total,
	})
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, voucher)
}

func (s *Server) listVouchers(w http.ResponseWriter, r *http.Request) {
	vouchers, err := s.vouchers.Vouchers(r.Context())
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	if vouchers == nil {
		vouchers = []ledger.Voucher{}
	}
	writeJSON(w, http.StatusOK, vouchers)
}

func (s *Server) getVoucher(w http.ResponseWriter, r *http.Request) {
	voucher, err := s.vouchers.Voucher(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, voucher)
}

// validateEntries dry-runs balance validation on an entry set without
// persisting anything.
func (s *Server) validateEntries(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Entries []ledger.Entry `json:"entries"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ledger.ValidateJournalEntry(req.Entries))
}
