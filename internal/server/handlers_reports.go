package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/khata-dev/khata/internal/bsdate"
	"github.com/khata-dev/khata/internal/ledger"
)

func (s *Server) trialBalance(w http.ResponseWriter, r *http.Request) {
	asOf, err := parseDateParam(r, "as_of")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid as_of date: "+err.Error())
		return
	}
	rows, err := s.engine.TrialBalance(r.Context(), asOf)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	if rows == nil {
		rows = []ledger.TrialBalanceRow{}
	}
	writeJSON(w, http.StatusOK, rows)
}

// reportWindow resolves the from/to query parameters, defaulting either end
// to the current fiscal year's window.
func (s *Server) reportWindow(r *http.Request) (time.Time, time.Time, error) {
	from, err := parseDateParam(r, "from")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := parseDateParam(r, "to")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if from != nil && to != nil {
		return *from, *to, nil
	}
	fyFrom, fyTo, err := bsdate.FiscalWindow(s.vouchers.FiscalYear())
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if from == nil {
		from = &fyFrom
	}
	if to == nil {
		to = &fyTo
	}
	return *from, *to, nil
}

func (s *Server) profitAndLoss(w http.ResponseWriter, r *http.Request) {
	from, to, err := s.reportWindow(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	report, err := s.engine.ProfitAndLoss(r.Context(), from, to)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) balanceSheet(w http.ResponseWriter, r *http.Request) {
	asOf, err := parseDateParam(r, "as_of")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid as_of date: "+err.Error())
		return
	}
	report, err := s.engine.BalanceSheet(r.Context(), asOf)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) cashBook(w http.ResponseWriter, r *http.Request) {
	s.book(w, r, s.engine.CashBook)
}

func (s *Server) bankBook(w http.ResponseWriter, r *http.Request) {
	s.book(w, r, s.engine.BankBook)
}

func (s *Server) book(w http.ResponseWriter, r *http.Request, fetch func(ctx context.Context, from, to *time.Time) ([]ledger.BookAccount, error)) {
	from, err := parseDateParam(r, "from")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid from date: "+err.Error())
		return
	}
	to, err := parseDateParam(r, "to")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid to date: "+err.Error())
		return
	}
	books, err := fetch(r.Context(), from, to)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	if books == nil {
		books = []ledger.BookAccount{}
	}
	writeJSON(w, http.StatusOK, books)
}

func (s *Server) vatReport(w http.ResponseWriter, r *http.Request) {
	from, to, err := s.reportWindow(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	report, err := s.engine.VATReport(r.Context(), from, to)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) closeFiscalYear(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FiscalYear string `json:"fiscal_year"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
			return
		}
	}
	fy := req.FiscalYear
	if fy == "" {
		fy = s.vouchers.FiscalYear()
	}
	netProfit, err := s.engine.CloseFiscalYear(r.Context(), fy)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"fiscal_year": fy,
		"net_profit":  netProfit,
	})
}

func (s *Server) dateToBS(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "date query parameter is required")
		return
	}
	ad, err := time.Parse("2006-01-02", raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date: "+err.Error())
		return
	}
	bs, err := bsdate.FromGregorian(ad)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ad":         raw,
		"bs":         bs,
		"bs_display": bs.String(),
		"month_name": bs.MonthName(),
	})
}

func (s *Server) dateToAD(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "date query parameter is required")
		return
	}
	bs, err := bsdate.Parse(raw)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	ad, err := bs.Gregorian()
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"bs": bs,
		"ad": ad.Format("2006-01-02"),
	})
}
