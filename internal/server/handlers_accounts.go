package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/khata-dev/khata/internal/ledger"
)

type createAccountRequest struct {
	Type           ledger.AccountType `json:"type"`
	Name           string             `json:"name"`
	Code           string             `json:"code,omitempty"`
	OpeningBalance decimal.Decimal    `json:"opening_balance"`
}

func (s *Server) createAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	account, err := s.registry.CreateAccount(r.Context(), ledger.CreateAccountInput{
		Type:           req.Type,
		Name:           req.Name,
		Code:           req.Code,
		OpeningBalance: req.OpeningBalance,
	})
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, account)
}

func (s *Server) listAccounts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var accounts []ledger.Account
	var err error
	if t := q.Get("type"); t != "" {
		accounts, err = s.registry.AccountsByType(r.Context(), ledger.AccountType(t))
	} else {
		includeDisabled := q.Get("include_disabled") == "true" || q.Get("include_disabled") == "1"
		accounts, err = s.registry.Accounts(r.Context(), includeDisabled)
	}
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	if accounts == nil {
		accounts = []ledger.Account{}
	}
	writeJSON(w, http.StatusOK, accounts)
}

func (s *Server) getAccount(w http.ResponseWriter, r *http.Request) {
	account, err := s.registry.GetAccount(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

type updateAccountRequest struct {
	Name           *string          `json:"name,omitempty"`
	OpeningBalance *decimal.Decimal `json:"opening_balance,omitempty"`

	// Accepted only to reject them: code and type are immutable.
	Code *string `json:"code,omitempty"`
	Type *string `json:"type,omitempty"`
}

func (s *Server) updateAccount(w http.ResponseWriter, r *http.Request) {
	var req updateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.Code != nil || req.Type != nil {
		writeLedgerError(w, ledger.ErrImmutableField)
		return
	}
	account, err := s.registry.UpdateAccount(r.Context(), chi.URLParam(r, "id"), ledger.AccountUpdate{
		Name:           req.Name,
		OpeningBalance: req.OpeningBalance,
	})
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (s *Server) disableAccount(w http.ResponseWriter, r *http.Request) {
	account, err := s.registry.DisableAccount(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (s *Server) enableAccount(w http.ResponseWriter, r *http.Request) {
	account, err := s.registry.EnableAccount(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (s *Server) accountBalance(w http.ResponseWriter, r *http.Request) {
	asOf, err := parseDateParam(r, "as_of")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid as_of date: "+err.Error())
		return
	}
	id := chi.URLParam(r, "id")
	balance, err := s.engine.AccountBalance(r.Context(), id, asOf)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"account_id": id,
		"balance":    balance,
	})
}

func (s *Server) accountLedger(w http.ResponseWriter, r *http.Request) {
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
	lines, err := s.engine.AccountLedger(r.Context(), chi.URLParam(r, "id"), from, to)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	if lines == nil {
		lines = []ledger.LedgerLine{}
	}
	writeJSON(w, http.StatusOK, lines)
}
