package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/khata-dev/khata/internal/bsdate"
	"github.com/khata-dev/khata/internal/ledger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeLedgerError maps core errors onto HTTP statuses. Unbalanced entry
// sets get a 422 carrying the computed totals so callers can display the
// difference.
func writeLedgerError(w http.ResponseWriter, err error) {
	var unbalanced *ledger.UnbalancedEntryError
	if errors.As(err, &unbalanced) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":        unbalanced.Error(),
			"total_debit":  unbalanced.TotalDebit,
			"total_credit": unbalanced.TotalCredit,
			"difference":   unbalanced.Difference,
		})
		return
	}
	writeError(w, mapError(err), err.Error())
}

func mapError(err error) int {
	switch {
	case errors.Is(err, ledger.ErrAccountNotFound),
		errors.Is(err, ledger.ErrVoucherNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrDuplicateCode):
		return http.StatusConflict
	case errors.Is(err, ledger.ErrInvalidAccountType),
		errors.Is(err, ledger.ErrInvalidVoucherType),
		errors.Is(err, ledger.ErrEmptyAccountName),
		errors.Is(err, ledger.ErrEmptyNarration),
		errors.Is(err, ledger.ErrTooFewEntries),
		errors.Is(err, ledger.ErrMalformedEntry),
		errors.Is(err, ledger.ErrNegativeAmount),
		errors.Is(err, ledger.ErrImmutableField),
		errors.Is(err, ledger.ErrNoCapitalAccount),
		errors.Is(err, bsdate.ErrUnsupportedYear),
		errors.Is(err, bsdate.ErrInvalidDate):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// parseDateParam reads an optional YYYY-MM-DD query parameter.
func parseDateParam(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
