package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khata-dev/khata/internal/ledger"
	"github.com/khata-dev/khata/internal/memstore"
)

func newTestServer(t *testing.T) (*httptest.Server, *ledger.Registry) {
	t.Helper()
	st := memstore.New()
	registry := ledger.NewRegistry(st)
	engine := ledger.NewEngine(st)
	vouchers := ledger.NewVoucherService(st, engine, "2080/81")
	require.NoError(t, vouchers.InitSequences(context.Background()))

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := New(registry, engine, vouchers, ":0", log)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, registry
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, respBody
}

func TestCreateAndGetAccount(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, body := doJSON(t, "POST", ts.URL+"/api/v1/accounts", map[string]any{
		"type":            "Asset",
		"name":            "Cash in Hand",
		"code":            "1001",
		"opening_balance": "500.00",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var created ledger.Account
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, "1001", created.Code)
	assert.NotEmpty(t, created.ID)

	resp, body = doJSON(t, "GET", ts.URL+"/api/v1/accounts/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched ledger.Account
	require.NoError(t, json.Unmarshal(body, &fetched))
	assert.Equal(t, created.ID, fetched.ID)
}

func TestCreateAccount_Errors(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, _ := doJSON(t, "POST", ts.URL+"/api/v1/accounts", map[string]any{
		"type": "Banana", "name": "X",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, "POST", ts.URL+"/api/v1/accounts", map[string]any{
		"type": "Asset", "name": "Cash", "code": "1001",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doJSON(t, "POST", ts.URL+"/api/v1/accounts", map[string]any{
		"type": "Asset", "name": "Other", "code": "1001",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestGetAccount_NotFound(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, _ := doJSON(t, "GET", ts.URL+"/api/v1/accounts/missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateAccount_ImmutableFields(t *testing.T) {
	ts, registry := newTestServer(t)

	acct, err := registry.CreateAccount(context.Background(), ledger.CreateAccountInput{
		Type: ledger.TypeAsset, Name: "Cash", Code: "1001",
	})
	require.NoError(t, err)

	resp, _ := doJSON(t, "PATCH", ts.URL+"/api/v1/accounts/"+acct.ID, map[string]any{
		"code": "1099",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body := doJSON(t, "PATCH", ts.URL+"/api/v1/accounts/"+acct.ID, map[string]any{
		"name": "Cash Drawer",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated ledger.Account
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, "Cash Drawer", updated.Name)
	assert.Equal(t, "1001", updated.Code)
}

func TestCreateVoucher_AndReports(t *testing.T) {
	ts, registry := newTestServer(t)
	ctx := context.Background()

	cash, err := registry.CreateAccount(ctx, ledger.CreateAccountInput{Type: ledger.TypeAsset, Name: "Cash in Hand", Code: "1001"})
	require.NoError(t, err)
	sales, err := registry.CreateAccount(ctx, ledger.CreateAccountInput{Type: ledger.TypeIncome, Name: "Sales Revenue", Code: "4001"})
	require.NoError(t, err)

	resp, body := doJSON(t, "POST", ts.URL+"/api/v1/vouchers", map[string]any{
		"type":      "RV",
		"date":      "2024-05-10",
		"narration": "Cash sale",
		"entries": []map[string]any{
			{"account_id": cash.ID, "debit": "250.00", "credit": "0"},
			{"account_id": sales.ID, "debit": "0", "credit": "250.00"},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var v ledger.Voucher
	require.NoError(t, json.Unmarshal(body, &v))
	assert.Equal(t, "RV-2080-81-0001", v.VoucherNo)

	resp, body = doJSON(t, "GET", ts.URL+"/api/v1/reports/trial-balance", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rows []ledger.TrialBalanceRow
	require.NoError(t, json.Unmarshal(body, &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "1001", rows[0].AccountCode)
	assert.True(t, rows[0].Debit.Equal(rows[1].Credit))

	resp, body = doJSON(t, "GET", ts.URL+"/api/v1/accounts/"+cash.ID+"/balance", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var bal struct {
		AccountID string `json:"account_id"`
		Balance   string `json:"balance"`
	}
	require.NoError(t, json.Unmarshal(body, &bal))
	assert.Equal(t, "250", bal.Balance)
}

func TestCreateVoucher_Unbalanced422(t *testing.T) {
	ts, registry := newTestServer(t)
	ctx := context.Background()

	cash, err := registry.CreateAccount(ctx, ledger.CreateAccountInput{Type: ledger.TypeAsset, Name: "Cash", Code: "1001"})
	require.NoError(t, err)
	sales, err := registry.CreateAccount(ctx, ledger.CreateAccountInput{Type: ledger.TypeIncome, Name: "Sales", Code: "4001"})
	require.NoError(t, err)

	resp, body := doJSON(t, "POST", ts.URL+"/api/v1/vouchers", map[string]any{
		"type":      "JV",
		"date":      "2024-05-10",
		"narration": "Unbalanced",
		"entries": []map[string]any{
			{"account_id": cash.ID, "debit": "100.00", "credit": "0"},
			{"account_id": sales.ID, "debit": "0", "credit": "90.00"},
		},
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var payload struct {
		Error       string `json:"error"`
		TotalDebit  string `json:"total_debit"`
		TotalCredit string `json:"total_credit"`
		Difference  string `json:"difference"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "100", payload.TotalDebit)
	assert.Equal(t, "90", payload.TotalCredit)
	assert.Equal(t, "10", payload.Difference)
	assert.Contains(t, payload.Error, "not balanced")
}

func TestValidateEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, body := doJSON(t, "POST", ts.URL+"/api/v1/vouchers/validate", map[string]any{
		"entries": []map[string]any{
			{"account_id": "a1", "debit": "50.00", "credit": "0"},
			{"account_id": "a2", "debit": "0", "credit": "50.00"},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result ledger.ValidationResult
	require.NoError(t, json.Unmarshal(body, &result))
	assert.True(t, result.IsValid)
}

func TestDateEndpoints(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, body := doJSON(t, "GET", ts.URL+"/api/v1/dates/to-bs?date=2024-04-13", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var toBS struct {
		BSDisplay string `json:"bs_display"`
		MonthName string `json:"month_name"`
	}
	require.NoError(t, json.Unmarshal(body, &toBS))
	assert.Equal(t, "2081/01/01", toBS.BSDisplay)
	assert.Equal(t, "Baisakh", toBS.MonthName)

	resp, body = doJSON(t, "GET", ts.URL+"/api/v1/dates/to-ad?date=2081/01/01", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var toAD struct {
		AD string `json:"ad"`
	}
	require.NoError(t, json.Unmarshal(body, &toAD))
	assert.Equal(t, "2024-04-13", toAD.AD)

	// Years outside the table are a client error.
	resp, _ = doJSON(t, "GET", ts.URL+"/api/v1/dates/to-ad?date=2000/01/01", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDisableAccount_HiddenFromTrialBalance(t *testing.T) {
	ts, registry := newTestServer(t)
	ctx := context.Background()

	acct, err := registry.CreateAccount(ctx, ledger.CreateAccountInput{Type: ledger.TypeAsset, Name: "Cash", Code: "1001"})
	require.NoError(t, err)

	resp, _ := doJSON(t, "POST", ts.URL+"/api/v1/accounts/"+acct.ID+"/disable", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, "GET", ts.URL+"/api/v1/reports/trial-balance", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rows []ledger.TrialBalanceRow
	require.NoError(t, json.Unmarshal(body, &rows))
	assert.Empty(t, rows)
}
