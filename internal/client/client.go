// Package client is the HTTP counterpart of the server package. The CLI
// and the TUI talk to a running khata server through it rather than opening
// the database directly.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/khata-dev/khata/internal/bsdate"
	"github.com/khata-dev/khata/internal/ledger"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type CreateAccountRequest struct {
	Type           ledger.AccountType `json:"type"`
	Name           string             `json:"name"`
	Code           string             `json:"code,omitempty"`
	OpeningBalance decimal.Decimal    `json:"opening_balance"`
}

func (c *Client) CreateAccount(ctx context.Context, req CreateAccountRequest) (*ledger.Account, error) {
	var result ledger.Account
	if err := c.post(ctx, "/api/v1/accounts", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ListAccounts(ctx context.Context, accountType string, includeDisabled bool) ([]ledger.Account, error) {
	params := url.Values{}
	if accountType != "" {
		params.Set("type", accountType)
	}
	if includeDisabled {
		params.Set("include_disabled", "true")
	}
	var result []ledger.Account
	if err := c.get(ctx, "/api/v1/accounts?"+params.Encode(), &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) GetAccount(ctx context.Context, id string) (*ledger.Account, error) {
	var result ledger.Account
	if err := c.get(ctx, "/api/v1/accounts/"+url.PathEscape(id), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) RenameAccount(ctx context.Context, id, newName string) (*ledger.Account, error) {
	body := map[string]any{"name": newName}
	var result ledger.Account
	if err := c.patch(ctx, "/api/v1/accounts/"+url.PathEscape(id), body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) DisableAccount(ctx context.Context, id string) (*ledger.Account, error) {
	var result ledger.Account
	if err := c.post(ctx, "/api/v1/accounts/"+url.PathEscape(id)+"/disable", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) EnableAccount(ctx context.Context, id string) (*ledger.Account, error) {
	var result ledger.Account
	if err := c.post(ctx, "/api/v1/accounts/"+url.PathEscape(id)+"/enable", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

type BalanceResponse struct {
	AccountID string          `json:"account_id"`
	Balance   decimal.Decimal `json:"balance"`
}

func (c *Client) AccountBalance(ctx context.Context, id string) (*BalanceResponse, error) {
	var result BalanceResponse
	if err := c.get(ctx, "/api/v1/accounts/"+url.PathEscape(id)+"/balance", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) AccountLedger(ctx context.Context, id string, from, to string) ([]ledger.LedgerLine, error) {
	params := url.Values{}
	if from != "" {
		params.Set("from", from)
	}
	if to != "" {
		params.Set("to", to)
	}
	var result []ledger.LedgerLine
	if err := c.get(ctx, "/api/v1/accounts/"+url.PathEscape(id)+"/ledger?"+params.Encode(), &result); err != nil {
		return nil, err
	}
	return result, nil
}

type CreateVoucherRequest struct {
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

func (c *Client) CreateVoucher(ctx context.Context, req CreateVoucherRequest) (*ledger.Voucher, error) {
	var result ledger.Voucher
	if err := c.post(ctx, "/api/v1/vouchers", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ListVouchers(ctx context.Context) ([]ledger.Voucher, error) {
	var result []ledger.Voucher
	if err := c.get(ctx, "/api/v1/vouchers", &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) GetVoucher(ctx context.Context, id string) (*ledger.Voucher, error) {
	var result ledger.Voucher
	if err := c.get(ctx, "/api/v1/vouchers/"+url.PathEscape(id), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ValidateEntries(ctx context.Context, entries []ledger.Entry) (*ledger.ValidationResult, error) {
	body := map[string]any{"entries": entries}
	var result ledger.ValidationResult
	if err := c.post(ctx, "/api/v1/vouchers/validate", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) TrialBalance(ctx context.Context) ([]ledger.TrialBalanceRow, error) {
	var result []ledger.TrialBalanceRow
	if err := c.get(ctx, "/api/v1/reports/trial-balance", &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) ProfitAndLoss(ctx context.Context, from, to string) (*ledger.ProfitAndLoss, error) {
	var result ledger.ProfitAndLoss
	if err := c.get(ctx, "/api/v1/reports/profit-loss?"+windowParams(from, to), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) BalanceSheet(ctx context.Context) (*ledger.BalanceSheet, error) {
	var result ledger.BalanceSheet
	if err := c.get(ctx, "/api/v1/reports/balance-sheet", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) CashBook(ctx context.Context, from, to string) ([]ledger.BookAccount, error) {
	var result []ledger.BookAccount
	if err := c.get(ctx, "/api/v1/reports/cash-book?"+windowParams(from, to), &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) BankBook(ctx context.Context, from, to string) ([]ledger.BookAccount, error) {
	var result []ledger.BookAccount
	if err := c.get(ctx, "/api/v1/reports/bank-book?"+windowParams(from, to), &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) VATReport(ctx context.Context, from, to string) (*ledger.VATReport, error) {
	var result ledger.VATReport
	if err := c.get(ctx, "/api/v1/reports/vat?"+windowParams(from, to), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

type CloseFiscalYearResponse struct {
	FiscalYear string          `json:"fiscal_year"`
	NetProfit  decimal.Decimal `json:"net_profit"`
}

func (c *Client) CloseFiscalYear(ctx context.Context, fiscalYear string) (*CloseFiscalYearResponse, error) {
	body := map[string]any{"fiscal_year": fiscalYear}
	var result CloseFiscalYearResponse
	if err := c.post(ctx, "/api/v1/fiscal-year/close", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

type DateToBSResponse struct {
	AD        string      `json:"ad"`
	BS        bsdate.Date `json:"bs"`
	BSDisplay string      `json:"bs_display"`
	MonthName string      `json:"month_name"`
}

func (c *Client) DateToBS(ctx context.Context, ad string) (*DateToBSResponse, error) {
	var result DateToBSResponse
	if err := c.get(ctx, "/api/v1/dates/to-bs?date="+url.QueryEscape(ad), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

type DateToADResponse struct {
	BS bsdate.Date `json:"bs"`
	AD string      `json:"ad"`
}

func (c *Client) DateToAD(ctx context.Context, bs string) (*DateToADResponse, error) {
	var result DateToADResponse
	if err := c.get(ctx, "/api/v1/dates/to-ad?date="+url.QueryEscape(bs), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Ping checks if the server is reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/api/v1/accounts", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func windowParams(from, to string) string {
	params := url.Values{}
	if from != "" {
		params.Set("from", from)
	}
	if to != "" {
		params.Set("to", to)
	}
	return params.Encode()
}

func (c *Client) get(ctx context.Context, path string, result any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return c.doRequest(req, result)
}

func (c *Client) patch(ctx context.Context, path string, body any, result any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, "PATCH", c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.doRequest(req, result)
}

func (c *Client) post(ctx context.Context, path string, body any, result any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.doRequest(req, result)
}

type apiError struct {
	Error string `json:"error"`
}

func (c *Client) doRequest(req *http.Request, result any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if json.Unmarshal(bodyBytes, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("server error (%d): %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("server error (%d): %s", resp.StatusCode, string(bodyBytes))
	}

	if result != nil {
		if err := json.Unmarshal(bodyBytes, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
