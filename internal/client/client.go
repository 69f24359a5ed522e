package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/simonvc/erpview/internal/ledger"
	"github.com/sirupsen/logrus"
)

// Client talks to the ERP backend's JSON API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logrus.Logger
}

type Option func(*Client)

// WithTimeout overrides the default 30s request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithLogger logs every request at debug level.
func WithLogger(l *logrus.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL returns the backend address the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// TransactionLines fetches every transaction line with its entry date,
// description, account and vendor names.
func (c *Client) TransactionLines(ctx context.Context) ([]ledger.TransactionLine, error) {
	var result []ledger.TransactionLine
	if err := c.get(ctx, "/transaction_lines_with_vendor", &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) ListAccounts(ctx context.Context) ([]ledger.Account, error) {
	var result []ledger.Account
	if err := c.get(ctx, "/accounts", &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) CreateAccount(ctx context.Context, acct *ledger.Account) (*ledger.Account, error) {
	if err := acct.Validate(); err != nil {
		return nil, err
	}
	body := map[string]any{
		"name":      acct.Name,
		"code":      acct.Code,
		"type":      acct.Type,
		"parent_id": acct.ParentID,
		"balance":   acct.Balance,
	}
	var result ledger.Account
	if err := c.post(ctx, "/accounts", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ListVendors(ctx context.Context) ([]ledger.Vendor, error) {
	var result []ledger.Vendor
	if err := c.get(ctx, "/vendors", &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) CreateVendor(ctx context.Context, v *ledger.Vendor) (*ledger.Vendor, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	body := map[string]any{
		"name":    v.Name,
		"contact": v.Contact,
	}
	var result ledger.Vendor
	if err := c.post(ctx, "/vendors", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ListJournalEntries(ctx context.Context) ([]ledger.JournalEntry, error) {
	var result []ledger.JournalEntry
	if err := c.get(ctx, "/journal_entries", &result); err != nil {
		return nil, err
	}
	return result, nil
}

// CreateJournalEntry posts a validated draft as an adjusting entry.
func (c *Client) CreateJournalEntry(ctx context.Context, d *ledger.JournalDraft) (*ledger.JournalEntry, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	body := *d
	body.Date, _ = ledger.NormalizeDate(d.Date)
	var result ledger.JournalEntry
	if err := c.post(ctx, "/adjust_journal_entry", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) DeleteJournalEntry(ctx context.Context, id int64) error {
	return c.del(ctx, "/journal_entries/"+strconv.FormatInt(id, 10))
}

func (c *Client) TrialBalance(ctx context.Context) (*ledger.TrialBalance, error) {
	var lines []ledger.TrialBalanceLine
	if err := c.get(ctx, "/trial_balance", &lines); err != nil {
		return nil, err
	}
	return ledger.NewTrialBalance(lines), nil
}

func (c *Client) IncomeStatement(ctx context.Context) (*ledger.IncomeStatement, error) {
	var result ledger.IncomeStatement
	if err := c.get(ctx, "/income_statement", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) BalanceSheet(ctx context.Context) (*ledger.BalanceSheet, error) {
	var result ledger.BalanceSheet
	if err := c.get(ctx, "/balance_sheet", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Ping checks that the backend is reachable and not failing. Client errors
// still count as reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/accounts", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return newAPIError(resp.StatusCode, body)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return c.doRequest(req, result)
}

func (c *Client) del(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return c.doRequest(req, nil)
}

func (c *Client) post(ctx context.Context, path string, body any, result any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	return c.doRequest(req, result)
}

func (c *Client) put(ctx context.Context, path string, body any, result any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	return c.doRequest(req, result)
}

func (c *Client) doRequest(req *http.Request, result any) error {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logRequest(req, 0, start, err)
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	c.logRequest(req, resp.StatusCode, start, nil)

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return newAPIError(resp.StatusCode, bodyBytes)
	}

	if result != nil {
		if err := json.Unmarshal(bodyBytes, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) logRequest(req *http.Request, status int, start time.Time, err error) {
	if c.log == nil {
		return
	}
	entry := c.log.WithFields(logrus.Fields{
		"method":      req.Method,
		"path":        req.URL.Path,
		"status":      status,
		"duration_ms": time.Since(start).Milliseconds(),
	})
	if err != nil {
		entry.WithError(err).Warn("Client.Request.Error")
		return
	}
	entry.Debug("Client.Request")
}
