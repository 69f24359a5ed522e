package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/simonvc/erpview/internal/ledger"
	"github.com/simonvc/erpview/internal/store"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	lines []ledger.TransactionLine
	err   error
	calls int
}

func (f *fakeSource) TransactionLines(ctx context.Context) ([]ledger.TransactionLine, error) {
	f.calls++
	return f.lines, f.err
}

func testLines() []ledger.TransactionLine {
	return []ledger.TransactionLine{
		{ID: 1, JournalEntryID: 1, Date: "2024-01-02", EntryDesc: "Coffee beans",
			AccountName: "Cash", VendorName: "Bean Co", Credit: decimal.NewFromInt(40)},
		{ID: 2, JournalEntryID: 2, Date: "2024-01-01", EntryDesc: "Opening",
			AccountName: "Cash", Debit: decimal.NewFromInt(100)},
		{ID: 3, JournalEntryID: 3, Date: "not a date", EntryDesc: "Broken",
			AccountName: "Cash", Debit: decimal.NewFromInt(5)},
		{ID: 4, JournalEntryID: 4, Date: "2024-01-03", EntryDesc: "Milk",
			AccountName: "Supplies", VendorName: "Dairy", Debit: decimal.NewFromInt(12)},
	}
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestServer(t *testing.T, src *fakeSource) (*httptest.Server, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "snapshots.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	srv := httptest.NewServer(New(src, st, "http://erp.test", quietLogger(), "").Handler())
	t.Cleanup(srv.Close)
	return srv, st
}

type ledgerBody struct {
	Rows []struct {
		ID      int64           `json:"id"`
		Balance decimal.Decimal `json:"balance"`
	} `json:"rows"`
	Totals  ledger.Totals `json:"totals"`
	Skipped []skippedLine `json:"skipped"`
	Source  string        `json:"source"`
}

func getLedger(t *testing.T, url string) (int, ledgerBody) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body ledgerBody
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	}
	return resp.StatusCode, body
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, &fakeSource{})
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLedgerUnfiltered(t *testing.T) {
	srv, _ := newTestServer(t, &fakeSource{lines: testLines()})

	status, body := getLedger(t, srv.URL+"/api/v1/ledger")
	require.Equal(t, http.StatusOK, status)
	require.Len(t, body.Rows, 3)

	assert.Equal(t, int64(2), body.Rows[0].ID)
	assert.Equal(t, int64(1), body.Rows[1].ID)
	assert.Equal(t, "60", body.Rows[1].Balance.String())
	assert.Equal(t, int64(4), body.Rows[2].ID)
	assert.Equal(t, "12", body.Rows[2].Balance.String())

	assert.Equal(t, "112", body.Totals.TotalDebit.String())
	assert.Equal(t, "40", body.Totals.TotalCredit.String())
	assert.Equal(t, "12", body.Totals.FinalBalance.String())

	require.Len(t, body.Skipped, 1)
	assert.Equal(t, int64(3), body.Skipped[0].ID)
	assert.Contains(t, body.Skipped[0].Reason, "invalid date")
	assert.Equal(t, "http://erp.test", body.Source)
}

func TestLedgerFilters(t *testing.T) {
	srv, _ := newTestServer(t, &fakeSource{lines: testLines()})

	status, body := getLedger(t, srv.URL+"/api/v1/ledger?account=Cash&q=COFFEE")
	require.Equal(t, http.StatusOK, status)
	require.Len(t, body.Rows, 1)
	assert.Equal(t, int64(1), body.Rows[0].ID)
	assert.Equal(t, "-40", body.Rows[0].Balance.String())

	status, body = getLedger(t, srv.URL+"/api/v1/ledger?vendor=%E2%80%94")
	require.Equal(t, http.StatusOK, status)
	require.Len(t, body.Rows, 1)
	assert.Equal(t, int64(2), body.Rows[0].ID)

	status, body = getLedger(t, srv.URL+"/api/v1/ledger?from=2024-01-02&to=2024-01-02")
	require.Equal(t, http.StatusOK, status)
	require.Len(t, body.Rows, 1)
	assert.Equal(t, int64(1), body.Rows[0].ID)
}

func TestLedgerBadDates(t *testing.T) {
	srv, _ := newTestServer(t, &fakeSource{lines: testLines()})

	for _, q := range []string{"from=yesterday", "to=2024-13-01", "from=2024-02-01&to=2024-01-01"} {
		status, _ := getLedger(t, srv.URL+"/api/v1/ledger?"+q)
		assert.Equal(t, http.StatusBadRequest, status, q)
	}
}

func TestLedgerBackendDown(t *testing.T) {
	srv, _ := newTestServer(t, &fakeSource{err: errors.New("connection refused")})

	resp, err := http.Get(srv.URL + "/api/v1/ledger")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	var body errorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body.Error, "connection refused")
}

func TestLedgerOptions(t *testing.T) {
	srv, _ := newTestServer(t, &fakeSource{lines: testLines()})

	resp, err := http.Get(srv.URL + "/api/v1/ledger/options")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body optionsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []string{"Cash", "Supplies"}, body.Accounts)
	assert.Equal(t, []string{"Bean Co", "Dairy"}, body.Vendors)
}

func TestSnapshotLifecycle(t *testing.T) {
	src := &fakeSource{lines: testLines()}
	srv, _ := newTestServer(t, src)

	resp, err := http.Post(srv.URL+"/api/v1/snapshots", "application/json", strings.NewReader(`{"label":"jan"}`))
	require.NoError(t, err)
	var snap store.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "jan", snap.Label)
	assert.Equal(t, 4, snap.LineCount)

	// The backend going away must not affect stored snapshots.
	src.lines = nil
	src.err = errors.New("down")
	calls := src.calls

	status, body := getLedger(t, srv.URL+"/api/v1/ledger?snapshot="+snap.ID+"&vendor=Dairy")
	require.Equal(t, http.StatusOK, status)
	require.Len(t, body.Rows, 1)
	assert.Equal(t, int64(4), body.Rows[0].ID)
	assert.Equal(t, "snapshot:"+snap.ID, body.Source)
	assert.Equal(t, calls, src.calls)

	resp, err = http.Get(srv.URL + "/api/v1/snapshots")
	require.NoError(t, err)
	var list []store.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	resp.Body.Close()
	require.Len(t, list, 1)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/v1/snapshots/"+snap.ID, nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	status, _ = getLedger(t, srv.URL+"/api/v1/ledger?snapshot="+snap.ID)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestGetSnapshotWithLines(t *testing.T) {
	srv, st := newTestServer(t, &fakeSource{})
	snap, err := st.SaveSnapshot(context.Background(), "x", "", testLines()[:2])
	require.NoError(t, err)

	resp, err := http.Get(srv.URL + "/api/v1/snapshots/" + snap.ID + "?lines=true")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body snapshotResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, snap.ID, body.ID)
	assert.Len(t, body.Lines, 2)
}

func TestSnapshotsDisabled(t *testing.T) {
	srv := httptest.NewServer(New(&fakeSource{}, nil, "", quietLogger(), "").Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v1/snapshots")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCORS(t *testing.T) {
	h := New(&fakeSource{}, nil, "", quietLogger(), "", WithCORS([]string{"http://localhost:3000"})).Handler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ledger", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/ledger", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
