package cmd

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/simonvc/erpview/internal/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLineArg(t *testing.T) {
	id, amt, err := parseLineArg("12=1,200.50")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)
	assert.True(t, amt.Equal(decimal.RequireFromString("1200.50")))

	_, _, err = parseLineArg("12")
	assert.Error(t, err)

	_, _, err = parseLineArg("cash=10")
	assert.ErrorIs(t, err, ledger.ErrMissingAccount)

	_, _, err = parseLineArg("3=ten")
	assert.ErrorIs(t, err, ledger.ErrInvalidAmount)
}

func TestBuildDraft(t *testing.T) {
	d, err := buildDraft("2024-03-01", "Rent", []string{"12=1200"}, []string{"1=1000", "2=200"})
	require.NoError(t, err)
	require.Len(t, d.Lines, 3)
	assert.Equal(t, int64(12), d.Lines[0].AccountID)
	assert.True(t, d.Lines[0].Debit.Equal(decimal.NewFromInt(1200)))
	assert.True(t, d.Lines[2].Credit.Equal(decimal.NewFromInt(200)))

	d, err = buildDraft("", "Rent", []string{"12=5"}, []string{"1=5"})
	require.NoError(t, err)
	assert.Equal(t, time.Now().Format(ledger.DateLayout), d.Date)

	_, err = buildDraft("2024-03-01", "Rent", []string{"12=5"}, []string{"1=4"})
	assert.ErrorIs(t, err, ledger.ErrUnbalancedEntry)

	_, err = buildDraft("2024-03-01", "Rent", []string{"12=5"}, nil)
	assert.ErrorIs(t, err, ledger.ErrTooFewLines)

	_, err = buildDraft("2024-03-01", "Rent", []string{"x"}, nil)
	assert.ErrorContains(t, err, "--debit x")
}

func sampleView() ledger.View {
	lines := []ledger.TransactionLine{
		{ID: 2, AccountName: "Cash", Date: "2024-01-02", EntryDesc: "Sale", Debit: decimal.NewFromInt(50)},
		{ID: 1, AccountName: "Cash", Date: "2024-01-01", EntryDesc: "Opening", Debit: decimal.NewFromInt(100)},
		{ID: 3, AccountName: "Rent", Date: "", EntryDesc: "Undated", Credit: decimal.NewFromInt(5)},
	}
	return ledger.Aggregate(lines, ledger.Filter{})
}

func TestPrintLedger(t *testing.T) {
	var buf bytes.Buffer
	printLedger(&buf, sampleView(), false)
	out := buf.String()

	assert.Contains(t, out, "DATE")
	assert.Contains(t, out, "Opening")
	assert.Contains(t, out, "150.00")
	assert.Contains(t, out, "TOTAL")
	assert.NotContains(t, out, "(filtered)")
	assert.Contains(t, out, "1 line(s) skipped")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("Opening")), bytes.Index(buf.Bytes(), []byte("Sale")))

	buf.Reset()
	printLedger(&buf, ledger.View{}, true)
	assert.Contains(t, buf.String(), "No transaction lines match.")
	assert.Contains(t, buf.String(), "TOTAL (filtered)")
}

func TestWriteLedgerJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeLedgerJSON(&buf, sampleView()))

	var out struct {
		Rows []struct {
			ID      int64   `json:"id"`
			Balance float64 `json:"balance"`
		} `json:"rows"`
		Totals struct {
			TotalDebit   float64 `json:"total_debit"`
			FinalBalance float64 `json:"final_balance"`
		} `json:"totals"`
		Skipped []skippedJSON `json:"skipped"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out.Rows, 2)
	assert.Equal(t, int64(1), out.Rows[0].ID)
	assert.Equal(t, 150.0, out.Rows[1].Balance)
	assert.Equal(t, 150.0, out.Totals.TotalDebit)
	require.Len(t, out.Skipped, 1)
	assert.Equal(t, int64(3), out.Skipped[0].ID)
}

func TestAccountOrder(t *testing.T) {
	lines := []ledger.TransactionLine{
		{ID: 1, AccountName: "Rent", Date: "2024-01-01", Debit: decimal.NewFromInt(1)},
		{ID: 2, AccountName: "", Date: "2024-01-02", Debit: decimal.NewFromInt(1)},
		{ID: 3, AccountName: "Rent", Date: "2024-01-03", Debit: decimal.NewFromInt(1)},
	}
	view := ledger.Aggregate(lines, ledger.Filter{})
	assert.Equal(t, []string{"Rent", ledger.GeneralAccount}, accountOrder(view))
}

func TestClipAndBlankZero(t *testing.T) {
	assert.Equal(t, "short", clip("short", 10))
	assert.Equal(t, "abcdefg..", clip("abcdefghijkl", 9))
	assert.Equal(t, "", blankZero(decimal.Zero))
	assert.Equal(t, "1,234.50", blankZero(decimal.RequireFromString("1234.5")))
}
