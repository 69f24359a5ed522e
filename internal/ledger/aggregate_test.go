package ledger

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func line(id int64, date, account string, debit, credit string) TransactionLine {
	return TransactionLine{
		ID:             id,
		JournalEntryID: id,
		Date:           date,
		AccountName:    account,
		Debit:          dec(debit),
		Credit:         dec(credit),
	}
}

func balances(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Balance.String()
	}
	return out
}

func ids(rows []Row) []int64 {
	out := make([]int64, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func threeLines() []TransactionLine {
	return []TransactionLine{
		line(1, "2024-01-01", "Cash", "100", "0"),
		line(2, "2024-01-05", "Cash", "0", "30"),
		line(3, "2024-01-03", "Bank", "50", "0"),
	}
}

func TestAggregateSingleAccount(t *testing.T) {
	view := Aggregate(threeLines()[:2], Filter{})

	require.Len(t, view.Rows, 2)
	assert.Equal(t, []string{"100", "70"}, balances(view.Rows))
	assert.True(t, view.Totals.FinalBalance.Equal(dec("70")))
	assert.Empty(t, view.Skipped)
}

func TestAggregatePerAccountBalances(t *testing.T) {
	view := Aggregate(threeLines(), Filter{})

	assert.Equal(t, []int64{1, 3, 2}, ids(view.Rows))
	assert.Equal(t, []string{"100", "50", "70"}, balances(view.Rows))
	assert.True(t, view.Totals.TotalDebit.Equal(dec("150")))
	assert.True(t, view.Totals.TotalCredit.Equal(dec("30")))
	assert.True(t, view.Totals.FinalBalance.Equal(dec("70")))

	bals := view.AccountBalances()
	assert.True(t, bals["Cash"].Equal(dec("70")))
	assert.True(t, bals["Bank"].Equal(dec("50")))
}

func TestAggregateAccountFilter(t *testing.T) {
	view := Aggregate(threeLines(), Filter{AccountName: "Cash"})

	assert.Equal(t, []int64{1, 2}, ids(view.Rows))
	assert.Equal(t, []string{"100", "70"}, balances(view.Rows))
	assert.True(t, view.Totals.TotalDebit.Equal(dec("100")))
	assert.True(t, view.Totals.TotalCredit.Equal(dec("30")))
	assert.True(t, view.Totals.FinalBalance.Equal(dec("70")))
}

func TestAggregateDateFromRestartsBalance(t *testing.T) {
	f, err := NewFilter("", "", "", "2024-01-04", "")
	require.NoError(t, err)

	view := Aggregate(threeLines(), f)

	require.Len(t, view.Rows, 1)
	assert.Equal(t, int64(2), view.Rows[0].ID)
	assert.True(t, view.Rows[0].Balance.Equal(dec("-30")))
	assert.True(t, view.Totals.FinalBalance.Equal(dec("-30")))
}

func TestAggregateDateBoundsInclusive(t *testing.T) {
	f, err := NewFilter("", "", "", "2024-01-03", "2024-01-05")
	require.NoError(t, err)

	view := Aggregate(threeLines(), f)

	assert.Equal(t, []int64{3, 2}, ids(view.Rows))
}

func TestAggregateEmpty(t *testing.T) {
	view := Aggregate(nil, Filter{})

	assert.Empty(t, view.Rows)
	assert.True(t, view.Totals.TotalDebit.IsZero())
	assert.True(t, view.Totals.TotalCredit.IsZero())
	assert.True(t, view.Totals.FinalBalance.IsZero())

	view = Aggregate(threeLines(), Filter{AccountName: "Inventory"})
	assert.Empty(t, view.Rows)
	assert.True(t, view.Totals.FinalBalance.IsZero())
}

func TestAggregateMissingAmountsAreZero(t *testing.T) {
	var lines []TransactionLine
	err := json.Unmarshal([]byte(`[
		{"id": 1, "journal_entry_id": 1, "date": "2024-01-01", "account_name": "Cash", "debit": 10, "credit": null},
		{"id": 2, "journal_entry_id": 2, "date": "2024-01-02", "account_name": "Cash"}
	]`), &lines)
	require.NoError(t, err)

	view := Aggregate(lines, Filter{})

	require.Len(t, view.Rows, 2)
	assert.Equal(t, []string{"10", "10"}, balances(view.Rows))
	assert.True(t, view.Totals.TotalCredit.IsZero())
}

func TestAggregateStableOnSameDate(t *testing.T) {
	lines := []TransactionLine{
		line(9, "2024-02-01", "Cash", "1", "0"),
		line(4, "2024-01-15", "Cash", "2", "0"),
		line(7, "2024-02-01", "Cash", "0", "5"),
		line(2, "2024-02-01", "Bank", "3", "0"),
	}

	view := Aggregate(lines, Filter{})

	assert.Equal(t, []int64{4, 9, 7, 2}, ids(view.Rows))
	assert.Equal(t, []string{"2", "3", "-2", "3"}, balances(view.Rows))
}

func TestAggregateTimestampsSortByDay(t *testing.T) {
	lines := []TransactionLine{
		line(1, "2024-03-02T08:00:00", "Cash", "1", "0"),
		line(2, "2024-03-01T23:00:00Z", "Cash", "1", "0"),
		line(3, "2024-03-02", "Cash", "1", "0"),
	}

	view := Aggregate(lines, Filter{})

	assert.Equal(t, []int64{2, 1, 3}, ids(view.Rows))
}

func TestAggregateSkipsMalformedDates(t *testing.T) {
	lines := []TransactionLine{
		line(1, "2024-01-01", "Cash", "100", "0"),
		line(2, "", "Cash", "5", "0"),
		line(3, "01/02/2024", "Cash", "7", "0"),
		line(4, "2024-01-02", "Cash", "0", "40"),
	}

	view := Aggregate(lines, Filter{})

	assert.Equal(t, []int64{1, 4}, ids(view.Rows))
	assert.Equal(t, []string{"100", "60"}, balances(view.Rows))
	require.Len(t, view.Skipped, 2)
	assert.Equal(t, int64(2), view.Skipped[0].Line.ID)
	assert.True(t, errors.Is(view.Skipped[0].Err, ErrInputShape))
	assert.True(t, errors.Is(view.Skipped[0].Err, ErrMissingDate))
	assert.True(t, errors.Is(view.Skipped[1].Err, ErrInvalidDate))
}

func TestAggregateGeneralBucket(t *testing.T) {
	lines := []TransactionLine{
		line(1, "2024-01-01", "", "10", "0"),
		line(2, "2024-01-02", "Cash", "5", "0"),
		line(3, "2024-01-03", "", "0", "4"),
	}

	view := Aggregate(lines, Filter{})

	assert.Equal(t, []string{"10", "5", "6"}, balances(view.Rows))
	assert.True(t, view.AccountBalances()[GeneralAccount].Equal(dec("6")))
}

func TestAggregateDoesNotMutateInput(t *testing.T) {
	lines := threeLines()
	before := make([]TransactionLine, len(lines))
	copy(before, lines)

	_ = Aggregate(lines, Filter{})

	assert.Equal(t, before, lines)
}

func TestAggregateIdempotent(t *testing.T) {
	lines := threeLines()
	f := Filter{SearchText: "a"}

	assert.Equal(t, Aggregate(lines, f), Aggregate(lines, f))
}

func TestAggregateProperties(t *testing.T) {
	lines := []TransactionLine{
		line(1, "2024-01-03", "Cash", "100", "0"),
		line(2, "2024-01-01", "Bank", "0", "20"),
		line(3, "2024-01-02", "Cash", "0", "35"),
		line(4, "2024-01-02", "", "12", "0"),
		line(5, "2024-01-01", "Bank", "80", "0"),
		line(6, "2024-01-04", "Cash", "0", "15.5"),
	}
	lines[0].VendorName = "Acme"
	lines[2].VendorName = "Acme"
	lines[4].EntryDesc = "opening balance"

	filters := []Filter{
		{},
		{AccountName: "Cash"},
		{VendorName: "Acme"},
		{VendorName: UnknownVendor},
		{SearchText: "OPENING"},
		{AccountName: "Bank", SearchText: "open"},
	}

	byID := make(map[int64]TransactionLine)
	for _, l := range lines {
		byID[l.ID] = l
	}

	for _, f := range filters {
		view := Aggregate(lines, f)

		assert.LessOrEqual(t, len(view.Rows), len(lines))

		sumDebit, sumCredit := decimal.Zero, decimal.Zero
		running := make(map[string]decimal.Decimal)
		for i, r := range view.Rows {
			orig, ok := byID[r.ID]
			require.True(t, ok)
			assert.Equal(t, orig, r.TransactionLine)

			d, err := r.ParsedDate()
			require.NoError(t, err)
			assert.True(t, f.Match(r.TransactionLine, d))
			if i > 0 {
				prev, _ := view.Rows[i-1].ParsedDate()
				assert.False(t, d.Before(prev))
			}

			running[r.BalanceKey()] = running[r.BalanceKey()].Add(r.Delta())
			assert.True(t, running[r.BalanceKey()].Equal(r.Balance))

			sumDebit = sumDebit.Add(r.Debit)
			sumCredit = sumCredit.Add(r.Credit)
		}
		assert.True(t, view.Totals.TotalDebit.Equal(sumDebit))
		assert.True(t, view.Totals.TotalCredit.Equal(sumCredit))
		if n := len(view.Rows); n > 0 {
			assert.True(t, view.Totals.FinalBalance.Equal(view.Rows[n-1].Balance))
		} else {
			assert.True(t, view.Totals.FinalBalance.IsZero())
		}
	}
}

func TestDistinctNames(t *testing.T) {
	lines := threeLines()
	lines[0].VendorName = "Zeta"
	lines[1].VendorName = "Acme"
	lines[2].VendorName = "Zeta"

	assert.Equal(t, []string{"Bank", "Cash"}, DistinctAccounts(lines))
	assert.Equal(t, []string{"Acme", "Zeta"}, DistinctVendors(lines))
	assert.Empty(t, DistinctVendors(nil))
}

func TestRowJSON(t *testing.T) {
	view := Aggregate(threeLines()[:1], Filter{})

	data, err := json.Marshal(view.Rows[0])
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "Cash", got["account_name"])
	assert.EqualValues(t, 100, got["balance"])
	assert.EqualValues(t, 100, got["debit"])
}

func TestAggregateSearchMatchesVendorPlaceholder(t *testing.T) {
	lines := threeLines()
	lines[1].VendorName = "Acme"

	view := Aggregate(lines, Filter{SearchText: UnknownVendor})
	assert.Len(t, view.Rows, len(lines)-1)
	for _, r := range view.Rows {
		assert.Empty(t, r.VendorName)
	}

	view = Aggregate(lines, Filter{SearchText: "acme"})
	assert.Len(t, view.Rows, 1)
}
