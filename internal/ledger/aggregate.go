package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Row is a transaction line with its per-account running balance.
type Row struct {
	TransactionLine
	Balance decimal.Decimal `json:"balance"`
}

// Totals summarises the rows of a view.
type Totals struct {
	TotalDebit   decimal.Decimal `json:"total_debit"`
	TotalCredit  decimal.Decimal `json:"total_credit"`
	FinalBalance decimal.Decimal `json:"final_balance"`
}

// SkippedLine is a line left out of a view because it could not be placed
// in date order.
type SkippedLine struct {
	Line TransactionLine
	Err  error
}

// View is the result of aggregating a snapshot of transaction lines.
type View struct {
	Rows    []Row         `json:"rows"`
	Totals  Totals        `json:"totals"`
	Skipped []SkippedLine `json:"-"`
}

type datedLine struct {
	line TransactionLine
	date time.Time
}

// Aggregate filters lines, orders the survivors by date and attaches a
// running balance kept separately for each account. Rows of different
// accounts are interleaved chronologically, so a row's balance is that of
// its own account, not a global running total.
//
// Lines without a usable date are reported in View.Skipped and never abort
// the aggregation. The input slice is not modified.
func Aggregate(lines []TransactionLine, f Filter) View {
	var (
		kept    = make([]datedLine, 0, len(lines))
		skipped []SkippedLine
	)
	for _, l := range lines {
		d, err := l.ParsedDate()
		if err != nil {
			skipped = append(skipped, SkippedLine{Line: l, Err: err})
			continue
		}
		if !f.Match(l, d) {
			continue
		}
		kept = append(kept, datedLine{line: l, date: d})
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].date.Before(kept[j].date)
	})

	view := View{
		Rows:    make([]Row, 0, len(kept)),
		Skipped: skipped,
	}
	balances := make(map[string]decimal.Decimal)
	for _, dl := range kept {
		key := dl.line.BalanceKey()
		bal := balances[key].Add(dl.line.Delta())
		balances[key] = bal

		view.Rows = append(view.Rows, Row{TransactionLine: dl.line, Balance: bal})
		view.Totals.TotalDebit = view.Totals.TotalDebit.Add(dl.line.Debit)
		view.Totals.TotalCredit = view.Totals.TotalCredit.Add(dl.line.Credit)
	}
	if n := len(view.Rows); n > 0 {
		view.Totals.FinalBalance = view.Rows[n-1].Balance
	}
	return view
}

// AccountBalances returns the closing running balance of every account
// that appears in the view.
func (v View) AccountBalances() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, r := range v.Rows {
		out[r.BalanceKey()] = r.Balance
	}
	return out
}

// DistinctAccounts returns the sorted set of account names present in lines.
func DistinctAccounts(lines []TransactionLine) []string {
	return distinct(lines, func(l TransactionLine) string { return l.AccountName })
}

// DistinctVendors returns the sorted set of vendor names present in lines.
func DistinctVendors(lines []TransactionLine) []string {
	return distinct(lines, func(l TransactionLine) string { return l.VendorName })
}

func distinct(lines []TransactionLine, field func(TransactionLine) string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, l := range lines {
		v := field(l)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
