package ledger

import "github.com/shopspring/decimal"

// TrialBalanceLine is one account row of the backend's trial balance.
type TrialBalanceLine struct {
	ID     int64           `json:"id"`
	Name   string          `json:"name"`
	Debit  decimal.Decimal `json:"debit"`
	Credit decimal.Decimal `json:"credit"`
}

type TrialBalance struct {
	Lines       []TrialBalanceLine
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Balanced    bool
}

// NewTrialBalance totals the backend's per-account rows.
func NewTrialBalance(lines []TrialBalanceLine) *TrialBalance {
	tb := &TrialBalance{Lines: lines}
	for _, l := range lines {
		tb.TotalDebit = tb.TotalDebit.Add(l.Debit)
		tb.TotalCredit = tb.TotalCredit.Add(l.Credit)
	}
	tb.Balanced = tb.TotalDebit.Equal(tb.TotalCredit)
	return tb
}

type IncomeStatement struct {
	Revenues  decimal.Decimal `json:"revenues"`
	Expenses  decimal.Decimal `json:"expenses"`
	NetIncome decimal.Decimal `json:"net_income"`
}

type BalanceSheet struct {
	Assets      decimal.Decimal `json:"assets"`
	Liabilities decimal.Decimal `json:"liabilities"`
	Equity      decimal.Decimal `json:"equity"`
}

// Balanced reports whether assets equal liabilities plus equity. The
// backend's equity excludes current-period income, so an open period shows
// a difference equal to net income.
func (bs *BalanceSheet) Balanced() bool {
	return bs.Assets.Equal(bs.Liabilities.Add(bs.Equity))
}

// Difference is assets minus liabilities and equity.
func (bs *BalanceSheet) Difference() decimal.Decimal {
	return bs.Assets.Sub(bs.Liabilities.Add(bs.Equity))
}
