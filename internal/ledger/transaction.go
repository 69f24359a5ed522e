package ledger

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// JournalEntry is a dated, described group of transaction lines.
type JournalEntry struct {
	ID          int64  `json:"id"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

// DraftLine is one line of a journal entry being composed.
type DraftLine struct {
	AccountID int64           `json:"account_id"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// JournalDraft is a new journal entry before it is posted to the backend's
// adjusting-entry endpoint.
type JournalDraft struct {
	Date        string      `json:"date"`
	Description string      `json:"description"`
	Lines       []DraftLine `json:"lines"`
}

// Totals returns the running debit and credit totals of the draft.
func (d *JournalDraft) Totals() (debit, credit decimal.Decimal) {
	for _, l := range d.Lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit, credit
}

// Difference is total debits minus total credits; zero when balanced.
func (d *JournalDraft) Difference() decimal.Decimal {
	debit, credit := d.Totals()
	return debit.Sub(credit)
}

// Validate checks draft invariants: a valid date, a description, at least
// 2 one-sided non-negative lines, and debits equal to credits.
func (d *JournalDraft) Validate() error {
	if _, err := ParseDate(d.Date); err != nil {
		return err
	}
	if strings.TrimSpace(d.Description) == "" {
		return ErrEmptyDescription
	}
	if len(d.Lines) < 2 {
		return ErrTooFewLines
	}
	for i, l := range d.Lines {
		if l.AccountID <= 0 {
			return fmt.Errorf("line %d: %w", i+1, ErrMissingAccount)
		}
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return fmt.Errorf("line %d: %w", i+1, ErrNegativeAmount)
		}
		if l.Debit.IsPositive() && l.Credit.IsPositive() {
			return fmt.Errorf("line %d: %w", i+1, ErrTwoSidedLine)
		}
		if l.Debit.IsZero() && l.Credit.IsZero() {
			return fmt.Errorf("line %d: %w", i+1, ErrEmptyLine)
		}
	}
	if diff := d.Difference(); !diff.IsZero() {
		return fmt.Errorf("%w: difference %s", ErrUnbalancedEntry, FormatAmount(diff))
	}
	return nil
}

// SortNewestFirst orders entries by date, then id, both descending.
// Entries with unparseable dates sink to the bottom.
func SortNewestFirst(entries []JournalEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		di, erri := ParseDate(entries[i].Date)
		dj, errj := ParseDate(entries[j].Date)
		switch {
		case erri != nil || errj != nil:
			return erri == nil && errj != nil
		case !di.Equal(dj):
			return di.After(dj)
		default:
			return entries[i].ID > entries[j].ID
		}
	})
}
