package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// GeneralAccount is the balance bucket shared by lines with no account name.
const GeneralAccount = "general"

// UnknownVendor is displayed for lines with no vendor. Filtering on it
// selects exactly those lines.
const UnknownVendor = "—"

// DateLayout is the calendar date format used by the ERP API.
const DateLayout = "2006-01-02"

var dateLayouts = []string{
	DateLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// TransactionLine is one debit or credit movement within a journal entry,
// as returned by the ERP's /transaction_lines_with_vendor endpoint.
type TransactionLine struct {
	ID             int64           `json:"id"`
	JournalEntryID int64           `json:"journal_entry_id"`
	AccountID      int64           `json:"account_id,omitempty"`
	Date           string          `json:"date"`
	EntryDesc      string          `json:"entry_desc,omitempty"`
	AccountName    string          `json:"account_name,omitempty"`
	VendorName     string          `json:"vendor_name,omitempty"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
}

// BalanceKey returns the running-balance bucket the line belongs to.
func (l TransactionLine) BalanceKey() string {
	if l.AccountName == "" {
		return GeneralAccount
	}
	return l.AccountName
}

// VendorDisplay returns the vendor name, or UnknownVendor when absent.
func (l TransactionLine) VendorDisplay() string {
	if l.VendorName == "" {
		return UnknownVendor
	}
	return l.VendorName
}

// Delta is debit minus credit.
func (l TransactionLine) Delta() decimal.Decimal {
	return l.Debit.Sub(l.Credit)
}

// ParsedDate returns the line's calendar date. A missing or unparseable
// date is reported as an error wrapping ErrInputShape.
func (l TransactionLine) ParsedDate() (time.Time, error) {
	if strings.TrimSpace(l.Date) == "" {
		return time.Time{}, fmt.Errorf("%w: line %d: %w", ErrInputShape, l.ID, ErrMissingDate)
	}
	d, err := ParseDate(l.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: line %d: %w", ErrInputShape, l.ID, err)
	}
	return d, nil
}

// ParseDate parses a date or timestamp and truncates it to a UTC calendar day.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// NormalizeDate parses s like ParseDate and returns it in DateLayout, the
// only form the backend's date fields accept.
func NormalizeDate(s string) (string, error) {
	d, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return d.Format(DateLayout), nil
}
