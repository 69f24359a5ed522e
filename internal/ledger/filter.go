package ledger

import (
	"fmt"
	"strings"
	"time"
)

// Filter selects which transaction lines appear in a ledger view.
// Zero-valued fields are inactive and never exclude a line.
type Filter struct {
	AccountName string
	VendorName  string
	SearchText  string
	DateFrom    time.Time
	DateTo      time.Time
}

// NewFilter builds a Filter from raw string inputs, as typed into a form or
// passed on a command line. Empty dates are unbounded.
func NewFilter(account, vendor, search, from, to string) (Filter, error) {
	f := Filter{
		AccountName: account,
		VendorName:  vendor,
		SearchText:  search,
	}
	if strings.TrimSpace(from) != "" {
		d, err := ParseDate(from)
		if err != nil {
			return Filter{}, fmt.Errorf("date from: %w", err)
		}
		f.DateFrom = d
	}
	if strings.TrimSpace(to) != "" {
		d, err := ParseDate(to)
		if err != nil {
			return Filter{}, fmt.Errorf("date to: %w", err)
		}
		f.DateTo = d
	}
	if err := f.Validate(); err != nil {
		return Filter{}, err
	}
	return f, nil
}

// Validate rejects an inverted date range.
func (f Filter) Validate() error {
	if !f.DateFrom.IsZero() && !f.DateTo.IsZero() && f.DateFrom.After(f.DateTo) {
		return fmt.Errorf("%w: %s > %s", ErrInvalidDateRange,
			f.DateFrom.Format(DateLayout), f.DateTo.Format(DateLayout))
	}
	return nil
}

// Active reports whether any predicate is set.
func (f Filter) Active() bool {
	return f.AccountName != "" || f.VendorName != "" || f.SearchText != "" ||
		!f.DateFrom.IsZero() || !f.DateTo.IsZero()
}

// Match reports whether a line, dated d, satisfies every active predicate.
func (f Filter) Match(l TransactionLine, d time.Time) bool {
	if f.AccountName != "" && l.AccountName != f.AccountName {
		return false
	}
	if f.VendorName != "" {
		if f.VendorName == UnknownVendor {
			if l.VendorName != "" {
				return false
			}
		} else if l.VendorName != f.VendorName {
			return false
		}
	}
	if f.SearchText != "" && !matchesSearch(l, f.SearchText) {
		return false
	}
	if !f.DateFrom.IsZero() && d.Before(f.DateFrom) {
		return false
	}
	if !f.DateTo.IsZero() && d.After(f.DateTo) {
		return false
	}
	return true
}

func matchesSearch(l TransactionLine, text string) bool {
	text = strings.ToLower(text)
	for _, field := range []string{l.EntryDesc, l.AccountName, l.VendorDisplay()} {
		if strings.Contains(strings.ToLower(field), text) {
			return true
		}
	}
	return false
}
