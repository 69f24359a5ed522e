package ledger

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// The ERP API exchanges amounts as JSON numbers.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// ParseAmount converts user input such as "1,250.50" to a decimal.
// Blank input is zero.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d, nil
}

// FormatAmount renders an amount with thousands separators and two
// decimals, e.g. 1234.5 -> "1,234.50".
func FormatAmount(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return humanize.FormatFloat("#,###.##", f)
}

// FormatSigned renders negative amounts in parentheses.
func FormatSigned(d decimal.Decimal) string {
	if d.IsNegative() {
		return "(" + FormatAmount(d.Neg()) + ")"
	}
	return FormatAmount(d)
}
