package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type AccountType string

const (
	TypeAsset     AccountType = "Asset"
	TypeLiability AccountType = "Liability"
	TypeEquity    AccountType = "Equity"
	TypeRevenue   AccountType = "Revenue"
	TypeExpense   AccountType = "Expense"
)

var AllAccountTypes = []AccountType{
	TypeAsset,
	TypeLiability,
	TypeEquity,
	TypeRevenue,
	TypeExpense,
}

// Account is an entry in the chart of accounts. Balance is computed by the
// backend in the account's normal direction.
type Account struct {
	ID       int64           `json:"id,omitempty"`
	Code     string          `json:"code"`
	Name     string          `json:"name"`
	Type     AccountType     `json:"type"`
	ParentID *int64          `json:"parent_id,omitempty"`
	Balance  decimal.Decimal `json:"balance"`
}

// Validate checks the required fields before an account is sent to the backend.
func (a *Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("account %w", ErrEmptyName)
	}
	if strings.TrimSpace(a.Code) == "" {
		return ErrEmptyAccountCode
	}
	if !ValidAccountType(a.Type) {
		return fmt.Errorf("%w: %q", ErrInvalidAccountType, a.Type)
	}
	if a.Balance.IsNegative() {
		return fmt.Errorf("opening balance: %w", ErrNegativeAmount)
	}
	return nil
}

// ParseAccountType accepts any casing of a known account type.
func ParseAccountType(s string) (AccountType, error) {
	for _, t := range AllAccountTypes {
		if strings.EqualFold(string(t), strings.TrimSpace(s)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidAccountType, s)
}

func ValidAccountType(t AccountType) bool {
	for _, at := range AllAccountTypes {
		if at == t {
			return true
		}
	}
	return false
}

// NormalBalance returns "Debit" or "Credit" for the account type.
// Assets and Expenses are debit-normal; Liabilities, Equity, and Revenue are credit-normal.
func NormalBalance(t AccountType) string {
	switch t {
	case TypeAsset, TypeExpense:
		return "Debit"
	default:
		return "Credit"
	}
}

type Vendor struct {
	ID      int64  `json:"id,omitempty"`
	Name    string `json:"name"`
	Contact string `json:"contact,omitempty"`
}

func (v *Vendor) Validate() error {
	if strings.TrimSpace(v.Name) == "" {
		return fmt.Errorf("vendor %w", ErrEmptyName)
	}
	return nil
}
