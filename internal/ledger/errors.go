package ledger

import "errors"

var (
	ErrInputShape         = errors.New("transaction line is malformed")
	ErrMissingDate        = errors.New("transaction line has no date")
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidDateRange   = errors.New("date range start is after its end")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrNegativeAmount     = errors.New("amount cannot be negative")
	ErrEmptyDescription   = errors.New("journal entry description is required")
	ErrTooFewLines        = errors.New("journal entry must have at least 2 lines")
	ErrUnbalancedEntry    = errors.New("journal entry debits and credits do not balance")
	ErrTwoSidedLine       = errors.New("a journal line cannot carry both a debit and a credit")
	ErrEmptyLine          = errors.New("a journal line must carry a debit or a credit")
	ErrMissingAccount     = errors.New("journal line account is required")
	ErrInvalidAccountType = errors.New("invalid account type")
	ErrEmptyName          = errors.New("name is required")
	ErrEmptyAccountCode   = errors.New("account code is required")
	ErrMissingID          = errors.New("id is required")
	ErrInvalidMonth       = errors.New("invalid month, want YYYY-MM")
	ErrNonPositive        = errors.New("must be greater than zero")
	ErrNoInvoiceLines     = errors.New("invoice must have at least one line")
	ErrInvoiceTotal       = errors.New("invoice total does not match its lines")
	ErrInvalidMoveType    = errors.New(`move type must be "in" or "out"`)
)
