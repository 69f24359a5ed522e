package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// VendorInvoiceLine is a purchased item. Daily consumables are recorded by
// name, not by product id.
type VendorInvoiceLine struct {
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

func (l VendorInvoiceLine) Amount() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}

// VendorInvoice is a purchase invoice. Posting one creates its journal
// entry on the backend.
type VendorInvoice struct {
	ID             int64               `json:"id,omitempty"`
	VendorID       int64               `json:"vendor_id"`
	DepartmentID   *int64              `json:"department_id"`
	Date           string              `json:"date"`
	Total          decimal.Decimal     `json:"total"`
	VendorName     string              `json:"vendor_name,omitempty"`
	DepartmentName string              `json:"department_name,omitempty"`
	Lines          []VendorInvoiceLine `json:"lines"`
}

func (inv *VendorInvoice) LinesTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range inv.Lines {
		total = total.Add(l.Amount())
	}
	return total
}

func (inv *VendorInvoice) Validate() error {
	if inv.VendorID <= 0 {
		return fmt.Errorf("vendor %w", ErrMissingID)
	}
	if _, err := ParseDate(inv.Date); err != nil {
		return err
	}
	if len(inv.Lines) == 0 {
		return ErrNoInvoiceLines
	}
	for i, l := range inv.Lines {
		if strings.TrimSpace(l.ProductName) == "" {
			return fmt.Errorf("line %d: product %w", i+1, ErrEmptyName)
		}
		if !l.Quantity.IsPositive() {
			return fmt.Errorf("line %d: quantity %w", i+1, ErrNonPositive)
		}
		if l.UnitPrice.IsNegative() {
			return fmt.Errorf("line %d: unit price: %w", i+1, ErrNegativeAmount)
		}
	}
	if !inv.Total.Equal(inv.LinesTotal()) {
		return fmt.Errorf("%w: total %s, lines %s", ErrInvoiceTotal,
			FormatAmount(inv.Total), FormatAmount(inv.LinesTotal()))
	}
	return nil
}

type SalesInvoiceItem struct {
	ID        int64           `json:"id,omitempty"`
	ProductID int64           `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

func (it SalesInvoiceItem) Amount() decimal.Decimal {
	return it.Quantity.Mul(it.Price)
}

// SalesInvoice is a customer invoice. Posting one draws the items from
// stock and books a receivable against sales revenue.
type SalesInvoice struct {
	ID             int64              `json:"id,omitempty"`
	CustomerName   string             `json:"customer_name"`
	Date           string             `json:"date"`
	Total          decimal.Decimal    `json:"total"`
	DepartmentID   int64              `json:"department_id"`
	Items          []SalesInvoiceItem `json:"items"`
	JournalEntryID *int64             `json:"journal_entry_id,omitempty"`
}

func (inv *SalesInvoice) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range inv.Items {
		total = total.Add(it.Amount())
	}
	return total
}

func (inv *SalesInvoice) Validate() error {
	if strings.TrimSpace(inv.CustomerName) == "" {
		return fmt.Errorf("customer %w", ErrEmptyName)
	}
	if _, err := ParseDate(inv.Date); err != nil {
		return err
	}
	if inv.DepartmentID <= 0 {
		return fmt.Errorf("department %w", ErrMissingID)
	}
	if len(inv.Items) == 0 {
		return ErrNoInvoiceLines
	}
	for i, it := range inv.Items {
		if it.ProductID <= 0 {
			return fmt.Errorf("item %d: product %w", i+1, ErrMissingID)
		}
		if !it.Quantity.IsPositive() {
			return fmt.Errorf("item %d: quantity %w", i+1, ErrNonPositive)
		}
		if it.Price.IsNegative() {
			return fmt.Errorf("item %d: price: %w", i+1, ErrNegativeAmount)
		}
	}
	if !inv.Total.Equal(inv.ItemsTotal()) {
		return fmt.Errorf("%w: total %s, items %s", ErrInvoiceTotal,
			FormatAmount(inv.Total), FormatAmount(inv.ItemsTotal()))
	}
	return nil
}

// Payment settles a vendor balance from a cash or bank account.
type Payment struct {
	ID             int64           `json:"id"`
	VendorID       int64           `json:"vendor_id"`
	Date           string          `json:"date"`
	Amount         decimal.Decimal `json:"amount"`
	AccountID      *int64          `json:"account_id,omitempty"`
	Reference      string          `json:"reference,omitempty"`
	JournalEntryID *int64          `json:"journal_entry_id,omitempty"`
}

// Validate checks a new payment. The paying account is required: the
// backend credits it against accounts payable.
func (p *Payment) Validate() error {
	if p.VendorID <= 0 {
		return fmt.Errorf("vendor %w", ErrMissingID)
	}
	if _, err := ParseDate(p.Date); err != nil {
		return err
	}
	if !p.Amount.IsPositive() {
		return fmt.Errorf("amount %w", ErrNonPositive)
	}
	if p.AccountID == nil || *p.AccountID <= 0 {
		return fmt.Errorf("paying account %w", ErrMissingID)
	}
	return nil
}
