package ledger

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID                int64           `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description,omitempty"`
	QuantityOnHand    decimal.Decimal `json:"quantity_on_hand"`
	ReorderLevel      decimal.Decimal `json:"reorder_level"`
	IsDailyConsumable bool            `json:"is_daily_consumable"`
}

// NeedsReorder reports whether stock has fallen to the reorder level.
func (p Product) NeedsReorder() bool {
	return p.ReorderLevel.IsPositive() && p.QuantityOnHand.LessThanOrEqual(p.ReorderLevel)
}

func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("product %w", ErrEmptyName)
	}
	if p.QuantityOnHand.IsNegative() {
		return fmt.Errorf("quantity on hand: %w", ErrNegativeAmount)
	}
	if p.ReorderLevel.IsNegative() {
		return fmt.Errorf("reorder level: %w", ErrNegativeAmount)
	}
	return nil
}

const (
	MoveIn  = "in"
	MoveOut = "out"
)

// StockMove is a receipt into or an issue from a warehouse. The backend
// fills in the names and the product's resulting stock level.
type StockMove struct {
	ID              int64           `json:"id,omitempty"`
	ProductID       int64           `json:"product_id"`
	ProductName     string          `json:"product_name,omitempty"`
	WarehouseID     int64           `json:"warehouse_id"`
	DepartmentID    int64           `json:"department_id"`
	DepartmentName  string          `json:"department_name,omitempty"`
	Date            string          `json:"date"`
	Quantity        decimal.Decimal `json:"quantity"`
	MoveType        string          `json:"move_type"`
	Reference       string          `json:"reference,omitempty"`
	Purpose         string          `json:"purpose,omitempty"`
	CurrentQuantity decimal.Decimal `json:"current_quantity"`
	ReorderLevel    decimal.Decimal `json:"reorder_level"`
	LowStockAlert   bool            `json:"low_stock_alert"`
}

func (m *StockMove) Validate() error {
	if m.ProductID <= 0 {
		return fmt.Errorf("product %w", ErrMissingID)
	}
	if m.WarehouseID <= 0 {
		return fmt.Errorf("warehouse %w", ErrMissingID)
	}
	if m.DepartmentID <= 0 {
		return fmt.Errorf("department %w", ErrMissingID)
	}
	if _, err := ParseDate(m.Date); err != nil {
		return err
	}
	if !m.Quantity.IsPositive() {
		return fmt.Errorf("quantity %w", ErrNonPositive)
	}
	if m.MoveType != MoveIn && m.MoveType != MoveOut {
		return fmt.Errorf("%w: %q", ErrInvalidMoveType, m.MoveType)
	}
	return nil
}

// InventoryItem is one row of the backend's inventory report.
type InventoryItem struct {
	ProductID         int64           `json:"product_id"`
	Name              string          `json:"name"`
	QuantityOnHand    decimal.Decimal `json:"quantity_on_hand"`
	ReorderLevel      decimal.Decimal `json:"reorder_level"`
	IsDailyConsumable bool            `json:"is_daily_consumable"`
	LowStockAlert     bool            `json:"low_stock_alert"`
}

// Asset is a fixed asset. DepreciationRate is a percentage per year.
type Asset struct {
	ID               int64           `json:"id,omitempty"`
	Name             string          `json:"name"`
	PurchaseDate     string          `json:"purchase_date,omitempty"`
	Cost             decimal.Decimal `json:"cost"`
	DepreciationRate decimal.Decimal `json:"depreciation_rate"`
}

func (a *Asset) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("asset %w", ErrEmptyName)
	}
	if a.PurchaseDate != "" {
		if _, err := ParseDate(a.PurchaseDate); err != nil {
			return fmt.Errorf("purchase date: %w", err)
		}
	}
	if a.Cost.IsNegative() {
		return fmt.Errorf("cost: %w", ErrNegativeAmount)
	}
	if a.DepreciationRate.IsNegative() || a.DepreciationRate.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("depreciation rate must be between 0 and 100, got %s", a.DepreciationRate)
	}
	return nil
}

// AnnualDepreciation is cost times the yearly rate.
func (a Asset) AnnualDepreciation() decimal.Decimal {
	return a.Cost.Mul(a.DepreciationRate).Div(decimal.NewFromInt(100))
}

type MonthlyAmount struct {
	Month  string          `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

// ExpenseAnalysis is expense account movement grouped by account and month.
type ExpenseAnalysis struct {
	TotalExpenses decimal.Decimal            `json:"total_expenses"`
	ByAccount     map[string][]MonthlyAmount `json:"by_account"`
}

type AccountExpense struct {
	Account string
	Total   decimal.Decimal
	Months  []MonthlyAmount
}

// Ranked returns the accounts ordered by total expense, largest first,
// ties broken by name.
func (e *ExpenseAnalysis) Ranked() []AccountExpense {
	out := make([]AccountExpense, 0, len(e.ByAccount))
	for name, months := range e.ByAccount {
		ae := AccountExpense{Account: name, Total: decimal.Zero, Months: months}
		for _, m := range months {
			ae.Total = ae.Total.Add(m.Amount)
		}
		out = append(out, ae)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}
		return out[i].Account < out[j].Account
	})
	return out
}
