package client

import (
	"context"
	"strconv"

	"github.com/simonvc/erpview/internal/ledger"
)

func (c *Client) ListProducts(ctx context.Context) ([]ledger.Product, error) {
	var result []ledger.Product
	if err := c.get(ctx, "/products", &result); err != nil {
		return nil, err
	}
	return result, nil
}

func productBody(p *ledger.Product) map[string]any {
	return map[string]any{
		"name":                p.Name,
		"description":         optString(p.Description),
		"quantity_on_hand":    p.QuantityOnHand,
		"reorder_level":       p.ReorderLevel,
		"is_daily_consumable": p.IsDailyConsumable,
	}
}

func (c *Client) CreateProduct(ctx context.Context, p *ledger.Product) (*ledger.Product, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	var result ledger.Product
	if err := c.post(ctx, "/products", productBody(p), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateProduct replaces every field of product id.
func (c *Client) UpdateProduct(ctx context.Context, id int64, p *ledger.Product) (*ledger.Product, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	var result ledger.Product
	if err := c.put(ctx, "/products/"+strconv.FormatInt(id, 10), productBody(p), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ListStockMoves(ctx context.Context) ([]ledger.StockMove, error) {
	var result []ledger.StockMove
	if err := c.get(ctx, "/stock_moves", &result); err != nil {
		return nil, err
	}
	return result, nil
}

// CreateStockMove records a receipt or issue and returns it with the
// product's new stock level.
func (c *Client) CreateStockMove(ctx context.Context, m *ledger.StockMove) (*ledger.StockMove, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	date, _ := ledger.NormalizeDate(m.Date)
	body := map[string]any{
		"product_id":    m.ProductID,
		"warehouse_id":  m.WarehouseID,
		"department_id": m.DepartmentID,
		"date":          date,
		"quantity":      m.Quantity,
		"move_type":     m.MoveType,
		"reference":     optString(m.Reference),
		"purpose":       optString(m.Purpose),
	}
	var result ledger.StockMove
	if err := c.post(ctx, "/stock_moves", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) InventoryReport(ctx context.Context) ([]ledger.InventoryItem, error) {
	var result []ledger.InventoryItem
	if err := c.get(ctx, "/inventory_report", &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) ListAssets(ctx context.Context) ([]ledger.Asset, error) {
	var result []ledger.Asset
	if err := c.get(ctx, "/assets", &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) CreateAsset(ctx context.Context, a *ledger.Asset) (*ledger.Asset, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	var purchased any
	if a.PurchaseDate != "" {
		purchased, _ = ledger.NormalizeDate(a.PurchaseDate)
	}
	body := map[string]any{
		"name":              a.Name,
		"purchase_date":     purchased,
		"cost":              a.Cost,
		"depreciation_rate": a.DepreciationRate,
	}
	var result ledger.Asset
	if err := c.post(ctx, "/assets", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ExpenseAnalysis(ctx context.Context) (*ledger.ExpenseAnalysis, error) {
	var result ledger.ExpenseAnalysis
	if err := c.get(ctx, "/expense_analysis", &result); err != nil {
		return nil, err
	}
	return &result, nil
}
