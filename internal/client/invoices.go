package client

import (
	"context"
	"strconv"

	"github.com/simonvc/erpview/internal/ledger"
)

func (c *Client) ListVendorInvoices(ctx context.Context) ([]ledger.VendorInvoice, error) {
	var result []ledger.VendorInvoice
	if err := c.get(ctx, "/vendor_invoices", &result); err != nil {
		return nil, err
	}
	return result, nil
}

// CreateVendorInvoice posts a purchase of daily consumables. The backend
// books the matching journal entry.
func (c *Client) CreateVendorInvoice(ctx context.Context, inv *ledger.VendorInvoice) (*ledger.VendorInvoice, error) {
	if err := inv.Validate(); err != nil {
		return nil, err
	}
	date, _ := ledger.NormalizeDate(inv.Date)
	lines := make([]map[string]any, 0, len(inv.Lines))
	for _, l := range inv.Lines {
		lines = append(lines, map[string]any{
			"product_name": l.ProductName,
			"quantity":     l.Quantity,
			"unit_price":   l.UnitPrice,
		})
	}
	body := map[string]any{
		"vendor_id":     inv.VendorID,
		"department_id": inv.DepartmentID,
		"date":          date,
		"total":         inv.Total,
		"lines":         lines,
	}
	var result ledger.VendorInvoice
	if err := c.post(ctx, "/vendor_invoices_with_stock?move_type=consumable", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteVendorInvoice removes the invoice and its journal entry.
func (c *Client) DeleteVendorInvoice(ctx context.Context, id int64) error {
	return c.del(ctx, "/vendor_invoices/"+strconv.FormatInt(id, 10))
}

func (c *Client) ListSalesInvoices(ctx context.Context) ([]ledger.SalesInvoice, error) {
	var result []ledger.SalesInvoice
	if err := c.get(ctx, "/sales_invoices", &result); err != nil {
		return nil, err
	}
	return result, nil
}

// CreateSalesInvoice posts a customer invoice, issuing its items from
// warehouseID.
func (c *Client) CreateSalesInvoice(ctx context.Context, inv *ledger.SalesInvoice, warehouseID int64) (*ledger.SalesInvoice, error) {
	if err := inv.Validate(); err != nil {
		return nil, err
	}
	if warehouseID <= 0 {
		warehouseID = 1
	}
	date, _ := ledger.NormalizeDate(inv.Date)
	items := make([]map[string]any, 0, len(inv.Items))
	for _, it := range inv.Items {
		items = append(items, map[string]any{
			"product_id": it.ProductID,
			"quantity":   it.Quantity,
			"price":      it.Price,
		})
	}
	body := map[string]any{
		"customer_name": inv.CustomerName,
		"date":          date,
		"total":         inv.Total,
		"department_id": inv.DepartmentID,
		"items":         items,
	}
	var result ledger.SalesInvoice
	path := "/sales_invoices_with_stock?warehouse_id=" + strconv.FormatInt(warehouseID, 10)
	if err := c.post(ctx, path, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteSalesInvoice removes the invoice, its stock moves and its journal
// entry.
func (c *Client) DeleteSalesInvoice(ctx context.Context, id int64) error {
	return c.del(ctx, "/sales_invoices/"+strconv.FormatInt(id, 10))
}

func (c *Client) ListPayments(ctx context.Context) ([]ledger.Payment, error) {
	var result []ledger.Payment
	if err := c.get(ctx, "/payments", &result); err != nil {
		return nil, err
	}
	return result, nil
}

// CreatePayment pays a vendor from the given account.
func (c *Client) CreatePayment(ctx context.Context, p *ledger.Payment) (*ledger.Payment, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	date, _ := ledger.NormalizeDate(p.Date)
	body := map[string]any{
		"vendor_id":  p.VendorID,
		"date":       date,
		"amount":     p.Amount,
		"account_id": p.AccountID,
		"reference":  optString(p.Reference),
	}
	var result ledger.Payment
	if err := c.post(ctx, "/payments", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeletePayment removes the payment and its journal entry.
func (c *Client) DeletePayment(ctx context.Context, id int64) error {
	return c.del(ctx, "/payments/"+strconv.FormatInt(id, 10))
}
