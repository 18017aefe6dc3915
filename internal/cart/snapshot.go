package cart

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/packfinderz-storefront/pkg/cartapi"
)

// LineItem is a single product entry in the cart. The unit price is the
// snapshot taken at add time; the stock quantity is informational only
// and never caps the requested quantity.
type LineItem struct {
	ID            string
	ProductID     string
	ProductName   string
	SKU           string
	Brand         string
	SupplierName  string
	UnitPrice     decimal.Decimal
	Quantity      int
	StockQuantity int
}

// LineTotal derives the line's extended price. It is never stored.
func (l LineItem) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Snapshot is the fully materialized view of the cart. Aggregates are
// always derived from the items, never cached across a mutation.
type Snapshot struct {
	Items []LineItem
}

// Subtotal sums the line totals over all items.
func (s Snapshot) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range s.Items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	return subtotal
}

// TotalQuantity sums the quantities over all items.
func (s Snapshot) TotalQuantity() int {
	total := 0
	for _, item := range s.Items {
		total += item.Quantity
	}
	return total
}

// IsEmpty reports whether the cart holds no items.
func (s Snapshot) IsEmpty() bool {
	return len(s.Items) == 0
}

// Find returns the line item with the given id, if present.
func (s Snapshot) Find(lineItemID string) (LineItem, bool) {
	for _, item := range s.Items {
		if item.ID == lineItemID {
			return item, true
		}
	}
	return LineItem{}, false
}

func snapshotFromPayload(payload *cartapi.CartPayload) Snapshot {
	if payload == nil {
		return Snapshot{}
	}
	items := make([]LineItem, 0, len(payload.CartItems))
	for _, wire := range payload.CartItems {
		items = append(items, LineItem{
			ID:            wire.ID,
			ProductID:     wire.ProductID,
			ProductName:   wire.ProductName,
			SKU:           wire.SKU,
			Brand:         wire.Brand,
			SupplierName:  wire.SupplierName,
			UnitPrice:     wire.UnitPrice,
			Quantity:      wire.Quantity,
			StockQuantity: wire.StockQuantity,
		})
	}
	return Snapshot{Items: items}
}
