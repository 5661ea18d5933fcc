package cart

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"caffenio/internal/domain"
)

// ErrInvalidItem rejects items without a positive unit price.
var ErrInvalidItem = errors.New("invalid cart item")

// Cart накапливает позиции текущего заказа и считает цены. Single-threaded
// by design: it is driven by kiosk UI events. Every mutation saves the full
// item list to the store so state survives a reload.
type Cart struct {
	store Store
	items []domain.CartItem
}

// New builds a cart over the given slot, restoring saved items if present.
func New(ctx context.Context, store Store) (*Cart, error) {
	items, ok, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		items = nil
	}
	return &Cart{store: store, items: items}, nil
}

// AddItem appends the product as a new entry with quantity 1, or increments
// the quantity when an entry with the same id is already in the cart. The
// item's own Quantity field is ignored.
func (c *Cart) AddItem(ctx context.Context, item domain.CartItem) error {
	if item.UnitPrice <= 0 {
		return ErrInvalidItem
	}
	for i := range c.items {
		if c.items[i].ID == item.ID {
			c.items[i].Quantity++
			return c.save(ctx)
		}
	}
	item.Quantity = 1
	c.items = append(c.items, item)
	return c.save(ctx)
}

// UpdateQuantity sets the entry's quantity; qty <= 0 removes the entry.
func (c *Cart) UpdateQuantity(ctx context.Context, itemID string, qty int64) error {
	if qty <= 0 {
		return c.RemoveItem(ctx, itemID)
	}
	for i := range c.items {
		if c.items[i].ID == itemID {
			c.items[i].Quantity = qty
			break
		}
	}
	return c.save(ctx)
}

// RemoveItem deletes the entry. Idempotent: unknown ids are a no-op.
func (c *Cart) RemoveItem(ctx context.Context, itemID string) error {
	kept := c.items[:0]
	for _, it := range c.items {
		if it.ID != itemID {
			kept = append(kept, it)
		}
	}
	c.items = kept
	return c.save(ctx)
}

// ReplaceItem swaps a customized entry for a re-customized one: the old
// entry is removed and the new one inserted with its recomputed price.
func (c *Cart) ReplaceItem(ctx context.Context, oldID string, item domain.CartItem) error {
	if item.UnitPrice <= 0 {
		return ErrInvalidItem
	}
	kept := c.items[:0]
	for _, it := range c.items {
		if it.ID != oldID {
			kept = append(kept, it)
		}
	}
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	c.items = append(kept, item)
	return c.save(ctx)
}

// Clear empties the cart and drops the persisted slot.
func (c *Cart) Clear(ctx context.Context) error {
	c.items = nil
	return c.store.Delete(ctx)
}

// Items returns a copy of the current entries, in insertion order.
func (c *Cart) Items() []domain.CartItem {
	out := make([]domain.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// ItemCount total quantity across all entries.
func (c *Cart) ItemCount() int64 {
	var n int64
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

// Totals computes the current subtotal/tax/discount/total.
func (c *Cart) Totals() Totals {
	return ComputeTotals(c.items)
}

// Checkout snapshots the cart into immutable order lines plus totals.
// Pure: the cart itself is untouched; callers clear it once the intake
// service confirms the order.
func (c *Cart) Checkout() ([]domain.OrderLine, Totals) {
	lines := make([]domain.OrderLine, 0, len(c.items))
	for _, it := range c.items {
		lines = append(lines, domain.OrderLine{
			ProductID:     ProductIDFromItemID(it.ID, it.ProductID),
			ProductName:   it.Name,
			Quantity:      it.Quantity,
			UnitPrice:     it.UnitPrice,
			LineSubtotal:  it.UnitPrice * float64(it.Quantity),
			Customization: it.Customization,
		})
	}
	return lines, ComputeTotals(c.items)
}

func (c *Cart) save(ctx context.Context) error {
	return c.store.Save(ctx, c.items)
}

// CustomizedItemID builds the synthetic id for a customized entry, so the
// same base product can sit in the cart both plain and customized.
func CustomizedItemID(productID int64, now time.Time) string {
	return fmt.Sprintf("%d-%d", productID, now.UnixMilli())
}

// ProductIDFromItemID recovers the product id from a synthetic entry id.
// Plain entries carry the product id directly; fallback covers items whose
// id is not numeric at all.
func ProductIDFromItemID(itemID string, fallback int64) int64 {
	head, _, _ := strings.Cut(itemID, "-")
	if id, err := strconv.ParseInt(head, 10, 64); err == nil {
		return id
	}
	return fallback
}
