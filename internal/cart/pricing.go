package cart

import (
	"math"

	"caffenio/internal/domain"
)

// IVARate fixed value-added tax, 16%.
const IVARate = 0.16

// Surcharge tables for drink customization. Names absent from a table cost
// nothing, so the base milks and the free toppings do not need entries.
var (
	milkSurcharge = map[string]float64{
		"Soya":      7,
		"Coco":      10,
		"Almendras": 10,
	}
	toppingSurcharge = map[string]float64{
		"shot": 9,
	}
)

// CustomizedPrice returns the unit price of a product with the given
// customization applied: base price + milk surcharge + per-count topping
// surcharges. Pure function; a nil customization costs the base price.
func CustomizedPrice(basePrice float64, c *domain.Customization) float64 {
	price := basePrice
	if c == nil {
		return price
	}
	price += milkSurcharge[c.MilkType]
	for _, t := range c.Toppings {
		if t.Count > 0 {
			price += toppingSurcharge[t.Name] * float64(t.Count)
		}
	}
	return price
}

// Totals разбивка суммы заказа
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

// ComputeTotals sums the cart: subtotal = Σ(unitPrice × quantity), tax is
// IVA rounded half-up to cents, discount is fixed zero (no discount engine).
// Idempotent over the same item list.
func ComputeTotals(items []domain.CartItem) Totals {
	var subtotal float64
	for _, it := range items {
		subtotal += it.UnitPrice * float64(it.Quantity)
	}
	tax := Round2(subtotal * IVARate)
	t := Totals{Subtotal: subtotal, Tax: tax, Discount: 0}
	t.Total = t.Subtotal + t.Tax - t.Discount
	return t
}

// Round2 rounds to 2 decimal places, half away from zero for the
// non-negative amounts this system deals in.
func Round2(x float64) float64 {
	return math.Floor(x*100+0.5) / 100
}
