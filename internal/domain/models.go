package domain

import "time"

// Product is a catalog entry. The catalog is fixed at process start;
// unavailable products are still listed but cannot be ordered.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	IsAvailable bool    `json:"isAvailable"`
	ImageURL    string  `json:"imageUrl"`
}

// OrderStatus тип статуса заказа
type OrderStatus string

const (
	OrderStatusPending       OrderStatus = "Pending"
	OrderStatusInPreparation OrderStatus = "InPreparation"
	OrderStatusReady         OrderStatus = "Ready"
	OrderStatusDelivered     OrderStatus = "Delivered"
)

// ValidStatus reports whether s is one of the known order statuses.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusInPreparation, OrderStatusReady, OrderStatusDelivered:
		return true
	}
	return false
}

// Topping is a named extra with a count (e.g. two espresso shots).
type Topping struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// Customization holds the structured drink modifiers. Zero values mean
// "as the product comes"; only MilkType and Toppings affect the price.
type Customization struct {
	Size     string    `json:"size,omitempty"`
	Roast    string    `json:"roast,omitempty"`
	Flavor   string    `json:"flavor,omitempty"`
	MilkType string    `json:"milkType,omitempty"`
	Toppings []Topping `json:"toppings,omitempty"`
}

// CartItem is one entry in an in-progress order. Customized entries get a
// synthetic ID (product id + timestamp) so the same base product can appear
// both plain and customized. UnitPrice already includes surcharges.
type CartItem struct {
	ID            string         `json:"id"`
	ProductID     int64          `json:"productId"`
	Name          string         `json:"name"`
	UnitPrice     float64        `json:"unitPrice"`
	Quantity      int64          `json:"quantity"`
	Customization *Customization `json:"customization,omitempty"`
}

// OrderLine is a snapshot of a cart item taken at checkout. Immutable.
type OrderLine struct {
	ProductID     int64          `json:"productId"`
	ProductName   string         `json:"productName"`
	Quantity      int64          `json:"quantity"`
	UnitPrice     float64        `json:"unitPrice"`
	LineSubtotal  float64        `json:"lineSubtotal"`
	Customization *Customization `json:"customization,omitempty"`
}

// Order сущность заказа. TicketNumber is the customer-facing 4-digit id,
// unique among currently stored orders; ID is internal and monotonic.
type Order struct {
	ID           int64       `json:"id"`
	TicketNumber string      `json:"ticketNumber"`
	CustomerID   string      `json:"customerId,omitempty"`
	Subtotal     float64     `json:"subtotal"`
	Tax          float64     `json:"tax"`
	Discount     float64     `json:"discount"`
	Total        float64     `json:"total"`
	Status       OrderStatus `json:"status"`
	CreatedAt    time.Time   `json:"createdAt"`
	Items        []OrderLine `json:"items"`
}
