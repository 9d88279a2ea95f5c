package order

import "time"

// Order status values as stored. Comparisons that drive the approval flag
// are case-insensitive; the string itself is kept as given.
const (
	StatusPending   = "Pending"
	StatusApproved  = "Approved"
	StatusCancelled = "Cancelled"
	StatusRejected  = "Rejected"
)

// ShippingAddress is the delivery snapshot taken at checkout. Postal code is
// the only optional field.
type ShippingAddress struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode,omitempty"`
	Phone      string `json:"phone"`
}

// VariantSnapshot captures the chosen variant at order time.
type VariantSnapshot struct {
	VKey         string   `json:"vKey"`
	Flavor       string   `json:"flavor"`
	VariantImage []string `json:"variantImage"`
	Qty          int      `json:"qty"`
}

// OrderItem is an immutable per-line snapshot of catalog data. Later catalog
// changes never alter it.
type OrderItem struct {
	ProductKey  string          `json:"productKey"`
	Name        string          `json:"name"`
	BasePrice   float64         `json:"basePrice"`
	DeliveryFee float64         `json:"deliveryFee"`
	Variant     VariantSnapshot `json:"variant"`
}

// Order is created once at checkout. Only status, isApproved and the update
// timestamp change afterwards.
type Order struct {
	OrderID         string          `json:"orderId"`
	Email           string          `json:"email"`
	FirstName       string          `json:"firstName"`
	LastName        string          `json:"lastName"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	OrderDate       time.Time       `json:"orderDate"`
	OrderedItems    []OrderItem     `json:"orderedItems"`
	IsApproved      bool            `json:"isApproved"`
	Status          string          `json:"status"`
	TotalAmount     float64         `json:"totalAmount"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ItemRequest identifies one requested catalog variant and a quantity.
type ItemRequest struct {
	Key  string `json:"key" validate:"required"`
	VKey string `json:"vKey" validate:"required"`
	Qty  int    `json:"qty" validate:"required,min=1"`
}

// ShippingAddressInput is the optional checkout override. Present, non-empty
// fields win over the profile defaults.
type ShippingAddressInput struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Phone      string `json:"phone"`
}

// CreateOrderRequest is the payload for POST /api/orders.
type CreateOrderRequest struct {
	OrderedItems    []ItemRequest         `json:"orderedItems" validate:"required,min=1,dive"`
	ShippingAddress *ShippingAddressInput `json:"shippingAddress"`
}

// QuoteRequest is the payload for POST /api/orders/quote.
type QuoteRequest struct {
	OrderedItems []ItemRequest `json:"orderedItems" validate:"required,min=1,dive"`
}

// QuoteLine is one row of a quote breakdown.
type QuoteLine struct {
	Name     string  `json:"name"`
	Flavor   string  `json:"flavor"`
	Qty      int     `json:"qty"`
	SubTotal float64 `json:"subTotal"`
}

// Quote is a priced preview with no persisted side effect.
type Quote struct {
	Total     float64     `json:"total"`
	Breakdown []QuoteLine `json:"breakdown"`
}

// UpdateStatusRequest is the payload for the admin status endpoint.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
