package order

import "context"

// Repository defines data access for orders.
type Repository interface {
	// Create persists a new order and its line snapshots atomically.
	Create(ctx context.Context, o *Order) error

	// GetByOrderID retrieves an order by its human-readable identifier.
	// A missing order is ErrOrderNotFound; any other error is a store failure.
	GetByOrderID(ctx context.Context, orderID string) (*Order, error)

	// Latest returns the most recently dated order, or nil when none exist.
	// Order-ID allocation reads it; a store-side counter could replace this
	// behind the same method.
	Latest(ctx context.Context) (*Order, error)

	// ListAll returns every order, newest first.
	ListAll(ctx context.Context) ([]*Order, error)

	// ListByEmail returns a customer's orders, newest first.
	ListByEmail(ctx context.Context, email string) ([]*Order, error)

	// UpdateStatus persists the order's status and approval flag.
	UpdateStatus(ctx context.Context, o *Order) error
}
