package catalog

import "context"

// Repository defines data access for the product catalog.
type Repository interface {
	// Create persists a product and its variants atomically.
	Create(ctx context.Context, p *Product) error

	// GetByKey retrieves a product with its variants; the key comparison is
	// case-insensitive. A missing product is ErrProductNotFound; any other
	// error is a store failure.
	GetByKey(ctx context.Context, key string) (*Product, error)

	// List returns all products, oldest first.
	List(ctx context.Context) ([]*Product, error)

	// Update replaces a product's fields and its variant list, keyed by key.
	Update(ctx context.Context, p *Product) error

	// Delete removes a product and its variants.
	Delete(ctx context.Context, key string) error

	// DeleteVariant removes a single variant from a product.
	DeleteVariant(ctx context.Context, key, vKey string) error
}
