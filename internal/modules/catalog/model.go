package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Variant is a sellable configuration of a product, with its own stock.
type Variant struct {
	ID           uuid.UUID `json:"id"`
	VKey         string    `json:"vKey"`
	Flavor       string    `json:"flavor"`
	Emoji        string    `json:"emoji,omitempty"`
	Stock        int       `json:"stock"`
	Availability bool      `json:"availability"`
	VariantImage []string  `json:"variantImage"`
}

// Product is a catalog entry owning an ordered list of variants. The key is
// unique across the catalog and matched case-insensitively.
type Product struct {
	ID           uuid.UUID  `json:"id"`
	Key          string     `json:"key"`
	Name         string     `json:"name"`
	Tagline      string     `json:"tagline,omitempty"`
	BasePrice    float64    `json:"basePrice"`
	DeliveryFee  float64    `json:"deliveryFee"`
	Category     string     `json:"category"`
	Description  string     `json:"description,omitempty"`
	ProductImage []string   `json:"productImage"`
	Variants     []*Variant `json:"variants"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// FindVariant locates a variant by its key within the product, nil if absent.
func (p *Product) FindVariant(vKey string) *Variant {
	for _, v := range p.Variants {
		if v.VKey == vKey {
			return v
		}
	}
	return nil
}

// HasAvailableVariant reports whether anything on the product is sellable.
func (p *Product) HasAvailableVariant() bool {
	for _, v := range p.Variants {
		if v.Availability {
			return true
		}
	}
	return false
}
