package catalog

import (
	"context"
	"errors"

	"github.com/LakshanRasogha/cigaroElectro-backend/internal/modules/auth"
	"github.com/google/uuid"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrVariantNotFound = errors.New("variant not found")
	ErrForbidden       = errors.New("admin access required")
)

const defaultDeliveryFee = 400

// VariantInput describes a variant in a create/update payload.
type VariantInput struct {
	VKey         string   `json:"vKey" validate:"required"`
	Flavor       string   `json:"flavor" validate:"required"`
	Emoji        string   `json:"emoji"`
	Stock        int      `json:"stock" validate:"min=0"`
	Availability *bool    `json:"availability"`
	VariantImage []string `json:"variantImage"`
}

// SaveProductRequest holds the data for creating or updating a product.
type SaveProductRequest struct {
	Key          string         `json:"key" validate:"required"`
	Name         string         `json:"name" validate:"required"`
	Tagline      string         `json:"tagline"`
	BasePrice    float64        `json:"basePrice" validate:"min=0"`
	DeliveryFee  *float64       `json:"deliveryFee"`
	Category     string         `json:"category"`
	Description  string         `json:"description"`
	ProductImage []string       `json:"productImage"`
	Variants     []VariantInput `json:"variants" validate:"required,min=1,dive"`
}

// Service defines catalog business logic.
type Service interface {
	// AddProduct creates a catalog entry. Admin only.
	AddProduct(ctx context.Context, ident auth.Identity, req SaveProductRequest) (*Product, error)

	// ListProducts returns the whole catalog for admins; everyone else only
	// sees products with at least one available variant.
	ListProducts(ctx context.Context, ident auth.Identity) ([]*Product, error)

	// GetProduct retrieves a product by key, case-insensitively.
	GetProduct(ctx context.Context, key string) (*Product, error)

	// UpdateProduct replaces a product's fields and variants. Admin only.
	UpdateProduct(ctx context.Context, ident auth.Identity, key string, req SaveProductRequest) (*Product, error)

	// DeleteProduct removes a product. Admin only.
	DeleteProduct(ctx context.Context, ident auth.Identity, key string) error

	// GetVariant retrieves a single variant of a product.
	GetVariant(ctx context.Context, key, vKey string) (*Variant, error)

	// DeleteVariant removes a single variant. Admin only.
	DeleteVariant(ctx context.Context, ident auth.Identity, key, vKey string) error
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) AddProduct(ctx context.Context, ident auth.Identity, req SaveProductRequest) (*Product, error) {
	if !ident.IsAdmin() {
		return nil, ErrForbidden
	}
	p := buildProduct(req)
	p.ID = uuid.New()
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) ListProducts(ctx context.Context, ident auth.Identity) ([]*Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if ident.IsAdmin() {
		return products, nil
	}
	visible := make([]*Product, 0, len(products))
	for _, p := range products {
		if p.HasAvailableVariant() {
			visible = append(visible, p)
		}
	}
	return visible, nil
}

func (s *service) GetProduct(ctx context.Context, key string) (*Product, error) {
	p, err := s.repo.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) UpdateProduct(ctx context.Context, ident auth.Identity, key string, req SaveProductRequest) (*Product, error) {
	if !ident.IsAdmin() {
		return nil, ErrForbidden
	}
	existing, err := s.repo.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	p := buildProduct(req)
	p.ID = existing.ID
	p.Key = existing.Key
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) DeleteProduct(ctx context.Context, ident auth.Identity, key string) error {
	if !ident.IsAdmin() {
		return ErrForbidden
	}
	if _, err := s.repo.GetByKey(ctx, key); err != nil {
		return err
	}
	return s.repo.Delete(ctx, key)
}

func (s *service) GetVariant(ctx context.Context, key, vKey string) (*Variant, error) {
	p, err := s.repo.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	v := p.FindVariant(vKey)
	if v == nil {
		return nil, ErrVariantNotFound
	}
	return v, nil
}

func (s *service) DeleteVariant(ctx context.Context, ident auth.Identity, key, vKey string) error {
	if !ident.IsAdmin() {
		return ErrForbidden
	}
	if _, err := s.GetVariant(ctx, key, vKey); err != nil {
		return err
	}
	return s.repo.DeleteVariant(ctx, key, vKey)
}

func buildProduct(req SaveProductRequest) *Product {
	fee := float64(defaultDeliveryFee)
	if req.DeliveryFee != nil {
		fee = *req.DeliveryFee
	}
	p := &Product{
		Key:          req.Key,
		Name:         req.Name,
		Tagline:      req.Tagline,
		BasePrice:    req.BasePrice,
		DeliveryFee:  fee,
		Category:     req.Category,
		Description:  req.Description,
		ProductImage: req.ProductImage,
	}
	for _, in := range req.Variants {
		available := true
		if in.Availability != nil {
			available = *in.Availability
		}
		p.Variants = append(p.Variants, &Variant{
			ID:           uuid.New(),
			VKey:         in.VKey,
			Flavor:       in.Flavor,
			Emoji:        in.Emoji,
			Stock:        in.Stock,
			Availability: available,
			VariantImage: in.VariantImage,
		})
	}
	return p
}
