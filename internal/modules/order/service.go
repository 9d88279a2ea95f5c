package order

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/LakshanRasogha/cigaroElectro-backend/internal/modules/auth"
	"github.com/LakshanRasogha/cigaroElectro-backend/internal/modules/catalog"
	"github.com/LakshanRasogha/cigaroElectro-backend/internal/modules/user"
)

var (
	ErrUnauthenticated  = errors.New("please log in to place an order")
	ErrForbidden        = errors.New("unauthorized")
	ErrProfileNotFound  = errors.New("user profile not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrVariantNotFound  = errors.New("variant not found")
	ErrOutOfStock       = errors.New("out of stock")
	ErrInvalidQuantity  = errors.New("quantity must be a positive integer")
	ErrShippingRequired = errors.New("shipping address and phone are required")
)

const orderIDPrefix = "ORD"

// Service defines the order business logic.
type Service interface {
	// PlaceOrder validates the items against the catalog, snapshots pricing,
	// allocates the next order identifier and persists the order.
	PlaceOrder(ctx context.Context, ident auth.Identity, req CreateOrderRequest) (*Order, error)

	// GetQuote prices the items without persisting anything. No auth needed.
	GetQuote(ctx context.Context, req QuoteRequest) (*Quote, error)

	// ListOrders returns all orders for admins, the caller's own orders for
	// customers, and fails for anyone else. Newest first.
	ListOrders(ctx context.Context, ident auth.Identity) ([]*Order, error)

	// UpdateStatus sets an order's status under admin authority and derives
	// the approval flag.
	UpdateStatus(ctx context.Context, ident auth.Identity, orderID, status string) (*Order, error)
}

type service struct {
	repo    Repository
	catalog catalog.Repository
	users   user.Repository
}

// NewService creates a new order service. The catalog repository backs item
// validation and pricing; the user repository backs default-address fallback.
func NewService(repo Repository, catalogRepo catalog.Repository, userRepo user.Repository) Service {
	return &service{repo: repo, catalog: catalogRepo, users: userRepo}
}

// priceItems validates each requested item in input order against the catalog
// and builds the line snapshots. First invalid item aborts the whole batch.
// The catalog is only read; stock is checked, never decremented.
func (s *service) priceItems(ctx context.Context, items []ItemRequest) ([]OrderItem, float64, error) {
	var lines []OrderItem
	var total float64

	for _, item := range items {
		if item.Qty <= 0 {
			return nil, 0, fmt.Errorf("item %s: %w", item.Key, ErrInvalidQuantity)
		}
		p, err := s.catalog.GetByKey(ctx, item.Key)
		if err != nil {
			if errors.Is(err, catalog.ErrProductNotFound) {
				return nil, 0, fmt.Errorf("product %s: %w", item.Key, ErrProductNotFound)
			}
			// store failure, not a missing product
			return nil, 0, err
		}
		v := p.FindVariant(item.VKey)
		if v == nil {
			return nil, 0, fmt.Errorf("variant %s: %w", item.VKey, ErrVariantNotFound)
		}
		if !v.Availability || v.Stock < item.Qty {
			return nil, 0, fmt.Errorf("variant %s: %w", v.Flavor, ErrOutOfStock)
		}

		// Delivery fee is charged per line, not per order.
		lineTotal := p.BasePrice*float64(item.Qty) + p.DeliveryFee
		total += lineTotal

		lines = append(lines, OrderItem{
			ProductKey:  p.Key,
			Name:        p.Name,
			BasePrice:   p.BasePrice,
			DeliveryFee: p.DeliveryFee,
			Variant: VariantSnapshot{
				VKey:         v.VKey,
				Flavor:       v.Flavor,
				VariantImage: v.VariantImage,
				Qty:          item.Qty,
			},
		})
	}
	return lines, total, nil
}

func (s *service) PlaceOrder(ctx context.Context, ident auth.Identity, req CreateOrderRequest) (*Order, error) {
	if !ident.IsAuthenticated() {
		return nil, ErrUnauthenticated
	}

	profile, err := s.users.GetUserByEmail(ctx, ident.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	ship := mergeShipping(req.ShippingAddress, profile)
	if ship.Address == "" || ship.Phone == "" {
		return nil, ErrShippingRequired
	}

	orderID, err := s.nextOrderID(ctx)
	if err != nil {
		return nil, err
	}

	lines, total, err := s.priceItems(ctx, req.OrderedItems)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	o := &Order{
		OrderID:         orderID,
		Email:           ident.Email,
		FirstName:       profile.FirstName,
		LastName:        profile.LastName,
		ShippingAddress: ship,
		OrderDate:       now,
		OrderedItems:    lines,
		IsApproved:      false,
		Status:          StatusPending,
		TotalAmount:     total,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}
	return o, nil
}

func (s *service) GetQuote(ctx context.Context, req QuoteRequest) (*Quote, error) {
	lines, total, err := s.priceItems(ctx, req.OrderedItems)
	if err != nil {
		return nil, err
	}

	q := &Quote{Total: total, Breakdown: make([]QuoteLine, 0, len(lines))}
	for _, line := range lines {
		q.Breakdown = append(q.Breakdown, QuoteLine{
			Name:     line.Name,
			Flavor:   line.Variant.Flavor,
			Qty:      line.Variant.Qty,
			SubTotal: line.BasePrice*float64(line.Variant.Qty) + line.DeliveryFee,
		})
	}
	return q, nil
}

func (s *service) ListOrders(ctx context.Context, ident auth.Identity) ([]*Order, error) {
	switch {
	case ident.IsAdmin():
		return s.repo.ListAll(ctx)
	case ident.IsCustomer():
		return s.repo.ListByEmail(ctx, ident.Email)
	default:
		return nil, ErrForbidden
	}
}

func (s *service) UpdateStatus(ctx context.Context, ident auth.Identity, orderID, status string) (*Order, error) {
	if !ident.IsAdmin() {
		return nil, ErrForbidden
	}

	// The repository reports a missing row as ErrOrderNotFound; anything
	// else is a store failure and passes through.
	o, err := s.repo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	// The status string is stored as given. Only the recognized values move
	// the approval flag; anything else leaves it untouched.
	o.Status = status
	switch strings.ToLower(status) {
	case "approved":
		o.IsApproved = true
	case "rejected", "cancelled":
		o.IsApproved = false
	}
	o.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateStatus(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

// mergeShipping builds the effective address field by field: a non-empty
// override value wins, everything else falls back to the profile defaults.
func mergeShipping(override *ShippingAddressInput, profile *user.User) ShippingAddress {
	ship := ShippingAddress{
		Address:    profile.Address.Address,
		City:       profile.Address.City,
		PostalCode: profile.Address.PostalCode,
		Phone:      profile.Phone,
	}
	if override != nil {
		if override.Address != "" {
			ship.Address = override.Address
		}
		if override.City != "" {
			ship.City = override.City
		}
		if override.PostalCode != "" {
			ship.PostalCode = override.PostalCode
		}
		if override.Phone != "" {
			ship.Phone = override.Phone
		}
	}
	return ship
}

// nextOrderID allocates the next sequential identifier by parsing the suffix
// of the most recently dated order. The read and the later insert are not
// transactionally linked, so concurrent creates can race; see DESIGN.md.
func (s *service) nextOrderID(ctx context.Context) (string, error) {
	last, err := s.repo.Latest(ctx)
	if err != nil {
		return "", err
	}
	next := 1
	if last != nil && last.OrderID != "" {
		if n, perr := strconv.Atoi(strings.TrimPrefix(last.OrderID, orderIDPrefix)); perr == nil {
			next = n + 1
		}
	}
	// %04d widens on its own once the counter passes 9999.
	return fmt.Sprintf("%s%04d", orderIDPrefix, next), nil
}
