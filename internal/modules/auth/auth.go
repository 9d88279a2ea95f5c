package auth

import "context"

// Roles carried in the login token.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// Identity is the caller resolved from a bearer token. A zero Identity
// (empty email) means the request is anonymous.
type Identity struct {
	Email          string `json:"email"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Role           string `json:"role"`
	Phone          string `json:"phone"`
	ProfilePicture string `json:"profilePicture"`
}

// IsAuthenticated reports whether the request carried a valid token.
func (i Identity) IsAuthenticated() bool { return i.Email != "" }

func (i Identity) IsAdmin() bool { return i.IsAuthenticated() && i.Role == RoleAdmin }

func (i Identity) IsCustomer() bool { return i.IsAuthenticated() && i.Role == RoleCustomer }

type contextKey struct{}

// WithIdentity attaches the identity to the request context.
func WithIdentity(ctx context.Context, ident Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, ident)
}

// FromContext returns the identity attached by the middleware, or a zero
// (anonymous) identity when none is present.
func FromContext(ctx context.Context) Identity {
	if ident, ok := ctx.Value(contextKey{}).(Identity); ok {
		return ident
	}
	return Identity{}
}
