package user

import "context"

// Repository defines data access for user accounts.
type Repository interface {
	// CreateUser persists a new account. Fails when the email is taken.
	CreateUser(ctx context.Context, u *User) error

	// GetUserByEmail retrieves an account by its email. A missing account
	// is ErrNotFound; any other error is a store failure.
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// ListUsers returns every account.
	ListUsers(ctx context.Context) ([]*User, error)

	// UpdateUser persists changes to an existing account, keyed by email.
	UpdateUser(ctx context.Context, u *User) error
}
