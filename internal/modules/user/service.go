package user

import (
	"context"
	"errors"

	"github.com/LakshanRasogha/cigaroElectro-backend/internal/modules/auth"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrEmailTaken    = errors.New("email already exists")
	ErrBlocked       = errors.New("your account is blocked, please contact the admin")
	ErrBadCredential = errors.New("invalid email or password")
	ErrForbidden     = errors.New("unauthorized access")
)

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Email          string  `json:"email" validate:"required,email"`
	Password       string  `json:"password" validate:"required,min=6"`
	FirstName      string  `json:"firstName" validate:"required"`
	LastName       string  `json:"lastName" validate:"required"`
	Address        Address `json:"address"`
	Phone          string  `json:"phone"`
	ProfilePicture string  `json:"profilePicture"`
}

// EditRequest is the payload for updating profile fields. The email itself
// is immutable; omitted fields keep their current value.
type EditRequest struct {
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	Address        *Address `json:"address"`
	Phone          string   `json:"phone"`
	ProfilePicture string   `json:"profilePicture"`
}

// Service defines the account business logic.
type Service interface {
	// Register creates a customer account with a hashed password.
	Register(ctx context.Context, req RegisterRequest) (*User, error)

	// Login verifies credentials and returns a signed token plus the account.
	Login(ctx context.Context, email, password string) (string, *User, error)

	// GetByEmail retrieves a single account.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// ListAll returns every account. Admin only.
	ListAll(ctx context.Context, ident auth.Identity) ([]*User, error)

	// ToggleBlock flips the blocked flag on an account. Admin only.
	ToggleBlock(ctx context.Context, ident auth.Identity, email string) (*User, error)

	// Edit updates profile fields on the caller's own account.
	Edit(ctx context.Context, ident auth.Identity, email string, req EditRequest) (*User, error)

	// ChangePassword verifies the current password and stores a new hash.
	ChangePassword(ctx context.Context, email, currentPassword, newPassword string) error
}
