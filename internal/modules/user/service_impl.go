package user

import (
	"context"
	"errors"

	"github.com/LakshanRasogha/cigaroElectro-backend/internal/modules/auth"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type service struct {
	repo      Repository
	jwtSecret []byte
}

// NewService creates a new user service. The secret signs login tokens.
func NewService(repo Repository, jwtSecret []byte) Service {
	return &service{repo: repo, jwtSecret: jwtSecret}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &User{
		ID:             uuid.New(),
		Email:          req.Email,
		PasswordHash:   string(hashedPassword),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Role:           auth.RoleCustomer,
		Address:        req.Address,
		Phone:          req.Phone,
		ProfilePicture: req.ProfilePicture,
	}

	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, *User, error) {
	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil, ErrBadCredential
		}
		return "", nil, err
	}
	if u.IsBlocked {
		return "", nil, ErrBlocked
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrBadCredential
	}

	token, err := auth.SignToken(auth.Identity{
		Email:          u.Email,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Role:           u.Role,
		Phone:          u.Phone,
		ProfilePicture: u.ProfilePicture,
	}, s.jwtSecret)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

func (s *service) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) ListAll(ctx context.Context, ident auth.Identity) ([]*User, error) {
	if !ident.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.repo.ListUsers(ctx)
}

func (s *service) ToggleBlock(ctx context.Context, ident auth.Identity, email string) (*User, error) {
	if !ident.IsAdmin() {
		return nil, ErrForbidden
	}
	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	u.IsBlocked = !u.IsBlocked
	if err := s.repo.UpdateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Edit(ctx context.Context, ident auth.Identity, email string, req EditRequest) (*User, error) {
	if !ident.IsCustomer() {
		return nil, ErrForbidden
	}
	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if req.FirstName != "" {
		u.FirstName = req.FirstName
	}
	if req.LastName != "" {
		u.LastName = req.LastName
	}
	if req.Address != nil {
		u.Address = *req.Address
	}
	if req.Phone != "" {
		u.Phone = req.Phone
	}
	if req.ProfilePicture != "" {
		u.ProfilePicture = req.ProfilePicture
	}
	if err := s.repo.UpdateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) ChangePassword(ctx context.Context, email, currentPassword, newPassword string) error {
	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrBadCredential
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return s.repo.UpdateUser(ctx, u)
}
