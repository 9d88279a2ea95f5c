package user

import (
	"context"
	"errors"
	"testing"

	"github.com/LakshanRasogha/cigaroElectro-backend/internal/modules/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testSecret = []byte("test-secret")

type fakeRepo struct {
	users map[string]*User
}

func newFakeRepo() *fakeRepo { return &fakeRepo{users: map[string]*User{}} }

func (f *fakeRepo) CreateUser(ctx context.Context, u *User) error {
	if _, exists := f.users[u.Email]; exists {
		return ErrEmailTaken
	}
	f.users[u.Email] = u
	return nil
}

func (f *fakeRepo) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return nil, ErrNotFound
}

func (f *fakeRepo) ListUsers(ctx context.Context) ([]*User, error) {
	var out []*User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeRepo) UpdateUser(ctx context.Context, u *User) error {
	if _, ok := f.users[u.Email]; !ok {
		return ErrNotFound
	}
	f.users[u.Email] = u
	return nil
}

func registered(t *testing.T, repo *fakeRepo) Service {
	t.Helper()
	svc := NewService(repo, testSecret)
	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:     "u@x.com",
		Password:  "secret1",
		FirstName: "Upul",
		LastName:  "Xavier",
		Phone:     "0771234567",
		Address:   Address{Address: "12 Lake Rd", City: "Colombo"},
	})
	require.NoError(t, err)
	return svc
}

func TestRegisterHashesPasswordAndDefaultsRole(t *testing.T) {
	repo := newFakeRepo()
	registered(t, repo)

	u := repo.users["u@x.com"]
	require.NotNil(t, u)
	assert.Equal(t, auth.RoleCustomer, u.Role)
	assert.NotEqual(t, "secret1", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret1")))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeRepo()
	svc := registered(t, repo)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email: "u@x.com", Password: "other12", FirstName: "A", LastName: "B",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginIssuesToken(t *testing.T) {
	repo := newFakeRepo()
	svc := registered(t, repo)

	token, u, err := svc.Login(context.Background(), "u@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "u@x.com", u.Email)

	ident, err := auth.ParseToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "u@x.com", ident.Email)
	assert.Equal(t, auth.RoleCustomer, ident.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := registered(t, newFakeRepo())

	_, _, err := svc.Login(context.Background(), "u@x.com", "wrong")
	assert.ErrorIs(t, err, ErrBadCredential)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := registered(t, newFakeRepo())

	_, _, err := svc.Login(context.Background(), "nobody@x.com", "secret1")
	assert.ErrorIs(t, err, ErrBadCredential)
}

type brokenRepo struct{ *fakeRepo }

func (b *brokenRepo) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return nil, errors.New("connection refused")
}

func TestLoginStoreFailureIsNotBadCredential(t *testing.T) {
	svc := NewService(&brokenRepo{newFakeRepo()}, testSecret)

	_, _, err := svc.Login(context.Background(), "u@x.com", "secret1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrBadCredential)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestLoginBlockedAccount(t *testing.T) {
	repo := newFakeRepo()
	svc := registered(t, repo)
	repo.users["u@x.com"].IsBlocked = true

	_, _, err := svc.Login(context.Background(), "u@x.com", "secret1")
	assert.ErrorIs(t, err, ErrBlocked)
}

func TestToggleBlockAdminOnly(t *testing.T) {
	repo := newFakeRepo()
	svc := registered(t, repo)

	_, err := svc.ToggleBlock(context.Background(),
		auth.Identity{Email: "u@x.com", Role: auth.RoleCustomer}, "u@x.com")
	assert.ErrorIs(t, err, ErrForbidden)

	admin := auth.Identity{Email: "boss@x.com", Role: auth.RoleAdmin}
	u, err := svc.ToggleBlock(context.Background(), admin, "u@x.com")
	require.NoError(t, err)
	assert.True(t, u.IsBlocked)

	u, err = svc.ToggleBlock(context.Background(), admin, "u@x.com")
	require.NoError(t, err)
	assert.False(t, u.IsBlocked)

	_, err = svc.ToggleBlock(context.Background(), admin, "nobody@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEditUpdatesOnlyProvidedFields(t *testing.T) {
	repo := newFakeRepo()
	svc := registered(t, repo)

	u, err := svc.Edit(context.Background(),
		auth.Identity{Email: "u@x.com", Role: auth.RoleCustomer},
		"u@x.com",
		EditRequest{Phone: "0710000000"})
	require.NoError(t, err)
	assert.Equal(t, "0710000000", u.Phone)
	assert.Equal(t, "Upul", u.FirstName)
	assert.Equal(t, "12 Lake Rd", u.Address.Address)
}

func TestChangePasswordVerifiesCurrent(t *testing.T) {
	repo := newFakeRepo()
	svc := registered(t, repo)

	err := svc.ChangePassword(context.Background(), "u@x.com", "wrong", "newpass1")
	assert.ErrorIs(t, err, ErrBadCredential)

	err = svc.ChangePassword(context.Background(), "u@x.com", "secret1", "newpass1")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "u@x.com", "newpass1")
	assert.NoError(t, err)
}

func TestListAllAdminOnly(t *testing.T) {
	repo := newFakeRepo()
	svc := registered(t, repo)

	_, err := svc.ListAll(context.Background(), auth.Identity{Email: "u@x.com", Role: auth.RoleCustomer})
	assert.ErrorIs(t, err, ErrForbidden)

	users, err := svc.ListAll(context.Background(), auth.Identity{Email: "boss@x.com", Role: auth.RoleAdmin})
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
