package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func TestSignAndParseToken(t *testing.T) {
	ident := Identity{
		Email:     "u@x.com",
		FirstName: "Upul",
		LastName:  "Xavier",
		Role:      RoleCustomer,
		Phone:     "0771234567",
	}

	token, err := SignToken(ident, testSecret)
	require.NoError(t, err)

	got, err := ParseToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, ident, got)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := SignToken(Identity{Email: "u@x.com", Role: RoleCustomer}, testSecret)
	require.NoError(t, err)

	_, err = ParseToken(token, []byte("other-secret"))
	assert.Error(t, err)
}

func TestIdentityRoleHelpers(t *testing.T) {
	assert.False(t, Identity{}.IsAuthenticated())
	assert.False(t, Identity{}.IsAdmin())
	assert.False(t, Identity{}.IsCustomer())

	admin := Identity{Email: "a@x.com", Role: RoleAdmin}
	assert.True(t, admin.IsAdmin())
	assert.False(t, admin.IsCustomer())

	customer := Identity{Email: "c@x.com", Role: RoleCustomer}
	assert.True(t, customer.IsCustomer())
	assert.False(t, customer.IsAdmin())
}

func TestMiddlewareAttachesIdentity(t *testing.T) {
	token, err := SignToken(Identity{Email: "u@x.com", Role: RoleCustomer}, testSecret)
	require.NoError(t, err)

	var got Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	Middleware(testSecret)(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "u@x.com", got.Email)
	assert.True(t, got.IsCustomer())
}

func TestMiddlewareContinuesAnonymousOnBadToken(t *testing.T) {
	var got Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	Middleware(testSecret)(next).ServeHTTP(rec, req)

	assert.False(t, got.IsAuthenticated())
	assert.Equal(t, http.StatusOK, rec.Code)
}
