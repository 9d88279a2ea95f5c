package order

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/LakshanRasogha/cigaroElectro-backend/internal/modules/auth"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(svc Service, ident auth.Identity) *chi.Mux {
	r := chi.NewRouter()
	if ident.IsAuthenticated() {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				next.ServeHTTP(w, req.WithContext(auth.WithIdentity(req.Context(), ident)))
			})
		})
	}
	NewHandler(svc).RegisterRoutes(r)
	return r
}

func doJSON(t *testing.T, router *chi.Mux, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestQuoteEndpointNeedsNoAuth(t *testing.T) {
	router := newTestRouter(newTestService(&fakeOrderRepo{}), auth.Identity{})

	rec := doJSON(t, router, http.MethodPost, "/api/orders/quote",
		`{"orderedItems":[{"key":"A","vKey":"A1","qty":2}]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Total     float64     `json:"total"`
		Breakdown []QuoteLine `json:"breakdown"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1400.0, body.Total)
	require.Len(t, body.Breakdown, 1)
}

func TestQuoteEndpointValidationError(t *testing.T) {
	router := newTestRouter(newTestService(&fakeOrderRepo{}), auth.Identity{})

	rec := doJSON(t, router, http.MethodPost, "/api/orders/quote", `{"orderedItems":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQuoteEndpointUnknownProduct(t *testing.T) {
	router := newTestRouter(newTestService(&fakeOrderRepo{}), auth.Identity{})

	rec := doJSON(t, router, http.MethodPost, "/api/orders/quote",
		`{"orderedItems":[{"key":"Z","vKey":"Z1","qty":1}]}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestQuoteEndpointOutOfStockConflict(t *testing.T) {
	router := newTestRouter(newTestService(&fakeOrderRepo{}), auth.Identity{})

	rec := doJSON(t, router, http.MethodPost, "/api/orders/quote",
		`{"orderedItems":[{"key":"A","vKey":"A1","qty":99}]}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestQuoteEndpointStoreFailureIsInternal(t *testing.T) {
	svc := NewService(&fakeOrderRepo{}, &brokenCatalogRepo{newTestCatalog()}, newTestUsers())
	router := newTestRouter(svc, auth.Identity{})

	rec := doJSON(t, router, http.MethodPost, "/api/orders/quote",
		`{"orderedItems":[{"key":"A","vKey":"A1","qty":1}]}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestPlaceOrderEndpointUnauthenticated(t *testing.T) {
	router := newTestRouter(newTestService(&fakeOrderRepo{}), auth.Identity{})

	rec := doJSON(t, router, http.MethodPost, "/api/orders",
		`{"orderedItems":[{"key":"A","vKey":"A1","qty":1}]}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPlaceOrderEndpointCreated(t *testing.T) {
	repo := &fakeOrderRepo{}
	router := newTestRouter(newTestService(repo), customerIdent())

	rec := doJSON(t, router, http.MethodPost, "/api/orders",
		`{"orderedItems":[{"key":"A","vKey":"A1","qty":2}]}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Order Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ORD0001", body.Order.OrderID)
	assert.Equal(t, 1400.0, body.Order.TotalAmount)
	assert.Len(t, repo.orders, 1)
}

func TestListOrdersEndpointForbiddenWithoutAuth(t *testing.T) {
	router := newTestRouter(newTestService(&fakeOrderRepo{}), auth.Identity{})

	rec := doJSON(t, router, http.MethodGet, "/api/orders", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUpdateStatusEndpointRoles(t *testing.T) {
	repo := &fakeOrderRepo{orders: []*Order{{OrderID: "ORD0001", Status: StatusPending}}}

	asCustomer := newTestRouter(newTestService(repo), customerIdent())
	rec := doJSON(t, asCustomer, http.MethodPut, "/api/orders/status/ORD0001", `{"status":"Approved"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	asAdmin := newTestRouter(newTestService(repo), adminIdent())
	rec = doJSON(t, asAdmin, http.MethodPut, "/api/orders/status/ORD0001", `{"status":"Approved"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Order Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Order.IsApproved)
	assert.Equal(t, "Approved", body.Order.Status)

	rec = doJSON(t, asAdmin, http.MethodPut, "/api/orders/status/ORD0404", `{"status":"Approved"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
