package catalog

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/LakshanRasogha/cigaroElectro-backend/internal/modules/auth"
	"github.com/LakshanRasogha/cigaroElectro-backend/internal/validation"
	"github.com/go-chi/chi/v5"
	validatorv10 "github.com/go-playground/validator/v10"
)

// Handler exposes catalog HTTP endpoints.
type Handler struct {
	service  Service
	validate *validatorv10.Validate
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service, validate: validation.New()}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/products", func(r chi.Router) {
		r.Post("/", h.addProduct)                  // POST   /api/products
		r.Get("/", h.listProducts)                 // GET    /api/products
		r.Get("/{key}", h.getProduct)              // GET    /api/products/{key}
		r.Put("/{key}", h.updateProduct)           // PUT    /api/products/{key}
		r.Delete("/{key}", h.deleteProduct)        // DELETE /api/products/{key}
		r.Get("/{key}/variant", h.getVariant)      // GET    /api/products/{key}/variant?vKey=
		r.Delete("/{key}/variant", h.deleteVariant) // DELETE /api/products/{key}/variant?vKey=
	})
}

func (h *Handler) addProduct(w http.ResponseWriter, r *http.Request) {
	var req SaveProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if fields := validation.Check(h.validate, req); fields != nil {
		respond(w, http.StatusBadRequest, map[string]interface{}{"error": "validation_failed", "fields": fields})
		return
	}
	p, err := h.service.AddProduct(r.Context(), auth.FromContext(r.Context()), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, p)
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context(), auth.FromContext(r.Context()))
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"message": "Failed to get products"})
		return
	}
	respond(w, http.StatusOK, products)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetProduct(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var req SaveProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	p, err := h.service.UpdateProduct(r.Context(), auth.FromContext(r.Context()), chi.URLParam(r, "key"), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteProduct(r.Context(), auth.FromContext(r.Context()), chi.URLParam(r, "key")); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}

func (h *Handler) getVariant(w http.ResponseWriter, r *http.Request) {
	v, err := h.service.GetVariant(r.Context(), chi.URLParam(r, "key"), r.URL.Query().Get("vKey"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, v)
}

func (h *Handler) deleteVariant(w http.ResponseWriter, r *http.Request) {
	err := h.service.DeleteVariant(r.Context(), auth.FromContext(r.Context()), chi.URLParam(r, "key"), r.URL.Query().Get("vKey"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"message": "Variant deleted successfully"})
}

func respondError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrForbidden):
		code = http.StatusForbidden
	case errors.Is(err, ErrProductNotFound), errors.Is(err, ErrVariantNotFound):
		code = http.StatusNotFound
	}
	respond(w, code, map[string]string{"message": err.Error()})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
