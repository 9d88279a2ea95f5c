package order

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/LakshanRasogha/cigaroElectro-backend/internal/modules/auth"
	"github.com/LakshanRasogha/cigaroElectro-backend/internal/validation"
	"github.com/go-chi/chi/v5"
	validatorv10 "github.com/go-playground/validator/v10"
)

// Handler exposes order HTTP endpoints.
type Handler struct {
	service  Service
	validate *validatorv10.Validate
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service, validate: validation.New()}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/orders", func(r chi.Router) {
		r.Post("/", h.placeOrder)                   // POST /api/orders
		r.Post("/quote", h.getQuote)                // POST /api/orders/quote
		r.Get("/", h.listOrders)                    // GET  /api/orders
		r.Put("/status/{orderId}", h.updateStatus)  // PUT  /api/orders/status/{orderId}
	})
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	if fields := validation.Check(h.validate, req); fields != nil {
		respond(w, http.StatusBadRequest, map[string]interface{}{"message": "validation_failed", "fields": fields})
		return
	}

	o, err := h.service.PlaceOrder(r.Context(), auth.FromContext(r.Context()), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, map[string]interface{}{
		"message": "Order placed successfully",
		"order":   o,
	})
}

func (h *Handler) getQuote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	if fields := validation.Check(h.validate, req); fields != nil {
		respond(w, http.StatusBadRequest, map[string]interface{}{"message": "validation_failed", "fields": fields})
		return
	}

	q, err := h.service.GetQuote(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"message":   "Quote generated successfully",
		"total":     q.Total,
		"breakdown": q.Breakdown,
	})
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context(), auth.FromContext(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	if orders == nil {
		orders = []*Order{}
	}
	respond(w, http.StatusOK, orders)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	if fields := validation.Check(h.validate, req); fields != nil {
		respond(w, http.StatusBadRequest, map[string]interface{}{"message": "validation_failed", "fields": fields})
		return
	}

	o, err := h.service.UpdateStatus(r.Context(), auth.FromContext(r.Context()), chi.URLParam(r, "orderId"), req.Status)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"message": "Order status updated to " + req.Status + " successfully",
		"order":   o,
	})
}

func respondError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrUnauthenticated):
		code = http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		code = http.StatusForbidden
	case errors.Is(err, ErrProfileNotFound),
		errors.Is(err, ErrOrderNotFound),
		errors.Is(err, ErrProductNotFound),
		errors.Is(err, ErrVariantNotFound):
		code = http.StatusNotFound
	case errors.Is(err, ErrOutOfStock):
		code = http.StatusConflict
	case errors.Is(err, ErrInvalidQuantity), errors.Is(err, ErrShippingRequired):
		code = http.StatusBadRequest
	}
	respond(w, code, map[string]string{"message": err.Error()})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
