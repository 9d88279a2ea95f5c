package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/LakshanRasogha/cigaroElectro-backend/internal/modules/auth"
	"github.com/LakshanRasogha/cigaroElectro-backend/internal/validation"
	"github.com/go-chi/chi/v5"
	validatorv10 "github.com/go-playground/validator/v10"
)

// Handler exposes account HTTP endpoints.
type Handler struct {
	service  Service
	validate *validatorv10.Validate
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service, validate: validation.New()}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/users", func(r chi.Router) {
		r.Post("/", h.register)                              // POST /api/users
		r.Post("/login", h.login)                            // POST /api/users/login
		r.Get("/", h.currentUser)                            // GET  /api/users
		r.Get("/all", h.listAll)                             // GET  /api/users/all
		r.Put("/block/{email}", h.toggleBlock)               // PUT  /api/users/block/{email}
		r.Put("/edit/{email}", h.edit)                       // PUT  /api/users/edit/{email}
		r.Put("/changePassword/{email}", h.changePassword)   // PUT  /api/users/changePassword/{email}
	})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if fields := validation.Check(h.validate, req); fields != nil {
		respond(w, http.StatusBadRequest, map[string]interface{}{"error": "validation_failed", "fields": fields})
		return
	}
	if _, err := h.service.Register(r.Context(), req); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			respond(w, http.StatusConflict, map[string]string{"message": "Email already exists"})
			return
		}
		respond(w, http.StatusInternalServerError, map[string]string{"message": err.Error()})
		return
	}
	respond(w, http.StatusCreated, map[string]string{"message": "User registered successfully"})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	token, u, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrBlocked):
			respond(w, http.StatusForbidden, map[string]string{"error": err.Error()})
		case errors.Is(err, ErrBadCredential):
			respond(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
		default:
			respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"message": "login successful",
		"token":   token,
		"user":    u,
	})
}

func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) {
	ident := auth.FromContext(r.Context())
	if !ident.IsAuthenticated() {
		respond(w, http.StatusForbidden, map[string]string{"error": "User not found"})
		return
	}
	respond(w, http.StatusOK, ident)
}

func (h *Handler) listAll(w http.ResponseWriter, r *http.Request) {
	ident := auth.FromContext(r.Context())
	users, err := h.service.ListAll(r.Context(), ident)
	if err != nil {
		if errors.Is(err, ErrForbidden) {
			respond(w, http.StatusForbidden, map[string]string{"error": "Unauthorized access"})
			return
		}
		respond(w, http.StatusInternalServerError, map[string]string{"error": "Failed to get users"})
		return
	}
	respond(w, http.StatusOK, users)
}

func (h *Handler) toggleBlock(w http.ResponseWriter, r *http.Request) {
	ident := auth.FromContext(r.Context())
	email := chi.URLParam(r, "email")
	if _, err := h.service.ToggleBlock(r.Context(), ident, email); err != nil {
		switch {
		case errors.Is(err, ErrForbidden):
			respond(w, http.StatusForbidden, map[string]string{"error": "Unauthorized"})
		case errors.Is(err, ErrNotFound):
			respond(w, http.StatusNotFound, map[string]string{"error": "User not found"})
		default:
			respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return
	}
	respond(w, http.StatusOK, map[string]string{"message": "User blocked/unblocked successfully"})
}

func (h *Handler) edit(w http.ResponseWriter, r *http.Request) {
	ident := auth.FromContext(r.Context())
	email := chi.URLParam(r, "email")
	var req EditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	u, err := h.service.Edit(r.Context(), ident, email, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrForbidden):
			respond(w, http.StatusForbidden, map[string]string{"error": "Unauthorized: Access denied"})
		case errors.Is(err, ErrNotFound):
			respond(w, http.StatusNotFound, map[string]string{"error": "User not found"})
		default:
			respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"message": "Profile updated successfully",
		"user":    u,
	})
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := h.service.ChangePassword(r.Context(), email, req.CurrentPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond(w, http.StatusNotFound, map[string]string{"error": "User not found"})
		case errors.Is(err, ErrBadCredential):
			respond(w, http.StatusUnauthorized, map[string]string{"error": "Current password is incorrect"})
		default:
			respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return
	}
	respond(w, http.StatusOK, map[string]string{"message": "Password updated successfully"})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
