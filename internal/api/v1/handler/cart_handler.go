package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"app/internal/api/v1/dto"
	"app/internal/middleware"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// CartHandler covers the shopping cart. Every route requires a token and
// is scoped to the token subject.
type CartHandler struct {
	cartService service.CartService
	validate    *validator.Validate
	logger      zerolog.Logger
}

func NewCartHandler(cartService service.CartService, v *validator.Validate, logger zerolog.Logger) *CartHandler {
	return &CartHandler{cartService: cartService, validate: v, logger: logger}
}

func (h *CartHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/carts", authMw(http.HandlerFunc(h.handleCarts)))
	mux.Handle("/carts/", authMw(http.HandlerFunc(h.removeItem)))
	mux.Handle("/addedCartCheck/", authMw(http.HandlerFunc(h.addedCheck)))
}

func (h *CartHandler) handleCarts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listItems(w, r)
	case http.MethodPost:
		h.addItem(w, r)
	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

func (h *CartHandler) listItems(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.AuthenticatedEmail(r)
	if !ok {
		middleware.WriteError(w, http.StatusUnauthorized, middleware.MsgUnauthorized)
		return
	}
	email := r.URL.Query().Get("email")
	if email == "" {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]struct{}{})
		return
	}
	// A user only ever sees their own cart.
	if email != caller {
		middleware.WriteError(w, http.StatusForbidden, middleware.MsgForbidden)
		return
	}

	items, err := h.cartService.List(r.Context(), email)
	if err != nil {
		h.logger.Error().Err(err).Str("email", email).Msg("failed to list cart")
		http.Error(w, "failed to list cart", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

func (h *CartHandler) addItem(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.AuthenticatedEmail(r)
	if !ok {
		middleware.WriteError(w, http.StatusUnauthorized, middleware.MsgUnauthorized)
		return
	}

	var req dto.CartAddDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.CartItem.Email != caller {
		middleware.WriteError(w, http.StatusForbidden, middleware.MsgForbidden)
		return
	}

	item, added, err := h.cartService.Add(r.Context(), req.CartItem.ClassID, req.CartItem.Email)
	if err != nil {
		h.logger.Error().Err(err).Str("class_id", req.CartItem.ClassID).Msg("failed to add cart item")
		http.Error(w, "failed to add cart item", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if !added {
		json.NewEncoder(w).Encode(dto.MessageDTO{Message: "already added"})
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(item)
}

func (h *CartHandler) removeItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	caller, ok := middleware.AuthenticatedEmail(r)
	if !ok {
		middleware.WriteError(w, http.StatusUnauthorized, middleware.MsgUnauthorized)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/carts/")

	// Deletion is keyed on id AND owner, so one user cannot clear
	// another's cart by guessing ids.
	if err := h.cartService.Remove(r.Context(), id, caller); err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Str("cart_id", id).Msg("failed to remove cart item")
		http.Error(w, "failed to remove cart item", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.MessageDTO{Message: "cart item removed"})
}

func (h *CartHandler) addedCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	caller, ok := middleware.AuthenticatedEmail(r)
	if !ok {
		middleware.WriteError(w, http.StatusUnauthorized, middleware.MsgUnauthorized)
		return
	}
	classID := strings.TrimPrefix(r.URL.Path, "/addedCartCheck/")

	canAdd, err := h.cartService.CanAdd(r.Context(), classID, caller)
	if err != nil {
		h.logger.Error().Err(err).Str("class_id", classID).Msg("failed to check cart")
		http.Error(w, "failed to check cart", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.CanAddResponseDTO{CanAdd: canAdd})
}
