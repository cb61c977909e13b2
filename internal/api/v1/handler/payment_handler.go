package handler

import (
	"encoding/json"
	"net/http"

	"app/internal/api/v1/dto"
	"app/internal/middleware"
	"app/internal/model"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// PaymentHandler covers the two-phase payment flow and the views derived
// from payment history.
type PaymentHandler struct {
	paymentService service.PaymentService
	validate       *validator.Validate
	logger         zerolog.Logger
}

func NewPaymentHandler(paymentService service.PaymentService, v *validator.Validate, logger zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, validate: v, logger: logger}
}

func (h *PaymentHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/create-payment-intent", authMw(http.HandlerFunc(h.createIntent)))
	mux.Handle("/payments", authMw(http.HandlerFunc(h.settle)))
	mux.Handle("/payment-history", authMw(http.HandlerFunc(h.history)))
	mux.Handle("/enrolled", authMw(http.HandlerFunc(h.enrolled)))
}

// createIntent godoc
// @Summary Create a Stripe payment intent
// @Description Requests a card charge handle for the given price and returns the client secret.
// @Tags payments
// @Accept json
// @Produce json
// @Param body body dto.PaymentIntentRequestDTO true "Price in dollars"
// @Success 200 {object} dto.PaymentIntentResponseDTO
// @Failure 400 {string} string "invalid payload"
// @Router /create-payment-intent [post]
func (h *PaymentHandler) createIntent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.PaymentIntentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	clientSecret, err := h.paymentService.CreateIntent(r.Context(), req.Price)
	if err != nil {
		h.logger.Error().Err(err).Float64("price", req.Price).Msg("failed to create payment intent")
		http.Error(w, "failed to create payment intent", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.PaymentIntentResponseDTO{ClientSecret: clientSecret})
}

// settle godoc
// @Summary Record a completed payment
// @Description Inserts the payment and clears the purchased cart items in one transaction.
// @Tags payments
// @Accept json
// @Produce json
// @Param body body dto.PaymentSettleDTO true "Completed payment"
// @Success 201 {object} dto.PaymentSettledResponseDTO
// @Router /payments [post]
func (h *PaymentHandler) settle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	caller, ok := middleware.AuthenticatedEmail(r)
	if !ok {
		middleware.WriteError(w, http.StatusUnauthorized, middleware.MsgUnauthorized)
		return
	}

	var req dto.PaymentSettleDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Payment.Email != caller {
		middleware.WriteError(w, http.StatusForbidden, middleware.MsgForbidden)
		return
	}

	payment := &model.Payment{
		Email:         req.Payment.Email,
		TransactionID: req.Payment.TransactionID,
		Price:         req.Payment.Price,
		ClassIDs:      req.Payment.ClassIDs,
		CartIDs:       req.Payment.CartIDs,
	}
	settled, err := h.paymentService.Settle(r.Context(), payment)
	if err != nil {
		h.logger.Error().Err(err).Str("transaction_id", payment.TransactionID).Msg("failed to settle payment")
		http.Error(w, "failed to settle payment", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if !settled {
		json.NewEncoder(w).Encode(dto.PaymentSettledResponseDTO{Duplicate: true})
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(dto.PaymentSettledResponseDTO{InsertedID: payment.ID})
}

func (h *PaymentHandler) history(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	email, ok := h.ownEmail(w, r)
	if !ok {
		return
	}

	payments, err := h.paymentService.History(r.Context(), email)
	if err != nil {
		h.logger.Error().Err(err).Str("email", email).Msg("failed to list payments")
		http.Error(w, "failed to list payments", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payments)
}

func (h *PaymentHandler) enrolled(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	email, ok := h.ownEmail(w, r)
	if !ok {
		return
	}

	courses, err := h.paymentService.EnrolledCourses(r.Context(), email)
	if err != nil {
		h.logger.Error().Err(err).Str("email", email).Msg("failed to derive enrollment")
		http.Error(w, "failed to list enrolled courses", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(courses)
}

// ownEmail resolves the email query parameter and enforces that it matches
// the token subject. Writes the error response itself on failure.
func (h *PaymentHandler) ownEmail(w http.ResponseWriter, r *http.Request) (string, bool) {
	caller, ok := middleware.AuthenticatedEmail(r)
	if !ok {
		middleware.WriteError(w, http.StatusUnauthorized, middleware.MsgUnauthorized)
		return "", false
	}
	email := r.URL.Query().Get("email")
	if email == "" {
		email = caller
	}
	if email != caller {
		middleware.WriteError(w, http.StatusForbidden, middleware.MsgForbidden)
		return "", false
	}
	return email, true
}
