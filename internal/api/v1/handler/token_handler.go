package handler

import (
	"encoding/json"
	"net/http"

	"app/internal/api/v1/dto"
	"app/internal/util"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// TokenHandler issues access tokens.
type TokenHandler struct {
	jwtSecret string
	validate  *validator.Validate
	logger    zerolog.Logger
}

func NewTokenHandler(jwtSecret string, v *validator.Validate, logger zerolog.Logger) *TokenHandler {
	return &TokenHandler{jwtSecret: jwtSecret, validate: v, logger: logger}
}

// RegisterRoutes mounts the token issuance route. It is public: the token
// is how callers authenticate everything else.
func (h *TokenHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("/jwt", http.HandlerFunc(h.issueToken))
}

// issueToken godoc
// @Summary Issue a bearer token for an email
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.TokenRequestDTO true "Identity to sign"
// @Success 200 {object} dto.TokenResponseDTO
// @Router /jwt [post]
func (h *TokenHandler) issueToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.TokenRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	token, err := util.GenerateJWT(req.Email, h.jwtSecret)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to sign token")
		http.Error(w, "failed to sign token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.TokenResponseDTO{Token: token})
}
