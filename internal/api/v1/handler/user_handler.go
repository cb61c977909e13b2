package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"app/internal/api/v1/dto"
	"app/internal/middleware"
	"app/internal/model"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// UserHandler covers accounts, role self-checks and admin promotion.
type UserHandler struct {
	userService service.UserService
	validate    *validator.Validate
	logger      zerolog.Logger
}

func NewUserHandler(userService service.UserService, v *validator.Validate, logger zerolog.Logger) *UserHandler {
	return &UserHandler{userService: userService, validate: v, logger: logger}
}

// RegisterRoutes mounts user routes. Sign-up and role probes are public;
// the user listing and promotion require the admin chain.
func (h *UserHandler) RegisterRoutes(mux *http.ServeMux, authMw, adminMw func(http.Handler) http.Handler) {
	listUsers := authMw(adminMw(http.HandlerFunc(h.listUsers)))
	mux.Handle("/users", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			h.createUser(w, r)
		case http.MethodGet:
			listUsers.ServeHTTP(w, r)
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	}))

	adminCheck := authMw(http.HandlerFunc(h.adminCheck))
	promote := authMw(adminMw(http.HandlerFunc(h.promoteToAdmin)))
	mux.Handle("/users/admin/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			adminCheck.ServeHTTP(w, r)
		case http.MethodPatch:
			promote.ServeHTTP(w, r)
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	}))

	mux.Handle("/users/instructor/", authMw(http.HandlerFunc(h.instructorCheck)))
	mux.Handle("/check-user-role", http.HandlerFunc(h.checkUserRole))
	mux.Handle("/all-instructor", http.HandlerFunc(h.listInstructors))
}

func (h *UserHandler) createUser(w http.ResponseWriter, r *http.Request) {
	var req dto.UserCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		PhotoURL: req.PhotoURL,
		Gender:   req.Gender,
		Phone:    req.Phone,
		Address:  req.Address,
	}
	created, err := h.userService.Register(r.Context(), user)
	if err != nil {
		h.logger.Error().Err(err).Str("email", req.Email).Msg("failed to create user")
		http.Error(w, "failed to create user", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if !created {
		json.NewEncoder(w).Encode(dto.MessageDTO{Message: "user already exists"})
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(user)
}

func (h *UserHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list users")
		http.Error(w, "failed to list users", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(users)
}

// adminCheck answers whether the caller is an admin. The path email must
// match the token subject; probing someone else's role is forbidden.
func (h *UserHandler) adminCheck(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimPrefix(r.URL.Path, "/users/admin/")
	caller, ok := middleware.AuthenticatedEmail(r)
	if !ok {
		middleware.WriteError(w, http.StatusUnauthorized, middleware.MsgUnauthorized)
		return
	}
	if caller != email {
		middleware.WriteError(w, http.StatusForbidden, middleware.MsgForbidden)
		return
	}

	isAdmin, err := h.userService.HasRole(r.Context(), email, model.RoleAdmin)
	if err != nil {
		h.logger.Error().Err(err).Str("email", email).Msg("failed to check admin role")
		http.Error(w, "failed to check role", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.AdminFlagDTO{Admin: isAdmin})
}

func (h *UserHandler) instructorCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	email := strings.TrimPrefix(r.URL.Path, "/users/instructor/")
	caller, ok := middleware.AuthenticatedEmail(r)
	if !ok {
		middleware.WriteError(w, http.StatusUnauthorized, middleware.MsgUnauthorized)
		return
	}
	if caller != email {
		middleware.WriteError(w, http.StatusForbidden, middleware.MsgForbidden)
		return
	}

	isInstructor, err := h.userService.HasRole(r.Context(), email, model.RoleInstructor)
	if err != nil {
		h.logger.Error().Err(err).Str("email", email).Msg("failed to check instructor role")
		http.Error(w, "failed to check role", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.InstructorFlagDTO{Instructor: isInstructor})
}

func (h *UserHandler) promoteToAdmin(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/users/admin/")
	if id == "" {
		http.Error(w, "missing user id", http.StatusBadRequest)
		return
	}

	if err := h.userService.PromoteToAdmin(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Str("user_id", id).Msg("failed to promote user")
		http.Error(w, "failed to promote user", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.MessageDTO{Message: "user promoted to admin"})
}

func (h *UserHandler) checkUserRole(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.RoleCheckRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}

	resp := dto.RoleCheckResponseDTO{}
	if req.Email != "" {
		role, found, err := h.userService.RoleByEmail(r.Context(), req.Email)
		if err != nil {
			h.logger.Error().Err(err).Str("email", req.Email).Msg("failed to look up role")
			http.Error(w, "failed to look up role", http.StatusInternalServerError)
			return
		}
		if found {
			resp.Role = role
		}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *UserHandler) listInstructors(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	instructors, err := h.userService.ListInstructors(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list instructors")
		http.Error(w, "failed to list instructors", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(instructors)
}
