package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"app/internal/api/v1/dto"
	"app/internal/middleware"
	"app/internal/model"
	"app/internal/repository"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// CourseHandler covers the course catalogue: public browsing, instructor
// CRUD and admin approval.
type CourseHandler struct {
	courseService service.CourseService
	validate      *validator.Validate
	logger        zerolog.Logger
}

func NewCourseHandler(courseService service.CourseService, v *validator.Validate, logger zerolog.Logger) *CourseHandler {
	return &CourseHandler{courseService: courseService, validate: v, logger: logger}
}

// RegisterRoutes mounts course routes. The /class/ prefix is shared by the
// admin status update (PATCH) and the instructor delete (DELETE), so the
// chains are composed per method.
func (h *CourseHandler) RegisterRoutes(mux *http.ServeMux, authMw, adminMw, instructorMw func(http.Handler) http.Handler) {
	mux.Handle("/class", authMw(adminMw(http.HandlerFunc(h.listAll))))

	setStatus := authMw(adminMw(http.HandlerFunc(h.setStatus)))
	deleteCourse := authMw(instructorMw(http.HandlerFunc(h.deleteCourse)))
	mux.Handle("/class/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPatch:
			setStatus.ServeHTTP(w, r)
		case http.MethodDelete:
			deleteCourse.ServeHTTP(w, r)
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	}))

	mux.Handle("/create-class", authMw(instructorMw(http.HandlerFunc(h.createCourse))))
	mux.Handle("/update-class/", authMw(instructorMw(http.HandlerFunc(h.updateCourse))))
	mux.Handle("/instructor-class", authMw(instructorMw(http.HandlerFunc(h.listOwn))))
	mux.Handle("/class-image-upload", authMw(instructorMw(http.HandlerFunc(h.imageUpload))))
	mux.Handle("/all-class", http.HandlerFunc(h.browse))
}

func (h *CourseHandler) listAll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	courses, err := h.courseService.ListAll(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list courses")
		http.Error(w, "failed to list courses", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(courses)
}

func (h *CourseHandler) createCourse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	instructorEmail, ok := middleware.AuthenticatedEmail(r)
	if !ok {
		middleware.WriteError(w, http.StatusUnauthorized, middleware.MsgUnauthorized)
		return
	}

	var req dto.CourseCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	course := &model.Course{
		InstructorEmail:   instructorEmail,
		InstructorName:    req.InstructorName,
		Name:              req.Name,
		PictureURL:        req.PictureURL,
		SubCategory:       req.SubCategory,
		Price:             req.Price,
		AvailableQuantity: req.AvailableQuantity,
	}
	if err := h.courseService.Create(r.Context(), course); err != nil {
		h.logger.Error().Err(err).Str("instructor", instructorEmail).Msg("failed to create course")
		http.Error(w, "failed to create course", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(course)
}

func (h *CourseHandler) updateCourse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/update-class/")
	instructorEmail, ok := middleware.AuthenticatedEmail(r)
	if !ok {
		middleware.WriteError(w, http.StatusUnauthorized, middleware.MsgUnauthorized)
		return
	}

	var req dto.CourseUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	upd := repository.CourseUpdate{
		Name:              req.ClassData.Name,
		PictureURL:        req.ClassData.PictureURL,
		SubCategory:       req.ClassData.SubCategory,
		Price:             req.ClassData.Price,
		AvailableQuantity: req.ClassData.AvailableQuantity,
	}
	if err := h.courseService.Update(r.Context(), id, instructorEmail, upd); err != nil {
		h.writeCourseError(w, err, id)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.MessageDTO{Message: "course updated"})
}

func (h *CourseHandler) setStatus(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/class/")

	var req dto.CourseStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.courseService.SetStatus(r.Context(), id, req.Status); err != nil {
		h.writeCourseError(w, err, id)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.MessageDTO{Message: "course status updated"})
}

func (h *CourseHandler) deleteCourse(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/class/")
	instructorEmail, ok := middleware.AuthenticatedEmail(r)
	if !ok {
		middleware.WriteError(w, http.StatusUnauthorized, middleware.MsgUnauthorized)
		return
	}

	if err := h.courseService.Delete(r.Context(), id, instructorEmail); err != nil {
		h.writeCourseError(w, err, id)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.MessageDTO{Message: "course deleted"})
}

func (h *CourseHandler) listOwn(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	instructorEmail, ok := middleware.AuthenticatedEmail(r)
	if !ok {
		middleware.WriteError(w, http.StatusUnauthorized, middleware.MsgUnauthorized)
		return
	}

	courses, err := h.courseService.ListByInstructor(r.Context(), instructorEmail)
	if err != nil {
		h.logger.Error().Err(err).Str("instructor", instructorEmail).Msg("failed to list instructor courses")
		http.Error(w, "failed to list courses", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(courses)
}

// browse serves the public catalogue. GET lists approved courses; POST
// additionally answers whether the given account may add to cart.
func (h *CourseHandler) browse(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		courses, err := h.courseService.ListApproved(r.Context())
		if err != nil {
			h.logger.Error().Err(err).Msg("failed to list approved courses")
			http.Error(w, "failed to list courses", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(courses)

	case http.MethodPost:
		var req dto.BrowseRequestDTO
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
			return
		}
		courses, canAdd, err := h.courseService.BrowseForUser(r.Context(), req.Mail)
		if err != nil {
			h.logger.Error().Err(err).Msg("failed to browse courses")
			http.Error(w, "failed to list courses", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(dto.BrowseResponseDTO{Result: courses, UserCheck: canAdd})

	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

// imageUpload godoc
// @Summary Get a presigned URL for a course image upload
// @Tags courses
// @Accept json
// @Produce json
// @Param body body dto.ImageUploadRequestDTO true "Image filename"
// @Success 200 {object} dto.ImageUploadResponseDTO
// @Router /class-image-upload [post]
func (h *CourseHandler) imageUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	instructorEmail, ok := middleware.AuthenticatedEmail(r)
	if !ok {
		middleware.WriteError(w, http.StatusUnauthorized, middleware.MsgUnauthorized)
		return
	}

	var req dto.ImageUploadRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	url, key, err := h.courseService.InitiateImageUpload(r.Context(), instructorEmail, req.Filename)
	if err != nil {
		h.logger.Error().Err(err).Str("instructor", instructorEmail).Msg("failed to presign image upload")
		http.Error(w, "failed to presign image upload", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.ImageUploadResponseDTO{UploadURL: url, ObjectKey: key})
}

func (h *CourseHandler) writeCourseError(w http.ResponseWriter, err error, id string) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrNotCourseOwner):
		middleware.WriteError(w, http.StatusForbidden, middleware.MsgForbidden)
	case errors.Is(err, service.ErrInvalidStatus):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		h.logger.Error().Err(err).Str("course_id", id).Msg("course operation failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
