package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/swapnest/swapnest/internal/handler/dto"
	"github.com/swapnest/swapnest/internal/service"
	"github.com/swapnest/swapnest/internal/store"
)

// UserHandler handles HTTP requests for user operations.
type UserHandler struct {
	svc    *service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		h.writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	user, err := h.svc.Create(r.Context(), service.CreateUserInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("user_created",
		"user_id", user.ID,
		"request_id", requestIDFrom(r),
	)

	writeJSON(w, http.StatusCreated, dto.ToUserResponse(user))
}

// Update handles PATCH /users/{id}.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		h.writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	user, err := h.svc.Update(r.Context(), userID, service.UpdateUserInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("user_updated",
		"user_id", user.ID,
		"request_id", requestIDFrom(r),
	)

	writeJSON(w, http.StatusOK, dto.ToUserResponse(user))
}

// Delete handles DELETE /users/{id}.
// The response body is the boolean result of the delete: the service
// performs an existence-checked fetch first, so a missing user is a 404
// rather than a silent false.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	deleted, err := h.svc.Delete(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("user_deleted",
		"user_id", userID,
		"request_id", requestIDFrom(r),
	)

	writeJSON(w, http.StatusOK, deleted)
}

// Get handles GET /users/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	user, err := h.svc.FindUser(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToUserResponse(user))
}

// List handles GET /users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.GetUsers(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToUserListResponse(users))
}

// pathID parses the {id} path parameter, writing a 400 on failure.
func (h *UserHandler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.writeError(w, http.StatusBadRequest, "INVALID_ID", "User ID must be a positive integer")
		return 0, false
	}
	return id, true
}

// handleServiceError maps service errors to HTTP responses.
func (h *UserHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		h.writeError(w, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
	case errors.Is(err, store.ErrEmailExists):
		h.writeError(w, http.StatusConflict, "EMAIL_TAKEN", "Email already in use")
	case errors.Is(err, service.ErrInvalidUserID):
		h.writeError(w, http.StatusBadRequest, "INVALID_ID", "User ID must be a positive integer")
	default:
		h.logger.Error("internal_error", "error", err)
		h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

// writeError writes an error response.
func (h *UserHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
