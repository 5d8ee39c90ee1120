package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/swapnest/swapnest/internal/handler/dto"
	"github.com/swapnest/swapnest/internal/middleware"
	"github.com/swapnest/swapnest/internal/service"
	"github.com/swapnest/swapnest/internal/store"
)

// ItemHandler handles HTTP requests for item operations. All routes sit
// behind the identity middleware, so a caller id is always present in
// the request context.
type ItemHandler struct {
	svc    *service.ItemService
	logger *slog.Logger
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(svc *service.ItemService, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /items.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	callerID, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req dto.CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		h.writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	item, err := h.svc.Create(r.Context(), callerID, service.CreateItemInput{
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
		RequestID:   req.RequestID,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("item_created",
		"item_id", item.ID,
		"owner_id", callerID,
		"request_id", requestIDFrom(r),
	)

	writeJSON(w, http.StatusCreated, dto.ToItemResponse(item))
}

// Update handles PATCH /items/{id}.
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	callerID, ok := h.caller(w, r)
	if !ok {
		return
	}

	itemID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	item, err := h.svc.Update(r.Context(), itemID, service.UpdateItemInput{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
	}, callerID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("item_updated",
		"item_id", item.ID,
		"owner_id", callerID,
		"request_id", requestIDFrom(r),
	)

	writeJSON(w, http.StatusOK, dto.ToItemResponse(item))
}

// Delete handles DELETE /items/{id}. The body is the boolean delete
// result, mirroring user delete.
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	callerID, ok := h.caller(w, r)
	if !ok {
		return
	}

	itemID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	deleted, err := h.svc.Delete(r.Context(), callerID, itemID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("item_deleted",
		"item_id", itemID,
		"owner_id", callerID,
		"request_id", requestIDFrom(r),
	)

	writeJSON(w, http.StatusOK, deleted)
}

// Get handles GET /items/{id}. Reads are not restricted to the owner;
// any authenticated caller may fetch any item by id.
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	callerID, ok := h.caller(w, r)
	if !ok {
		return
	}

	itemID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	item, err := h.svc.FindItem(r.Context(), callerID, itemID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToItemResponse(item))
}

// Search handles GET /items/search?text=...
func (h *ItemHandler) Search(w http.ResponseWriter, r *http.Request) {
	callerID, ok := h.caller(w, r)
	if !ok {
		return
	}

	text := r.URL.Query().Get("text")

	items, err := h.svc.Search(r.Context(), callerID, text)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToItemListResponse(items))
}

// List handles GET /items, returning the caller's own items.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	callerID, ok := h.caller(w, r)
	if !ok {
		return
	}

	items, err := h.svc.FindAll(r.Context(), callerID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToItemListResponse(items))
}

// caller extracts the caller id placed in the context by the identity
// middleware.
func (h *ItemHandler) caller(w http.ResponseWriter, r *http.Request) (int64, bool) {
	callerID, ok := middleware.CallerID(r.Context())
	if !ok {
		// Identity middleware missing from the chain.
		h.writeError(w, http.StatusBadRequest, "MISSING_USER_ID", "Caller id header is required")
		return 0, false
	}
	return callerID, true
}

// pathID parses the {id} path parameter, writing a 400 on failure.
func (h *ItemHandler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.writeError(w, http.StatusBadRequest, "INVALID_ID", "Item ID must be a positive integer")
		return 0, false
	}
	return id, true
}

// handleServiceError maps service errors to HTTP responses.
func (h *ItemHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrItemNotFound):
		h.writeError(w, http.StatusNotFound, "ITEM_NOT_FOUND", "Item not found")
	case errors.Is(err, store.ErrUserNotFound):
		h.writeError(w, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
	case errors.Is(err, service.ErrNotOwner):
		h.writeError(w, http.StatusForbidden, "NOT_OWNER", "Only the item owner may modify it")
	default:
		h.logger.Error("internal_error", "error", err)
		h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

// writeError writes an error response.
func (h *ItemHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
