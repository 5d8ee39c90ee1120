package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/swapnest/swapnest/internal/handler/dto"
	"github.com/swapnest/swapnest/internal/middleware"
	"github.com/swapnest/swapnest/internal/service"
	"github.com/swapnest/swapnest/internal/store"
)

// newItemRouter wires item routes behind the identity middleware, the
// same chain the server uses, plus user routes for seeding owners.
func newItemRouter() *chi.Mux {
	users := store.NewMemoryUserStore()
	items := store.NewMemoryItemStore()

	userSvc := service.NewUserService(users, nil)
	itemSvc := service.NewItemService(items, users, nil)

	logger := testLogger()
	userHandler := NewUserHandler(userSvc, logger)
	itemHandler := NewItemHandler(itemSvc, logger)

	r := chi.NewRouter()
	r.Post("/users", userHandler.Create)
	r.Route("/items", func(r chi.Router) {
		r.Use(middleware.Identity(logger))
		r.Post("/", itemHandler.Create)
		r.Get("/", itemHandler.List)
		r.Get("/search", itemHandler.Search)
		r.Get("/{id}", itemHandler.Get)
		r.Patch("/{id}", itemHandler.Update)
		r.Delete("/{id}", itemHandler.Delete)
	})
	return r
}

// doRequestAs sends a request with the caller identity header. A zero
// callerID omits the header.
func doRequestAs(t *testing.T, r http.Handler, method, path string, callerID int64, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if callerID > 0 {
		req.Header.Set(middleware.CallerIDHeader, strconv.FormatInt(callerID, 10))
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

// seedUser registers a user and returns its id.
func seedUser(t *testing.T, r http.Handler, name, email string) int64 {
	t.Helper()

	rec := doRequest(t, r, http.MethodPost, "/users", `{"name":"`+name+`","email":"`+email+`"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("seed user: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var user dto.UserResponse
	if err := json.NewDecoder(rec.Body).Decode(&user); err != nil {
		t.Fatalf("decode seed user: %v", err)
	}
	return user.ID
}

func TestItemHandler_Create(t *testing.T) {
	r := newItemRouter()
	owner := seedUser(t, r, "Al", "al@example.com")

	rec := doRequestAs(t, r, http.MethodPost, "/items", owner,
		`{"name":"Drill","description":"18V cordless","available":true}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var item dto.ItemResponse
	if err := json.NewDecoder(rec.Body).Decode(&item); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if item.ID != 1 {
		t.Errorf("expected id 1, got %d", item.ID)
	}
	if item.OwnerID != owner {
		t.Errorf("expected owner %d, got %d", owner, item.OwnerID)
	}
}

func TestItemHandler_CreateIdentityErrors(t *testing.T) {
	r := newItemRouter()

	tests := []struct {
		name     string
		header   string
		wantCode string
	}{
		{"missing_header", "", "MISSING_USER_ID"},
		{"non_numeric", "abc", "INVALID_USER_ID"},
		{"zero", "0", "INVALID_USER_ID"},
		{"negative", "-5", "INVALID_USER_ID"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/items",
				strings.NewReader(`{"name":"Drill","description":"18V","available":true}`))
			req.Header.Set("Content-Type", "application/json")
			if test.header != "" {
				req.Header.Set(middleware.CallerIDHeader, test.header)
			}

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			if errResp := decodeError(t, rec); errResp.Code != test.wantCode {
				t.Errorf("expected code %s, got %s", test.wantCode, errResp.Code)
			}
		})
	}
}

func TestItemHandler_CreateValidation(t *testing.T) {
	r := newItemRouter()
	owner := seedUser(t, r, "Al", "al@example.com")

	tests := []struct {
		name string
		body string
	}{
		{"blank_name", `{"name":" ","description":"18V","available":true}`},
		{"blank_description", `{"name":"Drill","description":"","available":true}`},
		{"missing_available", `{"name":"Drill","description":"18V"}`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rec := doRequestAs(t, r, http.MethodPost, "/items", owner, test.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			if errResp := decodeError(t, rec); errResp.Code != "VALIDATION_FAILED" {
				t.Errorf("expected VALIDATION_FAILED, got %s", errResp.Code)
			}
		})
	}
}

func TestItemHandler_CreateUnknownOwner(t *testing.T) {
	r := newItemRouter()

	rec := doRequestAs(t, r, http.MethodPost, "/items", 42,
		`{"name":"Drill","description":"18V","available":true}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if errResp := decodeError(t, rec); errResp.Code != "USER_NOT_FOUND" {
		t.Errorf("expected USER_NOT_FOUND, got %s", errResp.Code)
	}
}

func TestItemHandler_UpdateOwnership(t *testing.T) {
	r := newItemRouter()
	al := seedUser(t, r, "Al", "al@example.com")
	bo := seedUser(t, r, "Bo", "bo@example.com")

	rec := doRequestAs(t, r, http.MethodPost, "/items", al,
		`{"name":"Drill","description":"18V cordless","available":true}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", rec.Code)
	}

	// Non-owner patch is forbidden.
	rec = doRequestAs(t, r, http.MethodPatch, "/items/1", bo, `{"available":false}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if errResp := decodeError(t, rec); errResp.Code != "NOT_OWNER" {
		t.Errorf("expected NOT_OWNER, got %s", errResp.Code)
	}

	// The item is unchanged and still readable by anyone.
	rec = doRequestAs(t, r, http.MethodGet, "/items/1", bo, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var item dto.ItemResponse
	if err := json.NewDecoder(rec.Body).Decode(&item); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !item.Available {
		t.Error("availability changed by a forbidden update")
	}

	// Owner patch succeeds.
	rec = doRequestAs(t, r, http.MethodPatch, "/items/1", al, `{"available":false}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if err := json.NewDecoder(rec.Body).Decode(&item); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if item.Available {
		t.Error("expected availability cleared")
	}
}

func TestItemHandler_Delete(t *testing.T) {
	r := newItemRouter()
	al := seedUser(t, r, "Al", "al@example.com")
	bo := seedUser(t, r, "Bo", "bo@example.com")

	doRequestAs(t, r, http.MethodPost, "/items", al,
		`{"name":"Drill","description":"18V","available":true}`)

	rec := doRequestAs(t, r, http.MethodDelete, "/items/1", bo, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-owner delete, got %d", rec.Code)
	}

	rec = doRequestAs(t, r, http.MethodDelete, "/items/1", al, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var deleted bool
	if err := json.NewDecoder(rec.Body).Decode(&deleted); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !deleted {
		t.Error("expected delete body true")
	}

	rec = doRequestAs(t, r, http.MethodDelete, "/items/1", al, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rec.Code)
	}
}

func TestItemHandler_Search(t *testing.T) {
	r := newItemRouter()
	al := seedUser(t, r, "Al", "al@example.com")

	doRequestAs(t, r, http.MethodPost, "/items", al,
		`{"name":"Cordless Drill","description":"18V","available":true}`)
	doRequestAs(t, r, http.MethodPost, "/items", al,
		`{"name":"Hammer drill","description":"heavy","available":false}`)

	rec := doRequestAs(t, r, http.MethodGet, "/items/search?text=DRILL", al, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var items []dto.ItemResponse
	if err := json.NewDecoder(rec.Body).Decode(&items); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 available match, got %d", len(items))
	}
	if items[0].Name != "Cordless Drill" {
		t.Errorf("unexpected match %q", items[0].Name)
	}

	// Blank query returns an empty JSON array, not null.
	rec = doRequestAs(t, r, http.MethodGet, "/items/search?text=", al, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("expected empty array body, got %s", body)
	}
}

func TestItemHandler_List(t *testing.T) {
	r := newItemRouter()
	al := seedUser(t, r, "Al", "al@example.com")
	bo := seedUser(t, r, "Bo", "bo@example.com")

	doRequestAs(t, r, http.MethodPost, "/items", al,
		`{"name":"Drill","description":"18V","available":true}`)
	doRequestAs(t, r, http.MethodPost, "/items", bo,
		`{"name":"Tent","description":"4 person","available":true}`)

	rec := doRequestAs(t, r, http.MethodGet, "/items", al, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var items []dto.ItemResponse
	if err := json.NewDecoder(rec.Body).Decode(&items); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Drill" {
		t.Errorf("unexpected items for caller %d: %+v", al, items)
	}
}
