package store

import (
	"context"
	"errors"
	"testing"

	"github.com/swapnest/swapnest/internal/model"
)

func TestMemoryUserStore_CreateAssignsIncreasingIDs(t *testing.T) {
	s := NewMemoryUserStore()
	ctx := context.Background()

	first, err := s.CreateUser(ctx, &model.User{Name: "Al", Email: "al@example.com"})
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	second, err := s.CreateUser(ctx, &model.User{Name: "Bo", Email: "bo@example.com"})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}

	if first.ID != 1 {
		t.Errorf("expected first id 1, got %d", first.ID)
	}
	if second.ID != 2 {
		t.Errorf("expected second id 2, got %d", second.ID)
	}
}

func TestMemoryUserStore_CreateDuplicateEmail(t *testing.T) {
	s := NewMemoryUserStore()
	ctx := context.Background()

	if _, err := s.CreateUser(ctx, &model.User{Name: "Al", Email: "al@example.com"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Email uniqueness is case-insensitive.
	_, err := s.CreateUser(ctx, &model.User{Name: "Imp", Email: "AL@EXAMPLE.COM"})
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestMemoryUserStore_FailedCreateDoesNotConsumeID(t *testing.T) {
	s := NewMemoryUserStore()
	ctx := context.Background()

	if _, err := s.CreateUser(ctx, &model.User{Name: "Al", Email: "al@example.com"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.CreateUser(ctx, &model.User{Name: "Imp", Email: "al@example.com"}); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}

	next, err := s.CreateUser(ctx, &model.User{Name: "Bo", Email: "bo@example.com"})
	if err != nil {
		t.Fatalf("create after rejection: %v", err)
	}
	if next.ID != 2 {
		t.Errorf("expected id 2 after rejected create, got %d", next.ID)
	}
}

func TestMemoryUserStore_UpdateKeepsEmailIndexInSync(t *testing.T) {
	s := NewMemoryUserStore()
	ctx := context.Background()

	user, err := s.CreateUser(ctx, &model.User{Name: "Al", Email: "al@example.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	user.Email = "al.new@example.com"
	if _, err := s.UpdateUser(ctx, user); err != nil {
		t.Fatalf("update: %v", err)
	}

	// Old email is released, new email is held.
	taken, err := s.EmailExists(ctx, "al@example.com")
	if err != nil {
		t.Fatalf("email exists: %v", err)
	}
	if taken {
		t.Error("expected old email to be released")
	}

	taken, err = s.EmailExists(ctx, "AL.NEW@example.com")
	if err != nil {
		t.Fatalf("email exists: %v", err)
	}
	if !taken {
		t.Error("expected new email to be held")
	}
}

func TestMemoryUserStore_UpdateEmailCollision(t *testing.T) {
	s := NewMemoryUserStore()
	ctx := context.Background()

	if _, err := s.CreateUser(ctx, &model.User{Name: "Al", Email: "al@example.com"}); err != nil {
		t.Fatalf("create al: %v", err)
	}
	bo, err := s.CreateUser(ctx, &model.User{Name: "Bo", Email: "bo@example.com"})
	if err != nil {
		t.Fatalf("create bo: %v", err)
	}

	bo.Email = "al@example.com"
	if _, err := s.UpdateUser(ctx, bo); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}

	// The stored record is untouched after the rejected update.
	stored, err := s.FindUser(ctx, bo.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored.Email != "bo@example.com" {
		t.Errorf("expected stored email unchanged, got %s", stored.Email)
	}
}

func TestMemoryUserStore_UpdateWithOwnEmail(t *testing.T) {
	s := NewMemoryUserStore()
	ctx := context.Background()

	user, err := s.CreateUser(ctx, &model.User{Name: "Al", Email: "al@example.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Re-submitting the same email in a different case must not collide
	// with the user's own index entry.
	user.Name = "Alfred"
	user.Email = "AL@example.com"
	updated, err := s.UpdateUser(ctx, user)
	if err != nil {
		t.Fatalf("update with own email: %v", err)
	}
	if updated.Name != "Alfred" {
		t.Errorf("expected updated name, got %s", updated.Name)
	}
}

func TestMemoryUserStore_UpdateMissing(t *testing.T) {
	s := NewMemoryUserStore()

	_, err := s.UpdateUser(context.Background(), &model.User{ID: 42, Name: "Ghost", Email: "ghost@example.com"})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestMemoryUserStore_DeleteReleasesEmail(t *testing.T) {
	s := NewMemoryUserStore()
	ctx := context.Background()

	user, err := s.CreateUser(ctx, &model.User{Name: "Al", Email: "al@example.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	deleted, err := s.DeleteUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !deleted {
		t.Fatal("expected delete to report true")
	}

	if _, err := s.FindUser(ctx, user.ID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound after delete, got %v", err)
	}

	// The email is reusable after delete.
	if _, err := s.CreateUser(ctx, &model.User{Name: "Al2", Email: "al@example.com"}); err != nil {
		t.Fatalf("recreate with released email: %v", err)
	}
}

func TestMemoryUserStore_DeleteAbsent(t *testing.T) {
	s := NewMemoryUserStore()

	deleted, err := s.DeleteUser(context.Background(), 42)
	if err != nil {
		t.Fatalf("delete absent: %v", err)
	}
	if deleted {
		t.Error("expected delete of absent user to report false")
	}
}

func TestMemoryUserStore_IDsNotReusedAfterDelete(t *testing.T) {
	s := NewMemoryUserStore()
	ctx := context.Background()

	first, err := s.CreateUser(ctx, &model.User{Name: "Al", Email: "al@example.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.DeleteUser(ctx, first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	second, err := s.CreateUser(ctx, &model.User{Name: "Bo", Email: "bo@example.com"})
	if err != nil {
		t.Fatalf("create after delete: %v", err)
	}
	if second.ID <= first.ID {
		t.Errorf("expected id above %d, got %d", first.ID, second.ID)
	}
}

func TestMemoryUserStore_ReadsReturnCopies(t *testing.T) {
	s := NewMemoryUserStore()
	ctx := context.Background()

	user, err := s.CreateUser(ctx, &model.User{Name: "Al", Email: "al@example.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Mutating a returned record must not leak into the store.
	user.Name = "Mutated"

	stored, err := s.FindUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored.Name != "Al" {
		t.Errorf("expected stored name 'Al', got %s", stored.Name)
	}
}

func TestMemoryUserStore_GetUsers(t *testing.T) {
	s := NewMemoryUserStore()
	ctx := context.Background()

	users, err := s.GetUsers(ctx)
	if err != nil {
		t.Fatalf("get users: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected empty store, got %d users", len(users))
	}

	if _, err := s.CreateUser(ctx, &model.User{Name: "Al", Email: "al@example.com"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.CreateUser(ctx, &model.User{Name: "Bo", Email: "bo@example.com"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	users, err = s.GetUsers(ctx)
	if err != nil {
		t.Fatalf("get users: %v", err)
	}
	if len(users) != 2 {
		t.Errorf("expected 2 users, got %d", len(users))
	}
}
