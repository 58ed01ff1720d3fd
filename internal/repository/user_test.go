package repository

import (
	"context"
	"testing"

	"photogram/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupUserTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

func TestGetByUsernameMissingReturnsNil(t *testing.T) {
	t.Parallel()

	repo := NewUserRepository(setupUserTestDB(t))

	user, err := repo.GetByUsername(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user != nil {
		t.Fatalf("expected nil user, got %+v", user)
	}
}

func TestSearchByUsernameIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	db := setupUserTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	for _, username := range []string{"TestUser", "testadmin", "alice"} {
		user := &models.User{Username: username, Email: username + "@example.com", PasswordHash: "x"}
		if err := repo.Create(ctx, user); err != nil {
			t.Fatalf("create %s: %v", username, err)
		}
	}

	results, err := repo.SearchByUsername(ctx, "test")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(results))
	}
	got := map[string]bool{}
	for _, u := range results {
		got[u.Username] = true
	}
	if !got["TestUser"] || !got["testadmin"] {
		t.Fatalf("expected TestUser and testadmin, got %v", got)
	}

	// Substring match, not prefix.
	results, err = repo.SearchByUsername(ctx, "ADMIN")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 1 || results[0].Username != "testadmin" {
		t.Fatalf("expected testadmin, got %v", results)
	}
}

func TestSearchByUsernameNoMatchReturnsEmpty(t *testing.T) {
	t.Parallel()

	db := setupUserTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("create: %v", err)
	}

	results, err := repo.SearchByUsername(ctx, "zzz")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no matches, got %v", results)
	}
}

func TestSearchByUsernameEmptyQueryMatchesAll(t *testing.T) {
	t.Parallel()

	db := setupUserTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	for _, username := range []string{"alice", "bob"} {
		user := &models.User{Username: username, Email: username + "@example.com", PasswordHash: "x"}
		if err := repo.Create(ctx, user); err != nil {
			t.Fatalf("create %s: %v", username, err)
		}
	}

	// Every username contains the empty string.
	results, err := repo.SearchByUsername(ctx, "")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected every user, got %v", results)
	}
}
