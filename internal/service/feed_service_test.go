package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"photogram/internal/models"
	"photogram/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type feedFixture struct {
	db       *gorm.DB
	users    repository.UserRepository
	profiles repository.ProfileRepository
	posts    repository.PostRepository
	follows  repository.FollowRepository
	svc      *FeedService
}

func setupFeedFixture(t *testing.T) *feedFixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{}, &models.Profile{}, &models.Post{},
		&models.Follow{}, &models.Like{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	f := &feedFixture{
		db:       db,
		users:    repository.NewUserRepository(db),
		profiles: repository.NewProfileRepository(db),
		posts:    repository.NewPostRepository(db),
		follows:  repository.NewFollowRepository(db),
	}
	f.svc = NewFeedService(f.users, f.profiles, f.posts, f.follows)
	return f
}

func (f *feedFixture) addUser(t *testing.T, username string) {
	t.Helper()
	ctx := context.Background()
	user := &models.User{Username: username, Email: username + "@example.com", PasswordHash: "x"}
	if err := f.users.Create(ctx, user); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	profile := &models.Profile{UserID: user.ID, Avatar: models.DefaultAvatar}
	if err := f.profiles.Create(ctx, profile); err != nil {
		t.Fatalf("create profile %s: %v", username, err)
	}
}

func (f *feedFixture) addPost(t *testing.T, author, caption string) {
	t.Helper()
	post := &models.Post{Author: author, Image: "/media/x.jpg", Caption: caption}
	if err := f.posts.Create(context.Background(), post); err != nil {
		t.Fatalf("create post: %v", err)
	}
}

func TestFeedFollowsEdgeOrder(t *testing.T) {
	t.Parallel()

	f := setupFeedFixture(t)
	ctx := context.Background()
	for _, u := range []string{"viewer", "bob", "carol"} {
		f.addUser(t, u)
	}

	// bob posts before carol, but viewer follows carol first, so carol's
	// posts lead the feed.
	f.addPost(t, "bob", "bob-1")
	f.addPost(t, "carol", "carol-1")
	f.addPost(t, "bob", "bob-2")
	f.addPost(t, "viewer", "mine")

	for _, followee := range []string{"carol", "bob"} {
		if _, err := f.follows.Toggle(ctx, "viewer", followee); err != nil {
			t.Fatalf("follow %s: %v", followee, err)
		}
	}

	feed, _, err := f.svc.BuildFeed(ctx, "viewer")
	if err != nil {
		t.Fatalf("buildFeed: %v", err)
	}

	captions := make([]string, len(feed))
	for i, p := range feed {
		captions[i] = p.Caption
	}
	want := []string{"carol-1", "bob-1", "bob-2"}
	if len(captions) != len(want) {
		t.Fatalf("expected %v, got %v", want, captions)
	}
	for i := range want {
		if captions[i] != want[i] {
			t.Fatalf("feed order: expected %v, got %v", want, captions)
		}
	}
}

func TestFeedExcludesViewersOwnPosts(t *testing.T) {
	t.Parallel()

	f := setupFeedFixture(t)
	ctx := context.Background()
	f.addUser(t, "viewer")
	f.addPost(t, "viewer", "mine")

	feed, _, err := f.svc.BuildFeed(ctx, "viewer")
	if err != nil {
		t.Fatalf("buildFeed: %v", err)
	}
	if len(feed) != 0 {
		t.Fatalf("viewer's own posts must not appear in the feed, got %d", len(feed))
	}
}

func TestSuggestionsExcludeViewerAndFollowees(t *testing.T) {
	t.Parallel()

	f := setupFeedFixture(t)
	ctx := context.Background()
	for _, u := range []string{"viewer", "bob", "carol", "dave"} {
		f.addUser(t, u)
	}
	if _, err := f.follows.Toggle(ctx, "viewer", "bob"); err != nil {
		t.Fatalf("follow: %v", err)
	}

	_, suggestions, err := f.svc.BuildFeed(ctx, "viewer")
	if err != nil {
		t.Fatalf("buildFeed: %v", err)
	}

	if len(suggestions) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(suggestions))
	}
	for _, p := range suggestions {
		if p.User.Username == "viewer" {
			t.Fatal("suggestions must not include the viewer")
		}
		if p.User.Username == "bob" {
			t.Fatal("suggestions must not include a followee")
		}
	}
}

func TestSuggestionsCappedAtLimit(t *testing.T) {
	t.Parallel()

	f := setupFeedFixture(t)
	ctx := context.Background()
	f.addUser(t, "viewer")
	for i := 0; i < 10; i++ {
		f.addUser(t, fmt.Sprintf("user%d", i))
	}

	_, suggestions, err := f.svc.BuildFeed(ctx, "viewer")
	if err != nil {
		t.Fatalf("buildFeed: %v", err)
	}
	if len(suggestions) != SuggestionLimit {
		t.Fatalf("expected %d suggestions, got %d", SuggestionLimit, len(suggestions))
	}
}

func TestBuildFeedMissingViewer(t *testing.T) {
	t.Parallel()

	f := setupFeedFixture(t)

	_, _, err := f.svc.BuildFeed(context.Background(), "ghost")
	if err == nil {
		t.Fatal("expected error for unknown viewer")
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestEmptyDatabaseYieldsEmptyFeed(t *testing.T) {
	t.Parallel()

	f := setupFeedFixture(t)
	f.addUser(t, "viewer")

	feed, suggestions, err := f.svc.BuildFeed(context.Background(), "viewer")
	if err != nil {
		t.Fatalf("buildFeed: %v", err)
	}
	if len(feed) != 0 || len(suggestions) != 0 {
		t.Fatalf("expected empty feed and suggestions, got %d posts, %d suggestions",
			len(feed), len(suggestions))
	}
}
