// Package seed populates a development database with plausible data.
package seed

import (
	"context"
	"fmt"
	"strings"

	"photogram/internal/middleware"
	"photogram/internal/models"
	"photogram/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls how much data Run generates.
type Options struct {
	Users          int
	PostsPerUser   int
	FollowsPerUser int
	LikesPerUser   int
	Password       string
}

// DefaultOptions seeds a small but browsable dataset.
func DefaultOptions() Options {
	return Options{
		Users:          12,
		PostsPerUser:   3,
		FollowsPerUser: 4,
		LikesPerUser:   6,
		Password:       "password123",
	}
}

// Run fills the database with fake users, profiles, posts, follow edges,
// and likes. Likes and follows go through the same toggles the handlers
// use, so counters stay consistent with edges.
func Run(ctx context.Context, db *gorm.DB, opts Options) error {
	users := repository.NewUserRepository(db)
	profiles := repository.NewProfileRepository(db)
	posts := repository.NewPostRepository(db)
	follows := repository.NewFollowRepository(db)

	hash, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing seed password: %w", err)
	}

	usernames := make([]string, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		username := strings.ToLower(gofakeit.Username())
		user := &models.User{
			Username:     username,
			Email:        fmt.Sprintf("%s@%s", username, gofakeit.DomainName()),
			PasswordHash: string(hash),
		}
		if err := users.Create(ctx, user); err != nil {
			// Random usernames can collide; skip and move on.
			middleware.Logger.Warn("seed user skipped", "username", username, "error", err)
			continue
		}
		profile := &models.Profile{
			UserID:   user.ID,
			Bio:      gofakeit.Sentence(8),
			Location: gofakeit.City(),
			Avatar:   models.DefaultAvatar,
		}
		if err := profiles.Create(ctx, profile); err != nil {
			return err
		}
		usernames = append(usernames, username)
	}

	var allPosts []uint
	for _, username := range usernames {
		for i := 0; i < opts.PostsPerUser; i++ {
			post := &models.Post{
				Author:  username,
				Image:   fmt.Sprintf("/media/seed-%s.jpg", gofakeit.UUID()),
				Caption: gofakeit.HipsterSentence(6),
			}
			if err := posts.Create(ctx, post); err != nil {
				return err
			}
			allPosts = append(allPosts, post.ID)
		}
	}

	for _, username := range usernames {
		for i := 0; i < opts.FollowsPerUser && len(usernames) > 1; i++ {
			followee := usernames[gofakeit.Number(0, len(usernames)-1)]
			if followee == username {
				continue
			}
			if _, err := follows.Toggle(ctx, username, followee); err != nil {
				return err
			}
		}
		for i := 0; i < opts.LikesPerUser && len(allPosts) > 0; i++ {
			postID := allPosts[gofakeit.Number(0, len(allPosts)-1)]
			if _, _, err := posts.ToggleLike(ctx, postID, username); err != nil {
				return err
			}
		}
	}

	middleware.Logger.Info("seeding complete",
		"users", len(usernames), "posts", len(allPosts))
	return nil
}
