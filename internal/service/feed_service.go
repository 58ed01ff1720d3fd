// Package service contains the application's business logic.
package service

import (
	"context"
	"math/rand/v2"

	"photogram/internal/models"
	"photogram/internal/observability"
	"photogram/internal/repository"
)

// SuggestionLimit caps how many profiles the feed page proposes to follow.
const SuggestionLimit = 4

// FeedService assembles the home feed and follow suggestions for a viewer.
type FeedService struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	posts    repository.PostRepository
	follows  repository.FollowRepository
}

// NewFeedService creates a new feed service
func NewFeedService(
	users repository.UserRepository,
	profiles repository.ProfileRepository,
	posts repository.PostRepository,
	follows repository.FollowRepository,
) *FeedService {
	return &FeedService{users: users, profiles: profiles, posts: posts, follows: follows}
}

// BuildFeed returns the viewer's feed posts and follow suggestions.
//
// The feed is each followee's posts concatenated in the order the follow
// edges were created; within a followee, posts keep insertion order. The
// viewer's own posts are not part of the feed.
//
// Suggestions are every user except the viewer and anyone the viewer
// already follows, shuffled, capped at SuggestionLimit.
func (s *FeedService) BuildFeed(ctx context.Context, viewer string) ([]models.Post, []models.Profile, error) {
	observability.FeedBuilds.Inc()

	user, err := s.users.GetByUsername(ctx, viewer)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, models.NewNotFoundError("User", viewer)
	}

	followees, err := s.follows.Followees(ctx, viewer)
	if err != nil {
		return nil, nil, err
	}

	feed := []models.Post{}
	for _, followee := range followees {
		posts, err := s.posts.ListByAuthor(ctx, followee)
		if err != nil {
			return nil, nil, err
		}
		feed = append(feed, posts...)
	}

	suggestions, err := s.suggest(ctx, viewer, followees)
	if err != nil {
		return nil, nil, err
	}
	return feed, suggestions, nil
}

func (s *FeedService) suggest(ctx context.Context, viewer string, followees []string) ([]models.Profile, error) {
	excluded := make(map[string]bool, len(followees)+1)
	excluded[viewer] = true
	for _, followee := range followees {
		excluded[followee] = true
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]models.User, 0, len(users))
	for _, u := range users {
		if !excluded[u.Username] {
			candidates = append(candidates, u)
		}
	}

	rand.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if len(candidates) > SuggestionLimit {
		candidates = candidates[:SuggestionLimit]
	}

	ids := make([]uint, len(candidates))
	for i, u := range candidates {
		ids[i] = u.ID
	}
	profiles, err := s.profiles.ListByUserIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	// Keep the shuffled order; ListByUserIDs gives no ordering guarantee.
	byUserID := make(map[uint]models.Profile, len(profiles))
	for _, p := range profiles {
		byUserID[p.UserID] = p
	}
	ordered := make([]models.Profile, 0, len(candidates))
	for _, u := range candidates {
		if p, ok := byUserID[u.ID]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}
