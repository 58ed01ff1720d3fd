package repository

import (
	"context"
	"errors"

	"photogram/internal/models"

	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow-edge data operations
type FollowRepository interface {
	Toggle(ctx context.Context, follower, followee string) (bool, error)
	IsFollowing(ctx context.Context, follower, followee string) (bool, error)
	CountFollowers(ctx context.Context, username string) (int64, error)
	CountFollowing(ctx context.Context, username string) (int64, error)
	Followees(ctx context.Context, follower string) ([]string, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Toggle creates the follow edge if absent and removes it if present.
// Returns whether the follower follows the followee after the call.
func (r *followRepository) Toggle(ctx context.Context, follower, followee string) (bool, error) {
	var following bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Follow
		err := tx.Where("follower = ? AND followee = ?", follower, followee).First(&existing).Error
		switch {
		case err == nil:
			following = false
			return tx.Delete(&existing).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			following = true
			return tx.Create(&models.Follow{Follower: follower, Followee: followee}).Error
		default:
			return err
		}
	})
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return following, nil
}

func (r *followRepository) IsFollowing(ctx context.Context, follower, followee string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower = ? AND followee = ?", follower, followee).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *followRepository) CountFollowers(ctx context.Context, username string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("followee = ?", username).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *followRepository) CountFollowing(ctx context.Context, username string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower = ?", username).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// Followees returns the usernames the follower follows, in the order the
// follow edges were created. Feed assembly depends on this ordering.
func (r *followRepository) Followees(ctx context.Context, follower string) ([]string, error) {
	var followees []string
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower = ?", follower).
		Order("id").
		Pluck("followee", &followees).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return followees, nil
}
