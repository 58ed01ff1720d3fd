package repository

import (
	"context"
	"errors"

	"photogram/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	ListByAuthor(ctx context.Context, author string) ([]models.Post, error)
	ListAll(ctx context.Context) ([]models.Post, error)
	Delete(ctx context.Context, id uint) error
	ToggleLike(ctx context.Context, postID uint, username string) (bool, int, error)
	CountByAuthor(ctx context.Context, author string) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

// ListByAuthor returns the author's posts in insertion order.
func (r *postRepository) ListByAuthor(ctx context.Context, author string) ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.WithContext(ctx).
		Where("author = ?", author).
		Order("id").
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) ListAll(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.WithContext(ctx).Order("id").Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) CountByAuthor(ctx context.Context, author string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("author = ?", author).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// Delete removes a post and its like rows in one transaction.
// Deleting a post that no longer exists is a no-op.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ToggleLike flips the (post, username) like edge and adjusts the post's
// counter in the same transaction. Returns whether the post is liked after
// the call and the resulting like count.
func (r *postRepository) ToggleLike(ctx context.Context, postID uint, username string) (bool, int, error) {
	var liked bool
	var count int

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", postID)
			}
			return err
		}

		var existing models.Like
		err := tx.Where("post_id = ? AND username = ?", postID, username).First(&existing).Error
		switch {
		case err == nil:
			// Unlike: drop the edge and clamp the counter at zero.
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Post{}).Where("id = ?", postID).
				Update("likes_count", gorm.Expr(
					"CASE WHEN likes_count > 0 THEN likes_count - 1 ELSE 0 END")).Error; err != nil {
				return err
			}
			liked = false
		case errors.Is(err, gorm.ErrRecordNotFound):
			like := models.Like{PostID: postID, Username: username}
			if err := tx.Create(&like).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Post{}).Where("id = ?", postID).
				Update("likes_count", gorm.Expr("likes_count + 1")).Error; err != nil {
				return err
			}
			liked = true
		default:
			return err
		}

		var updated models.Post
		if err := tx.Select("likes_count").First(&updated, postID).Error; err != nil {
			return err
		}
		count = updated.LikesCount
		return nil
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return false, 0, err
		}
		return false, 0, models.NewInternalError(err)
	}
	return liked, count, nil
}
