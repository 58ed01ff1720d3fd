package server

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"photogram/internal/media"
	"photogram/internal/middleware"
	"photogram/internal/models"
	"photogram/internal/observability"
)

// Upload accepts a multipart image and caption, stores the file, and
// creates a post for the viewer.
func (s *Server) Upload(c *fiber.Ctx) error {
	viewer := currentUsername(c)

	fileHeader, err := c.FormFile("image_upload")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("image_upload file is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	defer file.Close()

	imagePath, err := s.media.Save(fileHeader.Filename, file)
	if err != nil {
		if errors.Is(err, media.ErrNotAnImage) {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	post := &models.Post{
		Author:  viewer,
		Image:   imagePath,
		Caption: c.FormValue("caption"),
	}
	if err := s.postRepo.Create(c.Context(), post); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	middleware.Logger.Info("post created", "username", viewer, "post_id", post.ID)
	return c.Redirect("/", fiber.StatusFound)
}

// LikePost toggles the viewer's like on a post and returns to the feed.
func (s *Server) LikePost(c *fiber.Ctx) error {
	viewer := currentUsername(c)

	postID, err := strconv.ParseUint(c.Query("post_id"), 10, 32)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("post_id must be a positive integer"))
	}

	liked, _, err := s.postRepo.ToggleLike(c.Context(), uint(postID), viewer)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
			return models.RespondWithError(c, fiber.StatusNotFound, err)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	if liked {
		observability.LikeToggles.WithLabelValues("like").Inc()
	} else {
		observability.LikeToggles.WithLabelValues("unlike").Inc()
	}
	return c.Redirect("/", fiber.StatusFound)
}

// DeletePost removes a post by id and returns to the feed. Any signed-in
// user may delete any post; deleting an already-deleted post is a no-op.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := strconv.ParseUint(c.FormValue("post_id"), 10, 32)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("post_id must be a positive integer"))
	}

	post, err := s.postRepo.GetByID(c.Context(), uint(postID))
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
			// Already gone.
			return c.Redirect("/", fiber.StatusFound)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	if err := s.postRepo.Delete(c.Context(), post.ID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if err := s.media.Remove(post.Image); err != nil {
		middleware.Logger.Warn("removing post image failed", "error", err, "image", post.Image)
	}

	return c.Redirect("/", fiber.StatusFound)
}
