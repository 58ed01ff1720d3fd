package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"photogram/internal/media"
	"photogram/internal/middleware"
	"photogram/internal/models"
	"photogram/internal/observability"
)

// ProfilePage renders a user's profile: their posts, counts, and the
// follow-button label from the viewer's perspective.
func (s *Server) ProfilePage(c *fiber.Ctx) error {
	viewer := currentUsername(c)
	username := c.Params("username")

	profile, err := s.profileRepo.GetByUsername(c.Context(), username)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
			return models.RespondWithError(c, fiber.StatusNotFound, err)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	posts, err := s.postRepo.ListByAuthor(c.Context(), username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	postCount, err := s.postRepo.CountByAuthor(c.Context(), username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	followers, err := s.followRepo.CountFollowers(c.Context(), username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	following, err := s.followRepo.CountFollowing(c.Context(), username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	isFollowing, err := s.followRepo.IsFollowing(c.Context(), viewer, username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	buttonText := "Follow"
	if isFollowing {
		buttonText = "Unfollow"
	}

	return c.JSON(fiber.Map{
		"profile":         profileView(*profile),
		"posts":           postViews(posts),
		"post_count":      postCount,
		"followers_count": followers,
		"following_count": following,
		"button_text":     buttonText,
	})
}

// Follow toggles the viewer's follow edge toward the submitted user and
// returns to that user's profile.
func (s *Server) Follow(c *fiber.Ctx) error {
	viewer := currentUsername(c)
	followee := c.FormValue("user")
	if followee == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("user field is required"))
	}

	followed, err := s.followRepo.Toggle(c.Context(), viewer, followee)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	if followed {
		observability.FollowToggles.WithLabelValues("follow").Inc()
	} else {
		observability.FollowToggles.WithLabelValues("unfollow").Inc()
	}
	return c.Redirect("/profile/"+followee, fiber.StatusFound)
}

// SettingsPage renders the viewer's own profile for editing.
func (s *Server) SettingsPage(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	profile, err := s.profileRepo.GetByUserID(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"page":    "settings",
		"profile": profileView(*profile),
	})
}

// UpdateSettings saves bio, location, and optionally a new avatar. When no
// file is submitted the current avatar is kept.
func (s *Server) UpdateSettings(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	profile, err := s.profileRepo.GetByUserID(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	profile.Bio = c.FormValue("bio")
	profile.Location = c.FormValue("location")

	if fileHeader, err := c.FormFile("image"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		}
		defer file.Close()

		avatarPath, err := s.media.Save(fileHeader.Filename, file)
		if err != nil {
			if errors.Is(err, media.ErrNotAnImage) {
				return models.RespondWithError(c, fiber.StatusBadRequest,
					models.NewValidationError(err.Error()))
			}
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		}
		profile.Avatar = avatarPath
	}

	if err := s.profileRepo.Update(c.Context(), profile); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	middleware.Logger.Info("profile updated", "user_id", userID)
	return c.Redirect("/settings", fiber.StatusFound)
}
