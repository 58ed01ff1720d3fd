package server

import (
	"github.com/gofiber/fiber/v2"

	"photogram/internal/models"
)

// Feed renders the home page: the viewer's feed plus follow suggestions.
func (s *Server) Feed(c *fiber.Ctx) error {
	viewer := currentUsername(c)

	posts, suggestions, err := s.feedService.BuildFeed(c.Context(), viewer)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"username":    viewer,
		"posts":       postViews(posts),
		"suggestions": profileViews(suggestions),
	})
}

// Search finds users whose username contains the submitted text,
// case-insensitively. Every username contains the empty string, so an
// empty query lists every account.
func (s *Server) Search(c *fiber.Ctx) error {
	query := c.FormValue("username")

	users, err := s.userRepo.SearchByUsername(c.Context(), query)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	ids := make([]uint, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	profiles, err := s.profileRepo.ListByUserIDs(c.Context(), ids)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"query":   query,
		"results": profileViews(profiles),
	})
}
