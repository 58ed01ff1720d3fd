package server

import (
	"github.com/gofiber/fiber/v2"

	"photogram/internal/models"
)

// currentUsername reads the authenticated username set by the auth middleware.
func currentUsername(c *fiber.Ctx) string {
	if username, ok := c.Locals("username").(string); ok {
		return username
	}
	return ""
}

// postView shapes a post for page payloads.
func postView(p models.Post) fiber.Map {
	return fiber.Map{
		"id":          p.ID,
		"author":      p.Author,
		"image":       p.Image,
		"caption":     p.Caption,
		"likes_count": p.LikesCount,
		"created_at":  p.CreatedAt,
	}
}

func postViews(posts []models.Post) []fiber.Map {
	views := make([]fiber.Map, len(posts))
	for i, p := range posts {
		views[i] = postView(p)
	}
	return views
}

// profileView shapes a profile for page payloads. The username comes from
// the preloaded User association.
func profileView(p models.Profile) fiber.Map {
	return fiber.Map{
		"username": p.User.Username,
		"bio":      p.Bio,
		"location": p.Location,
		"avatar":   p.Avatar,
	}
}

func profileViews(profiles []models.Profile) []fiber.Map {
	views := make([]fiber.Map, len(profiles))
	for i, p := range profiles {
		views[i] = profileView(p)
	}
	return views
}
