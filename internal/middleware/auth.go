package middleware

import (
	"photogram/internal/session"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired enforces a valid session on protected routes. Browsers are
// redirected to the sign-in page rather than handed a 401 body.
func AuthRequired(sessions *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, err := sessions.FromRequest(c)
		if err != nil {
			return c.Redirect("/signin", fiber.StatusFound)
		}

		c.Locals("userID", ident.UserID)
		c.Locals("username", ident.Username)
		c.Locals("session", ident)

		return c.Next()
	}
}
