package session

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Flash messages are one-shot: set on a redirect, shown once, then gone.
// The message body lives in Redis under a random key and the key travels in a
// short-lived cookie, so anonymous visitors (signup/signin errors) get flashes
// too. Without Redis the message itself rides in the cookie.

const (
	flashCookie = "photogram_flash"
	flashTTL    = 5 * time.Minute

	flashValuePrefix = "msg:"
)

func flashKey(id string) string {
	return "flash:" + id
}

// SetFlash stores a one-shot message for the client.
func (m *Manager) SetFlash(c *fiber.Ctx, message string) {
	value := flashValuePrefix + message
	if m.redis != nil {
		id := uuid.NewString()
		if err := m.redis.Set(c.Context(), flashKey(id), message, flashTTL).Err(); err == nil {
			value = id
		}
	}
	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    value,
		Expires:  time.Now().Add(flashTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

// PopFlash returns the pending message, if any, and consumes it.
func (m *Manager) PopFlash(c *fiber.Ctx) string {
	value := c.Cookies(flashCookie)
	if value == "" {
		return ""
	}

	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})

	if len(value) > len(flashValuePrefix) && value[:len(flashValuePrefix)] == flashValuePrefix {
		return value[len(flashValuePrefix):]
	}

	if m.redis == nil {
		return ""
	}
	message, err := m.redis.GetDel(c.Context(), flashKey(value)).Result()
	if err != nil {
		return ""
	}
	return message
}
