package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"photogram/internal/middleware"
	"photogram/internal/models"
	"photogram/internal/service"
)

// SignupPage renders the signup form state, including any pending flash.
func (s *Server) SignupPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"page":  "signup",
		"flash": s.sessions.PopFlash(c),
	})
}

// Signup handles account registration. Failures flash a message and send
// the user back to the form; success signs the new account in and lands
// on settings, where a fresh profile gets filled in.
func (s *Server) Signup(c *fiber.Ctx) error {
	username := c.FormValue("username")
	email := c.FormValue("email")
	password := c.FormValue("password")
	password2 := c.FormValue("password2")

	user, err := s.accountService.Signup(c.Context(), username, email, password, password2)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
		s.sessions.SetFlash(c, err.Error())
		return c.Redirect("/signup", fiber.StatusFound)
	}

	token, err := s.sessions.Issue(user.ID, user.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	s.sessions.SetCookie(c, token)

	middleware.Logger.Info("account created", "username", user.Username)
	return c.Redirect("/settings", fiber.StatusFound)
}

// SigninPage renders the signin form state, including any pending flash.
func (s *Server) SigninPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"page":  "signin",
		"flash": s.sessions.PopFlash(c),
	})
}

// Signin authenticates a username/password pair and starts a session.
func (s *Server) Signin(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	user, err := s.accountService.Authenticate(c.Context(), username, password)
	if err != nil {
		if errors.Is(err, service.ErrCredentialsInvalid) {
			s.sessions.SetFlash(c, err.Error())
			return c.Redirect("/signin", fiber.StatusFound)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	token, err := s.sessions.Issue(user.ID, user.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	s.sessions.SetCookie(c, token)

	return c.Redirect("/", fiber.StatusFound)
}

// Logout revokes the current session and clears its cookie.
func (s *Server) Logout(c *fiber.Ctx) error {
	if ident, err := s.sessions.FromRequest(c); err == nil {
		if err := s.sessions.Revoke(c.Context(), ident); err != nil {
			middleware.Logger.Warn("session revoke failed", "error", err)
		}
	}
	s.sessions.ClearCookie(c)
	return c.Redirect("/signin", fiber.StatusFound)
}
