package session

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupManager(t *testing.T) (*Manager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewManager("test-secret-test-secret-test-secret", rdb), mr
}

func TestIssueAndValidate(t *testing.T) {
	t.Parallel()

	m, _ := setupManager(t)

	token, err := m.Issue(42, "alice")
	require.NoError(t, err)

	ident, err := m.Validate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), ident.UserID)
	assert.Equal(t, "alice", ident.Username)
}

func TestValidateRejectsGarbage(t *testing.T) {
	t.Parallel()

	m, _ := setupManager(t)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := m.Validate(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidSession)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	m, _ := setupManager(t)
	other := NewManager("another-secret-another-secret-xx", nil)

	token, err := other.Issue(7, "mallory")
	require.NoError(t, err)

	_, err = m.Validate(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestRevokeDeniesFurtherUse(t *testing.T) {
	t.Parallel()

	m, _ := setupManager(t)
	ctx := context.Background()

	token, err := m.Issue(42, "alice")
	require.NoError(t, err)

	ident, err := m.Validate(ctx, token)
	require.NoError(t, err)

	require.NoError(t, m.Revoke(ctx, ident))

	_, err = m.Validate(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidSession, "revoked session must not validate")
}

func TestFlashPopsOnce(t *testing.T) {
	t.Parallel()

	m, _ := setupManager(t)

	app := fiber.New()
	app.Get("/set", func(c *fiber.Ctx) error {
		m.SetFlash(c, "Credentials Invalid")
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/pop", func(c *fiber.Ctx) error {
		return c.SendString(m.PopFlash(c))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/set", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	cookies := resp.Cookies()
	require.NotEmpty(t, cookies)

	// First pop returns the message.
	req := httptest.NewRequest(http.MethodGet, "/pop", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	resp, err = app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "Credentials Invalid", string(body))

	// Replaying the same cookie yields nothing; the message was consumed.
	req = httptest.NewRequest(http.MethodGet, "/pop", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	resp, err = app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Empty(t, string(body))
}

func TestFlashFallsBackWithoutRedis(t *testing.T) {
	t.Parallel()

	m := NewManager("test-secret-test-secret-test-secret", nil)

	app := fiber.New()
	app.Get("/set", func(c *fiber.Ctx) error {
		m.SetFlash(c, "Passwords Not Matching")
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/pop", func(c *fiber.Ctx) error {
		return c.SendString(m.PopFlash(c))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/set", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	req := httptest.NewRequest(http.MethodGet, "/pop", nil)
	for _, ck := range resp.Cookies() {
		req.AddCookie(ck)
	}
	resp, err = app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "Passwords Not Matching", string(body))
}
