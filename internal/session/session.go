// Package session implements cookie-based sessions. The cookie carries a
// signed HS256 token; logout places the token's jti on a Redis denylist until
// the token would have expired, so ending a session is effective server-side
// and not just a cookie deletion.
package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// CookieName is the session cookie name.
	CookieName = "photogram_session"

	issuer   = "photogram"
	audience = "photogram-web"

	// TTL is how long an issued session remains valid.
	TTL = 7 * 24 * time.Hour
)

// ErrInvalidSession is returned when a token is missing, malformed, expired,
// or revoked.
var ErrInvalidSession = errors.New("invalid or expired session")

// Identity is the authenticated principal carried by a session.
type Identity struct {
	UserID   uint
	Username string
	jti      string
	expires  time.Time
}

// Manager issues, validates, and revokes sessions. The Redis client may be
// nil, in which case revocation degrades to cookie deletion only.
type Manager struct {
	secret []byte
	redis  *redis.Client
}

// NewManager returns a session manager signing with secret and revoking
// through rdb.
func NewManager(secret string, rdb *redis.Client) *Manager {
	return &Manager{secret: []byte(secret), redis: rdb}
}

// Issue creates a session token for the given user.
func (m *Manager) Issue(userID uint, username string) (string, error) {
	if len(m.secret) == 0 {
		return "", fmt.Errorf("session secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(userID), 10),
		"username": username,
		"iss":      issuer,
		"aud":      audience,
		"exp":      now.Add(TTL).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"jti":      uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Validate parses the token and checks signature, claims, and the revocation
// denylist. It returns the identity the session was issued for.
func (m *Manager) Validate(ctx context.Context, tokenString string) (*Identity, error) {
	if tokenString == "" {
		return nil, ErrInvalidSession
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithAudience(audience))
	if err != nil || !token.Valid {
		return nil, ErrInvalidSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidSession
	}

	sub, _ := claims["sub"].(string)
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return nil, ErrInvalidSession
	}

	username, _ := claims["username"].(string)
	if username == "" {
		return nil, ErrInvalidSession
	}

	jti, _ := claims["jti"].(string)
	if jti == "" {
		return nil, ErrInvalidSession
	}

	var expires time.Time
	if exp, expErr := claims.GetExpirationTime(); expErr == nil && exp != nil {
		expires = exp.Time
	}

	if m.redis != nil {
		revoked, rerr := m.redis.Exists(ctx, denyKey(jti)).Result()
		if rerr == nil && revoked > 0 {
			return nil, ErrInvalidSession
		}
	}

	return &Identity{
		UserID:   uint(userID),
		Username: username,
		jti:      jti,
		expires:  expires,
	}, nil
}

// Revoke denylists the session until its natural expiry.
func (m *Manager) Revoke(ctx context.Context, ident *Identity) error {
	if m.redis == nil || ident == nil || ident.jti == "" {
		return nil
	}
	ttl := time.Until(ident.expires)
	if ttl <= 0 {
		return nil
	}
	return m.redis.Set(ctx, denyKey(ident.jti), "1", ttl).Err()
}

func denyKey(jti string) string {
	return "session:revoked:" + jti
}

// SetCookie attaches the session token to the response.
func (m *Manager) SetCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Expires:  time.Now().Add(TTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

// ClearCookie removes the session cookie.
func (m *Manager) ClearCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

// FromRequest validates the session cookie on the request.
func (m *Manager) FromRequest(c *fiber.Ctx) (*Identity, error) {
	return m.Validate(c.Context(), c.Cookies(CookieName))
}
