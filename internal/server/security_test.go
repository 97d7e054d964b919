package server

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pickaside/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authTestServer(t *testing.T) (*Server, *fiber.App, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	s := &Server{
		config: &config.Config{JWTSecret: "test-secret"},
		redis:  rdb,
	}

	app := fiber.New()
	app.Get("/api/protected", s.AuthRequired(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": c.Locals("userID")})
	})
	app.Get("/api/ws", s.AuthRequired(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": c.Locals("userID")})
	})
	return s, app, rdb
}

func TestAuthRequired_NoCredentials(t *testing.T) {
	_, app, _ := authTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/protected", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestAuthRequired_ValidToken(t *testing.T) {
	s, app, _ := authTestServer(t)

	token, err := s.generateToken(42, "test@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestAuthRequired_WrongIssuer(t *testing.T) {
	s, app, _ := authTestServer(t)

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": "42",
		"iss": "someone-else",
		"aud": tokenAudience,
		"exp": now.Add(time.Hour).Unix(),
		"iat": now.Unix(),
		"jti": "x",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(s.config.JWTSecret))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestAuthRequired_WrongSecret(t *testing.T) {
	_, app, _ := authTestServer(t)

	other := &Server{config: &config.Config{JWTSecret: "different-secret"}}
	token, err := other.generateToken(42, "test@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestAuthRequired_RevokedToken(t *testing.T) {
	s, app, rdb := authTestServer(t)

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": "42",
		"iss": tokenIssuer,
		"aud": tokenAudience,
		"exp": now.Add(time.Hour).Unix(),
		"iat": now.Unix(),
		"jti": "revoked-jti",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(s.config.JWTSecret))
	require.NoError(t, err)

	require.NoError(t, rdb.Set(context.Background(), "blacklist:revoked-jti", "1", time.Hour).Err())

	req := httptest.NewRequest(http.MethodGet, "/api/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestAuthRequired_WSTicketSingleUse(t *testing.T) {
	_, app, rdb := authTestServer(t)
	ctx := context.Background()

	ticket := "ticket-abc"
	key := fmt.Sprintf("ws_ticket:%s", ticket)
	require.NoError(t, rdb.Set(ctx, key, "77", time.Minute).Err())

	req := httptest.NewRequest(http.MethodGet, "/api/ws?ticket="+ticket, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	// The ticket is consumed on first use.
	exists, err := rdb.Exists(ctx, key).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), exists)

	// Replay fails.
	req = httptest.NewRequest(http.MethodGet, "/api/ws?ticket="+ticket, nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestAuthRequired_WSPathRequiresTicket(t *testing.T) {
	_, app, _ := authTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/ws?ticket=bogus", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()
}
