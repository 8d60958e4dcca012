package middleware

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/caselink/caselink-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "test-secret"}
}

// newProtectedApp mounts a stub handler behind JWTProtected that echoes
// the session claims, so tests can observe both rejection and what the
// claim helpers extract.
func newProtectedApp(cfg *config.Config) *fiber.App {
	app := fiber.New()
	app.Get("/protected", JWTProtected(cfg), func(c *fiber.Ctx) error {
		id, err := GetUserID(c)
		if err != nil {
			return fiber.ErrInternalServerError
		}
		token, err := GoogleToken(c)
		if err != nil {
			return fiber.ErrInternalServerError
		}
		return c.JSON(fiber.Map{"id": id.String(), "googleToken": token})
	})
	return app
}

func signSession(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestJWTProtectedRejectsMissingToken(t *testing.T) {
	app := newProtectedApp(testConfig())

	resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTProtectedRejectsMalformedToken(t *testing.T) {
	app := newProtectedApp(testConfig())

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTProtectedRejectsBadSignature(t *testing.T) {
	app := newProtectedApp(testConfig())

	token := signSession(t, "other-secret", jwt.MapClaims{
		"id":          uuid.New().String(),
		"googleToken": "tok1",
		"exp":         time.Now().Add(time.Hour).Unix(),
	})
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTProtectedRejectsExpiredToken(t *testing.T) {
	cfg := testConfig()
	app := newProtectedApp(cfg)

	token := signSession(t, cfg.JWTSecret, jwt.MapClaims{
		"id":          uuid.New().String(),
		"googleToken": "tok1",
		"exp":         time.Now().Add(-time.Hour).Unix(),
	})
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTProtectedPassesValidToken(t *testing.T) {
	cfg := testConfig()
	app := newProtectedApp(cfg)

	userID := uuid.New()
	token := signSession(t, cfg.JWTSecret, jwt.MapClaims{
		"id":          userID.String(),
		"googleToken": "tok1",
		"exp":         time.Now().Add(time.Hour).Unix(),
	})
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var echoed map[string]string
	require.NoError(t, json.Unmarshal(body, &echoed))
	assert.Equal(t, userID.String(), echoed["id"])
	assert.Equal(t, "tok1", echoed["googleToken"])
}
