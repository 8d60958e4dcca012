package middleware

import (
	"errors"

	"github.com/caselink/caselink-backend/internal/config"
	"github.com/caselink/caselink-backend/internal/dto"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTProtected rejects requests whose session credential is missing,
// malformed, badly signed, or expired before any handler runs.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: invalid or expired token",
			})
		},
	})
}

// GetUserID extracts the local user id from the verified session claims.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	claims, err := sessionClaims(c)
	if err != nil {
		return uuid.Nil, err
	}

	id, ok := claims["id"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing id claim")
	}
	return uuid.Parse(id)
}

// GoogleToken extracts the Google bearer token the session was issued
// with. Every People API call is made on the user's behalf with it.
func GoogleToken(c *fiber.Ctx) (string, error) {
	claims, err := sessionClaims(c)
	if err != nil {
		return "", err
	}

	token, ok := claims["googleToken"].(string)
	if !ok || token == "" {
		return "", errors.New("missing googleToken claim")
	}
	return token, nil
}

func sessionClaims(c *fiber.Ctx) (jwt.MapClaims, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return nil, errors.New("invalid token in context")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	return claims, nil
}
