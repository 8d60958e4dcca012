package handlers

import (
	"errors"

	"github.com/caselink/caselink-backend/internal/dto"
	"github.com/caselink/caselink-backend/internal/google"
	"github.com/caselink/caselink-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Authorize is the OAuth consent redirect target. Google appends the
// authorization code as a query parameter; a successful exchange
// returns the signed session token and the resolved user.
func (h *AuthHandler) Authorize(c *fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Missing authorization code",
		})
	}

	resp, err := h.authService.Authorize(c.UserContext(), code)
	if err != nil {
		if errors.Is(err, google.ErrTokenExchange) || errors.Is(err, google.ErrIdentityFetch) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Google authorization failed",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(resp)
}
