package handlers

import (
	"errors"
	"time"

	"github.com/caselink/caselink-backend/internal/dto"
	"github.com/caselink/caselink-backend/internal/google"
	"github.com/caselink/caselink-backend/internal/middleware"
	"github.com/caselink/caselink-backend/internal/models"
	"github.com/caselink/caselink-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ContactHandler struct {
	contactService *services.ContactService
}

func NewContactHandler(contactService *services.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Create stores a new contact and mirrors it into the user's Google
// directory using the bearer token carried by the session credential.
func (h *ContactHandler) Create(c *fiber.Ctx) error {
	googleToken, err := middleware.GoogleToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	contact, err := contactFromRequest(&req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid birthdate, expected YYYY-MM-DD",
		})
	}

	if err := h.contactService.Create(c.UserContext(), googleToken, contact); err != nil {
		if errors.Is(err, services.ErrContactExists) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create contact",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(contact)
}

// List returns all contacts, optionally filtered by ?name= using a
// ranked fuzzy match over first and last name.
func (h *ContactHandler) List(c *fiber.Ctx) error {
	contacts, err := h.contactService.List(c.Query("name"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list contacts",
		})
	}
	return c.JSON(contacts)
}

func (h *ContactHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid contact id",
		})
	}

	contact, err := h.contactService.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrContactNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to get contact",
		})
	}
	return c.JSON(contact)
}

// FetchGoogle lists the user's Google contacts normalized to the local
// shape without touching the store.
func (h *ContactHandler) FetchGoogle(c *fiber.Ctx) error {
	googleToken, err := middleware.GoogleToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	contacts, err := h.contactService.FetchRemote(c.UserContext(), googleToken)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch Google contacts",
		})
	}
	return c.JSON(contacts)
}

// ImportGoogle fetches the full Google directory and imports it.
// Contacts imported on an earlier run are skipped, so the route is safe
// to call repeatedly.
func (h *ContactHandler) ImportGoogle(c *fiber.Ctx) error {
	googleToken, err := middleware.GoogleToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	contacts, err := h.contactService.FetchRemote(c.UserContext(), googleToken)
	if err != nil {
		if errors.Is(err, google.ErrRemoteFetch) {
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to fetch Google contacts",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	result, err := h.contactService.Import(contacts)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to import contacts",
		})
	}
	return c.JSON(result)
}

func contactFromRequest(req *dto.ContactRequest) (*models.Contact, error) {
	contact := &models.Contact{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		EmailMain:   req.EmailMain,
		EmailBackup: req.EmailBackup,
		PhoneMain:   req.PhoneMain,
		HomePhone:   req.HomePhone,
		WorkPhone:   req.WorkPhone,
		CellPhone:   req.CellPhone,
		Fax:         req.Fax,
		HomeStreet:  req.HomeStreet,
		HomeCity:    req.HomeCity,
		HomeState:   req.HomeState,
		HomeZip:     req.HomeZip,
		HomeCountry: req.HomeCountry,
		WorkStreet:  req.WorkStreet,
		WorkCity:    req.WorkCity,
		WorkState:   req.WorkState,
		WorkZip:     req.WorkZip,
		WorkCountry: req.WorkCountry,
		Company:     req.Company,
		JobTitle:    req.JobTitle,
	}

	if req.Birthdate != "" {
		t, err := time.Parse("2006-01-02", req.Birthdate)
		if err != nil {
			return nil, err
		}
		contact.Birthdate = &t
	}
	return contact, nil
}
