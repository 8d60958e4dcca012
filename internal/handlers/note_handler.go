package handlers

import (
	"errors"

	"github.com/caselink/caselink-backend/internal/dto"
	"github.com/caselink/caselink-backend/internal/models"
	"github.com/caselink/caselink-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type NoteHandler struct {
	noteService *services.NoteService
}

func NewNoteHandler(noteService *services.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

type CreateNoteRequest struct {
	Body      string     `json:"body"`
	CaseID    *uuid.UUID `json:"caseId"`
	ContactID *uuid.UUID `json:"contactId"`
}

func (h *NoteHandler) Create(c *fiber.Ctx) error {
	var req CreateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.Body == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Body is required",
		})
	}

	note := &models.Note{Body: req.Body, CaseID: req.CaseID, ContactID: req.ContactID}
	if err := h.noteService.Create(note); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create note",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(note)
}

func (h *NoteHandler) List(c *fiber.Ctx) error {
	notes, err := h.noteService.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list notes",
		})
	}
	return c.JSON(notes)
}

func (h *NoteHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid note id",
		})
	}

	note, err := h.noteService.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrNoteNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to get note",
		})
	}
	return c.JSON(note)
}
