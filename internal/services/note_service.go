package services

import (
	"errors"
	"fmt"

	"github.com/caselink/caselink-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNoteNotFound = errors.New("note not found")

type NoteService struct {
	db *gorm.DB
}

func NewNoteService(db *gorm.DB) *NoteService {
	return &NoteService{db: db}
}

func (s *NoteService) Create(n *models.Note) error {
	n.ID = uuid.New()
	if err := s.db.Create(n).Error; err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}
	return nil
}

func (s *NoteService) List() ([]models.Note, error) {
	var notes []models.Note
	if err := s.db.Order("created_at desc").Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}

func (s *NoteService) GetByID(id uuid.UUID) (*models.Note, error) {
	var n models.Note
	if err := s.db.First(&n, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	return &n, nil
}
