package services

import (
	"errors"
	"fmt"

	"github.com/caselink/caselink-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrCaseNotFound = errors.New("case not found")

type CaseService struct {
	db *gorm.DB
}

func NewCaseService(db *gorm.DB) *CaseService {
	return &CaseService{db: db}
}

func (s *CaseService) Create(c *models.Case) error {
	c.ID = uuid.New()
	if c.Status == "" {
		c.Status = "open"
	}
	if err := s.db.Create(c).Error; err != nil {
		return fmt.Errorf("failed to create case: %w", err)
	}
	return nil
}

func (s *CaseService) List() ([]models.Case, error) {
	var cases []models.Case
	if err := s.db.Order("created_at desc").Find(&cases).Error; err != nil {
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}
	return cases, nil
}

func (s *CaseService) GetByID(id uuid.UUID) (*models.Case, error) {
	var c models.Case
	if err := s.db.First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCaseNotFound
		}
		return nil, fmt.Errorf("failed to get case: %w", err)
	}
	return &c, nil
}

// Update applies a partial update; zero-value fields are left alone.
func (s *CaseService) Update(id uuid.UUID, updates map[string]interface{}) (*models.Case, error) {
	c, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := s.db.Model(c).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update case: %w", err)
		}
	}
	return c, nil
}
