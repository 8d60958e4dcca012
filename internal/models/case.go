package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Case groups notes and an optional contact under one matter.
type Case struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Status      string         `gorm:"size:50;not null;default:'open'" json:"status"`
	ContactID   *uuid.UUID     `gorm:"type:uuid;index" json:"contactId"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
