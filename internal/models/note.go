package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Note struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Body      string         `gorm:"type:text;not null" json:"body"`
	CaseID    *uuid.UUID     `gorm:"type:uuid;index" json:"caseId"`
	ContactID *uuid.UUID     `gorm:"type:uuid;index" json:"contactId"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
