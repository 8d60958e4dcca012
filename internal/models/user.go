package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is created lazily on first successful Google authorization.
// Email is the natural key; the unique index is what keeps concurrent
// first-logins from racing into duplicate rows.
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserName  string         `gorm:"size:255;not null" json:"userName"`
	Email     string         `gorm:"size:255;not null;uniqueIndex" json:"email"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
