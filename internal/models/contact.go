package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contact is the local contact shape. GoogleResourceName is the join
// key against the People API: nullable (user-entered contacts that were
// never mirrored), unique when present so the same remote contact is
// never imported twice. Name and email fields are empty strings rather
// than NULL; normalization guarantees that for imported rows.
type Contact struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	GoogleResourceName *string   `gorm:"size:255;uniqueIndex" json:"googleResourceName"`

	FirstName   string `gorm:"size:255;not null;default:''" json:"firstName"`
	LastName    string `gorm:"size:255;not null;default:''" json:"lastName"`
	EmailMain   string `gorm:"size:255;not null;default:''" json:"emailMain"`
	EmailBackup string `gorm:"size:255;not null;default:''" json:"emailBackup"`

	PhoneMain string `gorm:"size:50;not null;default:''" json:"phoneMain"`
	HomePhone string `gorm:"size:50;not null;default:''" json:"homePhone"`
	WorkPhone string `gorm:"size:50;not null;default:''" json:"workPhone"`
	CellPhone string `gorm:"size:50;not null;default:''" json:"cellPhone"`
	Fax       string `gorm:"size:50;not null;default:''" json:"fax"`

	HomeStreet  string `gorm:"size:255;not null;default:''" json:"homeStreet"`
	HomeCity    string `gorm:"size:100;not null;default:''" json:"homeCity"`
	HomeState   string `gorm:"size:100;not null;default:''" json:"homeState"`
	HomeZip     string `gorm:"size:20;not null;default:''" json:"homeZip"`
	HomeCountry string `gorm:"size:100;not null;default:''" json:"homeCountry"`

	WorkStreet  string `gorm:"size:255;not null;default:''" json:"workStreet"`
	WorkCity    string `gorm:"size:100;not null;default:''" json:"workCity"`
	WorkState   string `gorm:"size:100;not null;default:''" json:"workState"`
	WorkZip     string `gorm:"size:20;not null;default:''" json:"workZip"`
	WorkCountry string `gorm:"size:100;not null;default:''" json:"workCountry"`

	Company  string `gorm:"size:255;not null;default:''" json:"company"`
	JobTitle string `gorm:"size:255;not null;default:''" json:"jobTitle"`

	Birthdate *time.Time `gorm:"type:date" json:"birthdate"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
