package entity

import (
	"time"

	"github.com/google/uuid"
)

// CaseNote is a free-text note on a case. Internal notes are staff-only; the
// caller decides whether internal notes are included when listing.
type CaseNote struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CaseID     uuid.UUID `gorm:"type:uuid;not null;index" json:"case_id"`
	AuthorID   uuid.UUID `gorm:"type:uuid;not null" json:"author_id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	IsInternal bool      `gorm:"not null;default:false" json:"is_internal"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Author User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (CaseNote) TableName() string {
	return "case_notes"
}
