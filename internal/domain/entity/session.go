package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is the persisted record backing one refresh token. A refresh token
// with no live session row is unusable even when cryptographically valid;
// logout deletes all rows for the user at once.
type Session struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	RefreshToken string    `gorm:"type:text;uniqueIndex;not null" json:"-"`
	ExpiresAt    time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Session) TableName() string {
	return "sessions"
}

// Expired reports whether the session has passed its expiry.
func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}
