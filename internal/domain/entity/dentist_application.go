package entity

import (
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus represents the review state of a dentist application
type ApplicationStatus string

const (
	ApplicationStatusSubmitted   ApplicationStatus = "SUBMITTED"
	ApplicationStatusUnderReview ApplicationStatus = "UNDER_REVIEW"
	ApplicationStatusApproved    ApplicationStatus = "APPROVED"
	ApplicationStatusRejected    ApplicationStatus = "REJECTED"
)

// DentistApplication is the review-workflow record that drives
// DentistProfile.Status. Reviewing it updates both rows in one transaction.
type DentistApplication struct {
	ID           uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DentistID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"dentist_id"`
	Status       ApplicationStatus `gorm:"type:varchar(20);not null;default:'SUBMITTED';index" json:"status"`
	Message      string            `gorm:"type:text" json:"message,omitempty"`
	ReviewNotes  string            `gorm:"type:text" json:"review_notes,omitempty"`
	ReviewedByID *uuid.UUID        `gorm:"type:uuid" json:"reviewed_by_id,omitempty"`
	ReviewedDate *time.Time        `json:"reviewed_date,omitempty"`
	CreatedAt    time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Dentist    DentistProfile `gorm:"foreignKey:DentistID" json:"dentist,omitempty"`
	ReviewedBy *User          `gorm:"foreignKey:ReviewedByID" json:"reviewed_by,omitempty"`
}

func (DentistApplication) TableName() string {
	return "dentist_applications"
}

// ProfileStatusFor maps a review decision onto the dentist profile status.
func ProfileStatusFor(status ApplicationStatus) (DentistStatus, bool) {
	switch status {
	case ApplicationStatusApproved:
		return DentistStatusVerified, true
	case ApplicationStatusRejected:
		return DentistStatusInactive, true
	case ApplicationStatusUnderReview:
		return DentistStatusPendingVerification, true
	default:
		return "", false
	}
}
