package entity

import (
	"time"

	"github.com/google/uuid"
)

// DentistStatus represents the verification state of a dentist profile
type DentistStatus string

const (
	DentistStatusPendingVerification DentistStatus = "PENDING_VERIFICATION"
	DentistStatusVerified            DentistStatus = "VERIFIED"
	DentistStatusInactive            DentistStatus = "INACTIVE"
)

// DentistProfile is the 1:1 extension of a User for submitting dentists.
// Its status is driven by the application review workflow, not edited directly.
type DentistProfile struct {
	UserID           uuid.UUID     `gorm:"type:uuid;primaryKey" json:"user_id"`
	LicenseNumber    string        `gorm:"type:varchar(50);uniqueIndex;not null" json:"license_number"`
	ClinicName       string        `gorm:"type:varchar(255)" json:"clinic_name,omitempty"`
	ClinicAddress    string        `gorm:"type:text" json:"clinic_address,omitempty"`
	Specialization   string        `gorm:"type:varchar(100)" json:"specialization,omitempty"`
	Status           DentistStatus `gorm:"type:varchar(25);not null;default:'PENDING_VERIFICATION';index" json:"status"`
	VerificationDate *time.Time    `json:"verification_date,omitempty"`
	VerifiedByID     *uuid.UUID    `gorm:"type:uuid" json:"verified_by_id,omitempty"`
	CreatedAt        time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User         User             `gorm:"foreignKey:UserID" json:"user,omitempty"`
	VerifiedBy   *User            `gorm:"foreignKey:VerifiedByID" json:"verified_by,omitempty"`
	Applications []DentistApplication `gorm:"foreignKey:DentistID" json:"applications,omitempty"`
}

func (DentistProfile) TableName() string {
	return "dentist_profiles"
}
