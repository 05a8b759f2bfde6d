package dto

import (
	"time"

	"github.com/google/uuid"
)

type RegisterDentistRequest struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"omitempty,min=8"`
	FirstName      string `json:"first_name" validate:"required,max=100"`
	LastName       string `json:"last_name" validate:"required,max=100"`
	Phone          string `json:"phone" validate:"omitempty,max=30"`
	LicenseNumber  string `json:"license_number" validate:"required,max=50"`
	ClinicName     string `json:"clinic_name" validate:"omitempty,max=255"`
	ClinicAddress  string `json:"clinic_address"`
	Specialization string `json:"specialization" validate:"omitempty,max=100"`
}

type UpdateDentistRequest struct {
	Phone          *string `json:"phone" validate:"omitempty,max=30"`
	ClinicName     *string `json:"clinic_name" validate:"omitempty,max=255"`
	ClinicAddress  *string `json:"clinic_address"`
	Specialization *string `json:"specialization" validate:"omitempty,max=100"`
}

type SubmitApplicationRequest struct {
	Message string `json:"message"`
}

type ReviewApplicationRequest struct {
	Status      string `json:"status" validate:"required,oneof=UNDER_REVIEW APPROVED REJECTED"`
	ReviewNotes string `json:"review_notes"`
}

type DentistResponse struct {
	UserID           uuid.UUID  `json:"user_id"`
	Email            string     `json:"email"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	Phone            string     `json:"phone,omitempty"`
	LicenseNumber    string     `json:"license_number"`
	ClinicName       string     `json:"clinic_name,omitempty"`
	ClinicAddress    string     `json:"clinic_address,omitempty"`
	Specialization   string     `json:"specialization,omitempty"`
	Status           string     `json:"status"`
	VerificationDate *time.Time `json:"verification_date,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

type ApplicationResponse struct {
	ID           uuid.UUID  `json:"id"`
	DentistID    uuid.UUID  `json:"dentist_id"`
	Status       string     `json:"status"`
	Message      string     `json:"message,omitempty"`
	ReviewNotes  string     `json:"review_notes,omitempty"`
	ReviewedByID *uuid.UUID `json:"reviewed_by_id,omitempty"`
	ReviewedDate *time.Time `json:"reviewed_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
