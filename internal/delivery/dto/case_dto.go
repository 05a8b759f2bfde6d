package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateCaseRequest struct {
	DentistID     uuid.UUID  `json:"dentist_id" validate:"required"`
	AssigneeID    *uuid.UUID `json:"assignee_id"`
	DepartmentID  *int       `json:"department_id"`
	PatientName   string     `json:"patient_name" validate:"required,max=255"`
	PatientAge    *int       `json:"patient_age" validate:"omitempty,gte=0,lte=150"`
	PatientGender string     `json:"patient_gender" validate:"omitempty,oneof=MALE FEMALE OTHER"`
	Description   string     `json:"description"`
	Priority      string     `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	DueDate       *time.Time `json:"due_date"`
}

// UpdateCaseRequest carries optional fields; only provided fields are mutated.
type UpdateCaseRequest struct {
	AssigneeID    *uuid.UUID `json:"assignee_id"`
	DepartmentID  *int       `json:"department_id"`
	PatientName   *string    `json:"patient_name" validate:"omitempty,max=255"`
	PatientAge    *int       `json:"patient_age" validate:"omitempty,gte=0,lte=150"`
	PatientGender *string    `json:"patient_gender" validate:"omitempty,oneof=MALE FEMALE OTHER"`
	Description   *string    `json:"description"`
	Priority      *string    `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	Status        *string    `json:"status" validate:"omitempty,oneof=RECEIVED IN_PROGRESS COMPLETED DELIVERED CANCELLED"`
	DueDate       *time.Time `json:"due_date"`
}

type CreateCaseNoteRequest struct {
	Content    string `json:"content" validate:"required"`
	IsInternal bool   `json:"is_internal"`
}

type CaseResponse struct {
	ID            uuid.UUID  `json:"id"`
	CaseNumber    string     `json:"case_number"`
	DentistID     uuid.UUID  `json:"dentist_id"`
	DentistName   string     `json:"dentist_name,omitempty"`
	AssigneeID    *uuid.UUID `json:"assignee_id,omitempty"`
	DepartmentID  *int       `json:"department_id,omitempty"`
	PatientName   string     `json:"patient_name"`
	PatientAge    *int       `json:"patient_age,omitempty"`
	PatientGender string     `json:"patient_gender,omitempty"`
	Description   string     `json:"description,omitempty"`
	Priority      string     `json:"priority"`
	Status        string     `json:"status"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	CompletedDate *time.Time `json:"completed_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type CaseNoteResponse struct {
	ID         uuid.UUID `json:"id"`
	CaseID     uuid.UUID `json:"case_id"`
	AuthorID   uuid.UUID `json:"author_id"`
	AuthorName string    `json:"author_name,omitempty"`
	Content    string    `json:"content"`
	IsInternal bool      `json:"is_internal"`
	CreatedAt  time.Time `json:"created_at"`
}

type CaseFileResponse struct {
	ID          uuid.UUID `json:"id"`
	CaseID      uuid.UUID `json:"case_id"`
	FileName    string    `json:"file_name"`
	URL         string    `json:"url,omitempty"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
