package entity

import (
	"time"

	"github.com/google/uuid"
)

// CaseStatus represents the lifecycle status of a lab case
type CaseStatus string

const (
	CaseStatusReceived   CaseStatus = "RECEIVED"
	CaseStatusInProgress CaseStatus = "IN_PROGRESS"
	CaseStatusCompleted  CaseStatus = "COMPLETED"
	CaseStatusDelivered  CaseStatus = "DELIVERED"
	CaseStatusCancelled  CaseStatus = "CANCELLED"
)

// CasePriority represents how urgently a case should be handled
type CasePriority string

const (
	CasePriorityLow    CasePriority = "LOW"
	CasePriorityMedium CasePriority = "MEDIUM"
	CasePriorityHigh   CasePriority = "HIGH"
	CasePriorityUrgent CasePriority = "URGENT"
)

// Case is the central work item: a unit of lab work submitted by a dentist for
// a patient. Status transitions are deliberately permissive so corrections
// stay possible; the only hard rule is that CompletedDate is stamped whenever
// the status becomes COMPLETED.
type Case struct {
	ID            uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CaseNumber    string       `gorm:"type:varchar(50);uniqueIndex;not null" json:"case_number"`
	DentistID     uuid.UUID    `gorm:"type:uuid;not null;index" json:"dentist_id"`
	AssigneeID    *uuid.UUID   `gorm:"type:uuid;index" json:"assignee_id,omitempty"`
	DepartmentID  *int         `gorm:"index" json:"department_id,omitempty"`
	PatientName   string       `gorm:"type:varchar(255);not null" json:"patient_name"`
	PatientAge    *int         `json:"patient_age,omitempty"`
	PatientGender string       `gorm:"type:varchar(20)" json:"patient_gender,omitempty"`
	Description   string       `gorm:"type:text" json:"description,omitempty"`
	Priority      CasePriority `gorm:"type:varchar(10);not null;default:'MEDIUM';index" json:"priority"`
	Status        CaseStatus   `gorm:"type:varchar(20);not null;default:'RECEIVED';index" json:"status"`
	DueDate       *time.Time   `json:"due_date,omitempty"`
	CompletedDate *time.Time   `json:"completed_date,omitempty"`
	CreatedByID   uuid.UUID    `gorm:"type:uuid;not null" json:"created_by_id"`
	CreatedAt     time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Dentist    DentistProfile  `gorm:"foreignKey:DentistID" json:"dentist,omitempty"`
	Assignee   *User           `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	Department *Department     `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	CreatedBy  User            `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	Notes      []CaseNote      `gorm:"foreignKey:CaseID;constraint:OnDelete:CASCADE" json:"notes,omitempty"`
	Files      []CaseFile      `gorm:"foreignKey:CaseID;constraint:OnDelete:CASCADE" json:"files,omitempty"`
	Stages     []WorkflowStage `gorm:"foreignKey:CaseID;constraint:OnDelete:CASCADE" json:"stages,omitempty"`
}

func (Case) TableName() string {
	return "cases"
}

// IsTerminal reports whether the case is in a final state.
func (c *Case) IsTerminal() bool {
	return c.Status == CaseStatusDelivered || c.Status == CaseStatusCancelled
}
