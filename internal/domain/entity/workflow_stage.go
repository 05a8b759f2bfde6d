package entity

import (
	"time"

	"github.com/google/uuid"
)

// StageStatus represents the status of a single workflow stage
type StageStatus string

const (
	StageStatusPending    StageStatus = "PENDING"
	StageStatusInProgress StageStatus = "IN_PROGRESS"
	StageStatusCompleted  StageStatus = "COMPLETED"
	StageStatusBlocked    StageStatus = "BLOCKED"
	StageStatusSkipped    StageStatus = "SKIPPED"
)

// WorkflowStage is an ordered sub-task within a case's production process.
// Sequence is a free-form ordering integer, not required unique or contiguous.
// The stage lifecycle is independent of the owning case's status.
type WorkflowStage struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CaseID      uuid.UUID   `gorm:"type:uuid;not null;index" json:"case_id"`
	Name        string      `gorm:"type:varchar(255);not null" json:"name"`
	Sequence    int         `gorm:"not null;default:0;index" json:"sequence"`
	AssigneeID  *uuid.UUID  `gorm:"type:uuid" json:"assignee_id,omitempty"`
	Status      StageStatus `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	Notes       string      `gorm:"type:text" json:"notes,omitempty"`
	StartedAt   *time.Time  `json:"started_at,omitempty"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
	CreatedAt   time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Assignee *User `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
}

func (WorkflowStage) TableName() string {
	return "workflow_stages"
}

// ApplyStatus sets the stage status and stamps the timestamps the lifecycle
// requires: StartedAt exactly once on the first transition into IN_PROGRESS,
// CompletedAt on every transition into COMPLETED (repeat completion refreshes
// the timestamp, it is not an error).
func (s *WorkflowStage) ApplyStatus(status StageStatus, now time.Time) {
	s.Status = status
	switch status {
	case StageStatusInProgress:
		if s.StartedAt == nil {
			s.StartedAt = &now
		}
	case StageStatusCompleted:
		s.CompletedAt = &now
	}
}
