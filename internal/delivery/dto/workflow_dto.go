package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateStageRequest struct {
	Name       string     `json:"name" validate:"required,max=255"`
	Sequence   int        `json:"sequence" validate:"gte=0"`
	AssigneeID *uuid.UUID `json:"assignee_id"`
	Notes      string     `json:"notes"`
}

type UpdateStageRequest struct {
	Name       *string    `json:"name" validate:"omitempty,max=255"`
	Sequence   *int       `json:"sequence" validate:"omitempty,gte=0"`
	AssigneeID *uuid.UUID `json:"assignee_id"`
	Status     *string    `json:"status" validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED BLOCKED SKIPPED"`
	Notes      *string    `json:"notes"`
}

type StageResponse struct {
	ID          uuid.UUID  `json:"id"`
	CaseID      uuid.UUID  `json:"case_id"`
	Name        string     `json:"name"`
	Sequence    int        `json:"sequence"`
	AssigneeID  *uuid.UUID `json:"assignee_id,omitempty"`
	Status      string     `json:"status"`
	Notes       string     `json:"notes,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// WorkflowStatsResponse summarizes stage progress for one case. Progress is
// rounded percent of completed stages, 0 when the case has no stages.
type WorkflowStatsResponse struct {
	CaseID     uuid.UUID `json:"case_id"`
	Total      int64     `json:"total"`
	Pending    int64     `json:"pending"`
	InProgress int64     `json:"in_progress"`
	Completed  int64     `json:"completed"`
	Blocked    int64     `json:"blocked"`
	Skipped    int64     `json:"skipped"`
	Progress   int       `json:"progress"`
}
