package converter

import (
	"dental-lab-backend/internal/delivery/dto"
	"dental-lab-backend/internal/domain/entity"
)

// StageToResponse converts a WorkflowStage entity to StageResponse DTO
func StageToResponse(stage *entity.WorkflowStage) *dto.StageResponse {
	if stage == nil {
		return nil
	}

	return &dto.StageResponse{
		ID:          stage.ID,
		CaseID:      stage.CaseID,
		Name:        stage.Name,
		Sequence:    stage.Sequence,
		AssigneeID:  stage.AssigneeID,
		Status:      string(stage.Status),
		Notes:       stage.Notes,
		StartedAt:   stage.StartedAt,
		CompletedAt: stage.CompletedAt,
		CreatedAt:   stage.CreatedAt,
		UpdatedAt:   stage.UpdatedAt,
	}
}

// StagesToResponses converts a slice of WorkflowStage entities to response DTOs
func StagesToResponses(stages []entity.WorkflowStage) []dto.StageResponse {
	responses := make([]dto.StageResponse, len(stages))
	for i := range stages {
		responses[i] = *StageToResponse(&stages[i])
	}
	return responses
}
