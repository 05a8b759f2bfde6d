package handler

import (
	"encoding/json"
	"net/http"

	"dental-lab-backend/internal/delivery/dto"
	"dental-lab-backend/internal/usecase"
	"dental-lab-backend/pkg/response"
	"dental-lab-backend/pkg/validator"
)

type WorkflowHandler struct {
	workflowUsecase usecase.WorkflowUsecase
	validator       *validator.CustomValidator
}

func NewWorkflowHandler(workflowUsecase usecase.WorkflowUsecase, validator *validator.CustomValidator) *WorkflowHandler {
	return &WorkflowHandler{
		workflowUsecase: workflowUsecase,
		validator:       validator,
	}
}

func (h *WorkflowHandler) CreateStage(w http.ResponseWriter, r *http.Request) {
	caseID, ok := pathUUID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid case ID", response.CodeValidation, nil)
		return
	}

	var req dto.CreateStageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", response.CodeValidation, nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	stage, err := h.workflowUsecase.CreateStage(r.Context(), caseID, &req)
	if err != nil {
		switch err {
		case usecase.ErrCaseNotFound:
			response.NotFound(w, "Case not found", "CASE_NOT_FOUND")
		default:
			response.InternalServerError(w, "Failed to create stage")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Stage created successfully", stage)
}

func (h *WorkflowHandler) ListStages(w http.ResponseWriter, r *http.Request) {
	caseID, ok := pathUUID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid case ID", response.CodeValidation, nil)
		return
	}

	stages, err := h.workflowUsecase.ListStages(r.Context(), caseID)
	if err != nil {
		response.InternalServerError(w, "Failed to list stages")
		return
	}

	response.Success(w, http.StatusOK, "Stages retrieved successfully", stages)
}

func (h *WorkflowHandler) UpdateStage(w http.ResponseWriter, r *http.Request) {
	stageID, ok := pathUUID(r, "stageId")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid stage ID", response.CodeValidation, nil)
		return
	}

	var req dto.UpdateStageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", response.CodeValidation, nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	stage, err := h.workflowUsecase.UpdateStage(r.Context(), stageID, &req)
	if err != nil {
		switch err {
		case usecase.ErrStageNotFound:
			response.NotFound(w, "Stage not found", "STAGE_NOT_FOUND")
		default:
			response.InternalServerError(w, "Failed to update stage")
		}
		return
	}

	response.Success(w, http.StatusOK, "Stage updated successfully", stage)
}

func (h *WorkflowHandler) DeleteStage(w http.ResponseWriter, r *http.Request) {
	stageID, ok := pathUUID(r, "stageId")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid stage ID", response.CodeValidation, nil)
		return
	}

	if err := h.workflowUsecase.DeleteStage(r.Context(), stageID); err != nil {
		switch err {
		case usecase.ErrStageNotFound:
			response.NotFound(w, "Stage not found", "STAGE_NOT_FOUND")
		default:
			response.InternalServerError(w, "Failed to delete stage")
		}
		return
	}

	response.Success(w, http.StatusOK, "Stage deleted successfully", nil)
}

func (h *WorkflowHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	caseID, ok := pathUUID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid case ID", response.CodeValidation, nil)
		return
	}

	stats, err := h.workflowUsecase.GetStats(r.Context(), caseID)
	if err != nil {
		switch err {
		case usecase.ErrCaseNotFound:
			response.NotFound(w, "Case not found", "CASE_NOT_FOUND")
		default:
			response.InternalServerError(w, "Failed to get workflow stats")
		}
		return
	}

	response.Success(w, http.StatusOK, "Workflow stats retrieved successfully", stats)
}
