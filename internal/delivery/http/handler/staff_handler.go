package handler

import (
	"encoding/json"
	"net/http"

	"dental-lab-backend/internal/delivery/dto"
	"dental-lab-backend/internal/delivery/http/middleware"
	"dental-lab-backend/internal/usecase"
	"dental-lab-backend/pkg/pagination"
	"dental-lab-backend/pkg/response"
	"dental-lab-backend/pkg/validator"
)

type StaffHandler struct {
	staffUsecase usecase.StaffUsecase
	validator    *validator.CustomValidator
}

func NewStaffHandler(staffUsecase usecase.StaffUsecase, validator *validator.CustomValidator) *StaffHandler {
	return &StaffHandler{
		staffUsecase: staffUsecase,
		validator:    validator,
	}
}

func (h *StaffHandler) Create(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "", response.CodeUnauthorized)
		return
	}

	var req dto.CreateStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", response.CodeValidation, nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	staff, err := h.staffUsecase.CreateStaff(r.Context(), actorID, &req)
	if err != nil {
		switch err {
		case usecase.ErrEmailAlreadyExists:
			response.Conflict(w, "Email already exists", response.CodeEmailExists)
		case usecase.ErrEmployeeIDAlreadyExists:
			response.Conflict(w, "Employee ID already registered", "EMPLOYEE_ID_EXISTS")
		default:
			response.InternalServerError(w, "Failed to create staff member")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Staff member created successfully", staff)
}

func (h *StaffHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid staff ID", response.CodeValidation, nil)
		return
	}

	staff, err := h.staffUsecase.GetStaff(r.Context(), userID)
	if err != nil {
		switch err {
		case usecase.ErrStaffNotFound:
			response.NotFound(w, "Staff member not found", "STAFF_NOT_FOUND")
		default:
			response.InternalServerError(w, "Failed to get staff member")
		}
		return
	}

	response.Success(w, http.StatusOK, "Staff member retrieved successfully", staff)
}

func (h *StaffHandler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.FromRequest(r)

	staff, total, err := h.staffUsecase.ListStaff(r.Context(), page.Offset(), page.Limit)
	if err != nil {
		response.InternalServerError(w, "Failed to list staff")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Staff retrieved successfully", staff, page.Meta(total))
}

func (h *StaffHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid staff ID", response.CodeValidation, nil)
		return
	}

	var req dto.UpdateStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", response.CodeValidation, nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	staff, err := h.staffUsecase.UpdateStaff(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrStaffNotFound:
			response.NotFound(w, "Staff member not found", "STAFF_NOT_FOUND")
		default:
			response.InternalServerError(w, "Failed to update staff member")
		}
		return
	}

	response.Success(w, http.StatusOK, "Staff member updated successfully", staff)
}

func (h *StaffHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "", response.CodeUnauthorized)
		return
	}

	userID, ok := pathUUID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid staff ID", response.CodeValidation, nil)
		return
	}

	if err := h.staffUsecase.DeactivateStaff(r.Context(), userID, actorID); err != nil {
		switch err {
		case usecase.ErrStaffNotFound:
			response.NotFound(w, "Staff member not found", "STAFF_NOT_FOUND")
		default:
			response.InternalServerError(w, "Failed to deactivate staff member")
		}
		return
	}

	response.Success(w, http.StatusOK, "Staff member deactivated successfully", nil)
}
