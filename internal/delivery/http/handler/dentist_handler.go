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

type DentistHandler struct {
	dentistUsecase usecase.DentistUsecase
	validator      *validator.CustomValidator
}

func NewDentistHandler(dentistUsecase usecase.DentistUsecase, validator *validator.CustomValidator) *DentistHandler {
	return &DentistHandler{
		dentistUsecase: dentistUsecase,
		validator:      validator,
	}
}

func (h *DentistHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterDentistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", response.CodeValidation, nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	dentist, err := h.dentistUsecase.RegisterDentist(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrEmailAlreadyExists:
			response.Conflict(w, "Email already exists", response.CodeEmailExists)
		case usecase.ErrLicenseAlreadyExists:
			response.Conflict(w, "License number already registered", "LICENSE_EXISTS")
		default:
			response.InternalServerError(w, "Failed to register dentist")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Dentist registered successfully", dentist)
}

func (h *DentistHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid dentist ID", response.CodeValidation, nil)
		return
	}

	dentist, err := h.dentistUsecase.GetDentist(r.Context(), userID)
	if err != nil {
		switch err {
		case usecase.ErrDentistNotFound:
			response.NotFound(w, "Dentist not found", "DENTIST_NOT_FOUND")
		default:
			response.InternalServerError(w, "Failed to get dentist")
		}
		return
	}

	response.Success(w, http.StatusOK, "Dentist retrieved successfully", dentist)
}

func (h *DentistHandler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.FromRequest(r)

	dentists, total, err := h.dentistUsecase.ListDentists(r.Context(), page.Offset(), page.Limit)
	if err != nil {
		response.InternalServerError(w, "Failed to list dentists")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Dentists retrieved successfully", dentists, page.Meta(total))
}

func (h *DentistHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid dentist ID", response.CodeValidation, nil)
		return
	}

	var req dto.UpdateDentistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", response.CodeValidation, nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	dentist, err := h.dentistUsecase.UpdateDentist(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrDentistNotFound:
			response.NotFound(w, "Dentist not found", "DENTIST_NOT_FOUND")
		default:
			response.InternalServerError(w, "Failed to update dentist")
		}
		return
	}

	response.Success(w, http.StatusOK, "Dentist updated successfully", dentist)
}

// SubmitApplication lets the authenticated dentist apply for verification.
func (h *DentistHandler) SubmitApplication(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "", response.CodeUnauthorized)
		return
	}

	var req dto.SubmitApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", response.CodeValidation, nil)
		return
	}

	application, err := h.dentistUsecase.SubmitApplication(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrDentistNotFound:
			response.NotFound(w, "Dentist profile not found", "DENTIST_NOT_FOUND")
		default:
			response.InternalServerError(w, "Failed to submit application")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Application submitted successfully", application)
}

func (h *DentistHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	page := pagination.FromRequest(r)
	status := r.URL.Query().Get("status")

	applications, total, err := h.dentistUsecase.ListApplications(r.Context(), status, page.Offset(), page.Limit)
	if err != nil {
		response.InternalServerError(w, "Failed to list applications")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Applications retrieved successfully", applications, page.Meta(total))
}

func (h *DentistHandler) ReviewApplication(w http.ResponseWriter, r *http.Request) {
	reviewerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "", response.CodeUnauthorized)
		return
	}

	applicationID, ok := pathUUID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid application ID", response.CodeValidation, nil)
		return
	}

	var req dto.ReviewApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", response.CodeValidation, nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	application, err := h.dentistUsecase.ReviewApplication(r.Context(), applicationID, reviewerID, &req)
	if err != nil {
		switch err {
		case usecase.ErrApplicationNotFound:
			response.NotFound(w, "Application not found", "APPLICATION_NOT_FOUND")
		case usecase.ErrApplicationReviewed:
			response.Conflict(w, "Application has already been reviewed", "APPLICATION_REVIEWED")
		case usecase.ErrDentistNotFound:
			response.NotFound(w, "Dentist profile not found", "DENTIST_NOT_FOUND")
		default:
			response.InternalServerError(w, "Failed to review application")
		}
		return
	}

	response.Success(w, http.StatusOK, "Application reviewed successfully", application)
}
