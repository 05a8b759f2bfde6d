package handler

import (
	"encoding/json"
	"net/http"

	"dental-lab-backend/internal/delivery/dto"
	"dental-lab-backend/internal/delivery/http/middleware"
	"dental-lab-backend/internal/domain/entity"
	"dental-lab-backend/internal/usecase"
	"dental-lab-backend/pkg/pagination"
	"dental-lab-backend/pkg/response"
	"dental-lab-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// maxUploadSize caps case file uploads at 32 MiB.
const maxUploadSize = 32 << 20

type CaseHandler struct {
	caseUsecase usecase.CaseUsecase
	validator   *validator.CustomValidator
}

func NewCaseHandler(caseUsecase usecase.CaseUsecase, validator *validator.CustomValidator) *CaseHandler {
	return &CaseHandler{
		caseUsecase: caseUsecase,
		validator:   validator,
	}
}

func pathUUID(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	return id, err == nil
}

func (h *CaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "", response.CodeUnauthorized)
		return
	}

	var req dto.CreateCaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", response.CodeValidation, nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	c, err := h.caseUsecase.CreateCase(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrDentistNotFound:
			response.NotFound(w, "Dentist not found", "DENTIST_NOT_FOUND")
		default:
			response.InternalServerError(w, "Failed to create case")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Case created successfully", c)
}

func (h *CaseHandler) Get(w http.ResponseWriter, r *http.Request) {
	caseID, ok := pathUUID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid case ID", response.CodeValidation, nil)
		return
	}

	c, err := h.caseUsecase.GetCase(r.Context(), caseID)
	if err != nil {
		switch err {
		case usecase.ErrCaseNotFound:
			response.NotFound(w, "Case not found", "CASE_NOT_FOUND")
		default:
			response.InternalServerError(w, "Failed to get case")
		}
		return
	}

	response.Success(w, http.StatusOK, "Case retrieved successfully", c)
}

func (h *CaseHandler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.FromRequest(r)

	filter := entity.CaseFilter{
		Status:   entity.CaseStatus(r.URL.Query().Get("status")),
		Priority: entity.CasePriority(r.URL.Query().Get("priority")),
	}
	if dentistID, err := uuid.Parse(r.URL.Query().Get("dentist_id")); err == nil {
		filter.DentistID = dentistID
	}
	if assigneeID, err := uuid.Parse(r.URL.Query().Get("assignee_id")); err == nil {
		filter.AssigneeID = assigneeID
	}

	cases, total, err := h.caseUsecase.ListCases(r.Context(), filter, page.Offset(), page.Limit)
	if err != nil {
		response.InternalServerError(w, "Failed to list cases")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Cases retrieved successfully", cases, page.Meta(total))
}

func (h *CaseHandler) Update(w http.ResponseWriter, r *http.Request) {
	caseID, ok := pathUUID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid case ID", response.CodeValidation, nil)
		return
	}

	var req dto.UpdateCaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", response.CodeValidation, nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	c, err := h.caseUsecase.UpdateCase(r.Context(), caseID, &req)
	if err != nil {
		switch err {
		case usecase.ErrCaseNotFound:
			response.NotFound(w, "Case not found", "CASE_NOT_FOUND")
		default:
			response.InternalServerError(w, "Failed to update case")
		}
		return
	}

	response.Success(w, http.StatusOK, "Case updated successfully", c)
}

func (h *CaseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caseID, ok := pathUUID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid case ID", response.CodeValidation, nil)
		return
	}

	if err := h.caseUsecase.DeleteCase(r.Context(), caseID); err != nil {
		switch err {
		case usecase.ErrCaseNotFound:
			response.NotFound(w, "Case not found", "CASE_NOT_FOUND")
		default:
			response.InternalServerError(w, "Failed to delete case")
		}
		return
	}

	response.Success(w, http.StatusOK, "Case deleted successfully", nil)
}

func (h *CaseHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "", response.CodeUnauthorized)
		return
	}

	caseID, ok := pathUUID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid case ID", response.CodeValidation, nil)
		return
	}

	var req dto.CreateCaseNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", response.CodeValidation, nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	note, err := h.caseUsecase.AddNote(r.Context(), caseID, userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrCaseNotFound:
			response.NotFound(w, "Case not found", "CASE_NOT_FOUND")
		default:
			response.InternalServerError(w, "Failed to add note")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Note added successfully", note)
}

func (h *CaseHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	caseID, ok := pathUUID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid case ID", response.CodeValidation, nil)
		return
	}

	// Internal notes are for lab eyes only; dentists get the external view.
	includeInternal := middleware.HasRole(r.Context(), entity.RoleAdmin, entity.RoleStaff)

	notes, err := h.caseUsecase.ListNotes(r.Context(), caseID, includeInternal)
	if err != nil {
		response.InternalServerError(w, "Failed to list notes")
		return
	}

	response.Success(w, http.StatusOK, "Notes retrieved successfully", notes)
}

func (h *CaseHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "", response.CodeUnauthorized)
		return
	}

	caseID, ok := pathUUID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid case ID", response.CodeValidation, nil)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid multipart form", response.CodeValidation, nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "File is required", response.CodeValidation, nil)
		return
	}
	defer file.Close()

	resp, err := h.caseUsecase.AddFile(r.Context(), caseID, userID,
		header.Filename, header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		switch err {
		case usecase.ErrCaseNotFound:
			response.NotFound(w, "Case not found", "CASE_NOT_FOUND")
		default:
			response.InternalServerError(w, "Failed to upload file")
		}
		return
	}

	response.Success(w, http.StatusCreated, "File uploaded successfully", resp)
}

func (h *CaseHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	caseID, ok := pathUUID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid case ID", response.CodeValidation, nil)
		return
	}

	files, err := h.caseUsecase.ListFiles(r.Context(), caseID)
	if err != nil {
		response.InternalServerError(w, "Failed to list files")
		return
	}

	response.Success(w, http.StatusOK, "Files retrieved successfully", files)
}

func (h *CaseHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	fileID, ok := pathUUID(r, "fileId")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid file ID", response.CodeValidation, nil)
		return
	}

	if err := h.caseUsecase.DeleteFile(r.Context(), fileID); err != nil {
		switch err {
		case usecase.ErrCaseFileNotFound:
			response.NotFound(w, "File not found", "FILE_NOT_FOUND")
		default:
			response.InternalServerError(w, "Failed to delete file")
		}
		return
	}

	response.Success(w, http.StatusOK, "File deleted successfully", nil)
}
