package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"dental-lab-backend/internal/delivery/dto"
	"dental-lab-backend/internal/delivery/http/middleware"
	"dental-lab-backend/internal/usecase"
	"dental-lab-backend/pkg/response"
	"dental-lab-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type RoleHandler struct {
	roleUsecase usecase.RoleUsecase
	validator   *validator.CustomValidator
}

func NewRoleHandler(roleUsecase usecase.RoleUsecase, validator *validator.CustomValidator) *RoleHandler {
	return &RoleHandler{
		roleUsecase: roleUsecase,
		validator:   validator,
	}
}

func pathInt(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	return id, err == nil
}

func (h *RoleHandler) Create(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "", response.CodeUnauthorized)
		return
	}

	var req dto.CreateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", response.CodeValidation, nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	role, err := h.roleUsecase.CreateRole(r.Context(), actorID, &req)
	if err != nil {
		switch err {
		case usecase.ErrRoleAlreadyExists:
			response.Conflict(w, "Role already exists", "ROLE_EXISTS")
		default:
			response.InternalServerError(w, "Failed to create role")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Role created successfully", role)
}

func (h *RoleHandler) Get(w http.ResponseWriter, r *http.Request) {
	roleID, ok := pathInt(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid role ID", response.CodeValidation, nil)
		return
	}

	role, err := h.roleUsecase.GetRole(r.Context(), roleID)
	if err != nil {
		switch err {
		case usecase.ErrRoleNotFound:
			response.NotFound(w, "Role not found", "ROLE_NOT_FOUND")
		default:
			response.InternalServerError(w, "Failed to get role")
		}
		return
	}

	response.Success(w, http.StatusOK, "Role retrieved successfully", role)
}

func (h *RoleHandler) List(w http.ResponseWriter, r *http.Request) {
	roles, err := h.roleUsecase.ListRoles(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list roles")
		return
	}

	response.Success(w, http.StatusOK, "Roles retrieved successfully", roles)
}

func (h *RoleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "", response.CodeUnauthorized)
		return
	}

	roleID, ok := pathInt(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid role ID", response.CodeValidation, nil)
		return
	}

	if err := h.roleUsecase.DeleteRole(r.Context(), actorID, roleID); err != nil {
		switch err {
		case usecase.ErrRoleNotFound:
			response.NotFound(w, "Role not found", "ROLE_NOT_FOUND")
		case usecase.ErrRoleHasUsers:
			response.Error(w, http.StatusBadRequest, "Role is still assigned to users", "ROLE_HAS_USERS", nil)
		default:
			response.InternalServerError(w, "Failed to delete role")
		}
		return
	}

	response.Success(w, http.StatusOK, "Role deleted successfully", nil)
}

func (h *RoleHandler) Assign(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "", response.CodeUnauthorized)
		return
	}

	var req dto.AssignRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", response.CodeValidation, nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid user ID", response.CodeValidation, nil)
		return
	}

	if err := h.roleUsecase.AssignRole(r.Context(), actorID, userID, req.RoleID); err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found", "USER_NOT_FOUND")
		case usecase.ErrRoleNotFound:
			response.NotFound(w, "Role not found", "ROLE_NOT_FOUND")
		default:
			response.InternalServerError(w, "Failed to assign role")
		}
		return
	}

	response.Success(w, http.StatusOK, "Role assigned successfully", nil)
}

func (h *RoleHandler) Remove(w http.ResponseWriter, r *http.Request) {
	roleID, ok := pathInt(r, "roleId")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid role ID", response.CodeValidation, nil)
		return
	}

	userID, ok := pathUUID(r, "userId")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid user ID", response.CodeValidation, nil)
		return
	}

	if err := h.roleUsecase.RemoveRole(r.Context(), userID, roleID); err != nil {
		switch err {
		case usecase.ErrRoleNotFound:
			response.NotFound(w, "Role not found", "ROLE_NOT_FOUND")
		default:
			response.InternalServerError(w, "Failed to remove role")
		}
		return
	}

	response.Success(w, http.StatusOK, "Role removed successfully", nil)
}

func (h *RoleHandler) ReplacePermissions(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "", response.CodeUnauthorized)
		return
	}

	roleID, ok := pathInt(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid role ID", response.CodeValidation, nil)
		return
	}

	var req dto.ReplacePermissionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", response.CodeValidation, nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	role, err := h.roleUsecase.ReplacePermissions(r.Context(), actorID, roleID, req.PermissionIDs)
	if err != nil {
		switch err {
		case usecase.ErrRoleNotFound:
			response.NotFound(w, "Role not found", "ROLE_NOT_FOUND")
		default:
			response.InternalServerError(w, "Failed to replace permissions")
		}
		return
	}

	response.Success(w, http.StatusOK, "Permissions replaced successfully", role)
}

func (h *RoleHandler) CreatePermission(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePermissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", response.CodeValidation, nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	permission, err := h.roleUsecase.CreatePermission(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to create permission")
		return
	}

	response.Success(w, http.StatusCreated, "Permission created successfully", permission)
}

func (h *RoleHandler) ListPermissions(w http.ResponseWriter, r *http.Request) {
	permissions, err := h.roleUsecase.ListPermissions(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list permissions")
		return
	}

	response.Success(w, http.StatusOK, "Permissions retrieved successfully", permissions)
}
