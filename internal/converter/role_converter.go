package converter

import (
	"dental-lab-backend/internal/delivery/dto"
	"dental-lab-backend/internal/domain/entity"
)

func RoleToResponse(role *entity.Role) *dto.RoleResponse {
	if role == nil {
		return nil
	}

	permissions := make([]dto.PermissionResponse, len(role.Permissions))
	for i, p := range role.Permissions {
		permissions[i] = dto.PermissionResponse{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
		}
	}

	return &dto.RoleResponse{
		ID:          role.ID,
		Name:        role.Name,
		Description: role.Description,
		Permissions: permissions,
	}
}

func RolesToResponses(roles []entity.Role) []dto.RoleResponse {
	responses := make([]dto.RoleResponse, len(roles))
	for i := range roles {
		responses[i] = *RoleToResponse(&roles[i])
	}
	return responses
}

func PermissionsToResponses(permissions []entity.Permission) []dto.PermissionResponse {
	responses := make([]dto.PermissionResponse, len(permissions))
	for i, p := range permissions {
		responses[i] = dto.PermissionResponse{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
		}
	}
	return responses
}
