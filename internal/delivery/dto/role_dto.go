package dto

type CreateRoleRequest struct {
	Name        string `json:"name" validate:"required,max=50"`
	Description string `json:"description"`
}

type CreatePermissionRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

type AssignRoleRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
	RoleID int    `json:"role_id" validate:"required"`
}

type ReplacePermissionsRequest struct {
	PermissionIDs []int `json:"permission_ids" validate:"required"`
}

type RoleResponse struct {
	ID          int                  `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description,omitempty"`
	Permissions []PermissionResponse `json:"permissions,omitempty"`
}

type PermissionResponse struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
