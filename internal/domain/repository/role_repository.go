package repository

import (
	"dental-lab-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RoleRepository interface {
	Create(db *gorm.DB, role *entity.Role) error
	FindByID(db *gorm.DB, id int) (*entity.Role, error)
	FindByName(db *gorm.DB, name string) (*entity.Role, error)
	FindAll(db *gorm.DB) ([]entity.Role, error)
	Delete(db *gorm.DB, id int) error
	CountUsers(db *gorm.DB, roleID int) (int64, error)

	// AddToUser links a role to a user, a no-op when the link already exists.
	AddToUser(db *gorm.DB, userID uuid.UUID, roleID int) error
	RemoveFromUser(db *gorm.DB, userID uuid.UUID, roleID int) error

	// ReplacePermissions swaps the full permission set of a role
	// (delete-all-then-insert). Caller wraps it in a transaction.
	ReplacePermissions(db *gorm.DB, roleID int, permissionIDs []int) error

	CreatePermission(db *gorm.DB, permission *entity.Permission) error
	FindAllPermissions(db *gorm.DB) ([]entity.Permission, error)
}
