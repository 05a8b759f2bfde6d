package repository

import (
	"errors"

	"dental-lab-backend/internal/domain/entity"
	domainRepo "dental-lab-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type roleRepository struct{}

func NewRoleRepository() domainRepo.RoleRepository {
	return &roleRepository{}
}

func (r *roleRepository) Create(db *gorm.DB, role *entity.Role) error {
	return db.Create(role).Error
}

func (r *roleRepository) FindByID(db *gorm.DB, id int) (*entity.Role, error) {
	var role entity.Role
	err := db.Preload("Permissions").Where("id = ?", id).First(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}

func (r *roleRepository) FindByName(db *gorm.DB, name string) (*entity.Role, error) {
	var role entity.Role
	err := db.Where("name = ?", name).First(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}

func (r *roleRepository) FindAll(db *gorm.DB) ([]entity.Role, error) {
	var roles []entity.Role
	err := db.Preload("Permissions").Order("id ASC").Find(&roles).Error
	if err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *roleRepository) Delete(db *gorm.DB, id int) error {
	return db.Delete(&entity.Role{}, id).Error
}

func (r *roleRepository) CountUsers(db *gorm.DB, roleID int) (int64, error) {
	var count int64
	err := db.Table("user_roles").Where("role_id = ?", roleID).Count(&count).Error
	return count, err
}

func (r *roleRepository) AddToUser(db *gorm.DB, userID uuid.UUID, roleID int) error {
	return db.Exec(
		"INSERT INTO user_roles (user_id, role_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
		userID, roleID,
	).Error
}

func (r *roleRepository) RemoveFromUser(db *gorm.DB, userID uuid.UUID, roleID int) error {
	return db.Exec(
		"DELETE FROM user_roles WHERE user_id = ? AND role_id = ?",
		userID, roleID,
	).Error
}

func (r *roleRepository) ReplacePermissions(db *gorm.DB, roleID int, permissionIDs []int) error {
	if err := db.Exec("DELETE FROM role_permissions WHERE role_id = ?", roleID).Error; err != nil {
		return err
	}
	for _, pid := range permissionIDs {
		err := db.Exec(
			"INSERT INTO role_permissions (role_id, permission_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
			roleID, pid,
		).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *roleRepository) CreatePermission(db *gorm.DB, permission *entity.Permission) error {
	return db.Create(permission).Error
}

func (r *roleRepository) FindAllPermissions(db *gorm.DB) ([]entity.Permission, error) {
	var permissions []entity.Permission
	err := db.Order("id ASC").Find(&permissions).Error
	if err != nil {
		return nil, err
	}
	return permissions, nil
}
