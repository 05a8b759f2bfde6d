package usecase

import (
	"context"
	"errors"

	"dental-lab-backend/internal/converter"
	"dental-lab-backend/internal/delivery/dto"
	"dental-lab-backend/internal/domain/entity"
	"dental-lab-backend/internal/domain/repository"
	"dental-lab-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrRoleNotFound      = errors.New("role not found")
	ErrRoleAlreadyExists = errors.New("role already exists")
	ErrRoleHasUsers      = errors.New("role is still assigned to users")
)

type RoleUsecase interface {
	CreateRole(ctx context.Context, actorID uuid.UUID, req *dto.CreateRoleRequest) (*dto.RoleResponse, error)
	GetRole(ctx context.Context, roleID int) (*dto.RoleResponse, error)
	ListRoles(ctx context.Context) ([]dto.RoleResponse, error)
	DeleteRole(ctx context.Context, actorID uuid.UUID, roleID int) error

	AssignRole(ctx context.Context, actorID, userID uuid.UUID, roleID int) error
	RemoveRole(ctx context.Context, userID uuid.UUID, roleID int) error
	ReplacePermissions(ctx context.Context, actorID uuid.UUID, roleID int, permissionIDs []int) (*dto.RoleResponse, error)

	CreatePermission(ctx context.Context, req *dto.CreatePermissionRequest) (*dto.PermissionResponse, error)
	ListPermissions(ctx context.Context) ([]dto.PermissionResponse, error)
}

type roleUsecase struct {
	db       *gorm.DB
	log      *logrus.Logger
	roleRepo repository.RoleRepository
	userRepo repository.UserRepository
	audit    service.AuditService
}

func NewRoleUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	roleRepo repository.RoleRepository,
	userRepo repository.UserRepository,
	audit service.AuditService,
) RoleUsecase {
	return &roleUsecase{
		db:       db,
		log:      log,
		roleRepo: roleRepo,
		userRepo: userRepo,
		audit:    audit,
	}
}

func (u *roleUsecase) CreateRole(ctx context.Context, actorID uuid.UUID, req *dto.CreateRoleRequest) (*dto.RoleResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	role := &entity.Role{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := u.roleRepo.Create(tx, role); err != nil {
		if isDuplicateKeyError(err, "name") {
			return nil, ErrRoleAlreadyExists
		}
		u.log.Warnf("Failed to create role: %+v", err)
		return nil, err
	}

	u.audit.Log(tx, &actorID, entity.AuditActionRoleCreate, "role", role.Name, nil, role)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	return converter.RoleToResponse(role), nil
}

func (u *roleUsecase) GetRole(ctx context.Context, roleID int) (*dto.RoleResponse, error) {
	role, err := u.roleRepo.FindByID(u.db.WithContext(ctx), roleID)
	if err != nil {
		u.log.Warnf("Failed to find role: %+v", err)
		return nil, err
	}
	if role == nil {
		return nil, ErrRoleNotFound
	}
	return converter.RoleToResponse(role), nil
}

func (u *roleUsecase) ListRoles(ctx context.Context) ([]dto.RoleResponse, error) {
	roles, err := u.roleRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list roles: %+v", err)
		return nil, err
	}
	return converter.RolesToResponses(roles), nil
}

// DeleteRole refuses to drop a role that is still assigned to any user.
func (u *roleUsecase) DeleteRole(ctx context.Context, actorID uuid.UUID, roleID int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	role, err := u.roleRepo.FindByID(tx, roleID)
	if err != nil {
		u.log.Warnf("Failed to find role: %+v", err)
		return err
	}
	if role == nil {
		return ErrRoleNotFound
	}

	count, err := u.roleRepo.CountUsers(tx, roleID)
	if err != nil {
		u.log.Warnf("Failed to count role users: %+v", err)
		return err
	}
	if count > 0 {
		return ErrRoleHasUsers
	}

	if err := u.roleRepo.Delete(tx, roleID); err != nil {
		u.log.Warnf("Failed to delete role: %+v", err)
		return err
	}

	u.audit.Log(tx, &actorID, entity.AuditActionRoleDelete, "role", role.Name, role, nil)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

// AssignRole links a role to a user. Assigning an already-held role is a no-op.
func (u *roleUsecase) AssignRole(ctx context.Context, actorID, userID uuid.UUID, roleID int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	role, err := u.roleRepo.FindByID(tx, roleID)
	if err != nil {
		u.log.Warnf("Failed to find role: %+v", err)
		return err
	}
	if role == nil {
		return ErrRoleNotFound
	}

	if err := u.roleRepo.AddToUser(tx, userID, roleID); err != nil {
		u.log.Warnf("Failed to assign role: %+v", err)
		return err
	}

	u.audit.Log(tx, &actorID, entity.AuditActionRoleAssign, "user_role", userID.String(), nil, role.Name)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

func (u *roleUsecase) RemoveRole(ctx context.Context, userID uuid.UUID, roleID int) error {
	db := u.db.WithContext(ctx)

	role, err := u.roleRepo.FindByID(db, roleID)
	if err != nil {
		u.log.Warnf("Failed to find role: %+v", err)
		return err
	}
	if role == nil {
		return ErrRoleNotFound
	}
	return u.roleRepo.RemoveFromUser(db, userID, roleID)
}

// ReplacePermissions swaps the full permission set of a role atomically: the
// old set is gone and the new set is in place, or neither happened.
func (u *roleUsecase) ReplacePermissions(ctx context.Context, actorID uuid.UUID, roleID int, permissionIDs []int) (*dto.RoleResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	role, err := u.roleRepo.FindByID(tx, roleID)
	if err != nil {
		u.log.Warnf("Failed to find role: %+v", err)
		return nil, err
	}
	if role == nil {
		return nil, ErrRoleNotFound
	}

	if err := u.roleRepo.ReplacePermissions(tx, roleID, permissionIDs); err != nil {
		u.log.Warnf("Failed to replace role permissions: %+v", err)
		return nil, err
	}

	u.audit.Log(tx, &actorID, entity.AuditActionRolePermissions, "role", role.Name, nil, permissionIDs)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	updated, err := u.roleRepo.FindByID(u.db.WithContext(ctx), roleID)
	if err != nil {
		return nil, err
	}
	return converter.RoleToResponse(updated), nil
}

func (u *roleUsecase) CreatePermission(ctx context.Context, req *dto.CreatePermissionRequest) (*dto.PermissionResponse, error) {
	permission := &entity.Permission{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := u.roleRepo.CreatePermission(u.db.WithContext(ctx), permission); err != nil {
		u.log.Warnf("Failed to create permission: %+v", err)
		return nil, err
	}
	return &dto.PermissionResponse{
		ID:          permission.ID,
		Name:        permission.Name,
		Description: permission.Description,
	}, nil
}

func (u *roleUsecase) ListPermissions(ctx context.Context) ([]dto.PermissionResponse, error) {
	permissions, err := u.roleRepo.FindAllPermissions(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list permissions: %+v", err)
		return nil, err
	}
	return converter.PermissionsToResponses(permissions), nil
}
