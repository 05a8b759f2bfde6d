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
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrStaffNotFound           = errors.New("staff member not found")
	ErrEmployeeIDAlreadyExists = errors.New("employee id already registered")
)

type StaffUsecase interface {
	CreateStaff(ctx context.Context, createdBy uuid.UUID, req *dto.CreateStaffRequest) (*dto.StaffResponse, error)
	GetStaff(ctx context.Context, userID uuid.UUID) (*dto.StaffResponse, error)
	ListStaff(ctx context.Context, offset, limit int) ([]dto.StaffResponse, int64, error)
	UpdateStaff(ctx context.Context, userID uuid.UUID, req *dto.UpdateStaffRequest) (*dto.StaffResponse, error)
	DeactivateStaff(ctx context.Context, userID, deactivatedBy uuid.UUID) error
}

type staffUsecase struct {
	db        *gorm.DB
	log       *logrus.Logger
	staffRepo repository.StaffRepository
	userRepo  repository.UserRepository
	roleRepo  repository.RoleRepository
	audit     service.AuditService
}

func NewStaffUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	staffRepo repository.StaffRepository,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	audit service.AuditService,
) StaffUsecase {
	return &staffUsecase{
		db:        db,
		log:       log,
		staffRepo: staffRepo,
		userRepo:  userRepo,
		roleRepo:  roleRepo,
		audit:     audit,
	}
}

// CreateStaff provisions the user account and the staff profile in one
// transaction. An omitted password leaves the hash empty until the employee
// claims the account through the reset flow.
func (u *staffUsecase) CreateStaff(ctx context.Context, createdBy uuid.UUID, req *dto.CreateStaffRequest) (*dto.StaffResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	existing, err := u.userRepo.FindByEmail(tx, req.Email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	user := &entity.User{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			u.log.Warnf("Failed to hash password: %+v", err)
			return nil, err
		}
		user.Password = string(hashed)
	}

	if err := u.userRepo.Create(tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	profile := &entity.StaffProfile{
		UserID:       user.ID,
		EmployeeID:   req.EmployeeID,
		Position:     req.Position,
		DepartmentID: req.DepartmentID,
		Salary:       req.Salary,
		HireDate:     req.HireDate,
		Status:       entity.StaffStatusActive,
	}
	if err := u.staffRepo.Create(tx, profile); err != nil {
		if isDuplicateKeyError(err, "employee_id") {
			return nil, ErrEmployeeIDAlreadyExists
		}
		u.log.Warnf("Failed to create staff profile: %+v", err)
		return nil, err
	}

	if role, err := u.roleRepo.FindByName(tx, entity.RoleStaff); err == nil && role != nil {
		if err := u.roleRepo.AddToUser(tx, user.ID, role.ID); err != nil {
			u.log.Warnf("Failed to assign staff role: %+v", err)
			return nil, err
		}
	}

	u.audit.Log(tx, &createdBy, entity.AuditActionStaffCreate, "staff_profile", user.ID.String(), nil, profile)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	profile.User = *user
	return converter.StaffToResponse(profile), nil
}

func (u *staffUsecase) GetStaff(ctx context.Context, userID uuid.UUID) (*dto.StaffResponse, error) {
	profile, err := u.staffRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find staff profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrStaffNotFound
	}
	return converter.StaffToResponse(profile), nil
}

func (u *staffUsecase) ListStaff(ctx context.Context, offset, limit int) ([]dto.StaffResponse, int64, error) {
	profiles, total, err := u.staffRepo.FindAll(u.db.WithContext(ctx), offset, limit)
	if err != nil {
		u.log.Warnf("Failed to list staff profiles: %+v", err)
		return nil, 0, err
	}
	return converter.StaffsToResponses(profiles), total, nil
}

func (u *staffUsecase) UpdateStaff(ctx context.Context, userID uuid.UUID, req *dto.UpdateStaffRequest) (*dto.StaffResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.staffRepo.FindByUserID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find staff profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrStaffNotFound
	}

	if req.Phone != nil {
		profile.User.Phone = *req.Phone
		if err := u.userRepo.Update(tx, &profile.User); err != nil {
			u.log.Warnf("Failed to update user: %+v", err)
			return nil, err
		}
	}
	if req.Position != nil {
		profile.Position = *req.Position
	}
	if req.DepartmentID != nil {
		profile.DepartmentID = req.DepartmentID
	}
	if req.Salary != nil {
		profile.Salary = req.Salary
	}
	if req.Status != nil {
		profile.Status = entity.StaffStatus(*req.Status)
	}

	if err := u.staffRepo.Update(tx, profile); err != nil {
		u.log.Warnf("Failed to update staff profile: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	return converter.StaffToResponse(profile), nil
}

// DeactivateStaff marks the employment terminated and disables the login.
// Nothing is deleted; case history keeps pointing at the user.
func (u *staffUsecase) DeactivateStaff(ctx context.Context, userID, deactivatedBy uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.staffRepo.FindByUserID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find staff profile: %+v", err)
		return err
	}
	if profile == nil {
		return ErrStaffNotFound
	}

	profile.Status = entity.StaffStatusTerminated
	if err := u.staffRepo.Update(tx, profile); err != nil {
		u.log.Warnf("Failed to update staff profile: %+v", err)
		return err
	}
	if err := u.userRepo.SetActive(tx, userID, false); err != nil {
		u.log.Warnf("Failed to deactivate user: %+v", err)
		return err
	}

	u.audit.Log(tx, &deactivatedBy, entity.AuditActionUserDeactivate, "user", userID.String(), entity.StaffStatusActive, entity.StaffStatusTerminated)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}
