package usecase

import (
	"context"
	"errors"
	"time"

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
	ErrLicenseAlreadyExists = errors.New("license number already registered")
	ErrApplicationNotFound  = errors.New("application not found")
	ErrApplicationReviewed  = errors.New("application already reviewed")
)

type DentistUsecase interface {
	RegisterDentist(ctx context.Context, req *dto.RegisterDentistRequest) (*dto.DentistResponse, error)
	GetDentist(ctx context.Context, userID uuid.UUID) (*dto.DentistResponse, error)
	ListDentists(ctx context.Context, offset, limit int) ([]dto.DentistResponse, int64, error)
	UpdateDentist(ctx context.Context, userID uuid.UUID, req *dto.UpdateDentistRequest) (*dto.DentistResponse, error)

	SubmitApplication(ctx context.Context, dentistID uuid.UUID, req *dto.SubmitApplicationRequest) (*dto.ApplicationResponse, error)
	ListApplications(ctx context.Context, status string, offset, limit int) ([]dto.ApplicationResponse, int64, error)
	ReviewApplication(ctx context.Context, applicationID, reviewerID uuid.UUID, req *dto.ReviewApplicationRequest) (*dto.ApplicationResponse, error)
}

type dentistUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	dentistRepo repository.DentistRepository
	userRepo    repository.UserRepository
	roleRepo    repository.RoleRepository
	audit       service.AuditService
	mailer      service.Mailer
}

func NewDentistUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	dentistRepo repository.DentistRepository,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	audit service.AuditService,
	mailer service.Mailer,
) DentistUsecase {
	return &dentistUsecase{
		db:          db,
		log:         log,
		dentistRepo: dentistRepo,
		userRepo:    userRepo,
		roleRepo:    roleRepo,
		audit:       audit,
		mailer:      mailer,
	}
}

// RegisterDentist creates the user account and the dentist profile in one
// transaction. The password is optional: admin-provisioned accounts start with
// an empty hash and set a password through the reset flow.
func (u *dentistUsecase) RegisterDentist(ctx context.Context, req *dto.RegisterDentistRequest) (*dto.DentistResponse, error) {
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

	profile := &entity.DentistProfile{
		UserID:         user.ID,
		LicenseNumber:  req.LicenseNumber,
		ClinicName:     req.ClinicName,
		ClinicAddress:  req.ClinicAddress,
		Specialization: req.Specialization,
		Status:         entity.DentistStatusPendingVerification,
	}
	if err := u.dentistRepo.Create(tx, profile); err != nil {
		if isDuplicateKeyError(err, "license_number") {
			return nil, ErrLicenseAlreadyExists
		}
		u.log.Warnf("Failed to create dentist profile: %+v", err)
		return nil, err
	}

	if role, err := u.roleRepo.FindByName(tx, entity.RoleDentist); err == nil && role != nil {
		if err := u.roleRepo.AddToUser(tx, user.ID, role.ID); err != nil {
			u.log.Warnf("Failed to assign dentist role: %+v", err)
			return nil, err
		}
	}

	u.audit.Log(tx, nil, entity.AuditActionDentistCreate, "dentist_profile", user.ID.String(), nil, profile)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	profile.User = *user
	return converter.DentistToResponse(profile), nil
}

func (u *dentistUsecase) GetDentist(ctx context.Context, userID uuid.UUID) (*dto.DentistResponse, error) {
	profile, err := u.dentistRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find dentist profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDentistNotFound
	}
	return converter.DentistToResponse(profile), nil
}

func (u *dentistUsecase) ListDentists(ctx context.Context, offset, limit int) ([]dto.DentistResponse, int64, error) {
	profiles, total, err := u.dentistRepo.FindAll(u.db.WithContext(ctx), offset, limit)
	if err != nil {
		u.log.Warnf("Failed to list dentist profiles: %+v", err)
		return nil, 0, err
	}
	return converter.DentistsToResponses(profiles), total, nil
}

// UpdateDentist edits contact and clinic details. Status and license number
// are out of reach here: status moves through application review only.
func (u *dentistUsecase) UpdateDentist(ctx context.Context, userID uuid.UUID, req *dto.UpdateDentistRequest) (*dto.DentistResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.dentistRepo.FindByUserID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find dentist profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDentistNotFound
	}

	if req.Phone != nil {
		profile.User.Phone = *req.Phone
		if err := u.userRepo.Update(tx, &profile.User); err != nil {
			u.log.Warnf("Failed to update user: %+v", err)
			return nil, err
		}
	}
	if req.ClinicName != nil {
		profile.ClinicName = *req.ClinicName
	}
	if req.ClinicAddress != nil {
		profile.ClinicAddress = *req.ClinicAddress
	}
	if req.Specialization != nil {
		profile.Specialization = *req.Specialization
	}

	if err := u.dentistRepo.Update(tx, profile); err != nil {
		u.log.Warnf("Failed to update dentist profile: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	return converter.DentistToResponse(profile), nil
}

func (u *dentistUsecase) SubmitApplication(ctx context.Context, dentistID uuid.UUID, req *dto.SubmitApplicationRequest) (*dto.ApplicationResponse, error) {
	db := u.db.WithContext(ctx)

	profile, err := u.dentistRepo.FindByUserID(db, dentistID)
	if err != nil {
		u.log.Warnf("Failed to find dentist profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDentistNotFound
	}

	application := &entity.DentistApplication{
		DentistID: dentistID,
		Status:    entity.ApplicationStatusSubmitted,
		Message:   req.Message,
	}
	if err := u.dentistRepo.CreateApplication(db, application); err != nil {
		u.log.Warnf("Failed to create dentist application: %+v", err)
		return nil, err
	}
	return converter.ApplicationToResponse(application), nil
}

func (u *dentistUsecase) ListApplications(ctx context.Context, status string, offset, limit int) ([]dto.ApplicationResponse, int64, error) {
	applications, total, err := u.dentistRepo.FindApplications(u.db.WithContext(ctx), entity.ApplicationStatus(status), offset, limit)
	if err != nil {
		u.log.Warnf("Failed to list dentist applications: %+v", err)
		return nil, 0, err
	}
	return converter.ApplicationsToResponses(applications), total, nil
}

// ReviewApplication records the decision and moves the dentist profile status
// accordingly, in one transaction. Approving sets the profile VERIFIED and
// stamps who verified it and when. A decided application cannot be re-reviewed.
func (u *dentistUsecase) ReviewApplication(ctx context.Context, applicationID, reviewerID uuid.UUID, req *dto.ReviewApplicationRequest) (*dto.ApplicationResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	application, err := u.dentistRepo.FindApplicationByID(tx, applicationID)
	if err != nil {
		u.log.Warnf("Failed to find dentist application: %+v", err)
		return nil, err
	}
	if application == nil {
		return nil, ErrApplicationNotFound
	}
	if application.Status == entity.ApplicationStatusApproved || application.Status == entity.ApplicationStatusRejected {
		return nil, ErrApplicationReviewed
	}

	profile, err := u.dentistRepo.FindByUserID(tx, application.DentistID)
	if err != nil {
		u.log.Warnf("Failed to find dentist profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDentistNotFound
	}

	oldStatus := application.Status
	now := time.Now()

	application.Status = entity.ApplicationStatus(req.Status)
	application.ReviewNotes = req.ReviewNotes
	application.ReviewedByID = &reviewerID
	application.ReviewedDate = &now
	if err := u.dentistRepo.UpdateApplication(tx, application); err != nil {
		u.log.Warnf("Failed to update dentist application: %+v", err)
		return nil, err
	}

	if profileStatus, ok := entity.ProfileStatusFor(application.Status); ok {
		profile.Status = profileStatus
		if profileStatus == entity.DentistStatusVerified {
			profile.VerificationDate = &now
			profile.VerifiedByID = &reviewerID
		}
		if err := u.dentistRepo.Update(tx, profile); err != nil {
			u.log.Warnf("Failed to update dentist profile: %+v", err)
			return nil, err
		}
	}

	u.audit.Log(tx, &reviewerID, entity.AuditActionApplicationReview, "dentist_application", applicationID.String(), oldStatus, application.Status)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	if profile.User.Email != "" {
		subject, body := service.ApplicationReviewBody(string(application.Status), application.ReviewNotes)
		u.mailer.SendAsync(profile.User.Email, subject, body)
	}

	return converter.ApplicationToResponse(application), nil
}
