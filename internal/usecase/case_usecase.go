package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

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
	ErrCaseNotFound     = errors.New("case not found")
	ErrDentistNotFound  = errors.New("dentist not found")
	ErrCaseFileNotFound = errors.New("case file not found")
)

type CaseUsecase interface {
	CreateCase(ctx context.Context, createdBy uuid.UUID, req *dto.CreateCaseRequest) (*dto.CaseResponse, error)
	GetCase(ctx context.Context, caseID uuid.UUID) (*dto.CaseResponse, error)
	ListCases(ctx context.Context, filter entity.CaseFilter, offset, limit int) ([]dto.CaseResponse, int64, error)
	UpdateCase(ctx context.Context, caseID uuid.UUID, req *dto.UpdateCaseRequest) (*dto.CaseResponse, error)
	DeleteCase(ctx context.Context, caseID uuid.UUID) error

	AddNote(ctx context.Context, caseID, authorID uuid.UUID, req *dto.CreateCaseNoteRequest) (*dto.CaseNoteResponse, error)
	ListNotes(ctx context.Context, caseID uuid.UUID, includeInternal bool) ([]dto.CaseNoteResponse, error)

	AddFile(ctx context.Context, caseID, uploadedBy uuid.UUID, fileName, contentType string, size int64, content io.Reader) (*dto.CaseFileResponse, error)
	ListFiles(ctx context.Context, caseID uuid.UUID) ([]dto.CaseFileResponse, error)
	DeleteFile(ctx context.Context, fileID uuid.UUID) error
}

type caseUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	caseRepo    repository.CaseRepository
	dentistRepo repository.DentistRepository
	storage     service.FileStorage
	mailer      service.Mailer
}

func NewCaseUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	caseRepo repository.CaseRepository,
	dentistRepo repository.DentistRepository,
	storage service.FileStorage,
	mailer service.Mailer,
) CaseUsecase {
	return &caseUsecase{
		db:          db,
		log:         log,
		caseRepo:    caseRepo,
		dentistRepo: dentistRepo,
		storage:     storage,
		mailer:      mailer,
	}
}

// generateCaseNumber builds "CASE-<base36 millis>-<4 random chars>". Collision
// probability is treated as negligible; the unique index is the backstop.
func generateCaseNumber() string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	suffix := make([]byte, 4)
	randomBytes := make([]byte, 4)
	rand.Read(randomBytes)
	for i, b := range randomBytes {
		suffix[i] = charset[int(b)%len(charset)]
	}
	return fmt.Sprintf("CASE-%s-%s", strconv.FormatInt(time.Now().UnixMilli(), 36), string(suffix))
}

func (u *caseUsecase) CreateCase(ctx context.Context, createdBy uuid.UUID, req *dto.CreateCaseRequest) (*dto.CaseResponse, error) {
	db := u.db.WithContext(ctx)

	dentist, err := u.dentistRepo.FindByUserID(db, req.DentistID)
	if err != nil {
		u.log.Warnf("Failed to find dentist profile: %+v", err)
		return nil, err
	}
	if dentist == nil {
		return nil, ErrDentistNotFound
	}

	priority := entity.CasePriorityMedium
	if req.Priority != "" {
		priority = entity.CasePriority(req.Priority)
	}

	c := &entity.Case{
		CaseNumber:    generateCaseNumber(),
		DentistID:     req.DentistID,
		AssigneeID:    req.AssigneeID,
		DepartmentID:  req.DepartmentID,
		PatientName:   req.PatientName,
		PatientAge:    req.PatientAge,
		PatientGender: req.PatientGender,
		Description:   req.Description,
		Priority:      priority,
		Status:        entity.CaseStatusReceived,
		DueDate:       req.DueDate,
		CreatedByID:   createdBy,
	}

	if err := u.caseRepo.Create(db, c); err != nil {
		u.log.Warnf("Failed to create case: %+v", err)
		// The dentist may have been removed between the lookup and the insert.
		if isForeignKeyError(err, "dentist_id") {
			return nil, ErrDentistNotFound
		}
		return nil, err
	}

	c.Dentist = *dentist
	return converter.CaseToResponse(c), nil
}

func (u *caseUsecase) GetCase(ctx context.Context, caseID uuid.UUID) (*dto.CaseResponse, error) {
	c, err := u.caseRepo.FindByID(u.db.WithContext(ctx), caseID)
	if err != nil {
		u.log.Warnf("Failed to find case: %+v", err)
		return nil, err
	}
	if c == nil {
		return nil, ErrCaseNotFound
	}
	return converter.CaseToResponse(c), nil
}

func (u *caseUsecase) ListCases(ctx context.Context, filter entity.CaseFilter, offset, limit int) ([]dto.CaseResponse, int64, error) {
	cases, total, err := u.caseRepo.FindAll(u.db.WithContext(ctx), filter, offset, limit)
	if err != nil {
		u.log.Warnf("Failed to list cases: %+v", err)
		return nil, 0, err
	}
	return converter.CasesToResponses(cases), total, nil
}

// UpdateCase applies only the provided fields. Status transitions are
// permissive (corrections stay possible); the one hard side effect is that
// every transition into COMPLETED stamps CompletedDate.
func (u *caseUsecase) UpdateCase(ctx context.Context, caseID uuid.UUID, req *dto.UpdateCaseRequest) (*dto.CaseResponse, error) {
	db := u.db.WithContext(ctx)

	c, err := u.caseRepo.FindByID(db, caseID)
	if err != nil {
		u.log.Warnf("Failed to find case: %+v", err)
		return nil, err
	}
	if c == nil {
		return nil, ErrCaseNotFound
	}

	statusChanged := false

	if req.AssigneeID != nil {
		c.AssigneeID = req.AssigneeID
	}
	if req.DepartmentID != nil {
		c.DepartmentID = req.DepartmentID
	}
	if req.PatientName != nil {
		c.PatientName = *req.PatientName
	}
	if req.PatientAge != nil {
		c.PatientAge = req.PatientAge
	}
	if req.PatientGender != nil {
		c.PatientGender = *req.PatientGender
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.Priority != nil {
		c.Priority = entity.CasePriority(*req.Priority)
	}
	if req.DueDate != nil {
		c.DueDate = req.DueDate
	}
	if req.Status != nil {
		newStatus := entity.CaseStatus(*req.Status)
		statusChanged = newStatus != c.Status
		c.Status = newStatus
		if newStatus == entity.CaseStatusCompleted {
			now := time.Now()
			c.CompletedDate = &now
		}
	}

	if err := u.caseRepo.Update(db, c); err != nil {
		u.log.Warnf("Failed to update case: %+v", err)
		return nil, err
	}

	if statusChanged && c.Dentist.User.Email != "" {
		subject, body := service.CaseStatusBody(c.CaseNumber, string(c.Status))
		u.mailer.SendAsync(c.Dentist.User.Email, subject, body)
	}

	return converter.CaseToResponse(c), nil
}

func (u *caseUsecase) DeleteCase(ctx context.Context, caseID uuid.UUID) error {
	db := u.db.WithContext(ctx)

	c, err := u.caseRepo.FindByID(db, caseID)
	if err != nil {
		u.log.Warnf("Failed to find case: %+v", err)
		return err
	}
	if c == nil {
		return ErrCaseNotFound
	}

	// Hard delete; notes, files and stages cascade in the database.
	if err := u.caseRepo.Delete(db, caseID); err != nil {
		u.log.Warnf("Failed to delete case: %+v", err)
		return err
	}
	return nil
}

func (u *caseUsecase) AddNote(ctx context.Context, caseID, authorID uuid.UUID, req *dto.CreateCaseNoteRequest) (*dto.CaseNoteResponse, error) {
	db := u.db.WithContext(ctx)

	c, err := u.caseRepo.FindByID(db, caseID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCaseNotFound
	}

	note := &entity.CaseNote{
		CaseID:     caseID,
		AuthorID:   authorID,
		Content:    req.Content,
		IsInternal: req.IsInternal,
	}
	if err := u.caseRepo.CreateNote(db, note); err != nil {
		u.log.Warnf("Failed to create case note: %+v", err)
		return nil, err
	}
	return converter.CaseNoteToResponse(note), nil
}

// ListNotes hides internal notes unless the caller asks for them; the caller
// decides based on the requester's role.
func (u *caseUsecase) ListNotes(ctx context.Context, caseID uuid.UUID, includeInternal bool) ([]dto.CaseNoteResponse, error) {
	notes, err := u.caseRepo.FindNotes(u.db.WithContext(ctx), caseID, includeInternal)
	if err != nil {
		u.log.Warnf("Failed to list case notes: %+v", err)
		return nil, err
	}
	return converter.CaseNotesToResponses(notes), nil
}

func (u *caseUsecase) AddFile(ctx context.Context, caseID, uploadedBy uuid.UUID, fileName, contentType string, size int64, content io.Reader) (*dto.CaseFileResponse, error) {
	db := u.db.WithContext(ctx)

	c, err := u.caseRepo.FindByID(db, caseID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCaseNotFound
	}

	storagePath := service.CaseFilePath(caseID.String(), fileName)
	url, err := u.storage.Upload(ctx, content, storagePath)
	if err != nil {
		u.log.Warnf("Failed to upload case file: %+v", err)
		return nil, err
	}

	file := &entity.CaseFile{
		CaseID:       caseID,
		FileName:     fileName,
		StoragePath:  storagePath,
		URL:          url,
		Size:         size,
		ContentType:  contentType,
		UploadedByID: uploadedBy,
	}
	if err := u.caseRepo.CreateFile(db, file); err != nil {
		u.log.Warnf("Failed to record case file: %+v", err)
		// Mirror the failure back to storage so no orphan object remains.
		if delErr := u.storage.Delete(ctx, storagePath); delErr != nil {
			u.log.Warnf("Failed to clean up uploaded file: %+v", delErr)
		}
		return nil, err
	}
	return converter.CaseFileToResponse(file), nil
}

func (u *caseUsecase) ListFiles(ctx context.Context, caseID uuid.UUID) ([]dto.CaseFileResponse, error) {
	files, err := u.caseRepo.FindFiles(u.db.WithContext(ctx), caseID)
	if err != nil {
		u.log.Warnf("Failed to list case files: %+v", err)
		return nil, err
	}
	return converter.CaseFilesToResponses(files), nil
}

func (u *caseUsecase) DeleteFile(ctx context.Context, fileID uuid.UUID) error {
	db := u.db.WithContext(ctx)

	file, err := u.caseRepo.FindFileByID(db, fileID)
	if err != nil {
		return err
	}
	if file == nil {
		return ErrCaseFileNotFound
	}

	if err := u.storage.Delete(ctx, file.StoragePath); err != nil {
		u.log.Warnf("Failed to delete stored file: %+v", err)
		return err
	}
	return u.caseRepo.DeleteFile(db, fileID)
}
