package usecase

import (
	"context"
	"errors"
	"math"
	"time"

	"dental-lab-backend/internal/converter"
	"dental-lab-backend/internal/delivery/dto"
	"dental-lab-backend/internal/domain/entity"
	"dental-lab-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrStageNotFound = errors.New("workflow stage not found")

type WorkflowUsecase interface {
	CreateStage(ctx context.Context, caseID uuid.UUID, req *dto.CreateStageRequest) (*dto.StageResponse, error)
	ListStages(ctx context.Context, caseID uuid.UUID) ([]dto.StageResponse, error)
	UpdateStage(ctx context.Context, stageID uuid.UUID, req *dto.UpdateStageRequest) (*dto.StageResponse, error)
	DeleteStage(ctx context.Context, stageID uuid.UUID) error
	GetStats(ctx context.Context, caseID uuid.UUID) (*dto.WorkflowStatsResponse, error)
}

type workflowUsecase struct {
	db        *gorm.DB
	log       *logrus.Logger
	stageRepo repository.WorkflowStageRepository
	caseRepo  repository.CaseRepository
}

func NewWorkflowUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	stageRepo repository.WorkflowStageRepository,
	caseRepo repository.CaseRepository,
) WorkflowUsecase {
	return &workflowUsecase{
		db:        db,
		log:       log,
		stageRepo: stageRepo,
		caseRepo:  caseRepo,
	}
}

func (u *workflowUsecase) CreateStage(ctx context.Context, caseID uuid.UUID, req *dto.CreateStageRequest) (*dto.StageResponse, error) {
	db := u.db.WithContext(ctx)

	c, err := u.caseRepo.FindByID(db, caseID)
	if err != nil {
		u.log.Warnf("Failed to find case: %+v", err)
		return nil, err
	}
	if c == nil {
		return nil, ErrCaseNotFound
	}

	stage := &entity.WorkflowStage{
		CaseID:     caseID,
		Name:       req.Name,
		Sequence:   req.Sequence,
		AssigneeID: req.AssigneeID,
		Status:     entity.StageStatusPending,
		Notes:      req.Notes,
	}
	if err := u.stageRepo.Create(db, stage); err != nil {
		u.log.Warnf("Failed to create workflow stage: %+v", err)
		return nil, err
	}
	return converter.StageToResponse(stage), nil
}

func (u *workflowUsecase) ListStages(ctx context.Context, caseID uuid.UUID) ([]dto.StageResponse, error) {
	stages, err := u.stageRepo.FindByCaseID(u.db.WithContext(ctx), caseID)
	if err != nil {
		u.log.Warnf("Failed to list workflow stages: %+v", err)
		return nil, err
	}
	return converter.StagesToResponses(stages), nil
}

// UpdateStage applies provided fields. Status changes go through the stage
// lifecycle stamping rules; the owning case's status is never touched.
func (u *workflowUsecase) UpdateStage(ctx context.Context, stageID uuid.UUID, req *dto.UpdateStageRequest) (*dto.StageResponse, error) {
	db := u.db.WithContext(ctx)

	stage, err := u.stageRepo.FindByID(db, stageID)
	if err != nil {
		u.log.Warnf("Failed to find workflow stage: %+v", err)
		return nil, err
	}
	if stage == nil {
		return nil, ErrStageNotFound
	}

	if req.Name != nil {
		stage.Name = *req.Name
	}
	if req.Sequence != nil {
		stage.Sequence = *req.Sequence
	}
	if req.AssigneeID != nil {
		stage.AssigneeID = req.AssigneeID
	}
	if req.Notes != nil {
		stage.Notes = *req.Notes
	}
	if req.Status != nil {
		stage.ApplyStatus(entity.StageStatus(*req.Status), time.Now())
	}

	if err := u.stageRepo.Update(db, stage); err != nil {
		u.log.Warnf("Failed to update workflow stage: %+v", err)
		return nil, err
	}
	return converter.StageToResponse(stage), nil
}

func (u *workflowUsecase) DeleteStage(ctx context.Context, stageID uuid.UUID) error {
	db := u.db.WithContext(ctx)

	stage, err := u.stageRepo.FindByID(db, stageID)
	if err != nil {
		return err
	}
	if stage == nil {
		return ErrStageNotFound
	}
	return u.stageRepo.Delete(db, stageID)
}

func (u *workflowUsecase) GetStats(ctx context.Context, caseID uuid.UUID) (*dto.WorkflowStatsResponse, error) {
	db := u.db.WithContext(ctx)

	c, err := u.caseRepo.FindByID(db, caseID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCaseNotFound
	}

	counts, err := u.stageRepo.CountByStatus(db, caseID)
	if err != nil {
		u.log.Warnf("Failed to count workflow stages: %+v", err)
		return nil, err
	}
	return buildWorkflowStats(caseID, counts), nil
}

// buildWorkflowStats turns per-status counts into the stats payload. Progress
// is the rounded percentage of completed stages, 0 for an empty workflow.
func buildWorkflowStats(caseID uuid.UUID, counts map[entity.StageStatus]int64) *dto.WorkflowStatsResponse {
	stats := &dto.WorkflowStatsResponse{
		CaseID:     caseID,
		Pending:    counts[entity.StageStatusPending],
		InProgress: counts[entity.StageStatusInProgress],
		Completed:  counts[entity.StageStatusCompleted],
		Blocked:    counts[entity.StageStatusBlocked],
		Skipped:    counts[entity.StageStatusSkipped],
	}
	stats.Total = stats.Pending + stats.InProgress + stats.Completed + stats.Blocked + stats.Skipped

	if stats.Total > 0 {
		stats.Progress = int(math.Round(100 * float64(stats.Completed) / float64(stats.Total)))
	}
	return stats
}
