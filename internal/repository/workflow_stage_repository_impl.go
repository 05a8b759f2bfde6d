package repository

import (
	"errors"

	"dental-lab-backend/internal/domain/entity"
	domainRepo "dental-lab-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type workflowStageRepository struct{}

func NewWorkflowStageRepository() domainRepo.WorkflowStageRepository {
	return &workflowStageRepository{}
}

func (r *workflowStageRepository) Create(db *gorm.DB, stage *entity.WorkflowStage) error {
	return db.Create(stage).Error
}

func (r *workflowStageRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.WorkflowStage, error) {
	var stage entity.WorkflowStage
	err := db.Where("id = ?", id).First(&stage).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &stage, nil
}

func (r *workflowStageRepository) FindByCaseID(db *gorm.DB, caseID uuid.UUID) ([]entity.WorkflowStage, error) {
	var stages []entity.WorkflowStage
	err := db.Preload("Assignee").
		Where("case_id = ?", caseID).
		Order("sequence ASC").
		Find(&stages).Error
	if err != nil {
		return nil, err
	}
	return stages, nil
}

func (r *workflowStageRepository) Update(db *gorm.DB, stage *entity.WorkflowStage) error {
	return db.Save(stage).Error
}

func (r *workflowStageRepository) Delete(db *gorm.DB, id uuid.UUID) error {
	return db.Delete(&entity.WorkflowStage{}, "id = ?", id).Error
}

func (r *workflowStageRepository) CountByStatus(db *gorm.DB, caseID uuid.UUID) (map[entity.StageStatus]int64, error) {
	type row struct {
		Status entity.StageStatus
		Count  int64
	}
	var rows []row
	err := db.Model(&entity.WorkflowStage{}).
		Select("status, count(*) as count").
		Where("case_id = ?", caseID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[entity.StageStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}
