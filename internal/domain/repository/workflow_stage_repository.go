package repository

import (
	"dental-lab-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkflowStageRepository interface {
	Create(db *gorm.DB, stage *entity.WorkflowStage) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.WorkflowStage, error)
	// FindByCaseID returns stages ordered by sequence ascending.
	FindByCaseID(db *gorm.DB, caseID uuid.UUID) ([]entity.WorkflowStage, error)
	Update(db *gorm.DB, stage *entity.WorkflowStage) error
	Delete(db *gorm.DB, id uuid.UUID) error
	CountByStatus(db *gorm.DB, caseID uuid.UUID) (map[entity.StageStatus]int64, error)
}
