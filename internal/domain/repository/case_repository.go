package repository

import (
	"dental-lab-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CaseRepository interface {
	Create(db *gorm.DB, c *entity.Case) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Case, error)
	FindAll(db *gorm.DB, filter entity.CaseFilter, offset, limit int) ([]entity.Case, int64, error)
	Update(db *gorm.DB, c *entity.Case) error
	Delete(db *gorm.DB, id uuid.UUID) error

	CreateNote(db *gorm.DB, note *entity.CaseNote) error
	FindNotes(db *gorm.DB, caseID uuid.UUID, includeInternal bool) ([]entity.CaseNote, error)

	CreateFile(db *gorm.DB, file *entity.CaseFile) error
	FindFiles(db *gorm.DB, caseID uuid.UUID) ([]entity.CaseFile, error)
	FindFileByID(db *gorm.DB, id uuid.UUID) (*entity.CaseFile, error)
	DeleteFile(db *gorm.DB, id uuid.UUID) error
}
