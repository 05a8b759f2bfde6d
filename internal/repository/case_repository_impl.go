package repository

import (
	"errors"

	"dental-lab-backend/internal/domain/entity"
	domainRepo "dental-lab-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type caseRepository struct{}

func NewCaseRepository() domainRepo.CaseRepository {
	return &caseRepository{}
}

func (r *caseRepository) Create(db *gorm.DB, c *entity.Case) error {
	return db.Create(c).Error
}

func (r *caseRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Case, error) {
	var c entity.Case
	err := db.Preload("Dentist.User").
		Preload("Assignee").
		Preload("Department").
		Where("id = ?", id).
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *caseRepository) FindAll(db *gorm.DB, filter entity.CaseFilter, offset, limit int) ([]entity.Case, int64, error) {
	query := db.Model(&entity.Case{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.DentistID != uuid.Nil {
		query = query.Where("dentist_id = ?", filter.DentistID)
	}
	if filter.AssigneeID != uuid.Nil {
		query = query.Where("assignee_id = ?", filter.AssigneeID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var cases []entity.Case
	err := query.Preload("Dentist.User").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&cases).Error
	if err != nil {
		return nil, 0, err
	}
	return cases, total, nil
}

func (r *caseRepository) Update(db *gorm.DB, c *entity.Case) error {
	return db.Save(c).Error
}

// Delete hard-deletes the case; notes, files and stages cascade at the
// database level.
func (r *caseRepository) Delete(db *gorm.DB, id uuid.UUID) error {
	return db.Delete(&entity.Case{}, "id = ?", id).Error
}

func (r *caseRepository) CreateNote(db *gorm.DB, note *entity.CaseNote) error {
	return db.Create(note).Error
}

func (r *caseRepository) FindNotes(db *gorm.DB, caseID uuid.UUID, includeInternal bool) ([]entity.CaseNote, error) {
	query := db.Preload("Author").Where("case_id = ?", caseID)
	if !includeInternal {
		query = query.Where("is_internal = ?", false)
	}

	var notes []entity.CaseNote
	err := query.Order("created_at DESC").Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *caseRepository) CreateFile(db *gorm.DB, file *entity.CaseFile) error {
	return db.Create(file).Error
}

func (r *caseRepository) FindFiles(db *gorm.DB, caseID uuid.UUID) ([]entity.CaseFile, error) {
	var files []entity.CaseFile
	err := db.Where("case_id = ?", caseID).Order("created_at DESC").Find(&files).Error
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (r *caseRepository) FindFileByID(db *gorm.DB, id uuid.UUID) (*entity.CaseFile, error) {
	var file entity.CaseFile
	err := db.Where("id = ?", id).First(&file).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &file, nil
}

func (r *caseRepository) DeleteFile(db *gorm.DB, id uuid.UUID) error {
	return db.Delete(&entity.CaseFile{}, "id = ?", id).Error
}
