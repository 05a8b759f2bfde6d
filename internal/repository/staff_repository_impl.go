package repository

import (
	"errors"

	"dental-lab-backend/internal/domain/entity"
	domainRepo "dental-lab-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type staffRepository struct{}

func NewStaffRepository() domainRepo.StaffRepository {
	return &staffRepository{}
}

func (r *staffRepository) Create(db *gorm.DB, profile *entity.StaffProfile) error {
	return db.Create(profile).Error
}

func (r *staffRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.StaffProfile, error) {
	var profile entity.StaffProfile
	err := db.Preload("User").Preload("Department").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *staffRepository) FindAll(db *gorm.DB, offset, limit int) ([]entity.StaffProfile, int64, error) {
	var total int64
	if err := db.Model(&entity.StaffProfile{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var profiles []entity.StaffProfile
	err := db.Preload("User").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&profiles).Error
	if err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

func (r *staffRepository) Update(db *gorm.DB, profile *entity.StaffProfile) error {
	return db.Save(profile).Error
}
