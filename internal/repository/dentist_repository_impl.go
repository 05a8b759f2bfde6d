package repository

import (
	"errors"

	"dental-lab-backend/internal/domain/entity"
	domainRepo "dental-lab-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type dentistRepository struct{}

func NewDentistRepository() domainRepo.DentistRepository {
	return &dentistRepository{}
}

func (r *dentistRepository) Create(db *gorm.DB, profile *entity.DentistProfile) error {
	return db.Create(profile).Error
}

func (r *dentistRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DentistProfile, error) {
	var profile entity.DentistProfile
	err := db.Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *dentistRepository) FindAll(db *gorm.DB, offset, limit int) ([]entity.DentistProfile, int64, error) {
	var total int64
	if err := db.Model(&entity.DentistProfile{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var profiles []entity.DentistProfile
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

func (r *dentistRepository) Update(db *gorm.DB, profile *entity.DentistProfile) error {
	return db.Save(profile).Error
}

func (r *dentistRepository) CreateApplication(db *gorm.DB, application *entity.DentistApplication) error {
	return db.Create(application).Error
}

func (r *dentistRepository) FindApplicationByID(db *gorm.DB, id uuid.UUID) (*entity.DentistApplication, error) {
	var application entity.DentistApplication
	err := db.Preload("Dentist.User").Where("id = ?", id).First(&application).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &application, nil
}

func (r *dentistRepository) FindApplications(db *gorm.DB, status entity.ApplicationStatus, offset, limit int) ([]entity.DentistApplication, int64, error) {
	query := db.Model(&entity.DentistApplication{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var applications []entity.DentistApplication
	err := query.Preload("Dentist.User").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&applications).Error
	if err != nil {
		return nil, 0, err
	}
	return applications, total, nil
}

func (r *dentistRepository) UpdateApplication(db *gorm.DB, application *entity.DentistApplication) error {
	return db.Save(application).Error
}
