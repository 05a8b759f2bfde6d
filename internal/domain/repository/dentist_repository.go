package repository

import (
	"dental-lab-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DentistRepository interface {
	Create(db *gorm.DB, profile *entity.DentistProfile) error
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DentistProfile, error)
	FindAll(db *gorm.DB, offset, limit int) ([]entity.DentistProfile, int64, error)
	Update(db *gorm.DB, profile *entity.DentistProfile) error

	CreateApplication(db *gorm.DB, application *entity.DentistApplication) error
	FindApplicationByID(db *gorm.DB, id uuid.UUID) (*entity.DentistApplication, error)
	FindApplications(db *gorm.DB, status entity.ApplicationStatus, offset, limit int) ([]entity.DentistApplication, int64, error)
	UpdateApplication(db *gorm.DB, application *entity.DentistApplication) error
}
