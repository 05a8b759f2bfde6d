package repository

import (
	"dental-lab-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StaffRepository interface {
	Create(db *gorm.DB, profile *entity.StaffProfile) error
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.StaffProfile, error)
	FindAll(db *gorm.DB, offset, limit int) ([]entity.StaffProfile, int64, error)
	Update(db *gorm.DB, profile *entity.StaffProfile) error
}
