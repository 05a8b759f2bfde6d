package repository

import (
	"dental-lab-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(db *gorm.DB, user *entity.User) error
	FindByEmail(db *gorm.DB, email string) (*entity.User, error)
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error)
	FindAll(db *gorm.DB, offset, limit int) ([]entity.User, int64, error)
	Update(db *gorm.DB, user *entity.User) error
	UpdatePassword(db *gorm.DB, id uuid.UUID, hash string) error
	SetActive(db *gorm.DB, id uuid.UUID, active bool) error
}
