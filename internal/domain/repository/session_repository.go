package repository

import (
	"dental-lab-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionRepository interface {
	Create(db *gorm.DB, session *entity.Session) error
	FindByToken(db *gorm.DB, refreshToken string) (*entity.Session, error)
	DeleteByToken(db *gorm.DB, refreshToken string) error
	DeleteAllByUserID(db *gorm.DB, userID uuid.UUID) error
	DeleteExpired(db *gorm.DB) (int64, error)
}
