package repository

import (
	"errors"
	"time"

	"dental-lab-backend/internal/domain/entity"
	domainRepo "dental-lab-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type sessionRepository struct{}

func NewSessionRepository() domainRepo.SessionRepository {
	return &sessionRepository{}
}

func (r *sessionRepository) Create(db *gorm.DB, session *entity.Session) error {
	return db.Create(session).Error
}

func (r *sessionRepository) FindByToken(db *gorm.DB, refreshToken string) (*entity.Session, error) {
	var session entity.Session
	err := db.Where("refresh_token = ?", refreshToken).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) DeleteByToken(db *gorm.DB, refreshToken string) error {
	return db.Where("refresh_token = ?", refreshToken).Delete(&entity.Session{}).Error
}

// DeleteAllByUserID implements global logout: every refresh token for the user
// dies in one statement.
func (r *sessionRepository) DeleteAllByUserID(db *gorm.DB, userID uuid.UUID) error {
	return db.Where("user_id = ?", userID).Delete(&entity.Session{}).Error
}

func (r *sessionRepository) DeleteExpired(db *gorm.DB) (int64, error) {
	result := db.Where("expires_at < ?", time.Now()).Delete(&entity.Session{})
	return result.RowsAffected, result.Error
}
