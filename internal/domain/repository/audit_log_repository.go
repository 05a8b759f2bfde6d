package repository

import (
	"dental-lab-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type AuditLogRepository interface {
	Create(db *gorm.DB, log *entity.AuditLog) error
	FindRecent(db *gorm.DB, offset, limit int) ([]entity.AuditLog, int64, error)
}
