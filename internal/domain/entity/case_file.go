package entity

import (
	"time"

	"github.com/google/uuid"
)

// CaseFile is an attachment stored in the external object store under
// cases/{caseID}/. The row keeps the storage path so deletes can be mirrored.
type CaseFile struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CaseID       uuid.UUID `gorm:"type:uuid;not null;index" json:"case_id"`
	FileName     string    `gorm:"type:varchar(255);not null" json:"file_name"`
	StoragePath  string    `gorm:"type:varchar(500);not null" json:"storage_path"`
	URL          string    `gorm:"type:varchar(500)" json:"url,omitempty"`
	Size         int64     `json:"size"`
	ContentType  string    `gorm:"type:varchar(100)" json:"content_type,omitempty"`
	UploadedByID uuid.UUID `gorm:"type:uuid;not null" json:"uploaded_by_id"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	UploadedBy User `gorm:"foreignKey:UploadedByID" json:"uploaded_by,omitempty"`
}

func (CaseFile) TableName() string {
	return "case_files"
}
