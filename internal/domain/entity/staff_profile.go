package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StaffStatus represents the employment state of a staff member
type StaffStatus string

const (
	StaffStatusActive     StaffStatus = "ACTIVE"
	StaffStatusInactive   StaffStatus = "INACTIVE"
	StaffStatusOnLeave    StaffStatus = "ON_LEAVE"
	StaffStatusTerminated StaffStatus = "TERMINATED"
)

// StaffProfile is the 1:1 extension of a User for lab employees.
type StaffProfile struct {
	UserID       uuid.UUID        `gorm:"type:uuid;primaryKey" json:"user_id"`
	EmployeeID   string           `gorm:"type:varchar(50);uniqueIndex;not null" json:"employee_id"`
	Position     string           `gorm:"type:varchar(100)" json:"position,omitempty"`
	DepartmentID *int             `gorm:"index" json:"department_id,omitempty"`
	Salary       *decimal.Decimal `gorm:"type:decimal(12,2)" json:"salary,omitempty"`
	HireDate     *time.Time       `json:"hire_date,omitempty"`
	Status       StaffStatus      `gorm:"type:varchar(15);not null;default:'ACTIVE';index" json:"status"`
	CreatedAt    time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time        `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User       User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Department *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
}

func (StaffProfile) TableName() string {
	return "staff_profiles"
}
