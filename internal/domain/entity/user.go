package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents the centralized authentication table. Users are never hard
// deleted; deactivation flips IsActive.
type User struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email       string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"type:text" json:"-"`
	FirstName   string     `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName    string     `gorm:"type:varchar(100);not null" json:"last_name"`
	Phone       string     `gorm:"type:varchar(30)" json:"phone,omitempty"`
	IsActive    *bool      `gorm:"not null;default:true;index" json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Roles          []Role          `gorm:"many2many:user_roles" json:"roles,omitempty"`
	DentistProfile *DentistProfile `gorm:"foreignKey:UserID" json:"dentist_profile,omitempty"`
	StaffProfile   *StaffProfile   `gorm:"foreignKey:UserID" json:"staff_profile,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// HasPassword reports whether the account can authenticate with a password.
// Provisioned staff/dentist accounts may carry an empty hash until first login.
func (u *User) HasPassword() bool {
	return u.Password != ""
}

// RoleNames returns the names of all assigned roles.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

// Active reports the IsActive flag, treating a nil pointer as inactive.
func (u *User) Active() bool {
	return u.IsActive != nil && *u.IsActive
}
