package entity

// Role represents a named permission bundle. A role with assigned users cannot
// be deleted.
type Role struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	// Relationships
	Users       []User       `gorm:"many2many:user_roles" json:"users,omitempty"`
	Permissions []Permission `gorm:"many2many:role_permissions" json:"permissions,omitempty"`
}

func (Role) TableName() string {
	return "roles"
}

// Role name constants
const (
	RoleAdmin   = "ADMIN"
	RoleStaff   = "STAFF"
	RoleDentist = "DENTIST"
	RoleUser    = "USER"
)

// Permission represents a single grantable action, grouped under roles.
type Permission struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	// Relationships
	Roles []Role `gorm:"many2many:role_permissions" json:"roles,omitempty"`
}

func (Permission) TableName() string {
	return "permissions"
}
