package entity

import "time"

// Department groups cases and staff. Referenced by FK only; it carries no
// lifecycle of its own.
type Department struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Department) TableName() string {
	return "departments"
}
