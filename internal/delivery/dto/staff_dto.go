package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateStaffRequest struct {
	Email        string           `json:"email" validate:"required,email"`
	Password     string           `json:"password" validate:"omitempty,min=8"`
	FirstName    string           `json:"first_name" validate:"required,max=100"`
	LastName     string           `json:"last_name" validate:"required,max=100"`
	Phone        string           `json:"phone" validate:"omitempty,max=30"`
	EmployeeID   string           `json:"employee_id" validate:"required,max=50"`
	Position     string           `json:"position" validate:"omitempty,max=100"`
	DepartmentID *int             `json:"department_id"`
	Salary       *decimal.Decimal `json:"salary"`
	HireDate     *time.Time       `json:"hire_date"`
}

type UpdateStaffRequest struct {
	Phone        *string          `json:"phone" validate:"omitempty,max=30"`
	Position     *string          `json:"position" validate:"omitempty,max=100"`
	DepartmentID *int             `json:"department_id"`
	Salary       *decimal.Decimal `json:"salary"`
	Status       *string          `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE ON_LEAVE TERMINATED"`
}

type StaffResponse struct {
	UserID       uuid.UUID        `json:"user_id"`
	Email        string           `json:"email"`
	FirstName    string           `json:"first_name"`
	LastName     string           `json:"last_name"`
	Phone        string           `json:"phone,omitempty"`
	EmployeeID   string           `json:"employee_id"`
	Position     string           `json:"position,omitempty"`
	DepartmentID *int             `json:"department_id,omitempty"`
	Salary       *decimal.Decimal `json:"salary,omitempty"`
	HireDate     *time.Time       `json:"hire_date,omitempty"`
	Status       string           `json:"status"`
	CreatedAt    time.Time        `json:"created_at"`
}
