package converter

import (
	"dental-lab-backend/internal/delivery/dto"
	"dental-lab-backend/internal/domain/entity"
)

// StaffToResponse converts a StaffProfile entity to StaffResponse DTO
func StaffToResponse(profile *entity.StaffProfile) *dto.StaffResponse {
	if profile == nil {
		return nil
	}

	return &dto.StaffResponse{
		UserID:       profile.UserID,
		Email:        profile.User.Email,
		FirstName:    profile.User.FirstName,
		LastName:     profile.User.LastName,
		Phone:        profile.User.Phone,
		EmployeeID:   profile.EmployeeID,
		Position:     profile.Position,
		DepartmentID: profile.DepartmentID,
		Salary:       profile.Salary,
		HireDate:     profile.HireDate,
		Status:       string(profile.Status),
		CreatedAt:    profile.CreatedAt,
	}
}

// StaffsToResponses converts a slice of StaffProfile entities to response DTOs
func StaffsToResponses(profiles []entity.StaffProfile) []dto.StaffResponse {
	responses := make([]dto.StaffResponse, len(profiles))
	for i := range profiles {
		responses[i] = *StaffToResponse(&profiles[i])
	}
	return responses
}
