package converter

import (
	"dental-lab-backend/internal/delivery/dto"
	"dental-lab-backend/internal/domain/entity"
)

// DentistToResponse converts a DentistProfile entity to DentistResponse DTO
func DentistToResponse(profile *entity.DentistProfile) *dto.DentistResponse {
	if profile == nil {
		return nil
	}

	return &dto.DentistResponse{
		UserID:           profile.UserID,
		Email:            profile.User.Email,
		FirstName:        profile.User.FirstName,
		LastName:         profile.User.LastName,
		Phone:            profile.User.Phone,
		LicenseNumber:    profile.LicenseNumber,
		ClinicName:       profile.ClinicName,
		ClinicAddress:    profile.ClinicAddress,
		Specialization:   profile.Specialization,
		Status:           string(profile.Status),
		VerificationDate: profile.VerificationDate,
		CreatedAt:        profile.CreatedAt,
	}
}

// DentistsToResponses converts a slice of DentistProfile entities to response DTOs
func DentistsToResponses(profiles []entity.DentistProfile) []dto.DentistResponse {
	responses := make([]dto.DentistResponse, len(profiles))
	for i := range profiles {
		responses[i] = *DentistToResponse(&profiles[i])
	}
	return responses
}

func ApplicationToResponse(application *entity.DentistApplication) *dto.ApplicationResponse {
	if application == nil {
		return nil
	}

	return &dto.ApplicationResponse{
		ID:           application.ID,
		DentistID:    application.DentistID,
		Status:       string(application.Status),
		Message:      application.Message,
		ReviewNotes:  application.ReviewNotes,
		ReviewedByID: application.ReviewedByID,
		ReviewedDate: application.ReviewedDate,
		CreatedAt:    application.CreatedAt,
	}
}

func ApplicationsToResponses(applications []entity.DentistApplication) []dto.ApplicationResponse {
	responses := make([]dto.ApplicationResponse, len(applications))
	for i := range applications {
		responses[i] = *ApplicationToResponse(&applications[i])
	}
	return responses
}
