package converter

import (
	"dental-lab-backend/internal/delivery/dto"
	"dental-lab-backend/internal/domain/entity"

	"github.com/google/uuid"
)

// CaseToResponse converts a Case entity to CaseResponse DTO
func CaseToResponse(c *entity.Case) *dto.CaseResponse {
	if c == nil {
		return nil
	}

	dentistName := ""
	if c.Dentist.User.ID != uuid.Nil {
		dentistName = c.Dentist.User.FirstName + " " + c.Dentist.User.LastName
	}

	return &dto.CaseResponse{
		ID:            c.ID,
		CaseNumber:    c.CaseNumber,
		DentistID:     c.DentistID,
		DentistName:   dentistName,
		AssigneeID:    c.AssigneeID,
		DepartmentID:  c.DepartmentID,
		PatientName:   c.PatientName,
		PatientAge:    c.PatientAge,
		PatientGender: c.PatientGender,
		Description:   c.Description,
		Priority:      string(c.Priority),
		Status:        string(c.Status),
		DueDate:       c.DueDate,
		CompletedDate: c.CompletedDate,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// CasesToResponses converts a slice of Case entities to response DTOs
func CasesToResponses(cases []entity.Case) []dto.CaseResponse {
	responses := make([]dto.CaseResponse, len(cases))
	for i := range cases {
		responses[i] = *CaseToResponse(&cases[i])
	}
	return responses
}

func CaseNoteToResponse(note *entity.CaseNote) *dto.CaseNoteResponse {
	if note == nil {
		return nil
	}

	authorName := ""
	if note.Author.ID != uuid.Nil {
		authorName = note.Author.FirstName + " " + note.Author.LastName
	}

	return &dto.CaseNoteResponse{
		ID:         note.ID,
		CaseID:     note.CaseID,
		AuthorID:   note.AuthorID,
		AuthorName: authorName,
		Content:    note.Content,
		IsInternal: note.IsInternal,
		CreatedAt:  note.CreatedAt,
	}
}

func CaseNotesToResponses(notes []entity.CaseNote) []dto.CaseNoteResponse {
	responses := make([]dto.CaseNoteResponse, len(notes))
	for i := range notes {
		responses[i] = *CaseNoteToResponse(&notes[i])
	}
	return responses
}

func CaseFileToResponse(file *entity.CaseFile) *dto.CaseFileResponse {
	if file == nil {
		return nil
	}

	return &dto.CaseFileResponse{
		ID:          file.ID,
		CaseID:      file.CaseID,
		FileName:    file.FileName,
		URL:         file.URL,
		Size:        file.Size,
		ContentType: file.ContentType,
		CreatedAt:   file.CreatedAt,
	}
}

func CaseFilesToResponses(files []entity.CaseFile) []dto.CaseFileResponse {
	responses := make([]dto.CaseFileResponse, len(files))
	for i := range files {
		responses[i] = *CaseFileToResponse(&files[i])
	}
	return responses
}
