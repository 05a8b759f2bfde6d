package converter

import (
	"dental-lab-backend/internal/delivery/dto"
	"dental-lab-backend/internal/domain/entity"
)

// InvoiceToResponse converts an Invoice entity to InvoiceResponse DTO
func InvoiceToResponse(invoice *entity.Invoice) *dto.InvoiceResponse {
	if invoice == nil {
		return nil
	}

	items := make([]dto.InvoiceItemResponse, len(invoice.Items))
	for i, item := range invoice.Items {
		items[i] = dto.InvoiceItemResponse{
			ID:          item.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal,
		}
	}

	return &dto.InvoiceResponse{
		ID:            invoice.ID,
		InvoiceNumber: invoice.InvoiceNumber,
		CaseID:        invoice.CaseID,
		DentistID:     invoice.DentistID,
		Amount:        invoice.Amount,
		Tax:           invoice.Tax,
		Total:         invoice.Total,
		Status:        string(invoice.Status),
		Description:   invoice.Description,
		Notes:         invoice.Notes,
		DueDate:       invoice.DueDate,
		PaidDate:      invoice.PaidDate,
		Items:         items,
		Payments:      PaymentsToResponses(invoice.Payments),
		CreatedAt:     invoice.CreatedAt,
		UpdatedAt:     invoice.UpdatedAt,
	}
}

// InvoicesToResponses converts a slice of Invoice entities to response DTOs
func InvoicesToResponses(invoices []entity.Invoice) []dto.InvoiceResponse {
	responses := make([]dto.InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = *InvoiceToResponse(&invoices[i])
	}
	return responses
}

func PaymentToResponse(payment *entity.Payment) *dto.PaymentResponse {
	if payment == nil {
		return nil
	}

	return &dto.PaymentResponse{
		ID:        payment.ID,
		InvoiceID: payment.InvoiceID,
		Amount:    payment.Amount,
		Method:    string(payment.Method),
		Reference: payment.Reference,
		Notes:     payment.Notes,
		CreatedAt: payment.CreatedAt,
	}
}

func PaymentsToResponses(payments []entity.Payment) []dto.PaymentResponse {
	responses := make([]dto.PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = *PaymentToResponse(&payments[i])
	}
	return responses
}
