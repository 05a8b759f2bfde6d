package handler

import (
	"encoding/json"
	"net/http"

	"dental-lab-backend/internal/delivery/dto"
	"dental-lab-backend/internal/delivery/http/middleware"
	"dental-lab-backend/internal/domain/entity"
	"dental-lab-backend/internal/usecase"
	"dental-lab-backend/pkg/pagination"
	"dental-lab-backend/pkg/response"
	"dental-lab-backend/pkg/validator"

	"github.com/google/uuid"
)

type BillingHandler struct {
	billingUsecase usecase.BillingUsecase
	validator      *validator.CustomValidator
}

func NewBillingHandler(billingUsecase usecase.BillingUsecase, validator *validator.CustomValidator) *BillingHandler {
	return &BillingHandler{
		billingUsecase: billingUsecase,
		validator:      validator,
	}
}

func (h *BillingHandler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", response.CodeValidation, nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	invoice, err := h.billingUsecase.CreateInvoice(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrCaseNotFound:
			response.NotFound(w, "Case not found", "CASE_NOT_FOUND")
		default:
			response.InternalServerError(w, "Failed to create invoice")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Invoice created successfully", invoice)
}

func (h *BillingHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	invoiceID, ok := pathUUID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid invoice ID", response.CodeValidation, nil)
		return
	}

	invoice, err := h.billingUsecase.GetInvoice(r.Context(), invoiceID)
	if err != nil {
		switch err {
		case usecase.ErrInvoiceNotFound:
			response.NotFound(w, "Invoice not found", "INVOICE_NOT_FOUND")
		default:
			response.InternalServerError(w, "Failed to get invoice")
		}
		return
	}

	response.Success(w, http.StatusOK, "Invoice retrieved successfully", invoice)
}

func (h *BillingHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	page := pagination.FromRequest(r)

	filter := entity.InvoiceFilter{
		Status: entity.InvoiceStatus(r.URL.Query().Get("status")),
	}
	if dentistID, err := uuid.Parse(r.URL.Query().Get("dentist_id")); err == nil {
		filter.DentistID = dentistID
	}
	if caseID, err := uuid.Parse(r.URL.Query().Get("case_id")); err == nil {
		filter.CaseID = caseID
	}

	// Dentists only ever see their own invoices.
	if userID, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		if !middleware.HasRole(r.Context(), entity.RoleAdmin, entity.RoleStaff) {
			filter.DentistID = userID
		}
	}

	invoices, total, err := h.billingUsecase.ListInvoices(r.Context(), filter, page.Offset(), page.Limit)
	if err != nil {
		response.InternalServerError(w, "Failed to list invoices")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Invoices retrieved successfully", invoices, page.Meta(total))
}

func (h *BillingHandler) UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	invoiceID, ok := pathUUID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid invoice ID", response.CodeValidation, nil)
		return
	}

	var req dto.UpdateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", response.CodeValidation, nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	invoice, err := h.billingUsecase.UpdateInvoice(r.Context(), invoiceID, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvoiceNotFound:
			response.NotFound(w, "Invoice not found", "INVOICE_NOT_FOUND")
		default:
			response.InternalServerError(w, "Failed to update invoice")
		}
		return
	}

	response.Success(w, http.StatusOK, "Invoice updated successfully", invoice)
}

func (h *BillingHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	invoiceID, ok := pathUUID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid invoice ID", response.CodeValidation, nil)
		return
	}

	var req dto.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", response.CodeValidation, nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	payment, err := h.billingUsecase.CreatePayment(r.Context(), invoiceID, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvoiceNotFound:
			response.NotFound(w, "Invoice not found", "INVOICE_NOT_FOUND")
		case usecase.ErrInvalidPayment:
			response.Error(w, http.StatusBadRequest, "Payment amount must be positive", response.CodeValidation, nil)
		default:
			response.InternalServerError(w, "Failed to record payment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Payment recorded successfully", payment)
}

func (h *BillingHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	invoiceID, ok := pathUUID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid invoice ID", response.CodeValidation, nil)
		return
	}

	payments, err := h.billingUsecase.ListPayments(r.Context(), invoiceID)
	if err != nil {
		switch err {
		case usecase.ErrInvoiceNotFound:
			response.NotFound(w, "Invoice not found", "INVOICE_NOT_FOUND")
		default:
			response.InternalServerError(w, "Failed to list payments")
		}
		return
	}

	response.Success(w, http.StatusOK, "Payments retrieved successfully", payments)
}
