package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateInvoiceItemRequest struct {
	Description string          `json:"description" validate:"required,max=255"`
	Quantity    int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice   decimal.Decimal `json:"unit_price" validate:"required"`
}

type CreateInvoiceRequest struct {
	CaseID      uuid.UUID                  `json:"case_id" validate:"required"`
	Tax         decimal.Decimal            `json:"tax"`
	Description string                     `json:"description"`
	Notes       string                     `json:"notes"`
	DueDate     *time.Time                 `json:"due_date"`
	Items       []CreateInvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateInvoiceRequest never touches amount/tax/total; totals are fixed at
// creation.
type UpdateInvoiceRequest struct {
	Status      *string    `json:"status" validate:"omitempty,oneof=DRAFT ISSUED SENT PAID OVERDUE CANCELLED"`
	Description *string    `json:"description"`
	Notes       *string    `json:"notes"`
	DueDate     *time.Time `json:"due_date"`
}

type CreatePaymentRequest struct {
	Amount    decimal.Decimal `json:"amount" validate:"required"`
	Method    string          `json:"method" validate:"required,oneof=CASH CARD BANK_TRANSFER CHECK"`
	Reference string          `json:"reference"`
	Notes     string          `json:"notes"`
}

type InvoiceItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

type InvoiceResponse struct {
	ID            uuid.UUID             `json:"id"`
	InvoiceNumber string                `json:"invoice_number"`
	CaseID        uuid.UUID             `json:"case_id"`
	DentistID     uuid.UUID             `json:"dentist_id"`
	Amount        decimal.Decimal       `json:"amount"`
	Tax           decimal.Decimal       `json:"tax"`
	Total         decimal.Decimal       `json:"total"`
	Status        string                `json:"status"`
	Description   string                `json:"description,omitempty"`
	Notes         string                `json:"notes,omitempty"`
	DueDate       *time.Time            `json:"due_date,omitempty"`
	PaidDate      *time.Time            `json:"paid_date,omitempty"`
	Items         []InvoiceItemResponse `json:"items,omitempty"`
	Payments      []PaymentResponse     `json:"payments,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

type PaymentResponse struct {
	ID        uuid.UUID       `json:"id"`
	InvoiceID uuid.UUID       `json:"invoice_id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Reference string          `json:"reference,omitempty"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
