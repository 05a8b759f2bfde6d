package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the billing lifecycle of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "DRAFT"
	InvoiceStatusIssued    InvoiceStatus = "ISSUED"
	InvoiceStatusSent      InvoiceStatus = "SENT"
	InvoiceStatusPaid      InvoiceStatus = "PAID"
	InvoiceStatusOverdue   InvoiceStatus = "OVERDUE"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
)

// Invoice bills one case to one dentist. Total is fixed at creation
// (amount + tax) and never recomputed afterwards; the transition to PAID is a
// one-way ratchet driven by cumulative payments.
type Invoice struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	InvoiceNumber string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"invoice_number"`
	CaseID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"case_id"`
	DentistID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"dentist_id"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Tax           decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"tax"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	Status        InvoiceStatus   `gorm:"type:varchar(20);not null;default:'DRAFT';index" json:"status"`
	Description   string          `gorm:"type:text" json:"description,omitempty"`
	Notes         string          `gorm:"type:text" json:"notes,omitempty"`
	DueDate       *time.Time      `json:"due_date,omitempty"`
	PaidDate      *time.Time      `json:"paid_date,omitempty"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Case     Case           `gorm:"foreignKey:CaseID" json:"case,omitempty"`
	Dentist  DentistProfile `gorm:"foreignKey:DentistID" json:"dentist,omitempty"`
	Items    []InvoiceItem  `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	Payments []Payment      `gorm:"foreignKey:InvoiceID" json:"payments,omitempty"`
}

func (Invoice) TableName() string {
	return "invoices"
}

// IsPaid reports whether the invoice has reached the terminal PAID state.
func (i *Invoice) IsPaid() bool {
	return i.Status == InvoiceStatusPaid
}

// InvoiceItem is one billed line: quantity x unit price.
type InvoiceItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Description string          `gorm:"type:varchar(255);not null" json:"description"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"line_total"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (InvoiceItem) TableName() string {
	return "invoice_items"
}
