package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod is how a payment was made
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "CASH"
	PaymentMethodCard     PaymentMethod = "CARD"
	PaymentMethodTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCheck    PaymentMethod = "CHECK"
)

// Payment is an append-only record of money applied to an invoice. Payments
// are never updated or deleted; reconciliation sums them against the invoice
// total.
type Payment struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	InvoiceID uuid.UUID       `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Method    PaymentMethod   `gorm:"type:varchar(20);not null" json:"method"`
	Reference string          `gorm:"type:varchar(100)" json:"reference,omitempty"`
	Notes     string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (Payment) TableName() string {
	return "payments"
}
