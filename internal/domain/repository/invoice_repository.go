package repository

import (
	"dental-lab-backend/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InvoiceRepository interface {
	Create(db *gorm.DB, invoice *entity.Invoice) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Invoice, error)
	// FindByIDForUpdate locks the invoice row until the surrounding
	// transaction ends, serializing payment reconciliation per invoice.
	FindByIDForUpdate(db *gorm.DB, id uuid.UUID) (*entity.Invoice, error)
	FindAll(db *gorm.DB, filter entity.InvoiceFilter, offset, limit int) ([]entity.Invoice, int64, error)
	Update(db *gorm.DB, invoice *entity.Invoice) error
}

type PaymentRepository interface {
	Create(db *gorm.DB, payment *entity.Payment) error
	FindByInvoiceID(db *gorm.DB, invoiceID uuid.UUID) ([]entity.Payment, error)
	SumByInvoiceID(db *gorm.DB, invoiceID uuid.UUID) (decimal.Decimal, error)
}
