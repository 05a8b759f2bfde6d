package repository

import (
	"errors"

	"dental-lab-backend/internal/domain/entity"
	domainRepo "dental-lab-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type invoiceRepository struct{}

func NewInvoiceRepository() domainRepo.InvoiceRepository {
	return &invoiceRepository{}
}

func (r *invoiceRepository) Create(db *gorm.DB, invoice *entity.Invoice) error {
	return db.Create(invoice).Error
}

func (r *invoiceRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := db.Preload("Items").
		Preload("Payments").
		Preload("Dentist.User").
		Where("id = ?", id).
		First(&invoice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

// FindByIDForUpdate takes a SELECT ... FOR UPDATE row lock so that concurrent
// payment reconciliation against the same invoice serializes.
func (r *invoiceRepository) FindByIDForUpdate(db *gorm.DB, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&invoice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) FindAll(db *gorm.DB, filter entity.InvoiceFilter, offset, limit int) ([]entity.Invoice, int64, error) {
	query := db.Model(&entity.Invoice{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.DentistID != uuid.Nil {
		query = query.Where("dentist_id = ?", filter.DentistID)
	}
	if filter.CaseID != uuid.Nil {
		query = query.Where("case_id = ?", filter.CaseID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var invoices []entity.Invoice
	err := query.Preload("Items").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&invoices).Error
	if err != nil {
		return nil, 0, err
	}
	return invoices, total, nil
}

func (r *invoiceRepository) Update(db *gorm.DB, invoice *entity.Invoice) error {
	return db.Save(invoice).Error
}

type paymentRepository struct{}

func NewPaymentRepository() domainRepo.PaymentRepository {
	return &paymentRepository{}
}

func (r *paymentRepository) Create(db *gorm.DB, payment *entity.Payment) error {
	return db.Create(payment).Error
}

func (r *paymentRepository) FindByInvoiceID(db *gorm.DB, invoiceID uuid.UUID) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := db.Where("invoice_id = ?", invoiceID).Order("created_at ASC").Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) SumByInvoiceID(db *gorm.DB, invoiceID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := db.Model(&entity.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("invoice_id = ?", invoiceID).
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}
