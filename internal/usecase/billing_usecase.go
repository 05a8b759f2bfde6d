package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"dental-lab-backend/internal/converter"
	"dental-lab-backend/internal/delivery/dto"
	"dental-lab-backend/internal/domain/entity"
	"dental-lab-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvoiceNotFound = errors.New("invoice not found")
	ErrInvalidPayment  = errors.New("payment amount must be positive")
)

type BillingUsecase interface {
	CreateInvoice(ctx context.Context, req *dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	GetInvoice(ctx context.Context, invoiceID uuid.UUID) (*dto.InvoiceResponse, error)
	ListInvoices(ctx context.Context, filter entity.InvoiceFilter, offset, limit int) ([]dto.InvoiceResponse, int64, error)
	UpdateInvoice(ctx context.Context, invoiceID uuid.UUID, req *dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error)

	CreatePayment(ctx context.Context, invoiceID uuid.UUID, req *dto.CreatePaymentRequest) (*dto.PaymentResponse, error)
	ListPayments(ctx context.Context, invoiceID uuid.UUID) ([]dto.PaymentResponse, error)
}

type billingUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	invoiceRepo repository.InvoiceRepository
	paymentRepo repository.PaymentRepository
	caseRepo    repository.CaseRepository
}

func NewBillingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	caseRepo repository.CaseRepository,
) BillingUsecase {
	return &billingUsecase{
		db:          db,
		log:         log,
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		caseRepo:    caseRepo,
	}
}

// generateInvoiceNumber builds "INV-YYYYMM-<4 random chars>".
func generateInvoiceNumber() string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	suffix := make([]byte, 4)
	randomBytes := make([]byte, 4)
	rand.Read(randomBytes)
	for i, b := range randomBytes {
		suffix[i] = charset[int(b)%len(charset)]
	}
	return fmt.Sprintf("INV-%s-%s", time.Now().Format("200601"), string(suffix))
}

// ComputeInvoiceTotals derives line totals, the invoice amount and the final
// total (amount + tax). The total is fixed here, at creation, forever.
func ComputeInvoiceTotals(items []dto.CreateInvoiceItemRequest, tax decimal.Decimal) (lineTotals []decimal.Decimal, amount, total decimal.Decimal) {
	lineTotals = make([]decimal.Decimal, len(items))
	amount = decimal.Zero
	for i, item := range items {
		lineTotals[i] = item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		amount = amount.Add(lineTotals[i])
	}
	total = amount.Add(tax)
	return lineTotals, amount, total
}

func (u *billingUsecase) CreateInvoice(ctx context.Context, req *dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	c, err := u.caseRepo.FindByID(tx, req.CaseID)
	if err != nil {
		u.log.Warnf("Failed to find case: %+v", err)
		return nil, err
	}
	if c == nil {
		return nil, ErrCaseNotFound
	}

	lineTotals, amount, total := ComputeInvoiceTotals(req.Items, req.Tax)

	invoice := &entity.Invoice{
		InvoiceNumber: generateInvoiceNumber(),
		CaseID:        req.CaseID,
		DentistID:     c.DentistID,
		Amount:        amount,
		Tax:           req.Tax,
		Total:         total,
		Status:        entity.InvoiceStatusDraft,
		Description:   req.Description,
		Notes:         req.Notes,
		DueDate:       req.DueDate,
	}
	invoice.Items = make([]entity.InvoiceItem, len(req.Items))
	for i, item := range req.Items {
		invoice.Items[i] = entity.InvoiceItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   lineTotals[i],
		}
	}

	// Invoice and items land in one transaction; a failure rolls back both.
	if err := u.invoiceRepo.Create(tx, invoice); err != nil {
		u.log.Warnf("Failed to create invoice: %+v", err)
		// The case may have been removed between the lookup and the insert.
		if isForeignKeyError(err, "case_id") {
			return nil, ErrCaseNotFound
		}
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.InvoiceToResponse(invoice), nil
}

func (u *billingUsecase) GetInvoice(ctx context.Context, invoiceID uuid.UUID) (*dto.InvoiceResponse, error) {
	invoice, err := u.invoiceRepo.FindByID(u.db.WithContext(ctx), invoiceID)
	if err != nil {
		u.log.Warnf("Failed to find invoice: %+v", err)
		return nil, err
	}
	if invoice == nil {
		return nil, ErrInvoiceNotFound
	}
	return converter.InvoiceToResponse(invoice), nil
}

func (u *billingUsecase) ListInvoices(ctx context.Context, filter entity.InvoiceFilter, offset, limit int) ([]dto.InvoiceResponse, int64, error) {
	invoices, total, err := u.invoiceRepo.FindAll(u.db.WithContext(ctx), filter, offset, limit)
	if err != nil {
		u.log.Warnf("Failed to list invoices: %+v", err)
		return nil, 0, err
	}
	return converter.InvoicesToResponses(invoices), total, nil
}

// UpdateInvoice touches status, due date, description and notes only. Amount,
// tax and total are never recomputed after creation.
func (u *billingUsecase) UpdateInvoice(ctx context.Context, invoiceID uuid.UUID, req *dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	db := u.db.WithContext(ctx)

	invoice, err := u.invoiceRepo.FindByID(db, invoiceID)
	if err != nil {
		u.log.Warnf("Failed to find invoice: %+v", err)
		return nil, err
	}
	if invoice == nil {
		return nil, ErrInvoiceNotFound
	}

	if req.Status != nil {
		invoice.Status = entity.InvoiceStatus(*req.Status)
	}
	if req.Description != nil {
		invoice.Description = *req.Description
	}
	if req.Notes != nil {
		invoice.Notes = *req.Notes
	}
	if req.DueDate != nil {
		invoice.DueDate = req.DueDate
	}

	if err := u.invoiceRepo.Update(db, invoice); err != nil {
		u.log.Warnf("Failed to update invoice: %+v", err)
		return nil, err
	}
	return converter.InvoiceToResponse(invoice), nil
}

// CreatePayment appends a payment and reconciles the invoice inside one
// transaction. The invoice row is locked first so two concurrent payments
// serialize: the PAID flip fires exactly once, when cumulative payments reach
// the total, and is never reverted.
func (u *billingUsecase) CreatePayment(ctx context.Context, invoiceID uuid.UUID, req *dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidPayment
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	invoice, err := u.invoiceRepo.FindByIDForUpdate(tx, invoiceID)
	if err != nil {
		u.log.Warnf("Failed to lock invoice: %+v", err)
		return nil, err
	}
	if invoice == nil {
		return nil, ErrInvoiceNotFound
	}

	payment := &entity.Payment{
		InvoiceID: invoiceID,
		Amount:    req.Amount,
		Method:    entity.PaymentMethod(req.Method),
		Reference: req.Reference,
		Notes:     req.Notes,
	}
	if err := u.paymentRepo.Create(tx, payment); err != nil {
		u.log.Warnf("Failed to create payment: %+v", err)
		return nil, err
	}

	paid, err := u.paymentRepo.SumByInvoiceID(tx, invoiceID)
	if err != nil {
		u.log.Warnf("Failed to sum payments: %+v", err)
		return nil, err
	}

	// One-way ratchet: partial payments leave the status alone, and nothing
	// ever moves an invoice out of PAID.
	if !invoice.IsPaid() && paid.GreaterThanOrEqual(invoice.Total) {
		now := time.Now()
		invoice.Status = entity.InvoiceStatusPaid
		invoice.PaidDate = &now
		if err := u.invoiceRepo.Update(tx, invoice); err != nil {
			u.log.Warnf("Failed to mark invoice paid: %+v", err)
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.PaymentToResponse(payment), nil
}

func (u *billingUsecase) ListPayments(ctx context.Context, invoiceID uuid.UUID) ([]dto.PaymentResponse, error) {
	db := u.db.WithContext(ctx)

	invoice, err := u.invoiceRepo.FindByID(db, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, ErrInvoiceNotFound
	}

	payments, err := u.paymentRepo.FindByInvoiceID(db, invoiceID)
	if err != nil {
		u.log.Warnf("Failed to list payments: %+v", err)
		return nil, err
	}
	return converter.PaymentsToResponses(payments), nil
}
