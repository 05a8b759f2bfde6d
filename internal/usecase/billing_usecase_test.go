package usecase

import (
	"context"
	"errors"
	"testing"

	"dental-lab-backend/internal/delivery/dto"
	"dental-lab-backend/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

type billingFixture struct {
	usecase  BillingUsecase
	invoices *fakeInvoiceRepo
	payments *fakePaymentRepo
	cases    *fakeCaseRepo
	mock     sqlmock.Sqlmock
}

func newBillingFixture(t *testing.T) *billingFixture {
	db, mock := newTestDB(t)
	invoices := newFakeInvoiceRepo()
	payments := &fakePaymentRepo{}
	cases := newFakeCaseRepo()

	return &billingFixture{
		usecase:  NewBillingUsecase(db, testLogger(), invoices, payments, cases),
		invoices: invoices,
		payments: payments,
		cases:    cases,
		mock:     mock,
	}
}

func (f *billingFixture) seedInvoice(total string, status entity.InvoiceStatus) *entity.Invoice {
	invoice := &entity.Invoice{
		ID:            uuid.New(),
		InvoiceNumber: "INV-202609-TEST",
		CaseID:        uuid.New(),
		DentistID:     uuid.New(),
		Amount:        decimal.RequireFromString(total),
		Total:         decimal.RequireFromString(total),
		Status:        status,
	}
	f.invoices.invoices[invoice.ID] = invoice
	return invoice
}

func TestComputeInvoiceTotals(t *testing.T) {
	items := []dto.CreateInvoiceItemRequest{
		{Description: "Crown", Quantity: 2, UnitPrice: decimal.RequireFromString("150.50")},
		{Description: "Bridge", Quantity: 1, UnitPrice: decimal.RequireFromString("420.00")},
	}
	tax := decimal.RequireFromString("72.10")

	lineTotals, amount, total := ComputeInvoiceTotals(items, tax)

	if !lineTotals[0].Equal(decimal.RequireFromString("301.00")) {
		t.Errorf("line 0 total = %s, want 301.00", lineTotals[0])
	}
	if !lineTotals[1].Equal(decimal.RequireFromString("420.00")) {
		t.Errorf("line 1 total = %s, want 420.00", lineTotals[1])
	}
	if !amount.Equal(decimal.RequireFromString("721.00")) {
		t.Errorf("amount = %s, want 721.00", amount)
	}
	if !total.Equal(decimal.RequireFromString("793.10")) {
		t.Errorf("total = %s, want 793.10", total)
	}
}

func TestCreateInvoice(t *testing.T) {
	f := newBillingFixture(t)

	c := &entity.Case{ID: uuid.New(), DentistID: uuid.New()}
	f.cases.cases[c.ID] = c

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	resp, err := f.usecase.CreateInvoice(context.Background(), &dto.CreateInvoiceRequest{
		CaseID: c.ID,
		Tax:    decimal.RequireFromString("10.00"),
		Items: []dto.CreateInvoiceItemRequest{
			{Description: "Denture", Quantity: 1, UnitPrice: decimal.RequireFromString("90.00")},
		},
	})
	if err != nil {
		t.Fatalf("CreateInvoice returned error: %v", err)
	}
	if resp.Status != string(entity.InvoiceStatusDraft) {
		t.Errorf("status = %s, want DRAFT", resp.Status)
	}
	if !resp.Total.Equal(decimal.RequireFromString("100.00")) {
		t.Errorf("total = %s, want 100.00", resp.Total)
	}
	if resp.DentistID != c.DentistID {
		t.Error("expected dentist taken from the case")
	}
	if resp.InvoiceNumber == "" {
		t.Error("expected a generated invoice number")
	}
}

func TestCreateInvoiceUnknownCase(t *testing.T) {
	f := newBillingFixture(t)
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	_, err := f.usecase.CreateInvoice(context.Background(), &dto.CreateInvoiceRequest{
		CaseID: uuid.New(),
		Items: []dto.CreateInvoiceItemRequest{
			{Description: "Crown", Quantity: 1, UnitPrice: decimal.RequireFromString("100.00")},
		},
	})
	if !errors.Is(err, ErrCaseNotFound) {
		t.Fatalf("expected ErrCaseNotFound, got %v", err)
	}
}

func TestCreateInvoiceCaseRemovedConcurrently(t *testing.T) {
	f := newBillingFixture(t)
	c := &entity.Case{ID: uuid.New(), DentistID: uuid.New()}
	f.cases.cases[c.ID] = c
	f.invoices.createErr = &pgconn.PgError{Code: "23503", ConstraintName: "invoices_case_id_fkey"}

	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	_, err := f.usecase.CreateInvoice(context.Background(), &dto.CreateInvoiceRequest{
		CaseID: c.ID,
		Items: []dto.CreateInvoiceItemRequest{
			{Description: "Crown", Quantity: 1, UnitPrice: decimal.RequireFromString("100.00")},
		},
	})
	if !errors.Is(err, ErrCaseNotFound) {
		t.Fatalf("expected ErrCaseNotFound on foreign key violation, got %v", err)
	}
}

func TestCreatePaymentPartialLeavesStatus(t *testing.T) {
	f := newBillingFixture(t)
	invoice := f.seedInvoice("110.00", entity.InvoiceStatusIssued)

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	_, err := f.usecase.CreatePayment(context.Background(), invoice.ID, &dto.CreatePaymentRequest{
		Amount: decimal.RequireFromString("60.00"),
		Method: "CASH",
	})
	if err != nil {
		t.Fatalf("CreatePayment returned error: %v", err)
	}
	if invoice.Status != entity.InvoiceStatusIssued {
		t.Errorf("status = %s, want ISSUED after partial payment", invoice.Status)
	}
	if invoice.PaidDate != nil {
		t.Error("expected no paid date after partial payment")
	}
	if len(f.invoices.updated) != 0 {
		t.Errorf("expected no invoice update, got %d", len(f.invoices.updated))
	}
}

func TestCreatePaymentRatchetFlipsOnce(t *testing.T) {
	f := newBillingFixture(t)
	invoice := f.seedInvoice("110.00", entity.InvoiceStatusIssued)

	for _, amount := range []string{"60.00", "50.00"} {
		f.mock.ExpectBegin()
		f.mock.ExpectCommit()
		if _, err := f.usecase.CreatePayment(context.Background(), invoice.ID, &dto.CreatePaymentRequest{
			Amount: decimal.RequireFromString(amount),
			Method: "BANK_TRANSFER",
		}); err != nil {
			t.Fatalf("CreatePayment(%s) returned error: %v", amount, err)
		}
	}

	if invoice.Status != entity.InvoiceStatusPaid {
		t.Fatalf("status = %s, want PAID once payments cover the total", invoice.Status)
	}
	if invoice.PaidDate == nil {
		t.Fatal("expected paid date to be stamped")
	}
	if len(f.invoices.updated) != 1 {
		t.Fatalf("expected exactly one PAID flip, got %d updates", len(f.invoices.updated))
	}

	// Overpaying a PAID invoice records the payment but never re-flips.
	firstPaidDate := *invoice.PaidDate
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	if _, err := f.usecase.CreatePayment(context.Background(), invoice.ID, &dto.CreatePaymentRequest{
		Amount: decimal.RequireFromString("25.00"),
		Method: "CASH",
	}); err != nil {
		t.Fatalf("CreatePayment on paid invoice returned error: %v", err)
	}
	if len(f.invoices.updated) != 1 {
		t.Fatalf("expected PAID flip to stay at one update, got %d", len(f.invoices.updated))
	}
	if !invoice.PaidDate.Equal(firstPaidDate) {
		t.Fatal("expected paid date to be untouched by later payments")
	}
	if len(f.payments.payments) != 3 {
		t.Fatalf("expected 3 recorded payments, got %d", len(f.payments.payments))
	}
}

func TestCreatePaymentRejectsNonPositiveAmount(t *testing.T) {
	f := newBillingFixture(t)
	invoice := f.seedInvoice("50.00", entity.InvoiceStatusIssued)

	_, err := f.usecase.CreatePayment(context.Background(), invoice.ID, &dto.CreatePaymentRequest{
		Amount: decimal.Zero,
		Method: "CASH",
	})
	if !errors.Is(err, ErrInvalidPayment) {
		t.Fatalf("expected ErrInvalidPayment, got %v", err)
	}
}

func TestCreatePaymentUnknownInvoice(t *testing.T) {
	f := newBillingFixture(t)
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	_, err := f.usecase.CreatePayment(context.Background(), uuid.New(), &dto.CreatePaymentRequest{
		Amount: decimal.RequireFromString("10.00"),
		Method: "CASH",
	})
	if !errors.Is(err, ErrInvoiceNotFound) {
		t.Fatalf("expected ErrInvoiceNotFound, got %v", err)
	}
}

func TestUpdateInvoiceNeverTouchesTotals(t *testing.T) {
	f := newBillingFixture(t)
	invoice := f.seedInvoice("200.00", entity.InvoiceStatusDraft)

	status := string(entity.InvoiceStatusIssued)
	notes := "net 30"
	resp, err := f.usecase.UpdateInvoice(context.Background(), invoice.ID, &dto.UpdateInvoiceRequest{
		Status: &status,
		Notes:  &notes,
	})
	if err != nil {
		t.Fatalf("UpdateInvoice returned error: %v", err)
	}
	if resp.Status != status {
		t.Errorf("status = %s, want %s", resp.Status, status)
	}
	if !resp.Total.Equal(decimal.RequireFromString("200.00")) {
		t.Errorf("total = %s, want unchanged 200.00", resp.Total)
	}
}
