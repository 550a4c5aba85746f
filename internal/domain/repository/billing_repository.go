package repository

import (
	"context"
	"time"

	"github.com/freshveld/fulfillment-api/internal/domain/entity"
	"github.com/google/uuid"
)

// InvoiceRepository defines the interface for invoice data operations
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	// GetByOrder returns the invoice raised for an order, or (nil, nil)
	GetByOrder(ctx context.Context, orderID uuid.UUID) (*entity.Invoice, error)
	// FindOverdue returns invoices whose due date is before asOf, customer
	// preloaded. Paid-ness is derived by the caller, not filtered here.
	FindOverdue(ctx context.Context, asOf time.Time) ([]entity.Invoice, error)
}

// PaymentRepository defines the interface for payment data operations.
// Payments are append-only: there is deliberately no update or delete.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Payment, error)
	ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]entity.Payment, error)
	// SumByInvoice returns the total paid amount in cents for an invoice
	SumByInvoice(ctx context.Context, invoiceID uuid.UUID) (int64, error)
}

// CreditRepository defines the interface for credit and credit-application
// data operations. CreateBatch must be transactional: either every credit in
// the slice persists or none do.
type CreditRepository interface {
	CreateBatch(ctx context.Context, credits []entity.Credit) error
	// ListByCustomer returns the customer's credits newest first
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Credit, error)
	// SumValueByCustomer returns the total credit value in cents
	SumValueByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error)

	CreateApplication(ctx context.Context, application *entity.CreditApplication) error
	// SumAppliedByCustomer returns the total credit already consumed in cents
	SumAppliedByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error)
	// SumAppliedByInvoice returns the credit applied to one invoice in cents
	SumAppliedByInvoice(ctx context.Context, invoiceID uuid.UUID) (int64, error)
}
