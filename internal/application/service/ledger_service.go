package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/freshveld/fulfillment-api/internal/domain/entity"
	"github.com/freshveld/fulfillment-api/internal/domain/enum"
	"github.com/freshveld/fulfillment-api/internal/domain/repository"
	"github.com/freshveld/fulfillment-api/pkg/apperror"
	"github.com/freshveld/fulfillment-api/pkg/utils"
	"github.com/google/uuid"
)

// LedgerService records payments and short-delivery credits and computes
// customer balances. It is the only component that performs financial writes.
// Balances and invoice statuses are always recomputed from the full row set,
// never cached, so concurrent submissions cannot observe stale totals. The
// service is authorization-agnostic: scoping who may see what is the calling
// layer's job.
type LedgerService struct {
	invoiceRepo  repository.InvoiceRepository
	paymentRepo  repository.PaymentRepository
	creditRepo   repository.CreditRepository
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
}

// NewLedgerService creates a new ledger service
func NewLedgerService(
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	creditRepo repository.CreditRepository,
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
) *LedgerService {
	return &LedgerService{
		invoiceRepo:  invoiceRepo,
		paymentRepo:  paymentRepo,
		creditRepo:   creditRepo,
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
	}
}

// CreateInvoiceInput represents invoicing a delivered order. Due date
// defaults to 14 days after creation when zero.
type CreateInvoiceInput struct {
	OrderID uuid.UUID
	DueDate time.Time
}

// CreateInvoice raises an invoice for an order, totalled from the order's
// snapshotted line prices. An order is invoiced at most once.
func (s *LedgerService) CreateInvoice(ctx context.Context, input *CreateInvoiceInput) (*entity.Invoice, error) {
	order, err := s.orderRepo.GetWithItems(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	existing, err := s.invoiceRepo.GetByOrder(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Order has already been invoiced")
	}

	var total int64
	for _, item := range order.Items {
		total += int64(item.Quantity) * item.UnitPrice
	}

	dueDate := input.DueDate
	if dueDate.IsZero() {
		dueDate = time.Now().AddDate(0, 0, 14)
	}

	invoice := &entity.Invoice{
		InvoiceNo:  utils.GenerateReference("INV"),
		CustomerID: order.CustomerID,
		OrderID:    order.ID,
		Total:      total,
		DueDate:    dueDate,
	}
	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// RecordPaymentInput represents a payment submission
type RecordPaymentInput struct {
	InvoiceID   uuid.UUID
	CustomerID  uuid.UUID
	Amount      float64
	Method      enum.PaymentMethod
	PaymentDate time.Time
	Notes       *string
}

// RecordPayment appends an immutable payment row against an invoice.
// Overpayment is not rejected: cash handling in the field may legitimately
// round up, and the resulting negative amount due is surfaced to callers.
func (s *LedgerService) RecordPayment(ctx context.Context, input *RecordPaymentInput) (*entity.Payment, error) {
	if input.Amount <= 0 {
		return nil, apperror.NewValidationError("Payment amount must be positive")
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, input.InvoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	if invoice.CustomerID != input.CustomerID {
		return nil, apperror.NewConsistencyError("Invoice belongs to a different customer")
	}

	payment := &entity.Payment{
		InvoiceID:   input.InvoiceID,
		CustomerID:  input.CustomerID,
		Amount:      toCents(input.Amount),
		Method:      input.Method,
		PaymentDate: input.PaymentDate,
		Notes:       input.Notes,
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// ShortDeliveryItem is one shorted product line in a short-delivery report
type ShortDeliveryItem struct {
	ProductID     uuid.UUID
	QuantityShort int
}

// RecordShortDeliveryInput represents a short-delivery report for an order
type RecordShortDeliveryInput struct {
	OrderID    uuid.UUID
	CustomerID uuid.UUID
	Items      []ShortDeliveryItem
}

// RecordShortDelivery converts delivered-short quantities into account
// credit. A shortfall is bounded by the total ordered quantity for the
// product, summed across duplicate line rows. One credit row is created per
// consumed order line so individual-item disputes stay traceable, valued at
// that line's snapshotted unit price. All rows persist in one transaction or
// none do.
func (s *LedgerService) RecordShortDelivery(ctx context.Context, input *RecordShortDeliveryInput) ([]entity.Credit, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewValidationError("Short-delivery item list must not be empty")
	}

	order, err := s.orderRepo.GetWithItems(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if order.CustomerID != input.CustomerID {
		return nil, apperror.NewConsistencyError("Order belongs to a different customer")
	}

	credits := make([]entity.Credit, 0, len(input.Items))
	for _, item := range input.Items {
		if item.QuantityShort <= 0 {
			return nil, apperror.NewValidationError("Shortfall quantity must be positive")
		}

		lines := order.ItemsForProduct(item.ProductID)
		if len(lines) == 0 {
			return nil, apperror.NewConsistencyError(fmt.Sprintf("Product %s is not on the order", item.ProductID))
		}
		ordered := 0
		for _, line := range lines {
			ordered += line.Quantity
		}
		if item.QuantityShort > ordered {
			return nil, apperror.NewConsistencyError(fmt.Sprintf(
				"Shortfall of %d exceeds ordered quantity %d for product %s",
				item.QuantityShort, ordered, item.ProductID,
			))
		}

		// Consume line rows in order so each credit is valued at the
		// snapshotted order-time price of the line it draws from, never
		// the catalog
		remaining := item.QuantityShort
		for _, line := range lines {
			if remaining == 0 {
				break
			}
			take := remaining
			if take > line.Quantity {
				take = line.Quantity
			}
			credits = append(credits, entity.Credit{
				CustomerID:    input.CustomerID,
				OrderID:       input.OrderID,
				ProductID:     item.ProductID,
				QuantityShort: take,
				Value:         int64(take) * line.UnitPrice,
			})
			remaining -= take
		}
	}

	if err := s.creditRepo.CreateBatch(ctx, credits); err != nil {
		return nil, err
	}
	return credits, nil
}

// ApplyCreditInput represents consuming credit balance against an invoice
type ApplyCreditInput struct {
	CustomerID uuid.UUID
	InvoiceID  uuid.UUID
	Amount     float64
}

// ApplyCredit consumes part of a customer's credit balance against one of
// their invoices. The balance can never go negative: applying more than the
// current balance fails and persists nothing.
func (s *LedgerService) ApplyCredit(ctx context.Context, input *ApplyCreditInput) (*entity.CreditApplication, error) {
	if input.Amount <= 0 {
		return nil, apperror.NewValidationError("Credit amount must be positive")
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, input.InvoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	if invoice.CustomerID != input.CustomerID {
		return nil, apperror.NewConsistencyError("Invoice belongs to a different customer")
	}

	amountCents := toCents(input.Amount)
	balance, err := s.creditBalanceCents(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if amountCents > balance {
		return nil, apperror.NewConsistencyError("Credit application exceeds available balance")
	}

	application := &entity.CreditApplication{
		CustomerID: input.CustomerID,
		InvoiceID:  input.InvoiceID,
		Amount:     amountCents,
		AppliedAt:  time.Now(),
	}
	if err := s.creditRepo.CreateApplication(ctx, application); err != nil {
		return nil, err
	}
	return application, nil
}

// GetCreditBalance returns the customer's unconsumed credit in cents,
// recomputed from credit and application rows on every call
func (s *LedgerService) GetCreditBalance(ctx context.Context, customerID uuid.UUID) (int64, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return 0, err
	}
	if customer == nil {
		return 0, apperror.NewNotFoundError("Customer")
	}
	return s.creditBalanceCents(ctx, customerID)
}

func (s *LedgerService) creditBalanceCents(ctx context.Context, customerID uuid.UUID) (int64, error) {
	earned, err := s.creditRepo.SumValueByCustomer(ctx, customerID)
	if err != nil {
		return 0, err
	}
	applied, err := s.creditRepo.SumAppliedByCustomer(ctx, customerID)
	if err != nil {
		return 0, err
	}
	return earned - applied, nil
}

// GetCustomerCredits returns the customer's full credit history, newest first
func (s *LedgerService) GetCustomerCredits(ctx context.Context, customerID uuid.UUID) ([]entity.Credit, error) {
	return s.creditRepo.ListByCustomer(ctx, customerID)
}

// GetPayment retrieves a payment by ID
func (s *LedgerService) GetPayment(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NewNotFoundError("Payment")
	}
	return payment, nil
}

// GetCustomerPayments returns all payments made by a customer
func (s *LedgerService) GetCustomerPayments(ctx context.Context, customerID uuid.UUID) ([]entity.Payment, error) {
	return s.paymentRepo.ListByCustomer(ctx, customerID)
}

// GetInvoicePayments returns all payments recorded against an invoice
func (s *LedgerService) GetInvoicePayments(ctx context.Context, invoiceID uuid.UUID) ([]entity.Payment, error) {
	return s.paymentRepo.ListByInvoice(ctx, invoiceID)
}

// InvoiceView is an invoice together with its derived payment state. Paid
// amount and status are computed from payment and credit-application rows at
// read time; AmountDue goes negative on overpayment.
type InvoiceView struct {
	*entity.Invoice
	Paid      int64              `json:"-"`
	AmountDue int64              `json:"-"`
	Status    enum.InvoiceStatus `json:"status"`
}

// PaidDecimal returns the paid amount in currency units
func (v *InvoiceView) PaidDecimal() float64 {
	return float64(v.Paid) / 100
}

// AmountDueDecimal returns the outstanding amount in currency units
func (v *InvoiceView) AmountDueDecimal() float64 {
	return float64(v.AmountDue) / 100
}

// GetInvoice returns an invoice with its derived paid amount and status
func (s *LedgerService) GetInvoice(ctx context.Context, id uuid.UUID) (*InvoiceView, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return s.buildInvoiceView(ctx, invoice)
}

func (s *LedgerService) buildInvoiceView(ctx context.Context, invoice *entity.Invoice) (*InvoiceView, error) {
	payments, err := s.paymentRepo.SumByInvoice(ctx, invoice.ID)
	if err != nil {
		return nil, err
	}
	applied, err := s.creditRepo.SumAppliedByInvoice(ctx, invoice.ID)
	if err != nil {
		return nil, err
	}

	paid := payments + applied
	return &InvoiceView{
		Invoice:   invoice,
		Paid:      paid,
		AmountDue: invoice.Total - paid,
		Status:    enum.DeriveInvoiceStatus(invoice.Total, paid),
	}, nil
}

// GetOverdueInvoices returns invoices past their due date that still carry an
// outstanding amount. Consumed by the reminder job and the admin dashboard.
func (s *LedgerService) GetOverdueInvoices(ctx context.Context, asOf time.Time) ([]InvoiceView, error) {
	invoices, err := s.invoiceRepo.FindOverdue(ctx, asOf)
	if err != nil {
		return nil, err
	}

	views := make([]InvoiceView, 0, len(invoices))
	for i := range invoices {
		view, err := s.buildInvoiceView(ctx, &invoices[i])
		if err != nil {
			return nil, err
		}
		if view.AmountDue > 0 {
			views = append(views, *view)
		}
	}
	return views, nil
}

// toCents converts a currency amount to cents, rounding to the nearest cent
func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
