package repository

import (
	"context"
	"errors"
	"time"

	"github.com/freshveld/fulfillment-api/internal/domain/entity"
	domainRepo "github.com/freshveld/fulfillment-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).
		Preload("Customer").
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) GetByOrder(ctx context.Context, orderID uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).First(&invoice, "order_id = ?", orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) FindOverdue(ctx context.Context, asOf time.Time) ([]entity.Invoice, error) {
	var invoices []entity.Invoice
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Where("due_date < ?", asOf).
		Order("due_date ASC").
		Find(&invoices).Error
	return invoices, err
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository. Payment rows are
// append-only; this type intentionally has no update or delete methods.
func NewPaymentRepository(db *gorm.DB) domainRepo.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	var payment entity.Payment
	err := r.db.WithContext(ctx).First(&payment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("payment_date DESC, created_at DESC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("payment_date DESC, created_at DESC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) SumByInvoice(ctx context.Context, invoiceID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.Payment{}).
		Where("invoice_id = ?", invoiceID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

type creditRepository struct {
	db *gorm.DB
}

// NewCreditRepository creates a new credit repository
func NewCreditRepository(db *gorm.DB) domainRepo.CreditRepository {
	return &creditRepository{db: db}
}

// CreateBatch inserts all credits in a single transaction so a failure on
// any row rolls back the whole short-delivery recording.
func (r *creditRepository) CreateBatch(ctx context.Context, credits []entity.Credit) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range credits {
			if err := tx.Create(&credits[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *creditRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Credit, error) {
	var credits []entity.Credit
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&credits).Error
	return credits, err
}

func (r *creditRepository) SumValueByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.Credit{}).
		Where("customer_id = ?", customerID).
		Select("COALESCE(SUM(value), 0)").
		Scan(&total).Error
	return total, err
}

func (r *creditRepository) CreateApplication(ctx context.Context, application *entity.CreditApplication) error {
	return r.db.WithContext(ctx).Create(application).Error
}

func (r *creditRepository) SumAppliedByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.CreditApplication{}).
		Where("customer_id = ?", customerID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

func (r *creditRepository) SumAppliedByInvoice(ctx context.Context, invoiceID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.CreditApplication{}).
		Where("invoice_id = ?", invoiceID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}
