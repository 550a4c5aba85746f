package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/freshveld/fulfillment-api/internal/domain/entity"
	"github.com/freshveld/fulfillment-api/internal/domain/enum"
	infraRepo "github.com/freshveld/fulfillment-api/internal/infrastructure/repository"
	"github.com/freshveld/fulfillment-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newLedgerService(db *gorm.DB) *LedgerService {
	return NewLedgerService(
		infraRepo.NewInvoiceRepository(db),
		infraRepo.NewPaymentRepository(db),
		infraRepo.NewCreditRepository(db),
		infraRepo.NewOrderRepository(db),
		infraRepo.NewCustomerRepository(db),
	)
}

func assertAppErrorCode(t *testing.T, err error, code int) {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}

func TestCreateInvoice_TotalsFromOrderLines(t *testing.T) {
	db := setupTestDB(t)
	svc := newLedgerService(db)

	customer := createCustomer(t, db, "Lakeside Deli", "N1")
	apples := createProduct(t, db, "Apples", "kg", 2000)
	milk := createProduct(t, db, "Milk", "litre", 1800)
	order := createOrder(t, db, customer, time.Now(), orderLine{apples, 3}, orderLine{milk, 2})

	due := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	invoice, err := svc.CreateInvoice(context.Background(), &CreateInvoiceInput{OrderID: order.ID, DueDate: due})
	require.NoError(t, err)

	assert.Equal(t, int64(9600), invoice.Total)
	assert.Equal(t, customer.ID, invoice.CustomerID)
	assert.True(t, due.Equal(invoice.DueDate))
	assert.NotEmpty(t, invoice.InvoiceNo)
}

func TestCreateInvoice_DefaultDueDate(t *testing.T) {
	db := setupTestDB(t)
	svc := newLedgerService(db)

	customer := createCustomer(t, db, "Lakeside Deli", "N1")
	apples := createProduct(t, db, "Apples", "kg", 2000)
	order := createOrder(t, db, customer, time.Now(), orderLine{apples, 1})

	invoice, err := svc.CreateInvoice(context.Background(), &CreateInvoiceInput{OrderID: order.ID})
	require.NoError(t, err)

	expected := time.Now().AddDate(0, 0, 14)
	assert.WithinDuration(t, expected, invoice.DueDate, time.Minute)
}

func TestCreateInvoice_OrderInvoicedAtMostOnce(t *testing.T) {
	db := setupTestDB(t)
	svc := newLedgerService(db)

	customer := createCustomer(t, db, "Lakeside Deli", "N1")
	apples := createProduct(t, db, "Apples", "kg", 2000)
	order := createOrder(t, db, customer, time.Now(), orderLine{apples, 1})

	_, err := svc.CreateInvoice(context.Background(), &CreateInvoiceInput{OrderID: order.ID})
	require.NoError(t, err)

	_, err = svc.CreateInvoice(context.Background(), &CreateInvoiceInput{OrderID: order.ID})
	assertAppErrorCode(t, err, http.StatusConflict)

	_, err = svc.CreateInvoice(context.Background(), &CreateInvoiceInput{OrderID: uuid.New()})
	assertAppErrorCode(t, err, http.StatusNotFound)
}

func TestRecordPayment(t *testing.T) {
	db := setupTestDB(t)
	svc := newLedgerService(db)

	customer := createCustomer(t, db, "Lakeside Deli", "N1")
	apples := createProduct(t, db, "Apples", "kg", 2000)
	order := createOrder(t, db, customer, time.Now(), orderLine{apples, 5})
	invoice := createInvoice(t, db, customer, order, 10000, time.Now().AddDate(0, 0, 7))

	payment, err := svc.RecordPayment(context.Background(), &RecordPaymentInput{
		InvoiceID:   invoice.ID,
		CustomerID:  customer.ID,
		Amount:      60.00,
		Method:      enum.PaymentMethodYoco,
		PaymentDate: time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(6000), payment.Amount)

	view, err := svc.GetInvoice(context.Background(), invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(6000), view.Paid)
	assert.Equal(t, int64(4000), view.AmountDue)
	assert.Equal(t, enum.InvoiceStatusPartial, view.Status)
}

func TestRecordPayment_MultiplePaymentsSettleInvoice(t *testing.T) {
	db := setupTestDB(t)
	svc := newLedgerService(db)

	customer := createCustomer(t, db, "Two Rivers Cafe", "N2")
	milk := createProduct(t, db, "Milk", "litre", 1800)
	order := createOrder(t, db, customer, time.Now(), orderLine{milk, 10})
	invoice := createInvoice(t, db, customer, order, 10000, time.Now().AddDate(0, 0, 7))

	for _, amount := range []float64{60, 50} {
		_, err := svc.RecordPayment(context.Background(), &RecordPaymentInput{
			InvoiceID:   invoice.ID,
			CustomerID:  customer.ID,
			Amount:      amount,
			Method:      enum.PaymentMethodCash,
			PaymentDate: time.Now(),
		})
		require.NoError(t, err)
	}

	// Overpayment is recorded, not rejected; the negative amount due surfaces
	view, err := svc.GetInvoice(context.Background(), invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(11000), view.Paid)
	assert.Equal(t, int64(-1000), view.AmountDue)
	assert.Equal(t, enum.InvoiceStatusPaid, view.Status)
}

func TestRecordPayment_Validation(t *testing.T) {
	db := setupTestDB(t)
	svc := newLedgerService(db)

	customer := createCustomer(t, db, "Validation Stop", "N1")
	other := createCustomer(t, db, "Somebody Else", "N2")
	apples := createProduct(t, db, "Apples", "kg", 2000)
	order := createOrder(t, db, customer, time.Now(), orderLine{apples, 1})
	invoice := createInvoice(t, db, customer, order, 2000, time.Now().AddDate(0, 0, 7))

	_, err := svc.RecordPayment(context.Background(), &RecordPaymentInput{
		InvoiceID: invoice.ID, CustomerID: customer.ID, Amount: 0, PaymentDate: time.Now(),
	})
	assertAppErrorCode(t, err, http.StatusUnprocessableEntity)

	_, err = svc.RecordPayment(context.Background(), &RecordPaymentInput{
		InvoiceID: invoice.ID, CustomerID: customer.ID, Amount: -5, PaymentDate: time.Now(),
	})
	assertAppErrorCode(t, err, http.StatusUnprocessableEntity)

	_, err = svc.RecordPayment(context.Background(), &RecordPaymentInput{
		InvoiceID: uuid.New(), CustomerID: customer.ID, Amount: 10, PaymentDate: time.Now(),
	})
	assertAppErrorCode(t, err, http.StatusNotFound)

	_, err = svc.RecordPayment(context.Background(), &RecordPaymentInput{
		InvoiceID: invoice.ID, CustomerID: other.ID, Amount: 10, PaymentDate: time.Now(),
	})
	assertAppErrorCode(t, err, http.StatusConflict)
}

func TestRecordShortDelivery(t *testing.T) {
	db := setupTestDB(t)
	svc := newLedgerService(db)

	customer := createCustomer(t, db, "Shortfall Grocer", "N1")
	apples := createProduct(t, db, "Apples", "kg", 2000)
	order := createOrder(t, db, customer, time.Now(), orderLine{apples, 5})

	credits, err := svc.RecordShortDelivery(context.Background(), &RecordShortDeliveryInput{
		OrderID:    order.ID,
		CustomerID: customer.ID,
		Items:      []ShortDeliveryItem{{ProductID: apples.ID, QuantityShort: 2}},
	})
	require.NoError(t, err)

	require.Len(t, credits, 1)
	assert.Equal(t, 2, credits[0].QuantityShort)
	assert.Equal(t, int64(4000), credits[0].Value)

	balance, err := svc.GetCreditBalance(context.Background(), customer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4000), balance)
}

func TestRecordShortDelivery_ValueUsesSnapshottedPrice(t *testing.T) {
	db := setupTestDB(t)
	svc := newLedgerService(db)

	customer := createCustomer(t, db, "Price Drift Cafe", "N1")
	apples := createProduct(t, db, "Apples", "kg", 2000)
	order := createOrder(t, db, customer, time.Now(), orderLine{apples, 5})

	// Catalog price changes after the order was placed
	require.NoError(t, db.Model(&entity.Product{}).Where("id = ?", apples.ID).Update("price", 9900).Error)

	credits, err := svc.RecordShortDelivery(context.Background(), &RecordShortDeliveryInput{
		OrderID:    order.ID,
		CustomerID: customer.ID,
		Items:      []ShortDeliveryItem{{ProductID: apples.ID, QuantityShort: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2000), credits[0].Value)
}

func TestRecordShortDelivery_Validation(t *testing.T) {
	db := setupTestDB(t)
	svc := newLedgerService(db)

	customer := createCustomer(t, db, "Edge Case Deli", "N1")
	other := createCustomer(t, db, "Other Deli", "N2")
	apples := createProduct(t, db, "Apples", "kg", 2000)
	pears := createProduct(t, db, "Pears", "kg", 2400)
	order := createOrder(t, db, customer, time.Now(), orderLine{apples, 3})

	_, err := svc.RecordShortDelivery(context.Background(), &RecordShortDeliveryInput{
		OrderID: order.ID, CustomerID: customer.ID,
	})
	assertAppErrorCode(t, err, http.StatusUnprocessableEntity)

	_, err = svc.RecordShortDelivery(context.Background(), &RecordShortDeliveryInput{
		OrderID: uuid.New(), CustomerID: customer.ID,
		Items: []ShortDeliveryItem{{ProductID: apples.ID, QuantityShort: 1}},
	})
	assertAppErrorCode(t, err, http.StatusNotFound)

	_, err = svc.RecordShortDelivery(context.Background(), &RecordShortDeliveryInput{
		OrderID: order.ID, CustomerID: other.ID,
		Items: []ShortDeliveryItem{{ProductID: apples.ID, QuantityShort: 1}},
	})
	assertAppErrorCode(t, err, http.StatusConflict)

	_, err = svc.RecordShortDelivery(context.Background(), &RecordShortDeliveryInput{
		OrderID: order.ID, CustomerID: customer.ID,
		Items: []ShortDeliveryItem{{ProductID: pears.ID, QuantityShort: 1}},
	})
	assertAppErrorCode(t, err, http.StatusConflict)

	_, err = svc.RecordShortDelivery(context.Background(), &RecordShortDeliveryInput{
		OrderID: order.ID, CustomerID: customer.ID,
		Items: []ShortDeliveryItem{{ProductID: apples.ID, QuantityShort: 4}},
	})
	assertAppErrorCode(t, err, http.StatusConflict)

	_, err = svc.RecordShortDelivery(context.Background(), &RecordShortDeliveryInput{
		OrderID: order.ID, CustomerID: customer.ID,
		Items: []ShortDeliveryItem{{ProductID: apples.ID, QuantityShort: 0}},
	})
	assertAppErrorCode(t, err, http.StatusUnprocessableEntity)
}

func TestRecordShortDelivery_BadItemPersistsNothing(t *testing.T) {
	db := setupTestDB(t)
	svc := newLedgerService(db)

	customer := createCustomer(t, db, "All Or Nothing", "N1")
	apples := createProduct(t, db, "Apples", "kg", 2000)
	milk := createProduct(t, db, "Milk", "litre", 1800)
	bread := createProduct(t, db, "Rye", "loaf", 4000)
	order := createOrder(t, db, customer, time.Now(),
		orderLine{apples, 5}, orderLine{milk, 2}, orderLine{bread, 1})

	_, err := svc.RecordShortDelivery(context.Background(), &RecordShortDeliveryInput{
		OrderID:    order.ID,
		CustomerID: customer.ID,
		Items: []ShortDeliveryItem{
			{ProductID: apples.ID, QuantityShort: 1},
			{ProductID: milk.ID, QuantityShort: 3}, // exceeds ordered quantity
			{ProductID: bread.ID, QuantityShort: 1},
		},
	})
	assertAppErrorCode(t, err, http.StatusConflict)

	var count int64
	require.NoError(t, db.Model(&entity.Credit{}).Count(&count).Error)
	assert.Zero(t, count, "a rejected report must not leave partial credits")
}

func TestRecordShortDelivery_DuplicateProductLines(t *testing.T) {
	db := setupTestDB(t)
	svc := newLedgerService(db)

	customer := createCustomer(t, db, "Twice Ordered Grocer", "N1")
	apples := createProduct(t, db, "Apples", "kg", 2000)
	order := createOrder(t, db, customer, time.Now(), orderLine{apples, 3})

	// Apples added to the same order again later at a repriced rate
	require.NoError(t, db.Create(&entity.OrderItem{
		OrderID:   order.ID,
		ProductID: apples.ID,
		Quantity:  3,
		Unit:      apples.Unit,
		UnitPrice: 2500,
		CreatedAt: time.Now().Add(time.Second),
	}).Error)

	// 5 short of 6 ordered in total, even though each line only carries 3
	credits, err := svc.RecordShortDelivery(context.Background(), &RecordShortDeliveryInput{
		OrderID:    order.ID,
		CustomerID: customer.ID,
		Items:      []ShortDeliveryItem{{ProductID: apples.ID, QuantityShort: 5}},
	})
	require.NoError(t, err)

	require.Len(t, credits, 2)
	assert.Equal(t, 3, credits[0].QuantityShort)
	assert.Equal(t, int64(6000), credits[0].Value)
	assert.Equal(t, 2, credits[1].QuantityShort)
	assert.Equal(t, int64(5000), credits[1].Value)

	balance, err := svc.GetCreditBalance(context.Background(), customer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(11000), balance)

	_, err = svc.RecordShortDelivery(context.Background(), &RecordShortDeliveryInput{
		OrderID:    order.ID,
		CustomerID: customer.ID,
		Items:      []ShortDeliveryItem{{ProductID: apples.ID, QuantityShort: 7}},
	})
	assertAppErrorCode(t, err, http.StatusConflict)
}

func TestCreateBatch_MidBatchFailureRollsBack(t *testing.T) {
	db := setupTestDB(t)
	repo := infraRepo.NewCreditRepository(db)

	customer := createCustomer(t, db, "Rollback Farm", "N1")
	apples := createProduct(t, db, "Apples", "kg", 2000)
	milk := createProduct(t, db, "Milk", "litre", 1800)
	order := createOrder(t, db, customer, time.Now(), orderLine{apples, 5}, orderLine{milk, 2})

	taken := uuid.New()
	require.NoError(t, db.Create(&entity.Credit{
		ID:            taken,
		CustomerID:    customer.ID,
		OrderID:       order.ID,
		ProductID:     apples.ID,
		QuantityShort: 1,
		Value:         2000,
	}).Error)

	// Second row collides with the pre-existing primary key, so the first
	// row's insert must be rolled back
	err := repo.CreateBatch(context.Background(), []entity.Credit{
		{CustomerID: customer.ID, OrderID: order.ID, ProductID: apples.ID, QuantityShort: 1, Value: 2000},
		{ID: taken, CustomerID: customer.ID, OrderID: order.ID, ProductID: milk.ID, QuantityShort: 2, Value: 3600},
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&entity.Credit{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "only the pre-existing credit row remains")
}

func TestApplyCredit(t *testing.T) {
	db := setupTestDB(t)
	svc := newLedgerService(db)

	customer := createCustomer(t, db, "Credit User", "N1")
	apples := createProduct(t, db, "Apples", "kg", 2000)
	order := createOrder(t, db, customer, time.Now(), orderLine{apples, 5})
	invoice := createInvoice(t, db, customer, order, 10000, time.Now().AddDate(0, 0, 7))

	_, err := svc.RecordShortDelivery(context.Background(), &RecordShortDeliveryInput{
		OrderID:    order.ID,
		CustomerID: customer.ID,
		Items:      []ShortDeliveryItem{{ProductID: apples.ID, QuantityShort: 2}},
	})
	require.NoError(t, err)

	application, err := svc.ApplyCredit(context.Background(), &ApplyCreditInput{
		CustomerID: customer.ID,
		InvoiceID:  invoice.ID,
		Amount:     30.00,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3000), application.Amount)

	balance, err := svc.GetCreditBalance(context.Background(), customer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), balance)

	// Applied credit counts toward the invoice's paid amount
	view, err := svc.GetInvoice(context.Background(), invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), view.Paid)
	assert.Equal(t, enum.InvoiceStatusPartial, view.Status)
}

func TestApplyCredit_CannotExceedBalance(t *testing.T) {
	db := setupTestDB(t)
	svc := newLedgerService(db)

	customer := createCustomer(t, db, "Overdraw Deli", "N1")
	apples := createProduct(t, db, "Apples", "kg", 2000)
	order := createOrder(t, db, customer, time.Now(), orderLine{apples, 5})
	invoice := createInvoice(t, db, customer, order, 10000, time.Now().AddDate(0, 0, 7))

	_, err := svc.RecordShortDelivery(context.Background(), &RecordShortDeliveryInput{
		OrderID:    order.ID,
		CustomerID: customer.ID,
		Items:      []ShortDeliveryItem{{ProductID: apples.ID, QuantityShort: 1}},
	})
	require.NoError(t, err)

	_, err = svc.ApplyCredit(context.Background(), &ApplyCreditInput{
		CustomerID: customer.ID,
		InvoiceID:  invoice.ID,
		Amount:     25.00, // balance is only R20
	})
	assertAppErrorCode(t, err, http.StatusConflict)

	balance, err := svc.GetCreditBalance(context.Background(), customer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), balance, "a rejected application must not change the balance")
}

func TestApplyCredit_InvoiceCustomerMismatch(t *testing.T) {
	db := setupTestDB(t)
	svc := newLedgerService(db)

	customer := createCustomer(t, db, "Rightful Owner", "N1")
	other := createCustomer(t, db, "Wrong Account", "N2")
	apples := createProduct(t, db, "Apples", "kg", 2000)
	order := createOrder(t, db, customer, time.Now(), orderLine{apples, 5})
	invoice := createInvoice(t, db, customer, order, 10000, time.Now().AddDate(0, 0, 7))

	_, err := svc.ApplyCredit(context.Background(), &ApplyCreditInput{
		CustomerID: other.ID,
		InvoiceID:  invoice.ID,
		Amount:     10.00,
	})
	assertAppErrorCode(t, err, http.StatusConflict)
}

func TestGetCreditBalance_CustomerNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := newLedgerService(db)

	_, err := svc.GetCreditBalance(context.Background(), uuid.New())
	assertAppErrorCode(t, err, http.StatusNotFound)
}

func TestGetCreditBalance_NoCredits(t *testing.T) {
	db := setupTestDB(t)
	svc := newLedgerService(db)

	customer := createCustomer(t, db, "Fresh Account", "N1")
	balance, err := svc.GetCreditBalance(context.Background(), customer.ID)
	require.NoError(t, err)
	assert.Zero(t, balance)
}

func TestGetInvoice_UnpaidStatus(t *testing.T) {
	db := setupTestDB(t)
	svc := newLedgerService(db)

	customer := createCustomer(t, db, "Unpaid Deli", "N1")
	apples := createProduct(t, db, "Apples", "kg", 2000)
	order := createOrder(t, db, customer, time.Now(), orderLine{apples, 1})
	invoice := createInvoice(t, db, customer, order, 2000, time.Now().AddDate(0, 0, 7))

	view, err := svc.GetInvoice(context.Background(), invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.InvoiceStatusUnpaid, view.Status)
	assert.Equal(t, int64(2000), view.AmountDue)
}

func TestGetOverdueInvoices(t *testing.T) {
	db := setupTestDB(t)
	svc := newLedgerService(db)

	asOf := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	customer := createCustomer(t, db, "Late Payer", "N1")
	apples := createProduct(t, db, "Apples", "kg", 2000)

	overdueOrder := createOrder(t, db, customer, asOf.AddDate(0, 0, -30), orderLine{apples, 1})
	overdue := createInvoice(t, db, customer, overdueOrder, 2000, asOf.AddDate(0, 0, -10))

	settledOrder := createOrder(t, db, customer, asOf.AddDate(0, 0, -30), orderLine{apples, 1})
	settled := createInvoice(t, db, customer, settledOrder, 2000, asOf.AddDate(0, 0, -10))
	_, err := svc.RecordPayment(context.Background(), &RecordPaymentInput{
		InvoiceID: settled.ID, CustomerID: customer.ID, Amount: 20.00,
		Method: enum.PaymentMethodEFT, PaymentDate: asOf.AddDate(0, 0, -5),
	})
	require.NoError(t, err)

	futureOrder := createOrder(t, db, customer, asOf, orderLine{apples, 1})
	createInvoice(t, db, customer, futureOrder, 2000, asOf.AddDate(0, 0, 7))

	views, err := svc.GetOverdueInvoices(context.Background(), asOf)
	require.NoError(t, err)

	require.Len(t, views, 1)
	assert.Equal(t, overdue.ID, views[0].ID)
	assert.Equal(t, int64(2000), views[0].AmountDue)
}

func TestGetCustomerPayments(t *testing.T) {
	db := setupTestDB(t)
	svc := newLedgerService(db)

	customer := createCustomer(t, db, "History Buff", "N1")
	apples := createProduct(t, db, "Apples", "kg", 2000)
	order := createOrder(t, db, customer, time.Now(), orderLine{apples, 5})
	invoice := createInvoice(t, db, customer, order, 10000, time.Now().AddDate(0, 0, 7))

	for _, amount := range []float64{20, 30} {
		_, err := svc.RecordPayment(context.Background(), &RecordPaymentInput{
			InvoiceID: invoice.ID, CustomerID: customer.ID, Amount: amount,
			Method: enum.PaymentMethodCash, PaymentDate: time.Now(),
		})
		require.NoError(t, err)
	}

	payments, err := svc.GetCustomerPayments(context.Background(), customer.ID)
	require.NoError(t, err)
	assert.Len(t, payments, 2)

	byInvoice, err := svc.GetInvoicePayments(context.Background(), invoice.ID)
	require.NoError(t, err)
	assert.Len(t, byInvoice, 2)
}
