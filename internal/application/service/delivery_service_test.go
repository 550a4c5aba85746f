package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/freshveld/fulfillment-api/internal/domain/entity"
	"github.com/freshveld/fulfillment-api/internal/domain/enum"
	infraRepo "github.com/freshveld/fulfillment-api/internal/infrastructure/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newDeliveryService(db *gorm.DB) *DeliveryService {
	return NewDeliveryService(
		infraRepo.NewOrderRepository(db),
		infraRepo.NewUserRepository(db),
		infraRepo.NewCustomerRepository(db),
		infraRepo.NewProductRepository(db),
	)
}

func createDriver(t *testing.T, db *gorm.DB, name string) *entity.User {
	t.Helper()
	driver := &entity.User{
		Name:  name,
		Email: name + "@freshveld.co.za",
		Role:  enum.UserRoleDriver,
	}
	require.NoError(t, db.Create(driver).Error)
	return driver
}

func TestCreateOrder_SnapshotsCatalogPrices(t *testing.T) {
	db := setupTestDB(t)
	svc := newDeliveryService(db)

	customer := createCustomer(t, db, "Phone Order Cafe", "N1")
	apples := createProduct(t, db, "Apples", "kg", 2000)
	milk := createProduct(t, db, "Milk", "litre", 1800)

	order, err := svc.CreateOrder(context.Background(), &CreateOrderInput{
		CustomerID:   customer.ID,
		DeliveryDate: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		Lines: []OrderLineInput{
			{ProductID: apples.ID, Quantity: 3},
			{ProductID: milk.ID, Quantity: 2},
		},
	})
	require.NoError(t, err)

	require.Len(t, order.Items, 2)
	assert.Equal(t, enum.OrderStatusPending, order.Status)
	assert.Equal(t, int64(2000), order.Items[0].UnitPrice)
	assert.Equal(t, "litre", order.Items[1].Unit)

	// Catalog price changes must not touch the stored snapshot
	require.NoError(t, db.Model(&entity.Product{}).Where("id = ?", apples.ID).Update("price", 9900).Error)
	reloaded, err := svc.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), reloaded.ItemForProduct(apples.ID).UnitPrice)
}

func TestCreateOrder_Validation(t *testing.T) {
	db := setupTestDB(t)
	svc := newDeliveryService(db)

	customer := createCustomer(t, db, "Strict Orders", "N1")
	apples := createProduct(t, db, "Apples", "kg", 2000)

	_, err := svc.CreateOrder(context.Background(), &CreateOrderInput{
		CustomerID:   customer.ID,
		DeliveryDate: time.Now(),
	})
	assertAppErrorCode(t, err, http.StatusUnprocessableEntity)

	_, err = svc.CreateOrder(context.Background(), &CreateOrderInput{
		CustomerID:   uuid.New(),
		DeliveryDate: time.Now(),
		Lines:        []OrderLineInput{{ProductID: apples.ID, Quantity: 1}},
	})
	assertAppErrorCode(t, err, http.StatusNotFound)

	_, err = svc.CreateOrder(context.Background(), &CreateOrderInput{
		CustomerID:   customer.ID,
		DeliveryDate: time.Now(),
		Lines:        []OrderLineInput{{ProductID: uuid.New(), Quantity: 1}},
	})
	assertAppErrorCode(t, err, http.StatusNotFound)

	_, err = svc.CreateOrder(context.Background(), &CreateOrderInput{
		CustomerID:   customer.ID,
		DeliveryDate: time.Now(),
		Lines:        []OrderLineInput{{ProductID: apples.ID, Quantity: 0}},
	})
	assertAppErrorCode(t, err, http.StatusUnprocessableEntity)
}

func TestUpdateStatus_LegalTransitions(t *testing.T) {
	db := setupTestDB(t)
	svc := newDeliveryService(db)

	customer := createCustomer(t, db, "Transition Test", "N1")
	apples := createProduct(t, db, "Apples", "kg", 2000)
	order := createOrder(t, db, customer, time.Now(), orderLine{apples, 1})

	updated, err := svc.UpdateStatus(context.Background(), &UpdateStatusInput{
		OrderID: order.ID,
		Status:  enum.OrderStatusOutForDelivery,
	})
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusOutForDelivery, updated.Status)

	proof := "signed-by-receiver.jpg"
	updated, err = svc.UpdateStatus(context.Background(), &UpdateStatusInput{
		OrderID:       order.ID,
		Status:        enum.OrderStatusDelivered,
		DeliveryProof: &proof,
	})
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusDelivered, updated.Status)
	require.NotNil(t, updated.DeliveryProof)
	assert.Equal(t, proof, *updated.DeliveryProof)
}

func TestUpdateStatus_RejectsIllegalTransitions(t *testing.T) {
	db := setupTestDB(t)
	svc := newDeliveryService(db)

	customer := createCustomer(t, db, "No Shortcuts", "N1")
	apples := createProduct(t, db, "Apples", "kg", 2000)
	order := createOrder(t, db, customer, time.Now(), orderLine{apples, 1})

	// Pending cannot jump straight to delivered
	_, err := svc.UpdateStatus(context.Background(), &UpdateStatusInput{
		OrderID: order.ID,
		Status:  enum.OrderStatusDelivered,
	})
	assertAppErrorCode(t, err, http.StatusConflict)

	// Delivered is terminal
	_, err = svc.UpdateStatus(context.Background(), &UpdateStatusInput{
		OrderID: order.ID, Status: enum.OrderStatusOutForDelivery,
	})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(context.Background(), &UpdateStatusInput{
		OrderID: order.ID, Status: enum.OrderStatusDelivered,
	})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(context.Background(), &UpdateStatusInput{
		OrderID: order.ID, Status: enum.OrderStatusPending,
	})
	assertAppErrorCode(t, err, http.StatusConflict)
}

func TestUpdateStatus_OrderNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := newDeliveryService(db)

	_, err := svc.UpdateStatus(context.Background(), &UpdateStatusInput{
		OrderID: uuid.New(),
		Status:  enum.OrderStatusOutForDelivery,
	})
	assertAppErrorCode(t, err, http.StatusNotFound)
}

func TestAssignDriver(t *testing.T) {
	db := setupTestDB(t)
	svc := newDeliveryService(db)

	customer := createCustomer(t, db, "Assignment Cafe", "N1")
	apples := createProduct(t, db, "Apples", "kg", 2000)
	order := createOrder(t, db, customer, time.Now(), orderLine{apples, 1})
	driver := createDriver(t, db, "thabo")

	updated, err := svc.AssignDriver(context.Background(), order.ID, driver.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.DriverID)
	assert.Equal(t, driver.ID, *updated.DriverID)
}

func TestAssignDriver_RejectsNonDriver(t *testing.T) {
	db := setupTestDB(t)
	svc := newDeliveryService(db)

	customer := createCustomer(t, db, "Role Check", "N1")
	apples := createProduct(t, db, "Apples", "kg", 2000)
	order := createOrder(t, db, customer, time.Now(), orderLine{apples, 1})

	admin := &entity.User{Name: "admin", Email: "admin@freshveld.co.za", Role: enum.UserRoleAdmin}
	require.NoError(t, db.Create(admin).Error)

	_, err := svc.AssignDriver(context.Background(), order.ID, admin.ID)
	assertAppErrorCode(t, err, http.StatusUnprocessableEntity)
}

func TestAssignDriver_OnlyWhilePending(t *testing.T) {
	db := setupTestDB(t)
	svc := newDeliveryService(db)

	customer := createCustomer(t, db, "Already Rolling", "N1")
	apples := createProduct(t, db, "Apples", "kg", 2000)
	order := createOrder(t, db, customer, time.Now(), orderLine{apples, 1})
	driver := createDriver(t, db, "sipho")

	_, err := svc.UpdateStatus(context.Background(), &UpdateStatusInput{
		OrderID: order.ID, Status: enum.OrderStatusOutForDelivery,
	})
	require.NoError(t, err)

	_, err = svc.AssignDriver(context.Background(), order.ID, driver.ID)
	assertAppErrorCode(t, err, http.StatusConflict)
}

func TestListOrdersByDate(t *testing.T) {
	db := setupTestDB(t)
	svc := newDeliveryService(db)

	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	customer := createCustomer(t, db, "Daily Round", "N1")
	apples := createProduct(t, db, "Apples", "kg", 2000)

	createOrder(t, db, customer, date.Add(9*time.Hour), orderLine{apples, 1})
	createOrder(t, db, customer, date.Add(14*time.Hour), orderLine{apples, 2})
	createOrder(t, db, customer, date.AddDate(0, 0, 1), orderLine{apples, 3})

	orders, err := svc.ListOrdersByDate(context.Background(), date)
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}
