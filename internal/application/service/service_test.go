package service

import (
	"testing"
	"time"

	"github.com/freshveld/fulfillment-api/internal/domain/entity"
	"github.com/freshveld/fulfillment-api/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entity.User{},
		&entity.Customer{},
		&entity.Product{},
		&entity.Order{},
		&entity.OrderItem{},
		&entity.Invoice{},
		&entity.Payment{},
		&entity.Credit{},
		&entity.CreditApplication{},
	)
	require.NoError(t, err)

	return db
}

func createCustomer(t *testing.T, db *gorm.DB, name, routeKey string) *entity.Customer {
	t.Helper()
	customer := &entity.Customer{
		Name:     name,
		Address:  "12 Long Street, Cape Town",
		RouteKey: routeKey,
	}
	require.NoError(t, db.Create(customer).Error)
	return customer
}

func createProduct(t *testing.T, db *gorm.DB, name, unit string, priceCents int64) *entity.Product {
	t.Helper()
	product := &entity.Product{
		Name:  name,
		Unit:  unit,
		Price: priceCents,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

type orderLine struct {
	product  *entity.Product
	quantity int
}

func createOrder(t *testing.T, db *gorm.DB, customer *entity.Customer, deliveryDate time.Time, lines ...orderLine) *entity.Order {
	t.Helper()
	order := &entity.Order{
		CustomerID:   customer.ID,
		DeliveryDate: deliveryDate,
		Status:       enum.OrderStatusPending,
	}
	require.NoError(t, db.Create(order).Error)

	for _, line := range lines {
		item := &entity.OrderItem{
			OrderID:   order.ID,
			ProductID: line.product.ID,
			Quantity:  line.quantity,
			Unit:      line.product.Unit,
			UnitPrice: line.product.Price,
		}
		require.NoError(t, db.Create(item).Error)
	}
	return order
}

func createInvoice(t *testing.T, db *gorm.DB, customer *entity.Customer, order *entity.Order, totalCents int64, dueDate time.Time) *entity.Invoice {
	t.Helper()
	invoice := &entity.Invoice{
		InvoiceNo:  "INV-" + uuid.NewString()[:8],
		CustomerID: customer.ID,
		OrderID:    order.ID,
		Total:      totalCents,
		DueDate:    dueDate,
	}
	require.NoError(t, db.Create(invoice).Error)
	return invoice
}
