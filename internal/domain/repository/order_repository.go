package repository

import (
	"context"
	"time"

	"github.com/freshveld/fulfillment-api/internal/domain/entity"
	"github.com/google/uuid"
)

// OrderRepository defines the interface for order data operations. Lookups
// return (nil, nil) when the order does not exist, so absence is a signal
// for the caller rather than an error.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	// GetByID returns the order without its line items
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	// GetWithItems returns the order with its customer and line items
	// (product preloaded), or (nil, nil) when absent
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	// GetManyWithItems returns the found subset of the given ids, items and
	// customers preloaded; missing ids are simply not in the result
	GetManyWithItems(ctx context.Context, ids []uuid.UUID) ([]entity.Order, error)
	// FindByDeliveryDate returns all orders whose delivery date falls in
	// [dayStart, dayEnd), items and customers preloaded
	FindByDeliveryDate(ctx context.Context, dayStart, dayEnd time.Time) ([]entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
}
