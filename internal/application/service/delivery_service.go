package service

import (
	"context"
	"fmt"
	"time"

	"github.com/freshveld/fulfillment-api/internal/domain/entity"
	"github.com/freshveld/fulfillment-api/internal/domain/enum"
	"github.com/freshveld/fulfillment-api/internal/domain/repository"
	"github.com/freshveld/fulfillment-api/pkg/apperror"
	"github.com/google/uuid"
)

// DeliveryService manages the order lifecycle on the delivery side: taking
// phone orders, status transitions, driver assignment and proof-of-delivery
// capture
type DeliveryService struct {
	orderRepo    repository.OrderRepository
	userRepo     repository.UserRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
}

// NewDeliveryService creates a new delivery service
func NewDeliveryService(
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
) *DeliveryService {
	return &DeliveryService{
		orderRepo:    orderRepo,
		userRepo:     userRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
	}
}

// OrderLineInput is one product line on a new order
type OrderLineInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CreateOrderInput represents a new order taken over the phone or email
type CreateOrderInput struct {
	CustomerID   uuid.UUID
	DeliveryDate time.Time
	Lines        []OrderLineInput
}

// CreateOrder records a new order. Each line snapshots the current catalog
// price so later price changes never drift the order's invoice or credits.
func (s *DeliveryService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.Order, error) {
	if len(input.Lines) == 0 {
		return nil, apperror.NewValidationError("Order must have at least one line")
	}

	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	items := make([]entity.OrderItem, 0, len(input.Lines))
	for _, line := range input.Lines {
		if line.Quantity <= 0 {
			return nil, apperror.NewValidationError("Line quantity must be positive")
		}
		product, err := s.productRepo.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", line.ProductID))
		}
		items = append(items, entity.OrderItem{
			ProductID: product.ID,
			Quantity:  line.Quantity,
			Unit:      product.Unit,
			UnitPrice: product.Price,
		})
	}

	order := &entity.Order{
		CustomerID:   input.CustomerID,
		DeliveryDate: input.DeliveryDate,
		Status:       enum.OrderStatusPending,
		Items:        items,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// GetOrder retrieves an order with its line items
func (s *DeliveryService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrdersByDate returns all orders scheduled for delivery on the given
// calendar day
func (s *DeliveryService) ListOrdersByDate(ctx context.Context, date time.Time) ([]entity.Order, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	return s.orderRepo.FindByDeliveryDate(ctx, dayStart, dayEnd)
}

// UpdateStatusInput represents an order status change
type UpdateStatusInput struct {
	OrderID       uuid.UUID
	Status        enum.OrderStatus
	DriverNotes   *string
	DeliveryProof *string
}

// UpdateStatus moves an order through its delivery lifecycle. Only forward
// transitions are allowed; delivered and failed orders are final.
func (s *DeliveryService) UpdateStatus(ctx context.Context, input *UpdateStatusInput) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	if !order.Status.CanTransitionTo(input.Status) {
		return nil, apperror.NewConsistencyError(
			"Cannot transition order from " + order.Status.String() + " to " + input.Status.String(),
		)
	}

	order.Status = input.Status
	if input.DriverNotes != nil {
		order.DriverNotes = input.DriverNotes
	}
	if input.DeliveryProof != nil {
		order.DeliveryProof = input.DeliveryProof
	}

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// AssignDriver assigns a driver to an order. The driver must exist and hold
// the driver role, and the order must not already be on the road.
func (s *DeliveryService) AssignDriver(ctx context.Context, orderID, driverID uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if order.Status != enum.OrderStatusPending {
		return nil, apperror.NewConsistencyError("Driver can only be assigned while the order is pending")
	}

	driver, err := s.userRepo.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, apperror.NewNotFoundError("Driver")
	}
	if driver.Role != enum.UserRoleDriver {
		return nil, apperror.NewValidationError("Assigned user is not a driver")
	}

	order.DriverID = &driverID
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}
