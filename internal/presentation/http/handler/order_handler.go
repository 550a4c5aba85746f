package handler

import (
	"time"

	"github.com/freshveld/fulfillment-api/internal/application/service"
	"github.com/freshveld/fulfillment-api/internal/domain/enum"
	"github.com/freshveld/fulfillment-api/internal/presentation/http/dto/request"
	"github.com/freshveld/fulfillment-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrderHandler handles order-related HTTP requests on the delivery side
type OrderHandler struct {
	deliveryService *service.DeliveryService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(deliveryService *service.DeliveryService) *OrderHandler {
	return &OrderHandler{deliveryService: deliveryService}
}

// Create handles taking a new order for a customer
func (h *OrderHandler) Create(c *gin.Context) {
	if GetPolicy(c).Role != enum.UserRoleAdmin {
		response.Forbidden(c, "Only admins may create orders")
		return
	}

	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}
	deliveryDate, err := time.Parse("2006-01-02", req.DeliveryDate)
	if err != nil {
		response.BadRequest(c, "Invalid delivery date, expected YYYY-MM-DD")
		return
	}

	lines := make([]service.OrderLineInput, 0, len(req.Lines))
	for _, line := range req.Lines {
		productID, parseErr := uuid.Parse(line.ProductID)
		if parseErr != nil {
			response.BadRequest(c, "Invalid product ID: "+line.ProductID)
			return
		}
		lines = append(lines, service.OrderLineInput{
			ProductID: productID,
			Quantity:  line.Quantity,
		})
	}

	order, err := h.deliveryService.CreateOrder(c.Request.Context(), &service.CreateOrderInput{
		CustomerID:   customerID,
		DeliveryDate: deliveryDate,
		Lines:        lines,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order created successfully", order)
}

// Get handles retrieving an order with its line items
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.deliveryService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	policy := GetPolicy(c)
	if !policy.CanManageDeliveries() && !policy.CanViewCustomer(order.CustomerID) {
		response.Forbidden(c, "Access denied")
		return
	}

	response.OK(c, "Order retrieved successfully", order)
}

// ListByDate handles listing the orders scheduled for a delivery date
func (h *OrderHandler) ListByDate(c *gin.Context) {
	if !GetPolicy(c).CanManageDeliveries() {
		response.Forbidden(c, "Access denied")
		return
	}

	date, err := time.Parse("2006-01-02", c.Param("date"))
	if err != nil {
		response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	orders, err := h.deliveryService.ListOrdersByDate(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Orders retrieved successfully", orders)
}

// UpdateStatus handles moving an order through its delivery lifecycle
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	if !GetPolicy(c).CanManageDeliveries() {
		response.Forbidden(c, "Access denied")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	status, ok := enum.ParseOrderStatus(req.Status)
	if !ok {
		response.BadRequest(c, "Invalid status")
		return
	}

	order, err := h.deliveryService.UpdateStatus(c.Request.Context(), &service.UpdateStatusInput{
		OrderID:       id,
		Status:        status,
		DriverNotes:   req.DriverNotes,
		DeliveryProof: req.DeliveryProof,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order status updated successfully", order)
}

// AssignDriver handles assigning a driver to a pending order
func (h *OrderHandler) AssignDriver(c *gin.Context) {
	if GetPolicy(c).Role != enum.UserRoleAdmin {
		response.Forbidden(c, "Only admins may assign drivers")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.AssignDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	driverID, err := uuid.Parse(req.DriverID)
	if err != nil {
		response.BadRequest(c, "Invalid driver ID")
		return
	}

	order, err := h.deliveryService.AssignDriver(c.Request.Context(), id, driverID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Driver assigned successfully", order)
}
