package handler

import (
	"github.com/freshveld/fulfillment-api/internal/application/service"
	"github.com/freshveld/fulfillment-api/internal/presentation/http/dto/request"
	"github.com/freshveld/fulfillment-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreditHandler handles credit-related HTTP requests
type CreditHandler struct {
	ledgerService *service.LedgerService
}

// NewCreditHandler creates a new credit handler
func NewCreditHandler(ledgerService *service.LedgerService) *CreditHandler {
	return &CreditHandler{ledgerService: ledgerService}
}

// RecordShortDelivery handles converting a short-delivery report into credits
func (h *CreditHandler) RecordShortDelivery(c *gin.Context) {
	if !GetPolicy(c).CanRecordFinancials() {
		response.Forbidden(c, "Only staff may record short deliveries")
		return
	}

	var req request.RecordShortDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	items := make([]service.ShortDeliveryItem, 0, len(req.Items))
	for _, line := range req.Items {
		productID, parseErr := uuid.Parse(line.ProductID)
		if parseErr != nil {
			response.BadRequest(c, "Invalid product ID: "+line.ProductID)
			return
		}
		items = append(items, service.ShortDeliveryItem{
			ProductID:     productID,
			QuantityShort: line.QuantityShort,
		})
	}

	credits, err := h.ledgerService.RecordShortDelivery(c.Request.Context(), &service.RecordShortDeliveryInput{
		OrderID:    orderID,
		CustomerID: customerID,
		Items:      items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Short delivery recorded successfully", credits)
}

// Apply handles consuming credit balance against an invoice
func (h *CreditHandler) Apply(c *gin.Context) {
	if !GetPolicy(c).CanRecordFinancials() {
		response.Forbidden(c, "Only staff may apply credits")
		return
	}

	var req request.ApplyCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}
	invoiceID, err := uuid.Parse(req.InvoiceID)
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	application, err := h.ledgerService.ApplyCredit(c.Request.Context(), &service.ApplyCreditInput{
		CustomerID: customerID,
		InvoiceID:  invoiceID,
		Amount:     req.Amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Credit applied successfully", application)
}

// GetCustomerCredits handles listing a customer's credits and their current
// balance
func (h *CreditHandler) GetCustomerCredits(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("customerId"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	if !GetPolicy(c).CanViewCustomer(customerID) {
		response.Forbidden(c, "Access denied")
		return
	}

	credits, err := h.ledgerService.GetCustomerCredits(c.Request.Context(), customerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	balance, err := h.ledgerService.GetCreditBalance(c.Request.Context(), customerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Credits retrieved successfully", gin.H{
		"credits": credits,
		"balance": float64(balance) / 100,
	})
}
