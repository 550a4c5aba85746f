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

// PaymentHandler handles payment-related HTTP requests
type PaymentHandler struct {
	ledgerService *service.LedgerService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(ledgerService *service.LedgerService) *PaymentHandler {
	return &PaymentHandler{ledgerService: ledgerService}
}

// Record handles recording a payment against an invoice
func (h *PaymentHandler) Record(c *gin.Context) {
	if !GetPolicy(c).CanRecordFinancials() {
		response.Forbidden(c, "Only staff may record payments")
		return
	}

	var req request.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	invoiceID, err := uuid.Parse(req.InvoiceID)
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	method, ok := enum.ParsePaymentMethod(req.Method)
	if !ok {
		response.BadRequest(c, "Invalid payment method, expected cash, yoco or eft")
		return
	}

	paymentDate := time.Now()
	if req.PaymentDate != "" {
		paymentDate, err = time.Parse("2006-01-02", req.PaymentDate)
		if err != nil {
			response.BadRequest(c, "Invalid payment date, expected YYYY-MM-DD")
			return
		}
	}

	payment, err := h.ledgerService.RecordPayment(c.Request.Context(), &service.RecordPaymentInput{
		InvoiceID:   invoiceID,
		CustomerID:  customerID,
		Amount:      req.Amount,
		Method:      method,
		PaymentDate: paymentDate,
		Notes:       req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment recorded successfully", payment)
}

// Get handles retrieving a single payment
func (h *PaymentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid payment ID")
		return
	}

	payment, err := h.ledgerService.GetPayment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	if !GetPolicy(c).CanViewCustomer(payment.CustomerID) {
		response.Forbidden(c, "Access denied")
		return
	}

	response.OK(c, "Payment retrieved successfully", payment)
}

// ListByCustomer handles listing a customer's payments
func (h *PaymentHandler) ListByCustomer(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("customerId"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	if !GetPolicy(c).CanViewCustomer(customerID) {
		response.Forbidden(c, "Access denied")
		return
	}

	payments, err := h.ledgerService.GetCustomerPayments(c.Request.Context(), customerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payments retrieved successfully", payments)
}

// ListByInvoice handles listing the payments recorded against an invoice
func (h *PaymentHandler) ListByInvoice(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("invoiceId"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.ledgerService.GetInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !GetPolicy(c).CanViewCustomer(invoice.CustomerID) {
		response.Forbidden(c, "Access denied")
		return
	}

	payments, err := h.ledgerService.GetInvoicePayments(c.Request.Context(), invoiceID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payments retrieved successfully", payments)
}
