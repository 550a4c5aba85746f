package handler

import (
	"time"

	"github.com/freshveld/fulfillment-api/internal/application/service"
	"github.com/freshveld/fulfillment-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	ledgerService *service.LedgerService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(ledgerService *service.LedgerService) *InvoiceHandler {
	return &InvoiceHandler{ledgerService: ledgerService}
}

// invoiceView shapes the derived invoice state for API responses
func invoiceView(view *service.InvoiceView) gin.H {
	return gin.H{
		"invoice":    view.Invoice,
		"paid":       view.PaidDecimal(),
		"amount_due": view.AmountDueDecimal(),
		"status":     view.Status,
	}
}

// Create handles raising an invoice for a delivered order
func (h *InvoiceHandler) Create(c *gin.Context) {
	if !GetPolicy(c).CanRecordFinancials() {
		response.Forbidden(c, "Only staff may create invoices")
		return
	}

	var req struct {
		OrderID string `json:"order_id" binding:"required,uuid"`
		DueDate string `json:"due_date,omitempty"` // "2006-01-02"
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var dueDate time.Time
	if req.DueDate != "" {
		dueDate, err = time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			response.BadRequest(c, "Invalid due date, expected YYYY-MM-DD")
			return
		}
	}

	invoice, err := h.ledgerService.CreateInvoice(c.Request.Context(), &service.CreateInvoiceInput{
		OrderID: orderID,
		DueDate: dueDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created successfully", invoice)
}

// Get handles retrieving an invoice with its derived payment state
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	view, err := h.ledgerService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	if !GetPolicy(c).CanViewCustomer(view.CustomerID) {
		response.Forbidden(c, "Access denied")
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoiceView(view))
}

// ListOverdue handles listing invoices past due with an outstanding amount
func (h *InvoiceHandler) ListOverdue(c *gin.Context) {
	if !GetPolicy(c).CanRecordFinancials() {
		response.Forbidden(c, "Only staff may view the overdue list")
		return
	}

	asOf := time.Now()
	if raw := c.Query("asOf"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(c, "Invalid asOf date, expected YYYY-MM-DD")
			return
		}
		asOf = parsed
	}

	views, err := h.ledgerService.GetOverdueInvoices(c.Request.Context(), asOf)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]gin.H, 0, len(views))
	for i := range views {
		items = append(items, invoiceView(&views[i]))
	}

	response.OK(c, "Overdue invoices retrieved successfully", items)
}
