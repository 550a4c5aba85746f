package handler

import (
	"fmt"
	"time"

	"github.com/freshveld/fulfillment-api/internal/application/service"
	"github.com/freshveld/fulfillment-api/internal/domain/entity"
	"github.com/freshveld/fulfillment-api/internal/domain/enum"
	"github.com/freshveld/fulfillment-api/internal/presentation/http/dto/request"
	"github.com/freshveld/fulfillment-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PackingHandler handles packing-list HTTP requests
type PackingHandler struct {
	packingService *service.PackingService
}

// NewPackingHandler creates a new packing handler
func NewPackingHandler(packingService *service.PackingService) *PackingHandler {
	return &PackingHandler{packingService: packingService}
}

// GetSheet handles building the pick sheet for one order
func (h *PackingHandler) GetSheet(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	sheet, err := h.packingService.BuildSheet(c.Request.Context(), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Packing sheet built successfully", sheet)
}

// GetBatch handles building the packing batch for a delivery date
func (h *PackingHandler) GetBatch(c *gin.Context) {
	date, err := time.Parse("2006-01-02", c.Param("date"))
	if err != nil {
		response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	sortBy := enum.BatchSort(c.DefaultQuery("sortBy", string(enum.BatchSortName)))

	batch, err := h.packingService.BuildBatch(c.Request.Context(), date, sortBy)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Packing batch built successfully", batch)
}

// RenderPDF handles rendering packing sheets to a printable PDF. The payload
// names either a delivery date or an explicit order list.
func (h *PackingHandler) RenderPDF(c *gin.Context) {
	var req request.RenderPDFRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	sortBy := enum.BatchSortName
	if req.SortBy != "" {
		sortBy = enum.BatchSort(req.SortBy)
	}

	var batch *entity.PackingBatch
	var err error
	switch {
	case req.Date != "":
		var date time.Time
		date, err = time.Parse("2006-01-02", req.Date)
		if err != nil {
			response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
		batch, err = h.packingService.BuildBatch(c.Request.Context(), date, sortBy)
	case len(req.OrderIDs) > 0:
		ids := make([]uuid.UUID, 0, len(req.OrderIDs))
		for _, raw := range req.OrderIDs {
			id, parseErr := uuid.Parse(raw)
			if parseErr != nil {
				response.BadRequest(c, "Invalid order ID: "+raw)
				return
			}
			ids = append(ids, id)
		}
		batch, err = h.packingService.BuildSheets(c.Request.Context(), ids, sortBy)
	default:
		response.BadRequest(c, "Either date or order_ids is required")
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	pdfBytes, err := service.FormatBatchPDF(batch)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := "packing-lists.pdf"
	if !batch.DeliveryDate.IsZero() {
		filename = fmt.Sprintf("packing-lists-%s.pdf", batch.DeliveryDate.Format("2006-01-02"))
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(200, "application/pdf", pdfBytes)
}
