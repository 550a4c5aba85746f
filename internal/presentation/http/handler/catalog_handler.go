package handler

import (
	"strconv"

	"github.com/freshveld/fulfillment-api/internal/application/service"
	"github.com/freshveld/fulfillment-api/internal/presentation/http/dto/request"
	"github.com/freshveld/fulfillment-api/internal/presentation/http/dto/response"
	"github.com/freshveld/fulfillment-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CatalogHandler handles customer-book and product-catalog HTTP requests
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func paginationParams(c *gin.Context) *pagination.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	return &pagination.PaginationParams{Page: page, PerPage: perPage}
}

// CreateCustomer handles adding a customer to the book
func (h *CatalogHandler) CreateCustomer(c *gin.Context) {
	var req request.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	customer, err := h.catalogService.CreateCustomer(c.Request.Context(), &service.CreateCustomerInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		RouteKey: req.RouteKey,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Customer created successfully", customer)
}

// GetCustomer handles retrieving a customer
func (h *CatalogHandler) GetCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	if !GetPolicy(c).CanViewCustomer(id) {
		response.Forbidden(c, "Access denied")
		return
	}

	customer, err := h.catalogService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer retrieved successfully", customer)
}

// ListCustomers handles listing customers with pagination and name search
func (h *CatalogHandler) ListCustomers(c *gin.Context) {
	result, err := h.catalogService.ListCustomers(c.Request.Context(), paginationParams(c), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Customers retrieved successfully", result)
}

// UpdateCustomer handles updating a customer record
func (h *CatalogHandler) UpdateCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	var req request.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	customer, err := h.catalogService.UpdateCustomer(c.Request.Context(), id, &service.UpdateCustomerInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		RouteKey: req.RouteKey,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer updated successfully", customer)
}

// CreateProduct handles adding a product to the catalog
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req request.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), &service.CreateProductInput{
		Name:  req.Name,
		Unit:  req.Unit,
		Price: req.Price,
		Notes: req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// GetProduct handles retrieving a product
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// ListProducts handles listing catalog products with pagination
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	result, err := h.catalogService.ListProducts(c.Request.Context(), paginationParams(c), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Products retrieved successfully", result)
}

// UpdateProduct handles updating a catalog product
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	product, err := h.catalogService.UpdateProduct(c.Request.Context(), id, &service.UpdateProductInput{
		Name:  req.Name,
		Unit:  req.Unit,
		Price: req.Price,
		Notes: req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", product)
}
