package service

import (
	"context"
	"math"

	"github.com/freshveld/fulfillment-api/internal/domain/entity"
	"github.com/freshveld/fulfillment-api/internal/domain/repository"
	"github.com/freshveld/fulfillment-api/pkg/apperror"
	"github.com/freshveld/fulfillment-api/pkg/pagination"
	"github.com/google/uuid"
)

// CatalogService manages the customer book and the product catalog
type CatalogService struct {
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(customerRepo repository.CustomerRepository, productRepo repository.ProductRepository) *CatalogService {
	return &CatalogService{
		customerRepo: customerRepo,
		productRepo:  productRepo,
	}
}

// CreateCustomerInput represents a new customer record
type CreateCustomerInput struct {
	Name     string
	Email    *string
	Phone    *string
	Address  string
	RouteKey string
}

// CreateCustomer adds a customer to the book
func (s *CatalogService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	if input.Name == "" || input.Address == "" || input.RouteKey == "" {
		return nil, apperror.NewValidationError("Name, address and route key are required")
	}

	customer := &entity.Customer{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Address:  input.Address,
		RouteKey: input.RouteKey,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CatalogService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers returns a paginated page of customers, optionally filtered by
// a name search
func (s *CatalogService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(customers, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// UpdateCustomerInput represents customer fields to change; nil fields keep
// their current value
type UpdateCustomerInput struct {
	Name     *string
	Email    *string
	Phone    *string
	Address  *string
	RouteKey *string
}

// UpdateCustomer updates a customer record
func (s *CatalogService) UpdateCustomer(ctx context.Context, id uuid.UUID, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Email != nil {
		customer.Email = input.Email
	}
	if input.Phone != nil {
		customer.Phone = input.Phone
	}
	if input.Address != nil {
		customer.Address = *input.Address
	}
	if input.RouteKey != nil {
		customer.RouteKey = *input.RouteKey
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// CreateProductInput represents a new catalog product. Price is in currency
// units.
type CreateProductInput struct {
	Name  string
	Unit  string
	Price float64
	Notes *string
}

// CreateProduct adds a product to the catalog
func (s *CatalogService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	if input.Name == "" || input.Unit == "" {
		return nil, apperror.NewValidationError("Name and unit are required")
	}
	if input.Price < 0 {
		return nil, apperror.NewValidationError("Price must not be negative")
	}

	product := &entity.Product{
		Name:  input.Name,
		Unit:  input.Unit,
		Price: int64(math.Round(input.Price * 100)),
		Notes: input.Notes,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct retrieves a product by ID
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts returns a paginated page of catalog products
func (s *CatalogService) ListProducts(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(products, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// UpdateProductInput represents product fields to change; nil fields keep
// their current value. Changing the price never affects existing orders,
// which snapshot prices at checkout.
type UpdateProductInput struct {
	Name  *string
	Unit  *string
	Price *float64
	Notes *string
}

// UpdateProduct updates a catalog product
func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Unit != nil {
		product.Unit = *input.Unit
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, apperror.NewValidationError("Price must not be negative")
		}
		product.Price = int64(math.Round(*input.Price * 100))
	}
	if input.Notes != nil {
		product.Notes = input.Notes
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}
