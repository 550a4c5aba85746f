package request

// CreateCustomerRequest represents a new customer record
type CreateCustomerRequest struct {
	Name     string  `json:"name" binding:"required"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Address  string  `json:"address" binding:"required"`
	RouteKey string  `json:"route_key" binding:"required"`
}

// UpdateCustomerRequest represents customer fields to change
type UpdateCustomerRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Address  *string `json:"address,omitempty"`
	RouteKey *string `json:"route_key,omitempty"`
}

// CreateProductRequest represents a new catalog product. Price is in
// currency units.
type CreateProductRequest struct {
	Name  string  `json:"name" binding:"required"`
	Unit  string  `json:"unit" binding:"required"`
	Price float64 `json:"price"`
	Notes *string `json:"notes,omitempty"`
}

// UpdateProductRequest represents product fields to change
type UpdateProductRequest struct {
	Name  *string  `json:"name,omitempty"`
	Unit  *string  `json:"unit,omitempty"`
	Price *float64 `json:"price,omitempty"`
	Notes *string  `json:"notes,omitempty"`
}
