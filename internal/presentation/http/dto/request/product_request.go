package request

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	Name     string  `json:"name" binding:"required,min=2,max=255"`
	Price    float64 `json:"price" binding:"required,gt=0"`
	Quantity int     `json:"quantity" binding:"min=0"`
	Category string  `json:"category" binding:"required,max=100"`
	Image    *string `json:"image" binding:"omitempty,max=255"`
	Location *string `json:"location" binding:"omitempty,max=255"`
}

// UpdateProductRequest represents a product update request; omitted fields
// are left unchanged
type UpdateProductRequest struct {
	Name     *string  `json:"name" binding:"omitempty,min=2,max=255"`
	Price    *float64 `json:"price" binding:"omitempty,gt=0"`
	Quantity *int     `json:"quantity" binding:"omitempty,min=0"`
	Category *string  `json:"category" binding:"omitempty,max=100"`
	Image    *string  `json:"image" binding:"omitempty,max=255"`
	Location *string  `json:"location" binding:"omitempty,max=255"`
}

// ProductFilterRequest represents catalog filter parameters
type ProductFilterRequest struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	FarmerID string `form:"farmer_id"`
	Page     int    `form:"page"`
	PerPage  int    `form:"per_page"`
}
