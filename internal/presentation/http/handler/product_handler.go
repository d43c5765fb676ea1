package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agriconnect/agriconnect-api/internal/application/service"
	"github.com/agriconnect/agriconnect-api/internal/domain/repository"
	"github.com/agriconnect/agriconnect-api/internal/presentation/http/dto/request"
	"github.com/agriconnect/agriconnect-api/internal/presentation/http/dto/response"
	"github.com/agriconnect/agriconnect-api/pkg/pagination"
)

// ProductHandler handles catalog HTTP requests
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List handles catalog browsing with search and category filtering
func (h *ProductHandler) List(c *gin.Context) {
	var req request.ProductFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	pp := &pagination.PaginationParams{Page: req.Page, PerPage: req.PerPage}
	pp.Validate()

	params := &repository.ProductFilterParams{
		Pagination: pp,
		Search:     req.Search,
		Category:   req.Category,
	}
	if req.FarmerID != "" {
		if farmerID, err := uuid.Parse(req.FarmerID); err == nil {
			params.FarmerID = &farmerID
		}
	}

	products, total, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(products, pagination.NewPagination(pp.Page, pp.PerPage, total))
	response.SuccessWithPagination(c, 200, "Products retrieved", result)
}

// Get returns a single product
func (h *ProductHandler) Get(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), productID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved", product)
}

// ListMine returns the farmer's own listings
func (h *ProductHandler) ListMine(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	products, err := h.productService.ListFarmerProducts(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Products retrieved", products)
}

// Create creates a listing owned by the authenticated farmer
func (h *ProductHandler) Create(c *gin.Context) {
	farmer := CurrentUser(c)
	if farmer == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), farmer, &service.CreateProductInput{
		Name:     req.Name,
		Price:    req.Price,
		Quantity: req.Quantity,
		Category: req.Category,
		Image:    req.Image,
		Location: req.Location,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created", product)
}

// Update applies a partial update to a listing
func (h *ProductHandler) Update(c *gin.Context) {
	requester := CurrentUser(c)
	if requester == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), productID, requester, &service.UpdateProductInput{
		Name:     req.Name,
		Price:    req.Price,
		Quantity: req.Quantity,
		Category: req.Category,
		Image:    req.Image,
		Location: req.Location,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated", product)
}

// Delete removes a listing
func (h *ProductHandler) Delete(c *gin.Context) {
	requester := CurrentUser(c)
	if requester == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), productID, requester); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
