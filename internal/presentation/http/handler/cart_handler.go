package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agriconnect/agriconnect-api/internal/application/service"
	"github.com/agriconnect/agriconnect-api/internal/domain/entity"
	"github.com/agriconnect/agriconnect-api/internal/presentation/http/dto/request"
	"github.com/agriconnect/agriconnect-api/internal/presentation/http/dto/response"
)

// CartHandler handles cart HTTP requests
type CartHandler struct {
	cartService *service.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Get returns the buyer's cart resolved against the catalog
func (h *CartHandler) Get(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	items, err := h.cartService.GetCart(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart retrieved", items)
}

// Add adds a product to the cart, merging with an existing line
func (h *CartHandler) Add(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	err := h.cartService.AddToCart(c.Request.Context(), *userID, entity.CartLine{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items, err := h.cartService.GetCart(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product added to cart", items)
}

// UpdateQuantity sets a cart line's quantity; zero or less removes the line
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.cartService.UpdateQuantity(c.Request.Context(), *userID, productID, req.Quantity); err != nil {
		response.Error(c, err)
		return
	}

	items, err := h.cartService.GetCart(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart updated", items)
}

// Remove removes a cart line
func (h *CartHandler) Remove(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.cartService.RemoveFromCart(c.Request.Context(), *userID, productID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product removed from cart", nil)
}

// Clear empties the cart
func (h *CartHandler) Clear(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	if err := h.cartService.ClearCart(c.Request.Context(), *userID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
