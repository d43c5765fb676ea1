package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agriconnect/agriconnect-api/internal/application/service"
	"github.com/agriconnect/agriconnect-api/internal/domain/enum"
	"github.com/agriconnect/agriconnect-api/internal/presentation/http/dto/request"
	"github.com/agriconnect/agriconnect-api/internal/presentation/http/dto/response"
	"github.com/agriconnect/agriconnect-api/pkg/pagination"
)

// OrderHandler handles order HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// ListMine returns the buyer's order history, newest first
func (h *OrderHandler) ListMine(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	orders, err := h.orderService.GetBuyerOrders(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Orders retrieved", orders)
}

// ListSales returns the farmer's own line items across all orders
func (h *OrderHandler) ListSales(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	items, err := h.orderService.GetFarmerOrderItems(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales retrieved", items)
}

// Get returns a single order with items
func (h *OrderHandler) Get(c *gin.Context) {
	requester := CurrentUser(c)
	if requester == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), orderID, requester)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved", order)
}

// UpdateStatus advances an order's status on behalf of a farmer
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	farmer := CurrentUser(c)
	if farmer == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	target, err := enum.ParseOrderStatus(req.Status)
	if err != nil {
		response.BadRequest(c, "Unknown order status")
		return
	}

	order, err := h.orderService.AdvanceStatus(c.Request.Context(), orderID, farmer, target)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order status updated", order)
}

// Cancel cancels a placed order on behalf of its buyer
func (h *OrderHandler) Cancel(c *gin.Context) {
	buyer := CurrentUser(c)
	if buyer == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.CancelOrder(c.Request.Context(), orderID, buyer)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order cancelled", order)
}

// ListAll returns every order for the admin dashboard
func (h *OrderHandler) ListAll(c *gin.Context) {
	params := pagination.DefaultPagination()
	params.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	params.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "15"))
	params.Validate()

	orders, total, err := h.orderService.ListAllOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(orders, pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Orders retrieved", result)
}
