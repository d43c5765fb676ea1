package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/agriconnect/agriconnect-api/internal/application/service"
	"github.com/agriconnect/agriconnect-api/internal/presentation/http/dto/request"
	"github.com/agriconnect/agriconnect-api/internal/presentation/http/dto/response"
)

// CheckoutHandler handles the billing flow: starting a session from the
// cart, buy-now, payment submission and receipt retrieval
type CheckoutHandler struct {
	checkoutService *service.CheckoutService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// Begin builds an invoice from the cart and opens a billing session
func (h *CheckoutHandler) Begin(c *gin.Context) {
	buyer := CurrentUser(c)
	if buyer == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	inv, err := h.checkoutService.BeginCheckout(c.Request.Context(), buyer)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Billing session started", inv)
}

// BuyNow opens a single-product billing session without touching the cart
func (h *CheckoutHandler) BuyNow(c *gin.Context) {
	buyer := CurrentUser(c)
	if buyer == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.BuyNowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	inv, err := h.checkoutService.BuyNow(c.Request.Context(), buyer, req.ProductID, quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Billing session started", inv)
}

// GetPending returns the in-progress billing session
func (h *CheckoutHandler) GetPending(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	inv, err := h.checkoutService.GetPendingInvoice(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if inv == nil {
		response.ErrorWithCode(c, 404, "No billing session in progress")
		return
	}

	response.OK(c, "Billing session retrieved", inv)
}

// Abandon drops the billing session, leaving the cart intact
func (h *CheckoutHandler) Abandon(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	if err := h.checkoutService.AbandonCheckout(c.Request.Context(), *userID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Pay validates the pending invoice, splits it into per-farmer orders and
// returns the stamped receipt
func (h *CheckoutHandler) Pay(c *gin.Context) {
	buyer := CurrentUser(c)
	if buyer == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.PayInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		response.BadRequest(c, err.Error())
		return
	}

	if req.InvoiceNo != "" {
		pending, err := h.checkoutService.GetPendingInvoice(c.Request.Context(), buyer.ID)
		if err != nil {
			response.Error(c, err)
			return
		}
		if pending == nil || pending.InvoiceNo != req.InvoiceNo {
			response.ErrorWithCode(c, 409, "Billing session does not match the submitted invoice")
			return
		}
	}

	inv, err := h.checkoutService.SubmitPayment(c.Request.Context(), buyer)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment successful", inv)
}

// GetReceipt returns the buyer's last completed invoice
func (h *CheckoutHandler) GetReceipt(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	inv, err := h.checkoutService.GetReceipt(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if inv == nil {
		response.ErrorWithCode(c, 404, "No receipt available")
		return
	}

	response.OK(c, "Receipt retrieved", inv)
}
