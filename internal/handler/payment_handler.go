package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/podhaven/podhaven-backend/internal/common"
	"github.com/podhaven/podhaven-backend/internal/domain"
	"github.com/podhaven/podhaven-backend/internal/middleware"
	"github.com/podhaven/podhaven-backend/internal/service"
)

// PaymentHandler handles membership payment endpoints
type PaymentHandler struct {
	service service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(service service.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// CreateBitPayInvoice handles POST /bitpay/invoice
// @Summary Create a BitPay membership invoice
// @Tags payments
// @Accept json
// @Produce json
// @Param body body domain.CreateInvoiceRequest true "Invoice payload"
// @Success 201 {object} common.APIResponse{data=domain.PaymentOrder}
// @Security BearerAuth
// @Router /bitpay/invoice [post]
func (h *PaymentHandler) CreateBitPayInvoice(c *gin.Context) {
	h.createOrder(c, domain.PaymentProviderBitPay)
}

// CreatePayPalOrder handles POST /paypal/order
// @Summary Create a PayPal membership order
// @Tags payments
// @Accept json
// @Produce json
// @Param body body domain.CreateInvoiceRequest true "Order payload"
// @Success 201 {object} common.APIResponse{data=domain.PaymentOrder}
// @Security BearerAuth
// @Router /paypal/order [post]
func (h *PaymentHandler) CreatePayPalOrder(c *gin.Context) {
	h.createOrder(c, domain.PaymentProviderPayPal)
}

func (h *PaymentHandler) createOrder(c *gin.Context, provider domain.PaymentProvider) {
	ownerID := middleware.GetUserID(c)

	var req domain.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	// The route decides the provider; the body field is ignored
	req.Provider = provider

	order, err := h.service.CreateInvoice(ownerID, &req)
	if err != nil {
		if errors.Is(err, common.ErrInvalidInput) {
			common.ErrorResponse(c, http.StatusBadRequest, err.Error(), err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Order creation failed", err)
		return
	}

	c.JSON(http.StatusCreated, common.APIResponse{Data: order})
}

// GetOrder handles GET /bitpay/invoice/:id and GET /paypal/order/:id
// @Summary Get one of the caller's payment orders
// @Tags payments
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} common.APIResponse{data=domain.PaymentOrder}
// @Security BearerAuth
// @Router /bitpay/invoice/{id} [get]
func (h *PaymentHandler) GetOrder(c *gin.Context) {
	ownerID := middleware.GetUserID(c)

	order, err := h.service.GetOrder(c.Param("id"), ownerID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "Order not found", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to load order", err)
		return
	}

	common.SuccessResponse(c, order, nil)
}

// ListOrders handles GET /payments/orders
// @Summary List the caller's payment orders
// @Tags payments
// @Produce json
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 20)"
// @Success 200 {object} common.APIResponse{data=[]domain.PaymentOrder}
// @Security BearerAuth
// @Router /payments/orders [get]
func (h *PaymentHandler) ListOrders(c *gin.Context) {
	ownerID := middleware.GetUserID(c)

	page := 1
	if p, err := strconv.Atoi(c.Query("page")); err == nil && p > 0 {
		page = p
	}
	limit := 20
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 {
		limit = l
	}

	orders, total, err := h.service.ListOrders(ownerID, page, limit)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to list orders", err)
		return
	}

	common.SuccessResponse(c, orders, &common.Meta{Page: page, Limit: limit, Total: total})
}

// BitPayNotification handles POST /bitpay/notification
// @Summary BitPay invoice status notification
// @Tags payments
// @Accept json
// @Success 200 {object} common.APIResponse
// @Router /bitpay/notification [post]
func (h *PaymentHandler) BitPayNotification(c *gin.Context) {
	h.notification(c, domain.PaymentProviderBitPay)
}

// PayPalNotification handles POST /paypal/notification
// @Summary PayPal order status notification
// @Tags payments
// @Accept json
// @Success 200 {object} common.APIResponse
// @Router /paypal/notification [post]
func (h *PaymentHandler) PayPalNotification(c *gin.Context) {
	h.notification(c, domain.PaymentProviderPayPal)
}

func (h *PaymentHandler) notification(c *gin.Context, provider domain.PaymentProvider) {
	var n domain.PaymentNotification
	if err := c.ShouldBindJSON(&n); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid notification body", err)
		return
	}

	if err := h.service.HandleNotification(provider, &n); err != nil {
		switch {
		case errors.Is(err, common.ErrNotFound):
			common.ErrorResponse(c, http.StatusNotFound, "Order not found", err)
		case errors.Is(err, common.ErrInvalidInput):
			common.ErrorResponse(c, http.StatusBadRequest, err.Error(), err)
		default:
			common.ErrorResponse(c, http.StatusInternalServerError, "Notification processing failed", err)
		}
		return
	}

	common.SuccessResponse(c, gin.H{"message": "ok"}, nil)
}
