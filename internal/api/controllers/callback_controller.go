package controllers

import (
	"fmt"
	"github.com/gin-gonic/gin"
	"net/http"

	"flexpay/internal/models/request_models"
	"flexpay/internal/services"
	"flexpay/pkg/utils"
)

const (
	cartPath            = "/checkout/cart"
	checkoutConfirmPath = "/checkout/confirm"
)

type CallbackController struct {
	callbackService services.CallbackService
}

func NewCallbackController(callbackService services.CallbackService) *CallbackController {
	return &CallbackController{
		callbackService: callbackService,
	}
}

// Confirm godoc
// @Summary Provider checkout-confirmed callback
// @Description Reconciles a confirmed checkout into a local payment and redirects the customer
// @Tags Callbacks
// @Accept x-www-form-urlencoded
// @Param order_id formData string true "Order number"
// @Param checkout_token formData string false "One-time checkout token"
// @Param payment_method_id formData string false "Payment method reference"
// @Success 302
// @Router /callback/confirm [post]
func (cc *CallbackController) Confirm(c *gin.Context) {

	var request request_models.ConfirmCallbackRequest
	if err := c.ShouldBind(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid callback payload")
		return
	}

	route, err := cc.callbackService.Confirm(c.Request.Context(), services.ConfirmParams{
		OrderNumber:      request.OrderNumber,
		CheckoutToken:    request.CheckoutToken,
		PaymentMethodRef: request.PaymentMethodRef,
	})
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	cc.redirect(c, route, request.OrderNumber)
}

// Cancel godoc
// @Summary Provider checkout-canceled callback
// @Description Best-effort cancel, always sends the customer back to the cart
// @Tags Callbacks
// @Param order_id query string false "Order number"
// @Success 302
// @Router /callback/cancel [get]
func (cc *CallbackController) Cancel(c *gin.Context) {
	route := cc.callbackService.Cancel(c.Request.Context(), c.Query("order_id"))
	cc.redirect(c, route, c.Query("order_id"))
}

func (cc *CallbackController) redirect(c *gin.Context, route services.Route, orderNumber string) {
	switch route {
	case services.RouteOrderDetail:
		c.Redirect(http.StatusFound, fmt.Sprintf("/orders/%s", orderNumber))
	case services.RouteCheckoutConfirmation:
		c.Redirect(http.StatusFound, checkoutConfirmPath)
	default:
		c.Redirect(http.StatusFound, cartPath)
	}
}
