package controllers

import (
	"github.com/gin-gonic/gin"
	"net/http"

	"flexpay/internal/models/request_models"
	"flexpay/internal/models/response_models"
	"flexpay/internal/repositories"
	"flexpay/internal/services"
	"flexpay/pkg/utils"
)

type PaymentController struct {
	gatewayService services.GatewayService
	orders         repositories.OrderRepositoryInterface
	txns           repositories.TransactionRepositoryInterface
}

func NewPaymentController(
	gatewayService services.GatewayService,
	orders repositories.OrderRepositoryInterface,
	txns repositories.TransactionRepositoryInterface,
) *PaymentController {
	return &PaymentController{
		gatewayService: gatewayService,
		orders:         orders,
		txns:           txns,
	}
}

// RegisterCheckout godoc
// @Summary Register a checkout token against an order
// @Description Creates the transaction record for an initiated checkout session
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body request_models.RegisterCheckoutRequest true "Register Checkout Request"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /payments/checkout [post]
func (p *PaymentController) RegisterCheckout(c *gin.Context) {

	var request request_models.RegisterCheckoutRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	order, err := p.orders.GetByNumber(c.Request.Context(), request.OrderNumber)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	if order == nil {
		utils.HandleServiceError(c, utils.ErrOrderNotFound)
		return
	}

	record, err := p.txns.CreateForCheckout(c.Request.Context(), order.ID, request.CheckoutToken)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.CheckoutRecordResponse{
		RecordID:      record.ID.String(),
		OrderNumber:   order.Number,
		CheckoutToken: record.CheckoutToken,
	}, "Checkout registered")
}

// Authorize godoc
// @Summary Authorize a checkout token
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body request_models.AuthorizeRequest true "Authorize Request"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /payments/authorize [post]
func (p *PaymentController) Authorize(c *gin.Context) {

	var request request_models.AuthorizeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	record, err := p.txns.GetByCheckoutToken(c.Request.Context(), request.CheckoutToken)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	if record == nil {
		utils.HandleServiceError(c, utils.ErrTransactionNotFound)
		return
	}

	result, err := p.gatewayService.Authorize(c.Request.Context(), record)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	p.respondResult(c, result)
}

// Capture godoc
// @Summary Capture an authorized transaction
// @Tags Payments
// @Produce json
// @Param transaction_id path string true "Provider transaction id"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /payments/{transaction_id}/capture [post]
func (p *PaymentController) Capture(c *gin.Context) {

	result, err := p.gatewayService.Capture(c.Request.Context(), c.Param("transaction_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	p.respondResult(c, result)
}

// Void godoc
// @Summary Void an authorized transaction
// @Tags Payments
// @Produce json
// @Param transaction_id path string true "Provider transaction id"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /payments/{transaction_id}/void [post]
func (p *PaymentController) Void(c *gin.Context) {

	result, err := p.gatewayService.Void(c.Request.Context(), c.Param("transaction_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	p.respondResult(c, result)
}

// Credit godoc
// @Summary Refund part or all of a captured transaction
// @Tags Payments
// @Accept json
// @Produce json
// @Param transaction_id path string true "Provider transaction id"
// @Param request body request_models.CreditRequest true "Credit Request"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /payments/{transaction_id}/credit [post]
func (p *PaymentController) Credit(c *gin.Context) {

	var request request_models.CreditRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	result, err := p.gatewayService.Credit(c.Request.Context(), request.Amount, c.Param("transaction_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	p.respondResult(c, result)
}

// respondResult maps a normalized gateway result onto the API envelope. A
// declined operation is not a server fault: it comes back as 422 with the
// provider's message.
func (p *PaymentController) respondResult(c *gin.Context, result *services.GatewayResult) {
	if !result.Success {
		utils.RespondError(c, http.StatusUnprocessableEntity, result.Message)
		return
	}

	response := response_models.PaymentActionResponse{
		Success:       true,
		Authorization: result.Authorization,
		Message:       result.Message,
	}
	if result.Amount != nil {
		response.Amount = result.Amount.StringFixed(2)
	}

	utils.RespondSuccess(c, response, result.Message)
}
