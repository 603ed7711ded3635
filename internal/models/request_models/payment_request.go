package request_models

type RegisterCheckoutRequest struct {
	OrderNumber   string `json:"order_number" binding:"required"`
	CheckoutToken string `json:"checkout_token" binding:"required"`
}

type AuthorizeRequest struct {
	CheckoutToken string `json:"checkout_token" binding:"required"`
}

type CreditRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"` // minor units
}
