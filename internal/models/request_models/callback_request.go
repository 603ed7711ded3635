package request_models

// ConfirmCallbackRequest carries the provider redirect parameters. The
// provider posts them as form values; order_id is the platform order number.
type ConfirmCallbackRequest struct {
	OrderNumber      string `form:"order_id" json:"order_id"`
	CheckoutToken    string `form:"checkout_token" json:"checkout_token"`
	PaymentMethodRef string `form:"payment_method_id" json:"payment_method_id"`
}
