package response_models

type PaymentActionResponse struct {
	Success       bool   `json:"success"`
	Authorization string `json:"authorization,omitempty"`
	Message       string `json:"message"`
	Amount        string `json:"amount,omitempty"`
}

type CheckoutRecordResponse struct {
	RecordID      string `json:"record_id"`
	OrderNumber   string `json:"order_number"`
	CheckoutToken string `json:"checkout_token"`
}
