package provider

import (
	"context"
	"errors"
)

// Transaction is the provider's authoritative view of a checkout/payment.
// Amount is in minor units (cents).
type Transaction struct {
	ID         string `json:"id"`
	CheckoutID string `json:"checkout_id"`
	Amount     int64  `json:"amount"`
	OrderID    string `json:"order_id"`
	ProviderID int    `json:"provider_id"`
	Status     string `json:"status"`
}

// Event is returned by capture, void and refund calls.
type Event struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Amount int64  `json:"amount"`
}

// RequestError is any rejection surfaced by the provider API: semantic
// failures ("The transaction has already been captured."), validation
// failures, and transport errors/timeouts, which are folded in so that a
// timed-out call fails closed like any other provider error.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	return e.Message
}

// AsRequestError unwraps err into a *RequestError if it is one.
func AsRequestError(err error) (*RequestError, bool) {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr, true
	}
	return nil, false
}

// Client is the contract this service requires from the BNPL provider.
type Client interface {
	// Authorize converts a checkout token into an authorized transaction.
	Authorize(ctx context.Context, checkoutToken string) (*Transaction, error)

	// Capture settles a previously authorized transaction.
	Capture(ctx context.Context, transactionID string) (*Event, error)

	// Void cancels an authorized, not yet captured transaction.
	Void(ctx context.Context, transactionID string) (*Event, error)

	// Refund returns amount (minor units) of a captured transaction.
	Refund(ctx context.Context, transactionID string, amount int64) (*Event, error)

	// ReadTransaction fetches the transaction behind a checkout token.
	ReadTransaction(ctx context.Context, checkoutToken string) (*Transaction, error)
}
