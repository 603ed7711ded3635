package services_test

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"flexpay/internal/models/db_models"
	"flexpay/internal/provider"
	"flexpay/internal/repositories"
	"flexpay/pkg/utils"
)

// fakeProviderClient implements provider.Client with overridable func fields.
type fakeProviderClient struct {
	AuthorizeFunc       func(ctx context.Context, checkoutToken string) (*provider.Transaction, error)
	CaptureFunc         func(ctx context.Context, transactionID string) (*provider.Event, error)
	VoidFunc            func(ctx context.Context, transactionID string) (*provider.Event, error)
	RefundFunc          func(ctx context.Context, transactionID string, amount int64) (*provider.Event, error)
	ReadTransactionFunc func(ctx context.Context, checkoutToken string) (*provider.Transaction, error)

	AuthorizeCalls       int
	CaptureCalls         int
	VoidCalls            int
	RefundCalls          int
	ReadTransactionCalls int
}

func (f *fakeProviderClient) Authorize(ctx context.Context, checkoutToken string) (*provider.Transaction, error) {
	f.AuthorizeCalls++
	if f.AuthorizeFunc == nil {
		return nil, errors.New("unexpected Authorize call")
	}
	return f.AuthorizeFunc(ctx, checkoutToken)
}

func (f *fakeProviderClient) Capture(ctx context.Context, transactionID string) (*provider.Event, error) {
	f.CaptureCalls++
	if f.CaptureFunc == nil {
		return nil, errors.New("unexpected Capture call")
	}
	return f.CaptureFunc(ctx, transactionID)
}

func (f *fakeProviderClient) Void(ctx context.Context, transactionID string) (*provider.Event, error) {
	f.VoidCalls++
	if f.VoidFunc == nil {
		return nil, errors.New("unexpected Void call")
	}
	return f.VoidFunc(ctx, transactionID)
}

func (f *fakeProviderClient) Refund(ctx context.Context, transactionID string, amount int64) (*provider.Event, error) {
	f.RefundCalls++
	if f.RefundFunc == nil {
		return nil, errors.New("unexpected Refund call")
	}
	return f.RefundFunc(ctx, transactionID, amount)
}

func (f *fakeProviderClient) ReadTransaction(ctx context.Context, checkoutToken string) (*provider.Transaction, error) {
	f.ReadTransactionCalls++
	if f.ReadTransactionFunc == nil {
		return nil, errors.New("unexpected ReadTransaction call")
	}
	return f.ReadTransactionFunc(ctx, checkoutToken)
}

// fakeTransactionRepo is an in-memory TransactionRepositoryInterface that
// mirrors the storage-level guarantees of the gorm implementation: one record
// per (order, checkout token), transaction id set at most once, and a payment
// only on the first confirmation of a token.
type fakeTransactionRepo struct {
	records  []*db_models.Transaction
	payments []*db_models.Payment

	setCalls int
	setErr   error
}

func (f *fakeTransactionRepo) find(orderID uuid.UUID, token string) *db_models.Transaction {
	for _, r := range f.records {
		if r.OrderID == orderID && r.CheckoutToken == token {
			return r
		}
	}
	return nil
}

func (f *fakeTransactionRepo) GetByCheckoutToken(ctx context.Context, token string) (*db_models.Transaction, error) {
	for _, r := range f.records {
		if r.CheckoutToken == token {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeTransactionRepo) CreateForCheckout(ctx context.Context, orderID uuid.UUID, token string) (*db_models.Transaction, error) {
	if existing := f.find(orderID, token); existing != nil {
		return existing, nil
	}
	record := &db_models.Transaction{
		BaseModel:     db_models.BaseModel{ID: uuid.New()},
		OrderID:       orderID,
		CheckoutToken: token,
	}
	f.records = append(f.records, record)
	return record, nil
}

func (f *fakeTransactionRepo) SetTransactionID(ctx context.Context, recordID uuid.UUID, providerTxnID string) error {
	f.setCalls++
	if f.setErr != nil {
		return f.setErr
	}
	for _, r := range f.records {
		if r.ID == recordID {
			if r.TransactionID != nil {
				return repositories.ErrAlreadyAuthorized
			}
			r.TransactionID = &providerTxnID
			return nil
		}
	}
	return repositories.ErrAlreadyAuthorized
}

func (f *fakeTransactionRepo) ConfirmCheckout(ctx context.Context, order *db_models.Order, snapshot *provider.Transaction, token string, paymentMethodRef string) error {
	record := f.find(order.ID, token)
	if record != nil && record.PaymentID != nil {
		return nil
	}

	transactionID := snapshot.ID
	if record == nil {
		record = &db_models.Transaction{
			BaseModel:     db_models.BaseModel{ID: uuid.New()},
			OrderID:       order.ID,
			CheckoutToken: token,
		}
		f.records = append(f.records, record)
	}
	if record.TransactionID == nil {
		record.TransactionID = &transactionID
	}

	payment := &db_models.Payment{
		BaseModel:        db_models.BaseModel{ID: uuid.New()},
		OrderID:          order.ID,
		Amount:           utils.MajorUnits(snapshot.Amount),
		PaymentMethodRef: paymentMethodRef,
		SourceID:         &record.ID,
	}
	f.payments = append(f.payments, payment)
	record.PaymentID = &payment.ID
	return nil
}

// fakeOrderRepo is a map-backed OrderRepositoryInterface.
type fakeOrderRepo struct {
	orders map[string]*db_models.Order
}

func (f *fakeOrderRepo) GetByNumber(ctx context.Context, number string) (*db_models.Order, error) {
	order, ok := f.orders[number]
	if !ok {
		return nil, nil
	}
	return order, nil
}
