package services

import (
	"context"
	"fmt"
	"go.uber.org/zap"

	"flexpay/internal/provider"
	"flexpay/internal/repositories"
	"flexpay/pkg/utils"
)

// Route is the signal the reconciler hands back to the controller layer,
// which turns it into the actual HTTP redirect. The core never redirects.
type Route int

const (
	RouteNone Route = iota
	RouteCart
	RouteOrderDetail
	RouteCheckoutConfirmation
)

type ConfirmParams struct {
	OrderNumber      string
	CheckoutToken    string
	PaymentMethodRef string
}

// CallbackService reconciles the provider's asynchronous checkout
// notifications with the local ledger, exactly once per checkout token.
type CallbackService interface {
	Confirm(ctx context.Context, params ConfirmParams) (Route, error)
	Cancel(ctx context.Context, orderNumber string) Route
}

type callbackService struct {
	client provider.Client
	orders repositories.OrderRepositoryInterface
	txns   repositories.TransactionRepositoryInterface
	logger *zap.Logger
}

func NewCallbackService(
	client provider.Client,
	orders repositories.OrderRepositoryInterface,
	txns repositories.TransactionRepositoryInterface,
	logger *zap.Logger,
) CallbackService {
	return &callbackService{
		client: client,
		orders: orders,
		txns:   txns,
		logger: logger,
	}
}

// Confirm handles the provider's "checkout confirmed" notification.
//
// An unknown order number is a hard failure: the notification references an
// order we do not have, which means a forged or stale request. A missing
// checkout token means the customer abandoned the provider flow. A completed
// order means the notification is a replay.
func (s *callbackService) Confirm(ctx context.Context, params ConfirmParams) (Route, error) {

	order, err := s.orders.GetByNumber(ctx, params.OrderNumber)
	if err != nil {
		return RouteNone, fmt.Errorf("lookup order %s: %w", params.OrderNumber, err)
	}
	if order == nil {
		return RouteNone, utils.ErrOrderNotFound
	}

	if params.CheckoutToken == "" {
		s.logger.Info("confirmation without checkout token, sending back to cart",
			zap.String("order", params.OrderNumber),
		)
		return RouteCart, nil
	}

	if order.Completed() {
		return RouteOrderDetail, nil
	}

	// The provider is the source of truth for amount and identifiers; this
	// read is never skipped, even when a local record already exists.
	snapshot, err := s.client.ReadTransaction(ctx, params.CheckoutToken)
	if err != nil {
		if reqErr, ok := provider.AsRequestError(err); ok {
			s.logger.Warn("provider read failed during confirmation",
				zap.String("order", params.OrderNumber),
				zap.String("message", reqErr.Message),
			)
			return RouteNone, fmt.Errorf("%w: %s", utils.ErrProviderUnavailable, reqErr.Message)
		}
		return RouteNone, fmt.Errorf("read transaction: %w", err)
	}

	err = s.txns.ConfirmCheckout(ctx, order, snapshot, params.CheckoutToken, params.PaymentMethodRef)
	if err != nil {
		return RouteNone, fmt.Errorf("confirm checkout for order %s: %w", params.OrderNumber, err)
	}

	s.logger.Info("checkout confirmed",
		zap.String("order", params.OrderNumber),
		zap.String("transaction_id", snapshot.ID),
		zap.Int64("amount", snapshot.Amount),
	)

	return RouteCheckoutConfirmation, nil
}

// Cancel is best-effort: no ledger action, never fails, always back to cart.
func (s *callbackService) Cancel(ctx context.Context, orderNumber string) Route {
	s.logger.Info("checkout canceled", zap.String("order", orderNumber))
	return RouteCart
}
