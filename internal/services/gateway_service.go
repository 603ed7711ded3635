package services

import (
	"context"
	"errors"
	"fmt"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"flexpay/internal/models/db_models"
	"flexpay/internal/provider"
	"flexpay/internal/repositories"
	"flexpay/pkg/utils"
)

const (
	msgApproved = "Transaction Approved"
	msgCaptured = "Transaction Captured"
	msgVoided   = "Transaction Voided"

	msgMissingCheckoutToken = "Missing checkout token"
	msgAlreadyAuthorized    = "Transaction already authorized"
)

// GatewayResult is the uniform outcome of every gateway operation. A failed
// result always carries the provider's (or precondition's) message; a
// successful result carries the identifier usable for follow-up calls.
type GatewayResult struct {
	Success       bool
	Authorization string
	Message       string
	Amount        *decimal.Decimal
}

// GatewayService translates platform payment operations into provider calls.
//
// Provider rejections never escape as errors: they are normalized into a
// failed GatewayResult carrying the provider message verbatim. A returned
// error means a local fault (ledger write), not a declined operation.
type GatewayService interface {
	Authorize(ctx context.Context, record *db_models.Transaction) (*GatewayResult, error)
	Capture(ctx context.Context, transactionID string) (*GatewayResult, error)
	Void(ctx context.Context, transactionID string) (*GatewayResult, error)
	Credit(ctx context.Context, amount int64, transactionID string) (*GatewayResult, error)
}

type gatewayService struct {
	client provider.Client
	txns   repositories.TransactionRepositoryInterface
	logger *zap.Logger
}

func NewGatewayService(
	client provider.Client,
	txns repositories.TransactionRepositoryInterface,
	logger *zap.Logger,
) GatewayService {
	return &gatewayService{
		client: client,
		txns:   txns,
		logger: logger,
	}
}

// Authorize converts the record's checkout token into a provider transaction
// and persists the returned id. Preconditions: the record holds a checkout
// token and has not been authorized yet. On provider rejection the record is
// left untouched.
func (g *gatewayService) Authorize(ctx context.Context, record *db_models.Transaction) (*GatewayResult, error) {

	if record.CheckoutToken == "" {
		return failure(msgMissingCheckoutToken), nil
	}
	if record.TransactionID != nil {
		return failure(msgAlreadyAuthorized), nil
	}

	txn, err := g.client.Authorize(ctx, record.CheckoutToken)
	if err != nil {
		return g.providerFailure("authorize", err)
	}

	if err := g.txns.SetTransactionID(ctx, record.ID, txn.ID); err != nil {
		// A concurrent authorize won the compare-and-set; the id is written
		// at most once.
		if errors.Is(err, repositories.ErrAlreadyAuthorized) {
			return failure(msgAlreadyAuthorized), nil
		}
		return nil, fmt.Errorf("persist transaction id: %w", err)
	}
	record.TransactionID = &txn.ID

	g.logger.Info("transaction authorized",
		zap.String("transaction_id", txn.ID),
		zap.String("checkout_token", record.CheckoutToken),
	)

	return &GatewayResult{
		Success:       true,
		Authorization: txn.ID,
		Message:       msgApproved,
	}, nil
}

func (g *gatewayService) Capture(ctx context.Context, transactionID string) (*GatewayResult, error) {

	// The capture event has its own id; the stored transaction id stays as is.
	if _, err := g.client.Capture(ctx, transactionID); err != nil {
		return g.providerFailure("capture", err)
	}

	g.logger.Info("transaction captured", zap.String("transaction_id", transactionID))

	return &GatewayResult{
		Success:       true,
		Authorization: transactionID,
		Message:       msgCaptured,
	}, nil
}

func (g *gatewayService) Void(ctx context.Context, transactionID string) (*GatewayResult, error) {

	if _, err := g.client.Void(ctx, transactionID); err != nil {
		return g.providerFailure("void", err)
	}

	g.logger.Info("transaction voided", zap.String("transaction_id", transactionID))

	return &GatewayResult{
		Success:       true,
		Authorization: transactionID,
		Message:       msgVoided,
	}, nil
}

func (g *gatewayService) Credit(ctx context.Context, amount int64, transactionID string) (*GatewayResult, error) {

	event, err := g.client.Refund(ctx, transactionID, amount)
	if err != nil {
		return g.providerFailure("refund", err)
	}

	g.logger.Info("transaction credited",
		zap.String("transaction_id", transactionID),
		zap.String("event_id", event.ID),
		zap.Int64("amount", amount),
	)

	credited := utils.MajorUnits(amount)
	return &GatewayResult{
		Success:       true,
		Authorization: event.ID,
		Message:       fmt.Sprintf("Transaction Credited with %d", amount),
		Amount:        &credited,
	}, nil
}

// providerFailure contains a provider rejection inside a failed result.
// Anything that is not a provider error is a programming or wiring fault and
// is returned as an error.
func (g *gatewayService) providerFailure(op string, err error) (*GatewayResult, error) {
	if reqErr, ok := provider.AsRequestError(err); ok {
		g.logger.Warn("provider rejected operation",
			zap.String("operation", op),
			zap.String("message", reqErr.Message),
		)
		return failure(reqErr.Message), nil
	}
	return nil, fmt.Errorf("%s: %w", op, err)
}

func failure(message string) *GatewayResult {
	return &GatewayResult{
		Success: false,
		Message: message,
	}
}
