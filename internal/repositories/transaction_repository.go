package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"flexpay/internal/models/db_models"
	"flexpay/internal/provider"
	"flexpay/pkg/utils"
)

// ErrAlreadyAuthorized is returned when a compare-and-set on transaction_id
// finds the column already populated. The id is written at most once.
var ErrAlreadyAuthorized = errors.New("transaction id already set")

type TransactionRepositoryInterface interface {
	GetByCheckoutToken(ctx context.Context, token string) (*db_models.Transaction, error)
	CreateForCheckout(ctx context.Context, orderID uuid.UUID, token string) (*db_models.Transaction, error)
	SetTransactionID(ctx context.Context, recordID uuid.UUID, providerTxnID string) error
	ConfirmCheckout(ctx context.Context, order *db_models.Order, snapshot *provider.Transaction, token string, paymentMethodRef string) error
}

func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &TransactionRepository{db: db}
}

type TransactionRepository struct {
	db *gorm.DB
}

func (t TransactionRepository) GetByCheckoutToken(ctx context.Context, token string) (*db_models.Transaction, error) {

	var txn db_models.Transaction
	err := t.db.WithContext(ctx).Where("checkout_token = ?", token).First(&txn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}
	return &txn, nil
}

// CreateForCheckout registers a checkout token against an order when the
// checkout session is initiated. Replays return the existing record.
func (t TransactionRepository) CreateForCheckout(ctx context.Context, orderID uuid.UUID, token string) (*db_models.Transaction, error) {

	txn := db_models.Transaction{
		OrderID:       orderID,
		CheckoutToken: token,
	}

	res := t.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}, {Name: "checkout_token"}},
			DoNothing: true,
		}).
		Create(&txn)
	if res.Error != nil {
		return nil, res.Error
	}

	if res.RowsAffected == 0 {
		var existing db_models.Transaction
		err := t.db.WithContext(ctx).
			Where("order_id = ? AND checkout_token = ?", orderID, token).
			First(&existing).Error
		if err != nil {
			return nil, err
		}
		return &existing, nil
	}

	return &txn, nil
}

// SetTransactionID persists the provider transaction id with a compare-and-set
// so the null -> value transition happens at most once.
func (t TransactionRepository) SetTransactionID(ctx context.Context, recordID uuid.UUID, providerTxnID string) error {

	res := t.db.WithContext(ctx).Model(&db_models.Transaction{}).
		Where("id = ? AND transaction_id IS NULL", recordID).
		Update("transaction_id", providerTxnID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAlreadyAuthorized
	}
	return nil
}

// ConfirmCheckout writes the payment and transaction record for a confirmed
// checkout in one database transaction. The unique index on
// (order_id, checkout_token) makes a replayed confirmation a no-op: the
// conflicting insert affects zero rows and no payment is created.
func (t TransactionRepository) ConfirmCheckout(ctx context.Context, order *db_models.Order, snapshot *provider.Transaction, token string, paymentMethodRef string) error {

	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		transactionID := snapshot.ID
		txn := db_models.Transaction{
			OrderID:       order.ID,
			CheckoutToken: token,
			TransactionID: &transactionID,
			Metadata:      jsonRaw(snapshot),
		}

		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}, {Name: "checkout_token"}},
			DoNothing: true,
		}).Create(&txn)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// A record for this (order, token) pair already exists: either the
			// checkout-initiation record awaiting its payment, or a replayed
			// confirmation for a consumed token.
			var existing db_models.Transaction
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("order_id = ? AND checkout_token = ?", order.ID, token).
				First(&existing).Error; err != nil {
				return err
			}
			if existing.PaymentID != nil {
				// Token already consumed, replay is a no-op.
				return nil
			}
			txn = existing
			if err := tx.Model(&txn).
				Where("transaction_id IS NULL").
				Update("transaction_id", transactionID).Error; err != nil {
				return err
			}
		}

		payment := db_models.Payment{
			OrderID:          order.ID,
			Amount:           utils.MajorUnits(snapshot.Amount),
			PaymentMethodRef: paymentMethodRef,
			SourceID:         &txn.ID,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		return tx.Model(&txn).Update("payment_id", payment.ID).Error
	})
}

func jsonRaw(v any) datatypes.JSON {
	b, _ := json.Marshal(v)
	return datatypes.JSON(b)
}
