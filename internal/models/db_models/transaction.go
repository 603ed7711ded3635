package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Transaction maps an internal payment to the provider's identifiers.
//
// CheckoutToken is the one-time token the provider issues for a not-yet
// authorized checkout session. TransactionID is the provider-assigned id of
// the authorized payment; it is nil until authorization (or checkout
// confirmation) and is set at most once, never overwritten.
//
// The composite unique index on (order_id, checkout_token) is the storage
// level guard that makes checkout reconciliation idempotent: a replayed
// confirmation for a consumed token conflicts on insert and becomes a no-op.
type Transaction struct {
	BaseModel
	OrderID       uuid.UUID  `gorm:"index;uniqueIndex:idx_order_checkout"`
	PaymentID     *uuid.UUID `gorm:"index"` // nullable until a payment is attached
	CheckoutToken string     `gorm:"size:64;uniqueIndex:idx_order_checkout"`
	TransactionID *string    `gorm:"index;size:64"`

	// Raw provider payload snapshot kept for traceability.
	Metadata datatypes.JSON `gorm:"type:jsonb;default:'{}'"`

	Order   Order    `gorm:"foreignKey:OrderID"`
	Payment *Payment `gorm:"foreignKey:PaymentID"`
}
