package db_models

import (
	"github.com/shopspring/decimal"
)

type OrderState string

const (
	OrderStateCart     OrderState = "cart"
	OrderStatePayment  OrderState = "payment"
	OrderStateComplete OrderState = "complete"
	OrderStateCanceled OrderState = "canceled"
)

// Order is the ledger's view of a platform order. The checkout state machine
// itself lives in the order-management platform; we only read number, state
// and currency here.
type Order struct {
	BaseModel
	Number   string          `gorm:"uniqueIndex;size:32"`
	State    OrderState      `gorm:"index"`
	Currency string          `gorm:"size:3"` // ISO 4217
	Total    decimal.Decimal `gorm:"type:numeric(12,2)"`

	Payments     []Payment     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Transactions []Transaction `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// Completed reports whether the order reached a terminal commercial state.
func (o *Order) Completed() bool {
	return o.State == OrderStateComplete || o.State == OrderStateCanceled
}
