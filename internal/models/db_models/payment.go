package db_models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment is the local ledger entry created once per confirmed checkout.
// Amount is in the order currency's major units (e.g. 424.99 for 42499 cents).
type Payment struct {
	BaseModel
	OrderID          uuid.UUID       `gorm:"index"`
	Amount           decimal.Decimal `gorm:"type:numeric(12,2)"`
	PaymentMethodRef string          `gorm:"size:64"`
	SourceID         *uuid.UUID      `gorm:"index"` // backing Transaction record

	Order Order `gorm:"foreignKey:OrderID"`
}
