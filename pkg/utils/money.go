package utils

import "github.com/shopspring/decimal"

// MajorUnits converts a provider amount in minor units (cents) into the
// major-unit decimal stored on payments: 42499 -> 424.99.
func MajorUnits(minor int64) decimal.Decimal {
	return decimal.New(minor, -2)
}
