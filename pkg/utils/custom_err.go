package utils

import "errors"

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrDatabaseError       = errors.New("database error")
	ErrProviderUnavailable = errors.New("provider unavailable")
)
