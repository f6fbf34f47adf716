package payment

import "errors"

var (
	ErrNotFound      = errors.New("payment record not found")
	ErrAlreadyPaid   = errors.New("payment record already paid")
	ErrUnknownMethod = errors.New("unknown payment method")

	ErrDuplicateTransaction = errors.New("transaction id already in ledger")
)
