package common

import "errors"

var (
	ErrNoRowsAffected            = errors.New("no rows affected")
	ErrValidation                = errors.New("validation failed")
	ErrDataNotFound              = errors.New("data not found")
	ErrInternalServerError       = errors.New("internal server error")
	ErrAccountNotExists          = errors.New("account not exists")
	ErrTransactionNotFound       = errors.New("transaction not found")
	ErrTransactionAlreadyApplied = errors.New("transaction already applied")
	ErrTransactionAlreadyExists  = errors.New("transaction already exists")
	ErrEmptyMessagePayload       = errors.New("empty message payload")
)
