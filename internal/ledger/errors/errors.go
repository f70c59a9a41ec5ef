package errors

import (
	"errors"
	"fmt"
)

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

func IsValidationError(err error) bool {
	var validationError *ValidationError
	ok := errors.As(err, &validationError)
	return ok
}

type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

func NewNotFoundError(resource string) error {
	return &NotFoundError{Resource: resource}
}

func IsNotFoundError(err error) bool {
	var notFoundError *NotFoundError
	ok := errors.As(err, &notFoundError)
	return ok
}

var (
	ErrAccountNotFound     = NewNotFoundError("account")
	ErrTransactionNotFound = NewNotFoundError("transaction")
	ErrUserDataNotFound    = NewNotFoundError("user data")

	ErrInvalidAmount          = NewValidationError("Amount must be greater than zero")
	ErrMissingSourceAccount   = NewValidationError("Source account is required")
	ErrMissingTargetAccount   = NewValidationError("Destination account is required for transfers")
	ErrSameTransferAccounts   = NewValidationError("Source and destination accounts must differ")
	ErrInvalidTransactionType = NewValidationError("Type must be 'income', 'expense' or 'transfer'")
)
