// Package errors defines the request outcomes the API boundary has to
// tell apart: field validation failures, duplicate submissions and
// storage faults. Notification failures are logged only and never
// carried through this package.
package errors

import (
	"errors"
	"fmt"

	"truckbooking/internal/entities"
)

// ErrDuplicateBooking rejects a submission whose email and phone both
// match an already stored booking.
var ErrDuplicateBooking = errors.New("Une réservation avec ce téléphone et email existe déjà. Les inscriptions en double sont automatiquement annulées.")

// ValidationError carries either a list of field problems (schema
// failures) or a single business-rule message.
type ValidationError struct {
	Message string
	Errors  []entities.FieldError
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewSchemaError wraps the full field error list from request validation.
func NewSchemaError(fieldErrs []entities.FieldError) *ValidationError {
	return &ValidationError{
		Message: "Données invalides",
		Errors:  fieldErrs,
	}
}

// NewBusinessRuleError carries a single user-facing message with no
// field list.
func NewBusinessRuleError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// StorageError marks a persistence failure. Fatal to the request.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps err with the failing storage operation.
func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}
