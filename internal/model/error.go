package model

import "fmt"

// Standard error codes for store and submission failures
const (
	ErrCodeDuplicateFavorite   = "DUPLICATE_FAVORITE"
	ErrCodeDispatchUnavailable = "DISPATCH_UNAVAILABLE"
	ErrCodeInvalidDiscountCode = "INVALID_DISCOUNT_CODE"
	ErrCodeEmptyOrder          = "EMPTY_ORDER"
)

// DomainError carries a stable code alongside a human-readable message.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrDuplicateFavorite   = NewDomainError(ErrCodeDuplicateFavorite, "This item is already in your favorites")
	ErrDispatchUnavailable = NewDomainError(ErrCodeDispatchUnavailable, "No messaging handler available")
	ErrInvalidDiscountCode = NewDomainError(ErrCodeInvalidDiscountCode, "Please enter a valid discount code")
	ErrEmptyOrder          = NewDomainError(ErrCodeEmptyOrder, "Order must contain at least one item")
)

// FieldError reports the first form field that failed validation.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
