// Package domain defines error types for the point-of-sale system.
package domain

import (
	"errors"
	"fmt"
)

// ValidationError is returned when user-supplied input is malformed or
// out of range (empty name, non-finite or wrongly-signed number).
type ValidationError struct {
	Field  string
	Reason string
	Value  interface{}
}

// Error implements the error interface for ValidationError
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input: field=%s, reason=%s, value=%v", e.Field, e.Reason, e.Value)
}

// Is allows proper error type checking with errors.Is()
func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

// NotFoundError is returned when a product with the given ID is not in the catalog
type NotFoundError struct {
	ProductID string
}

// Error implements the error interface for NotFoundError
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product not found: id=%s", e.ProductID)
}

// Is allows proper error type checking with errors.Is()
func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}

// InvalidAmountError is returned when a tendered amount is too small to
// yield a positive gram-resolution weight at the product's price.
type InvalidAmountError struct {
	TenderedBs float64
	PriceKg    float64
}

// Error implements the error interface for InvalidAmountError
func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("amount too small to compute weight: tendered=%.2f, priceKg=%.2f", e.TenderedBs, e.PriceKg)
}

// Is allows proper error type checking with errors.Is()
func (e *InvalidAmountError) Is(target error) bool {
	_, ok := target.(*InvalidAmountError)
	return ok
}

// InsufficientStockError is returned when the requested weight exceeds the
// available stock beyond the rounding tolerance.
type InsufficientStockError struct {
	ProductID   string
	RequestedKg float64
	AvailableKg float64
}

// Error implements the error interface for InsufficientStockError
func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: id=%s, requested=%.3f kg, available=%.3f kg", e.ProductID, e.RequestedKg, e.AvailableKg)
}

// Is allows proper error type checking with errors.Is()
func (e *InsufficientStockError) Is(target error) bool {
	_, ok := target.(*InsufficientStockError)
	return ok
}

// Helper functions for creating errors with context

// NewValidationError creates a new ValidationError
func NewValidationError(field, reason string, value interface{}) error {
	return &ValidationError{Field: field, Reason: reason, Value: value}
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(productID string) error {
	return &NotFoundError{ProductID: productID}
}

// NewInvalidAmountError creates a new InvalidAmountError
func NewInvalidAmountError(tendered, priceKg float64) error {
	return &InvalidAmountError{TenderedBs: tendered, PriceKg: priceKg}
}

// NewInsufficientStockError creates a new InsufficientStockError
func NewInsufficientStockError(productID string, requested, available float64) error {
	return &InsufficientStockError{ProductID: productID, RequestedKg: requested, AvailableKg: available}
}

// Type assertion helpers for use with errors.As()

// IsValidationError checks if an error is a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFoundError checks if an error is a NotFoundError
func IsNotFoundError(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}

// IsInvalidAmountError checks if an error is an InvalidAmountError
func IsInvalidAmountError(err error) bool {
	var iae *InvalidAmountError
	return errors.As(err, &iae)
}

// IsInsufficientStockError checks if an error is an InsufficientStockError
func IsInsufficientStockError(err error) bool {
	var ise *InsufficientStockError
	return errors.As(err, &ise)
}
