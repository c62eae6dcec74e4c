package shared

import "fmt"

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// ValidationError reports invalid input to a constructor or operation
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError reports a lookup by an unknown key
type NotFoundError struct {
	*DomainError
	Kind string
	Key  string
}

func NewNotFoundError(kind, key string) *NotFoundError {
	return &NotFoundError{
		DomainError: &DomainError{Message: fmt.Sprintf("%s not found: %s", kind, key)},
		Kind:        kind,
		Key:         key,
	}
}

// InsufficientFundsError reports a purse debit that cannot be covered
type InsufficientFundsError struct {
	*DomainError
	Required  int
	Available int
}

func NewInsufficientFundsError(required, available int) *InsufficientFundsError {
	return &InsufficientFundsError{
		DomainError: &DomainError{Message: fmt.Sprintf("insufficient funds: need %d, have %d", required, available)},
		Required:    required,
		Available:   available,
	}
}
