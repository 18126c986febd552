package services

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the type/category of error
type ErrorType string

const (
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeValidation   ErrorType = "validation"
	ErrorTypeDuplicate    ErrorType = "duplicate"
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	ErrorTypeQuery        ErrorType = "query"
)

// DomainError represents a structured error with the HTTP status it maps to
type DomainError struct {
	Type    ErrorType
	Status  int
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements errors.Unwrap
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewDomainError creates a new domain error
func NewDomainError(errType ErrorType, status int, message string, err error) *DomainError {
	return &DomainError{
		Type:    errType,
		Status:  status,
		Message: message,
		Err:     err,
	}
}

// Domain error variables

var (
	// Not Found Errors
	ErrDrinkNotFound = NewDomainError(ErrorTypeNotFound, http.StatusNotFound, "id not found in the database.", nil)
	ErrNoDrinks      = NewDomainError(ErrorTypeNotFound, http.StatusNotFound, "There are no drinks", nil)

	// Validation Errors
	ErrTitleAndRecipeRequired = NewDomainError(ErrorTypeValidation, http.StatusBadRequest, "Missing input field(s). (title and recipe must be supplied.)", nil)
	ErrTitleRequired          = NewDomainError(ErrorTypeValidation, http.StatusBadRequest, "Missing input field(s). (title must be supplied.)", nil)
	ErrRecipeRequired         = NewDomainError(ErrorTypeValidation, http.StatusBadRequest, "Missing input field(s). (recipe must be supplied.)", nil)
	ErrTitleBlank             = NewDomainError(ErrorTypeValidation, http.StatusBadRequest, "None of the fields may be blank. (title must be supplied.)", nil)
	ErrRecipeBlank            = NewDomainError(ErrorTypeValidation, http.StatusBadRequest, "None of the fields may be blank. (recipe must be supplied.)", nil)
	ErrNoFieldsSupplied       = NewDomainError(ErrorTypeValidation, http.StatusBadRequest, "Missing input field(s). (title or recipe must be supplied.)", nil)
	ErrBlankFields            = NewDomainError(ErrorTypeValidation, http.StatusBadRequest, "Bad input field(s). (title or recipe must not be blank.)", nil)
	ErrInvalidRecipe          = NewDomainError(ErrorTypeValidation, http.StatusBadRequest, "Invalid recipe. (recipe must be a list of ingredients.)", nil)
	ErrInvalidInput           = NewDomainError(ErrorTypeValidation, http.StatusBadRequest, "Invalid input data. (title and recipe must be supplied.)", nil)
	ErrInvalidUpdateInput     = NewDomainError(ErrorTypeValidation, http.StatusBadRequest, "Invalid input data. (title or recipe must be supplied.)", nil)

	// Duplicate Errors
	ErrDuplicateTitle = NewDomainError(ErrorTypeDuplicate, http.StatusBadRequest, "A drink with this title already exists.", nil)

	// Authorization Errors
	ErrUnauthorized = NewDomainError(ErrorTypeUnauthorized, http.StatusUnauthorized, "unauthorized", nil)

	// Persistence Errors
	ErrQueryFailed = NewDomainError(ErrorTypeQuery, http.StatusUnprocessableEntity, "Unexpected error accessing the database.", nil)
)

// Error type checking helper functions

// IsNotFoundError checks if an error is a not found error
func IsNotFoundError(err error) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type == ErrorTypeNotFound
	}
	return false
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type == ErrorTypeValidation
	}
	return false
}

// IsDuplicateError checks if an error is a duplicate-title error
func IsDuplicateError(err error) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type == ErrorTypeDuplicate
	}
	return false
}

// IsUnauthorizedError checks if an error is an unauthorized error
func IsUnauthorizedError(err error) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type == ErrorTypeUnauthorized
	}
	return false
}

// IsQueryError checks if an error is a persistence-layer error
func IsQueryError(err error) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type == ErrorTypeQuery
	}
	return false
}

// StatusOf returns the HTTP status a domain error maps to, or 500 for unknown errors
func StatusOf(err error) int {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Status
	}
	return http.StatusInternalServerError
}

// WrapQuery wraps a persistence fault as a query error, keeping the
// caller-facing message stable
func WrapQuery(message string, err error) error {
	return NewDomainError(ErrorTypeQuery, http.StatusUnprocessableEntity, message, err)
}
