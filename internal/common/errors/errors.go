// Package errors provides standardized error handling for the assistant and
// its collaborator services.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeParseError          ErrorCode = "PARSE_ERROR"
	ErrCodeProductNotFound     ErrorCode = "PRODUCT_NOT_FOUND"
	ErrCodeProductSearchFailed ErrorCode = "PRODUCT_SEARCH_FAILED"

	ErrCodeOrderNotFound     ErrorCode = "ORDER_NOT_FOUND"
	ErrCodeOrderLookupFailed ErrorCode = "ORDER_LOOKUP_FAILED"
	ErrCodeOrderCreateFailed ErrorCode = "ORDER_CREATE_FAILED"

	ErrCodeCartUpdateFailed ErrorCode = "CART_UPDATE_FAILED"

	ErrCodeSessionStoreFailed ErrorCode = "SESSION_STORE_FAILED"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeSearchQueryFailed        ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeSearchTimeout            ErrorCode = "SEARCH_TIMEOUT"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewParseError creates a non-retryable request parse error.
func NewParseError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeParseError,
		Message:   "Request could not be parsed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewProductNotFoundError creates a non-retryable product lookup error.
func NewProductNotFoundError(name string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProductNotFound,
		Message:   "Product not found in catalog",
		Details:   fmt.Sprintf("product: %s", name),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewProductSearchFailedError creates a retryable catalog search error.
func NewProductSearchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeProductSearchFailed,
		Message:   "Catalog search failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewOrderNotFoundError creates a non-retryable order lookup error.
func NewOrderNotFoundError(orderID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeOrderNotFound,
		Message:   "Order not found",
		Details:   fmt.Sprintf("orderId: %s", orderID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewOrderLookupFailedError creates a retryable order lookup error.
func NewOrderLookupFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeOrderLookupFailed,
		Message:   "Database error during order lookup",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewOrderCreateFailedError creates a retryable order insert error.
func NewOrderCreateFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeOrderCreateFailed,
		Message:   "Order creation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCartUpdateFailedError creates a retryable cart mutation error.
func NewCartUpdateFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCartUpdateFailed,
		Message:   "Cart update failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionStoreFailedError creates a retryable session store error.
func NewSessionStoreFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionStoreFailed,
		Message:   "Session history store error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchQueryFailedError creates a retryable search index error.
func NewSearchQueryFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchQueryFailed,
		Message:   "Search index query error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchTimeoutError creates a retryable search timeout error.
func NewSearchTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchTimeout,
		Message:   "Search index query timeout",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}
