// Package errors provides error handling utilities.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Type identifies the category of error
type Type string

const (
	// TypeInput indicates a malformed request
	TypeInput Type = "INPUT_ERROR"

	// TypeInvalidDimensions indicates a non-positive length, width or height
	TypeInvalidDimensions Type = "INVALID_DIMENSIONS"

	// TypeInvalidWeight indicates a non-positive actual weight
	TypeInvalidWeight Type = "INVALID_WEIGHT"

	// TypeInvalidMonetary indicates a non-positive price or exchange rate
	TypeInvalidMonetary Type = "INVALID_MONETARY_INPUT"

	// TypeInvalidParameter indicates an unknown or non-positive formula parameter
	TypeInvalidParameter Type = "INVALID_PARAMETER"

	// TypeRateUnavailable indicates no exchange rate for a currency
	TypeRateUnavailable Type = "RATE_UNAVAILABLE"

	// TypeParsing indicates a parsing error
	TypeParsing Type = "PARSING_ERROR"

	// TypeConfig indicates a configuration error
	TypeConfig Type = "CONFIG_ERROR"

	// TypeNetwork indicates a network error
	TypeNetwork Type = "NETWORK_ERROR"

	// TypeInternal indicates an internal error
	TypeInternal Type = "INTERNAL_ERROR"
)

// Error represents a domain error with context
type Error struct {
	Type    Type                   `json:"type"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error is of a specific type
func (e *Error) Is(t Type) bool {
	return e.Type == t
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with context
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(errType Type, cause error, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// TypeOf returns the type of the first *Error in err's chain, or
// TypeInternal when there is none
func TypeOf(err error) Type {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type
	}
	return TypeInternal
}

// IsType checks if any error in err's chain is of a specific type
func IsType(err error, t Type) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type == t
	}
	return false
}

// IsInput reports whether err was caused by the caller's input
func IsInput(err error) bool {
	switch TypeOf(err) {
	case TypeInput, TypeInvalidDimensions, TypeInvalidWeight, TypeInvalidMonetary, TypeInvalidParameter:
		return true
	}
	return false
}

// Input creates an input error
func Input(message string) *Error {
	return New(TypeInput, message)
}

// InvalidDimensions creates a dimensions error
func InvalidDimensions(message string) *Error {
	return New(TypeInvalidDimensions, message)
}

// InvalidWeight creates a weight error
func InvalidWeight(message string) *Error {
	return New(TypeInvalidWeight, message)
}

// InvalidMonetary creates a price or exchange-rate error
func InvalidMonetary(message string) *Error {
	return New(TypeInvalidMonetary, message)
}

// InvalidParameter creates a formula parameter error
func InvalidParameter(message string, cause error) *Error {
	return Wrap(TypeInvalidParameter, message, cause)
}

// RateUnavailable creates a missing exchange-rate error
func RateUnavailable(currency string) *Error {
	return Newf(TypeRateUnavailable, "no exchange rate for currency %s", currency)
}

// Parsing creates a parsing error
func Parsing(message string, cause error) *Error {
	return Wrap(TypeParsing, message, cause)
}

// Config creates a configuration error
func Config(message string, cause error) *Error {
	return Wrap(TypeConfig, message, cause)
}

// Network creates a network error
func Network(message string, cause error) *Error {
	return Wrap(TypeNetwork, message, cause)
}

// Internal creates an internal error
func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}
