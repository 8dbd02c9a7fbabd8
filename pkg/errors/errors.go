package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeNetwork represents network-related errors (failed category fetches)
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeParsing represents HTML parsing errors
	ErrorTypeParsing ErrorType = "parsing"
	// ErrorTypeRateLimit represents rate limiting errors from the source site
	ErrorTypeRateLimit ErrorType = "rate_limit"
	// ErrorTypeDelivery represents messaging sink delivery errors
	ErrorTypeDelivery ErrorType = "delivery"
	// ErrorTypeCache represents cache-related errors
	ErrorTypeCache ErrorType = "cache"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// TrackerError represents a tracker-specific error
type TrackerError struct {
	Type     ErrorType
	Category string
	Message  string
	Err      error
	Time     time.Time
}

// Error implements the error interface
func (e *TrackerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Category, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Category, e.Message)
}

// Unwrap returns the underlying error
func (e *TrackerError) Unwrap() error {
	return e.Err
}

// New creates a new TrackerError
func New(errType ErrorType, category, message string, err error) *TrackerError {
	return &TrackerError{
		Type:     errType,
		Category: category,
		Message:  message,
		Err:      err,
		Time:     time.Now(),
	}
}

// NewNetwork creates a new network error
func NewNetwork(category, message string, err error) *TrackerError {
	return New(ErrorTypeNetwork, category, message, err)
}

// NewParsing creates a new parsing error
func NewParsing(category, message string, err error) *TrackerError {
	return New(ErrorTypeParsing, category, message, err)
}

// NewRateLimit creates a new rate limit error
func NewRateLimit(category string, duration time.Duration) *TrackerError {
	message := fmt.Sprintf("rate limited for %v", duration)
	return New(ErrorTypeRateLimit, category, message, nil)
}

// NewDelivery creates a new delivery error
func NewDelivery(category, message string, err error) *TrackerError {
	return New(ErrorTypeDelivery, category, message, err)
}

// NewCache creates a new cache error
func NewCache(category, message string, err error) *TrackerError {
	return New(ErrorTypeCache, category, message, err)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *TrackerError {
	return New(ErrorTypeConfiguration, "", message, err)
}

// IsType reports whether err is a TrackerError of the given type
func IsType(err error, errType ErrorType) bool {
	var te *TrackerError
	if errors.As(err, &te) {
		return te.Type == errType
	}
	return false
}
