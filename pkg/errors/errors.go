package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrSnapshotNotFound   = errors.New("snapshot not found")
	ErrPreferenceNotFound = errors.New("preference not found")
	ErrInvalidBasis       = errors.New("invalid nisab basis")
	ErrInvalidCurrency    = errors.New("invalid currency code")
	ErrMissingAPIKey      = errors.New("metals provider API key is not configured")
	ErrRateUnavailable    = errors.New("metal rate unavailable")
	ErrRateNotCached      = errors.New("no cached metal rate")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeSnapshotNotFound   = "SNAPSHOT_NOT_FOUND"
	ErrCodePreferenceNotFound = "PREFERENCE_NOT_FOUND"
	ErrCodeInvalidBasis       = "INVALID_NISAB_BASIS"
	ErrCodeInvalidCurrency    = "INVALID_CURRENCY"
	ErrCodeMissingAPIKey      = "MISSING_API_KEY"
	ErrCodeRateProvider       = "RATE_PROVIDER_ERROR"
	ErrCodeRateUnavailable    = "RATE_UNAVAILABLE"
	ErrCodeRateNotCached      = "RATE_NOT_CACHED"
	ErrCodeDatabaseError      = "DATABASE_ERROR"
	ErrCodeCacheError         = "CACHE_ERROR"
)

// Wrap common errors with business context
func WrapSnapshotNotFound(deviceID string) *BusinessError {
	return NewBusinessError(
		ErrCodeSnapshotNotFound,
		fmt.Sprintf("No snapshot stored for device %s", deviceID),
		ErrSnapshotNotFound,
	)
}

func WrapInvalidBasis(value string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidBasis,
		fmt.Sprintf("Nisab basis must be gold or silver, got %q", value),
		ErrInvalidBasis,
	)
}

func WrapInvalidCurrency(value string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidCurrency,
		fmt.Sprintf("Currency must be a three-letter ISO-4217 code, got %q", value),
		ErrInvalidCurrency,
	)
}

func WrapMissingAPIKey() *BusinessError {
	return NewBusinessError(
		ErrCodeMissingAPIKey,
		"METALS_API_KEY must be configured to fetch market rates",
		ErrMissingAPIKey,
	)
}

func WrapRateProviderError(status int, err error) *BusinessError {
	return NewBusinessError(
		ErrCodeRateProvider,
		fmt.Sprintf("Metals provider request failed with status %d", status),
		err,
	)
}

func WrapRateUnavailable(basis, currency string) *BusinessError {
	return NewBusinessError(
		ErrCodeRateUnavailable,
		fmt.Sprintf("Provider returned no usable %s rate for %s", basis, currency),
		ErrRateUnavailable,
	)
}

func WrapRateNotCached(basis, currency string) *BusinessError {
	return NewBusinessError(
		ErrCodeRateNotCached,
		fmt.Sprintf("No cached %s rate for %s", basis, currency),
		ErrRateNotCached,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}
