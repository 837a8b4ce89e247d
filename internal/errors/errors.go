// Package errors provides structured error handling for netsurvey operations.
// It defines error codes, error types, and provides utilities for creating
// and handling errors with context and structured information.
package errors

import (
	"fmt"
)

// ErrorCode represents different types of errors that can occur.
type ErrorCode string

const (
	// General errors.
	CodeUnknown       ErrorCode = "UNKNOWN"
	CodeValidation    ErrorCode = "VALIDATION"
	CodeConfiguration ErrorCode = "CONFIGURATION"
	CodeTimeout       ErrorCode = "TIMEOUT"
	CodeCanceled      ErrorCode = "CANCELED"

	// Sampling errors.
	CodeRangeParse    ErrorCode = "RANGE_PARSE"
	CodeRangeTooLarge ErrorCode = "RANGE_TOO_LARGE"
	CodePoolExhausted ErrorCode = "POOL_EXHAUSTED"

	// Network and scanning errors.
	CodeHostUnreachable ErrorCode = "HOST_UNREACHABLE"
	CodeScanFailed      ErrorCode = "SCAN_FAILED"
	CodeTargetInvalid   ErrorCode = "TARGET_INVALID"
	CodeOutputInvalid   ErrorCode = "OUTPUT_INVALID"

	// File system errors.
	CodeFileNotFound    ErrorCode = "FILE_NOT_FOUND"
	CodeFilePermission  ErrorCode = "FILE_PERMISSION"
	CodeDirectoryCreate ErrorCode = "DIRECTORY_CREATE"

	// Service errors (local LLM and other collaborators).
	CodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	CodeServiceTimeout     ErrorCode = "SERVICE_TIMEOUT"
	CodeServiceResponse    ErrorCode = "SERVICE_RESPONSE"
)

// SampleError represents an error that occurred during IP sampling operations.
type SampleError struct {
	Code    ErrorCode
	Message string
	Range   string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface.
func (e *SampleError) Error() string {
	if e.Range != "" {
		return fmt.Sprintf("[%s] %s (range: %s)", e.Code, e.Message, e.Range)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *SampleError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error.
func (e *SampleError) WithContext(key string, value interface{}) *SampleError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewSampleError creates a new sample error with the specified code and message.
func NewSampleError(code ErrorCode, message string) *SampleError {
	return &SampleError{
		Code:    code,
		Message: message,
		Context: make(map[string]interface{}),
	}
}

// WrapSampleError wraps an existing error as a sample error for a specific range.
func WrapSampleError(code ErrorCode, message, ipRange string, err error) *SampleError {
	return &SampleError{
		Code:    code,
		Message: message,
		Range:   ipRange,
		Cause:   err,
		Context: make(map[string]interface{}),
	}
}

// ScanError represents an error that occurred while scanning or analyzing a target.
type ScanError struct {
	Code      ErrorCode
	Message   string
	Target    string
	Operation string
	Cause     error
	Context   map[string]interface{}
}

// Error implements the error interface.
func (e *ScanError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("[%s] %s (target: %s)", e.Code, e.Message, e.Target)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *ScanError) Unwrap() error {
	return e.Cause
}

// NewScanError creates a new scan error with the specified code and message.
func NewScanError(code ErrorCode, message string) *ScanError {
	return &ScanError{
		Code:    code,
		Message: message,
		Context: make(map[string]interface{}),
	}
}

// NewScanErrorWithTarget creates a scan error for a specific target.
func NewScanErrorWithTarget(code ErrorCode, message, target string) *ScanError {
	return &ScanError{
		Code:    code,
		Message: message,
		Target:  target,
		Context: make(map[string]interface{}),
	}
}

// WrapScanError wraps an existing error as a scan error.
func WrapScanError(code ErrorCode, message string, err error) *ScanError {
	return &ScanError{
		Code:    code,
		Message: message,
		Cause:   err,
		Context: make(map[string]interface{}),
	}
}

// WrapScanErrorWithTarget wraps an error with target information.
func WrapScanErrorWithTarget(code ErrorCode, message, target string, err error) *ScanError {
	return &ScanError{
		Code:    code,
		Message: message,
		Target:  target,
		Cause:   err,
		Context: make(map[string]interface{}),
	}
}

// CheckError represents an error that occurred while checking a URL.
type CheckError struct {
	Code    ErrorCode
	Message string
	URL     string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface.
func (e *CheckError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("[%s] %s (url: %s)", e.Code, e.Message, e.URL)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *CheckError) Unwrap() error {
	return e.Cause
}

// NewCheckError creates a new check error.
func NewCheckError(code ErrorCode, message string) *CheckError {
	return &CheckError{
		Code:    code,
		Message: message,
		Context: make(map[string]interface{}),
	}
}

// WrapCheckError wraps an existing error as a check error for a specific URL.
func WrapCheckError(code ErrorCode, message, url string, err error) *CheckError {
	return &CheckError{
		Code:    code,
		Message: message,
		URL:     url,
		Cause:   err,
		Context: make(map[string]interface{}),
	}
}

// ConfigError represents configuration-related errors.
type ConfigError struct {
	Code    ErrorCode
	Message string
	Field   string
	Value   interface{}
	Cause   error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("[%s] %s (field: %s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// NewConfigError creates a new configuration error.
func NewConfigError(code ErrorCode, message string) *ConfigError {
	return &ConfigError{
		Code:    code,
		Message: message,
	}
}

// NewConfigFieldError creates a configuration error for a specific field.
func NewConfigFieldError(code ErrorCode, message, field string, value interface{}) *ConfigError {
	return &ConfigError{
		Code:    code,
		Message: message,
		Field:   field,
		Value:   value,
	}
}

// WrapConfigError wraps an existing error as a configuration error.
func WrapConfigError(code ErrorCode, message string, err error) *ConfigError {
	return &ConfigError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Utility functions for common error operations

// IsCode checks if an error has a specific error code.
func IsCode(err error, code ErrorCode) bool {
	switch e := err.(type) {
	case *SampleError:
		return e.Code == code
	case *ScanError:
		return e.Code == code
	case *CheckError:
		return e.Code == code
	case *ConfigError:
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error if it has one.
func GetCode(err error) ErrorCode {
	switch e := err.(type) {
	case *SampleError:
		return e.Code
	case *ScanError:
		return e.Code
	case *CheckError:
		return e.Code
	case *ConfigError:
		return e.Code
	}
	return CodeUnknown
}

// IsRetryable determines if an error indicates a retryable condition.
func IsRetryable(err error) bool {
	code := GetCode(err)
	switch code {
	case CodeTimeout, CodeHostUnreachable, CodeServiceTimeout:
		return true
	default:
		return false
	}
}

// IsFatal determines if an error indicates a fatal condition that should stop execution.
func IsFatal(err error) bool {
	code := GetCode(err)
	switch code {
	case CodeValidation, CodeConfiguration, CodeFileNotFound:
		return true
	default:
		return false
	}
}

// Common error creation functions

// ErrInvalidCount creates an error for a sample count outside the allowed bounds.
func ErrInvalidCount(count, minCount, maxCount int) *SampleError {
	return NewSampleError(CodeValidation,
		fmt.Sprintf("requested count %d must be between %d and %d", count, minCount, maxCount))
}

// ErrInvalidRange creates an error for a malformed CIDR range.
func ErrInvalidRange(ipRange string, err error) *SampleError {
	return WrapSampleError(CodeRangeParse, "invalid IP range", ipRange, err)
}

// ErrInvalidTarget creates an error for invalid scan targets.
func ErrInvalidTarget(target string) *ScanError {
	return NewScanErrorWithTarget(CodeTargetInvalid, "Invalid target specification", target)
}

// ErrScanTimeout creates an error for scan timeouts.
func ErrScanTimeout(target string) *ScanError {
	return NewScanErrorWithTarget(CodeTimeout, "Scan operation timed out", target)
}

// ErrServiceUnavailable creates an error for an unreachable collaborator service.
func ErrServiceUnavailable(service string, err error) *ScanError {
	return WrapScanError(CodeServiceUnavailable, fmt.Sprintf("%s service is unavailable", service), err)
}

// ErrConfigInvalid creates an error for invalid configuration.
func ErrConfigInvalid(field string, value interface{}) *ConfigError {
	return NewConfigFieldError(CodeValidation, "Invalid configuration value", field, value)
}

// ErrConfigMissing creates an error for missing required configuration.
func ErrConfigMissing(field string) *ConfigError {
	return NewConfigFieldError(CodeConfiguration, "Required configuration field missing", field, nil)
}
