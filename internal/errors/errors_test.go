package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorCodes(t *testing.T) {
	codes := []ErrorCode{
		CodeUnknown,
		CodeValidation,
		CodeConfiguration,
		CodeTimeout,
		CodeCanceled,
		CodeRangeParse,
		CodeRangeTooLarge,
		CodePoolExhausted,
		CodeHostUnreachable,
		CodeScanFailed,
		CodeTargetInvalid,
		CodeOutputInvalid,
		CodeFileNotFound,
		CodeFilePermission,
		CodeDirectoryCreate,
		CodeServiceUnavailable,
		CodeServiceTimeout,
		CodeServiceResponse,
	}

	for _, code := range codes {
		if string(code) == "" {
			t.Errorf("Error code %v should not be empty", code)
		}
	}
}

func TestSampleError(t *testing.T) {
	t.Run("basic error creation", func(t *testing.T) {
		err := NewSampleError(CodeValidation, "count out of bounds")
		if err.Code != CodeValidation {
			t.Errorf("Expected code %s, got %s", CodeValidation, err.Code)
		}
		if err.Message != "count out of bounds" {
			t.Errorf("Expected message 'count out of bounds', got '%s'", err.Message)
		}
		if err.Context == nil {
			t.Error("Context should be initialized")
		}
	})

	t.Run("error with range", func(t *testing.T) {
		cause := fmt.Errorf("invalid CIDR address: not-a-cidr")
		err := WrapSampleError(CodeRangeParse, "invalid IP range", "not-a-cidr", cause)
		if err.Range != "not-a-cidr" {
			t.Errorf("Expected range 'not-a-cidr', got '%s'", err.Range)
		}
		expected := "[RANGE_PARSE] invalid IP range (range: not-a-cidr)"
		if err.Error() != expected {
			t.Errorf("Expected error string '%s', got '%s'", expected, err.Error())
		}
		if !errors.Is(err, cause) {
			t.Error("Wrapped error should unwrap to its cause")
		}
	})

	t.Run("error without range", func(t *testing.T) {
		err := NewSampleError(CodePoolExhausted, "pool smaller than requested count")
		expected := "[POOL_EXHAUSTED] pool smaller than requested count"
		if err.Error() != expected {
			t.Errorf("Expected error string '%s', got '%s'", expected, err.Error())
		}
	})

	t.Run("with context", func(t *testing.T) {
		err := NewSampleError(CodePoolExhausted, "clamped").
			WithContext("requested", 300).
			WithContext("available", 254)
		if err.Context["requested"] != 300 {
			t.Errorf("Expected context requested=300, got %v", err.Context["requested"])
		}
		if err.Context["available"] != 254 {
			t.Errorf("Expected context available=254, got %v", err.Context["available"])
		}
	})
}

func TestScanError(t *testing.T) {
	t.Run("error with target", func(t *testing.T) {
		err := NewScanErrorWithTarget(CodeHostUnreachable, "host down", "192.168.1.1")
		if err.Target != "192.168.1.1" {
			t.Errorf("Expected target '192.168.1.1', got '%s'", err.Target)
		}
		expected := "[HOST_UNREACHABLE] host down (target: 192.168.1.1)"
		if err.Error() != expected {
			t.Errorf("Expected error string '%s', got '%s'", expected, err.Error())
		}
	})

	t.Run("wrapped error", func(t *testing.T) {
		cause := fmt.Errorf("connection refused")
		err := WrapScanErrorWithTarget(CodeScanFailed, "scan failed", "10.0.0.1", cause)
		if !errors.Is(err, cause) {
			t.Error("Wrapped error should unwrap to its cause")
		}
	})
}

func TestCheckError(t *testing.T) {
	cause := fmt.Errorf("dial tcp: timeout")
	err := WrapCheckError(CodeTimeout, "request timed out", "https://example.com", cause)
	expected := "[TIMEOUT] request timed out (url: https://example.com)"
	if err.Error() != expected {
		t.Errorf("Expected error string '%s', got '%s'", expected, err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("Wrapped error should unwrap to its cause")
	}
}

func TestConfigError(t *testing.T) {
	err := NewConfigFieldError(CodeValidation, "Invalid configuration value", "checker.workers", -1)
	expected := "[VALIDATION] Invalid configuration value (field: checker.workers)"
	if err.Error() != expected {
		t.Errorf("Expected error string '%s', got '%s'", expected, err.Error())
	}
}

func TestIsCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     ErrorCode
		expected bool
	}{
		{"sample error matching", NewSampleError(CodeValidation, "msg"), CodeValidation, true},
		{"sample error not matching", NewSampleError(CodeValidation, "msg"), CodeRangeParse, false},
		{"scan error matching", NewScanError(CodeScanFailed, "msg"), CodeScanFailed, true},
		{"check error matching", NewCheckError(CodeTimeout, "msg"), CodeTimeout, true},
		{"config error matching", NewConfigError(CodeConfiguration, "msg"), CodeConfiguration, true},
		{"plain error", fmt.Errorf("plain"), CodeValidation, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCode(tt.err, tt.code); got != tt.expected {
				t.Errorf("IsCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if code := GetCode(fmt.Errorf("plain")); code != CodeUnknown {
		t.Errorf("Expected CodeUnknown for plain error, got %s", code)
	}
	if code := GetCode(NewSampleError(CodeRangeParse, "msg")); code != CodeRangeParse {
		t.Errorf("Expected CodeRangeParse, got %s", code)
	}
}

func TestIsRetryable(t *testing.T) {
	if !IsRetryable(NewScanError(CodeTimeout, "timed out")) {
		t.Error("Timeout errors should be retryable")
	}
	if IsRetryable(NewSampleError(CodeValidation, "bad count")) {
		t.Error("Validation errors should not be retryable")
	}
}

func TestIsFatal(t *testing.T) {
	if !IsFatal(NewSampleError(CodeValidation, "bad count")) {
		t.Error("Validation errors should be fatal")
	}
	if IsFatal(NewSampleError(CodePoolExhausted, "clamped")) {
		t.Error("Pool exhaustion should not be fatal")
	}
}

func TestCommonConstructors(t *testing.T) {
	t.Run("invalid count", func(t *testing.T) {
		err := ErrInvalidCount(7, 10, 5000)
		if err.Code != CodeValidation {
			t.Errorf("Expected CodeValidation, got %s", err.Code)
		}
		expected := "requested count 7 must be between 10 and 5000"
		if err.Message != expected {
			t.Errorf("Expected message '%s', got '%s'", expected, err.Message)
		}
	})

	t.Run("invalid range", func(t *testing.T) {
		err := ErrInvalidRange("300.0.0.0/24", fmt.Errorf("invalid CIDR"))
		if err.Code != CodeRangeParse {
			t.Errorf("Expected CodeRangeParse, got %s", err.Code)
		}
		if err.Range != "300.0.0.0/24" {
			t.Errorf("Expected range '300.0.0.0/24', got '%s'", err.Range)
		}
	})

	t.Run("service unavailable", func(t *testing.T) {
		err := ErrServiceUnavailable("ollama", fmt.Errorf("connection refused"))
		if err.Code != CodeServiceUnavailable {
			t.Errorf("Expected CodeServiceUnavailable, got %s", err.Code)
		}
	})
}
