// Package errors provides standardized error handling for the wizard engine.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeStepValidationFailed ErrorCode = "STEP_VALIDATION_FAILED"
	ErrCodeUnknownStep          ErrorCode = "UNKNOWN_STEP"
	ErrCodeStepNotSkippable     ErrorCode = "STEP_NOT_SKIPPABLE"

	ErrCodeReferentialIntegrity ErrorCode = "REFERENTIAL_INTEGRITY_VIOLATION"
	ErrCodeSessionFinalized     ErrorCode = "SESSION_FINALIZED"
	ErrCodeSessionNotComplete   ErrorCode = "SESSION_NOT_COMPLETE"

	ErrCodePrefillFailed         ErrorCode = "PREFILL_FAILED"
	ErrCodePrefillPayloadInvalid ErrorCode = "PREFILL_PAYLOAD_INVALID"
	ErrCodePrefillStale          ErrorCode = "PREFILL_STALE"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeCacheUnavailable       ErrorCode = "CACHE_UNAVAILABLE"
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

// ==========================
// 2. Error Constructors
// ==========================

// NewStepValidationFailedError creates a non-retryable step validation error.
// Details carries the flattened field-path list so callers can log it whole.
func NewStepValidationFailedError(stepID, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeStepValidationFailed,
		Message:   "Step data validation failed",
		Details:   details,
		Retryable: false,
		Metadata:  map[string]interface{}{"stepId": stepID},
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownStepError creates a non-retryable unknown step error.
func NewUnknownStepError(stepID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownStep,
		Message:   "No such wizard step",
		Details:   fmt.Sprintf("stepId: %s", stepID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStepNotSkippableError creates a non-retryable error for a skip attempt
// on a step whose skip predicate is false.
func NewStepNotSkippableError(stepID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeStepNotSkippable,
		Message:   "Step cannot be skipped for the selected programs",
		Details:   fmt.Sprintf("stepId: %s", stepID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewReferentialIntegrityError creates a non-retryable error for a dangling
// person reference discovered at finalization.
func NewReferentialIntegrityError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeReferentialIntegrity,
		Message:   "Application references a household member that no longer exists",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionFinalizedError creates a non-retryable error for mutations after submit.
func NewSessionFinalizedError() *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionFinalized,
		Message:   "Application has already been submitted",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionNotCompleteError creates a non-retryable error for a submit attempt
// before the final step.
func NewSessionNotCompleteError(currentStep int) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionNotComplete,
		Message:   "Submit is only available from the final step",
		Details:   fmt.Sprintf("currentStep: %d", currentStep),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewPrefillFailedError creates a retryable document prefill error.
func NewPrefillFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodePrefillFailed,
		Message:   "Document prefill service error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewPrefillPayloadInvalidError creates a non-retryable error for a prefill
// record that failed its schema check.
func NewPrefillPayloadInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodePrefillPayloadInvalid,
		Message:   "Prefill record does not match the expected shape",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewPrefillStaleError creates a non-retryable error for a prefill result that
// resolved after the user left the step it was requested on.
func NewPrefillStaleError(stepID string, epoch uint64) *StandardError {
	return &StandardError{
		Code:      ErrCodePrefillStale,
		Message:   "Prefill result discarded as stale",
		Details:   fmt.Sprintf("stepId: %s, epoch: %d", stepID, epoch),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification send error.
func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Acknowledgement delivery failed",
		Details:   fmt.Sprintf("channel: %s, error: %s", channel, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheUnavailableError creates a retryable cache error.
func NewCacheUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheUnavailable,
		Message:   "Prefill cache unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// IsRetryable reports whether err is a retryable StandardError.
func IsRetryable(err error) bool {
	if se, ok := err.(*StandardError); ok {
		return se.Retryable
	}
	return false
}

// HasCode reports whether err is a StandardError with the given code.
func HasCode(err error, code ErrorCode) bool {
	se, ok := err.(*StandardError)
	return ok && se.Code == code
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "REFERENTIAL"):
		return "VALIDATION"
	case strings.Contains(codeStr, "STEP") || strings.Contains(codeStr, "SESSION"):
		return "NAVIGATION"
	case strings.Contains(codeStr, "PREFILL") || strings.Contains(codeStr, "CACHE"):
		return "PREFILL"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	default:
		return "OTHER"
	}
}
