// Package shared provides the error types used across the SDK packages.
package shared

import (
	"errors"
	"fmt"
)

// APIError is the base interface for all Surge SDK errors.
type APIError interface {
	error
	Type() string
}

// BaseError provides common error functionality.
type BaseError struct {
	message string
	cause   error
}

func (e *BaseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *BaseError) Unwrap() error {
	return e.cause
}

// Type returns the error type for BaseError.
func (e *BaseError) Type() string {
	return "base_error"
}

// MissingCredentialError indicates that no API key could be resolved for a
// call. It is always raised before any network I/O.
type MissingCredentialError struct {
	BaseError
}

// Type returns the error type for MissingCredentialError.
func (e *MissingCredentialError) Type() string {
	return "missing_credential_error"
}

// DefaultMissingCredentialMessage is used when no more specific context is
// available.
const DefaultMissingCredentialMessage = "No API key provided. Are you using the correct Surge API key?"

// NewMissingCredentialError creates a new MissingCredentialError. An empty
// message falls back to DefaultMissingCredentialMessage.
func NewMissingCredentialError(message string) *MissingCredentialError {
	if message == "" {
		message = DefaultMissingCredentialMessage
	}
	return &MissingCredentialError{
		BaseError: BaseError{message: message},
	}
}

// RequestError represents any transport-level failure: an HTTP error
// status, a malformed response body, an invalid verb, or an unexpected
// failure during the call.
type RequestError struct {
	BaseError
	StatusCode int
	Body       string
}

// Type returns the error type for RequestError.
func (e *RequestError) Type() string {
	return "request_error"
}

func (e *RequestError) Error() string {
	message := e.BaseError.Error()
	if e.StatusCode != 0 {
		message = fmt.Sprintf("%s (status code: %d)", message, e.StatusCode)
	}
	if e.Body != "" {
		message = fmt.Sprintf("%s\nResponse body: %s", message, e.Body)
	}
	return message
}

// NewRequestError creates a new RequestError.
func NewRequestError(message string, cause error) *RequestError {
	return &RequestError{
		BaseError: BaseError{message: message, cause: cause},
	}
}

// NewHTTPRequestError creates a RequestError for an HTTP error status,
// keeping the status detail and response body text available to callers.
func NewHTTPRequestError(message string, statusCode int, body string) *RequestError {
	return &RequestError{
		BaseError:  BaseError{message: message},
		StatusCode: statusCode,
		Body:       body,
	}
}

// MissingIDError indicates an entity was constructed without a required
// identifier. Always a local, pre-network fault.
type MissingIDError struct {
	BaseError
	Field string
}

// Type returns the error type for MissingIDError.
func (e *MissingIDError) Type() string {
	return "missing_id_error"
}

// NewMissingIDError creates a new MissingIDError for the named identifier
// field.
func NewMissingIDError(field string) *MissingIDError {
	return &MissingIDError{
		BaseError: BaseError{message: fmt.Sprintf("Missing required identifier %q.", field)},
		Field:     field,
	}
}

// MissingAttributeError indicates a required non-identifier attribute was
// absent or empty.
type MissingAttributeError struct {
	BaseError
}

// Type returns the error type for MissingAttributeError.
func (e *MissingAttributeError) Type() string {
	return "missing_attribute_error"
}

// NewMissingAttributeError creates a new MissingAttributeError.
func NewMissingAttributeError(message string) *MissingAttributeError {
	return &MissingAttributeError{
		BaseError: BaseError{message: message},
	}
}

// QuestionTypeError indicates a question-accepting operation received
// something that is not a usable concrete question.
type QuestionTypeError struct {
	BaseError
}

// Type returns the error type for QuestionTypeError.
func (e *QuestionTypeError) Type() string {
	return "question_type_error"
}

// DefaultQuestionTypeMessage mirrors the platform's own wording.
const DefaultQuestionTypeMessage = "All questions added to a new project must be concrete question variants."

// NewQuestionTypeError creates a new QuestionTypeError. An empty message
// falls back to DefaultQuestionTypeMessage.
func NewQuestionTypeError(message string) *QuestionTypeError {
	if message == "" {
		message = DefaultQuestionTypeMessage
	}
	return &QuestionTypeError{
		BaseError: BaseError{message: message},
	}
}

// TaskDataError indicates bulk task creation received unusable input.
type TaskDataError struct {
	BaseError
}

// Type returns the error type for TaskDataError.
func (e *TaskDataError) Type() string {
	return "task_data_error"
}

// NewTaskDataError creates a new TaskDataError.
func NewTaskDataError(message string) *TaskDataError {
	return &TaskDataError{
		BaseError: BaseError{message: message},
	}
}

// ReportTimeoutError indicates the report polling loop exhausted its time
// budget without the server reaching a terminal state. Kept distinct from
// RequestError so callers can tell a local timeout from a server-reported
// failure.
type ReportTimeoutError struct {
	BaseError
	Budget string
}

// Type returns the error type for ReportTimeoutError.
func (e *ReportTimeoutError) Type() string {
	return "report_timeout_error"
}

// NewReportTimeoutError creates a new ReportTimeoutError.
func NewReportTimeoutError(message, budget string) *ReportTimeoutError {
	return &ReportTimeoutError{
		BaseError: BaseError{message: message},
		Budget:    budget,
	}
}

// Error type checking helpers (follows the os.IsNotExist pattern).
// These use errors.As() internally to handle wrapped errors correctly.

// IsMissingCredentialError reports whether err is or wraps a MissingCredentialError.
func IsMissingCredentialError(err error) bool {
	var target *MissingCredentialError
	return errors.As(err, &target)
}

// IsRequestError reports whether err is or wraps a RequestError.
func IsRequestError(err error) bool {
	var target *RequestError
	return errors.As(err, &target)
}

// IsMissingIDError reports whether err is or wraps a MissingIDError.
func IsMissingIDError(err error) bool {
	var target *MissingIDError
	return errors.As(err, &target)
}

// IsMissingAttributeError reports whether err is or wraps a MissingAttributeError.
func IsMissingAttributeError(err error) bool {
	var target *MissingAttributeError
	return errors.As(err, &target)
}

// IsQuestionTypeError reports whether err is or wraps a QuestionTypeError.
func IsQuestionTypeError(err error) bool {
	var target *QuestionTypeError
	return errors.As(err, &target)
}

// IsTaskDataError reports whether err is or wraps a TaskDataError.
func IsTaskDataError(err error) bool {
	var target *TaskDataError
	return errors.As(err, &target)
}

// IsReportTimeoutError reports whether err is or wraps a ReportTimeoutError.
func IsReportTimeoutError(err error) bool {
	var target *ReportTimeoutError
	return errors.As(err, &target)
}

// Error type extraction helpers.
// Each returns a typed pointer for field access, or nil if not matching.

// AsMissingCredentialError returns the error as a *MissingCredentialError
// if it is one, or nil otherwise.
func AsMissingCredentialError(err error) *MissingCredentialError {
	var target *MissingCredentialError
	if errors.As(err, &target) {
		return target
	}
	return nil
}

// AsRequestError returns the error as a *RequestError if it is one, or nil
// otherwise.
func AsRequestError(err error) *RequestError {
	var target *RequestError
	if errors.As(err, &target) {
		return target
	}
	return nil
}

// AsMissingIDError returns the error as a *MissingIDError if it is one, or
// nil otherwise.
func AsMissingIDError(err error) *MissingIDError {
	var target *MissingIDError
	if errors.As(err, &target) {
		return target
	}
	return nil
}

// AsMissingAttributeError returns the error as a *MissingAttributeError if
// it is one, or nil otherwise.
func AsMissingAttributeError(err error) *MissingAttributeError {
	var target *MissingAttributeError
	if errors.As(err, &target) {
		return target
	}
	return nil
}

// AsQuestionTypeError returns the error as a *QuestionTypeError if it is
// one, or nil otherwise.
func AsQuestionTypeError(err error) *QuestionTypeError {
	var target *QuestionTypeError
	if errors.As(err, &target) {
		return target
	}
	return nil
}

// AsTaskDataError returns the error as a *TaskDataError if it is one, or
// nil otherwise.
func AsTaskDataError(err error) *TaskDataError {
	var target *TaskDataError
	if errors.As(err, &target) {
		return target
	}
	return nil
}

// AsReportTimeoutError returns the error as a *ReportTimeoutError if it is
// one, or nil otherwise.
func AsReportTimeoutError(err error) *ReportTimeoutError {
	var target *ReportTimeoutError
	if errors.As(err, &target) {
		return target
	}
	return nil
}
