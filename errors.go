package surge

import (
	"github.com/surgehq/surge-go/internal/shared"
)

// APIError represents the base interface for all SDK errors.
type APIError = shared.APIError

// BaseError provides common error functionality across the SDK.
type BaseError = shared.BaseError

// MissingCredentialError indicates no usable API key at call time.
type MissingCredentialError = shared.MissingCredentialError

// RequestError is the catch-all for transport failures.
type RequestError = shared.RequestError

// MissingIDError indicates an entity was constructed without a required
// identifier.
type MissingIDError = shared.MissingIDError

// MissingAttributeError indicates a required attribute was absent or empty.
type MissingAttributeError = shared.MissingAttributeError

// QuestionTypeError indicates a question-accepting operation received a
// non-question element.
type QuestionTypeError = shared.QuestionTypeError

// TaskDataError indicates bulk task creation received unusable input.
type TaskDataError = shared.TaskDataError

// ReportTimeoutError indicates the report polling loop exhausted its time
// budget.
type ReportTimeoutError = shared.ReportTimeoutError

// NewMissingCredentialError creates a new missing-credential error.
var NewMissingCredentialError = shared.NewMissingCredentialError

// NewRequestError creates a new request error.
var NewRequestError = shared.NewRequestError

// NewMissingIDError creates a new missing-id error.
var NewMissingIDError = shared.NewMissingIDError

// NewMissingAttributeError creates a new missing-attribute error.
var NewMissingAttributeError = shared.NewMissingAttributeError

// NewQuestionTypeError creates a new question-type error.
var NewQuestionTypeError = shared.NewQuestionTypeError

// NewTaskDataError creates a new task-data error.
var NewTaskDataError = shared.NewTaskDataError

// NewReportTimeoutError creates a new report-timeout error.
var NewReportTimeoutError = shared.NewReportTimeoutError

// Error type checking helpers (Go-specific, follows os.IsNotExist pattern).
// These use errors.As() internally to handle wrapped errors correctly.

// IsMissingCredentialError reports whether err is or wraps a MissingCredentialError.
var IsMissingCredentialError = shared.IsMissingCredentialError

// IsRequestError reports whether err is or wraps a RequestError.
var IsRequestError = shared.IsRequestError

// IsMissingIDError reports whether err is or wraps a MissingIDError.
var IsMissingIDError = shared.IsMissingIDError

// IsMissingAttributeError reports whether err is or wraps a MissingAttributeError.
var IsMissingAttributeError = shared.IsMissingAttributeError

// IsQuestionTypeError reports whether err is or wraps a QuestionTypeError.
var IsQuestionTypeError = shared.IsQuestionTypeError

// IsTaskDataError reports whether err is or wraps a TaskDataError.
var IsTaskDataError = shared.IsTaskDataError

// IsReportTimeoutError reports whether err is or wraps a ReportTimeoutError.
var IsReportTimeoutError = shared.IsReportTimeoutError

// Error type extraction helpers (Go-specific).
// Each returns a typed pointer for field access, or nil if not matching.

// AsMissingCredentialError returns the error as a *MissingCredentialError
// if it is one, or nil otherwise.
var AsMissingCredentialError = shared.AsMissingCredentialError

// AsRequestError returns the error as a *RequestError if it is one, or nil
// otherwise.
var AsRequestError = shared.AsRequestError

// AsMissingIDError returns the error as a *MissingIDError if it is one, or
// nil otherwise.
var AsMissingIDError = shared.AsMissingIDError

// AsMissingAttributeError returns the error as a *MissingAttributeError if
// it is one, or nil otherwise.
var AsMissingAttributeError = shared.AsMissingAttributeError

// AsQuestionTypeError returns the error as a *QuestionTypeError if it is
// one, or nil otherwise.
var AsQuestionTypeError = shared.AsQuestionTypeError

// AsTaskDataError returns the error as a *TaskDataError if it is one, or
// nil otherwise.
var AsTaskDataError = shared.AsTaskDataError

// AsReportTimeoutError returns the error as a *ReportTimeoutError if it is
// one, or nil otherwise.
var AsReportTimeoutError = shared.AsReportTimeoutError
