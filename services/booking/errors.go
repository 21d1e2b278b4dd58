package booking

import "fmt"

// Workflow failure codes surfaced to the presentation layer.
const (
	CodeValidationError = "validationError"
	CodeAuthFailed      = "authFailed"
	CodePersistence     = "persistenceError"
)

// WorkflowError is a coded failure of one submission attempt.
type WorkflowError struct {
	Code    string             `json:"code"`
	Message string             `json:"message"`
	Reasons []ValidationReason `json:"reasons,omitempty"`
}

func (e *WorkflowError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewValidationError wraps a failed validation result.
func NewValidationError(res ValidationResult) *WorkflowError {
	return &WorkflowError{
		Code:    CodeValidationError,
		Message: "booking draft failed validation",
		Reasons: res.Reasons,
	}
}

// NewAuthError signals that no identity could be established.
func NewAuthError(err error) *WorkflowError {
	return &WorkflowError{
		Code:    CodeAuthFailed,
		Message: fmt.Sprintf("could not establish identity: %v", err),
	}
}

// NewPersistenceError signals a rejected or failed gateway write.
func NewPersistenceError(err error) *WorkflowError {
	return &WorkflowError{
		Code:    CodePersistence,
		Message: fmt.Sprintf("failed to store booking: %v", err),
	}
}
