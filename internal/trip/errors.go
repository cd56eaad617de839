package trip

import "net/http"

type ErrorCode string

const (
	ErrorCodeValidation      ErrorCode = "VALIDATION"
	ErrorCodeResolution      ErrorCode = "RESOLUTION_FAILED"
	ErrorCodeAuth            ErrorCode = "AUTH_FAILED"
	ErrorCodeUpstream        ErrorCode = "UPSTREAM_FAILURE"
	ErrorCodeInternalFailure ErrorCode = "INTERNAL_FAILURE"
)

// AppError carries an HTTP status and a stable code for the handler layer.
type AppError struct {
	Status  int
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func newValidationError(message string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Code: ErrorCodeValidation, Message: message}
}

func newResolutionError(err error) *AppError {
	return &AppError{Status: http.StatusNotFound, Code: ErrorCodeResolution, Message: "location resolution failed", Err: err}
}

func newAuthError(err error) *AppError {
	return &AppError{Status: http.StatusBadGateway, Code: ErrorCodeAuth, Message: "provider authentication failed", Err: err}
}
