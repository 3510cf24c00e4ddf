package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType categorizes different error types
type ErrorType string

const (
	// Network errors
	ErrorTypeNetwork    ErrorType = "network"
	ErrorTypeTimeout    ErrorType = "timeout"
	ErrorTypeConnection ErrorType = "connection"

	// Authentication errors
	ErrorTypeAuth           ErrorType = "auth"
	ErrorTypeUnauthorized   ErrorType = "unauthorized"
	ErrorTypeForbidden      ErrorType = "forbidden"
	ErrorTypeSessionExpired ErrorType = "session_expired"

	// Validation errors
	ErrorTypeValidation ErrorType = "validation"

	// Server errors
	ErrorTypeServer    ErrorType = "server"
	ErrorTypeNotFound  ErrorType = "not_found"
	ErrorTypeRateLimit ErrorType = "rate_limit"

	// Unknown errors
	ErrorTypeUnknown ErrorType = "unknown"
)

// ClientError represents a structured error with context
type ClientError struct {
	Type       ErrorType
	Message    string
	Cause      error
	Suggestion string
	StatusCode int
	RetryAfter int
}

// Error implements the error interface
func (e *ClientError) Error() string {
	return e.Message
}

// WithSuggestion adds a helpful suggestion to the error
func (e *ClientError) WithSuggestion(suggestion string) *ClientError {
	e.Suggestion = suggestion
	return e
}

// HasSuggestion returns true if the error has a suggestion
func (e *ClientError) HasSuggestion() bool {
	return e.Suggestion != ""
}

// Unwrap returns the underlying error
func (e *ClientError) Unwrap() error {
	return e.Cause
}

// NewClientError creates a new client error
func NewClientError(errorType ErrorType, message string, cause error) *ClientError {
	return &ClientError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// NetworkError creates a network error
func NetworkError(message string) *ClientError {
	err := NewClientError(ErrorTypeNetwork, message, nil)
	err.Suggestion = "Check your internet connection and try again."
	return err
}

// TimeoutError creates a timeout error
func TimeoutError() *ClientError {
	err := NewClientError(ErrorTypeTimeout, "Request timed out", nil)
	err.Suggestion = "The server took too long to respond. Try again."
	return err
}

// ConnectionError creates a websocket connection error
func ConnectionError(message string) *ClientError {
	err := NewClientError(ErrorTypeConnection, message, nil)
	err.Suggestion = "Run 'retrospace-msg watch' again to reconnect."
	return err
}

// AuthError creates an authentication error
func AuthError(message string) *ClientError {
	err := NewClientError(ErrorTypeAuth, message, nil)
	err.Suggestion = "Try logging in again with 'retrospace-msg auth login'"
	return err
}

// SessionExpiredError creates a session expired error
func SessionExpiredError() *ClientError {
	err := NewClientError(ErrorTypeSessionExpired, "Your session has expired", nil)
	err.Suggestion = "Run 'retrospace-msg auth login' to refresh your session."
	return err
}

// UnauthorizedError creates an unauthorized error
func UnauthorizedError() *ClientError {
	err := NewClientError(ErrorTypeUnauthorized, "You don't have permission to perform this action", nil)
	err.Suggestion = "Make sure you're logged in."
	return err
}

// ForbiddenError creates a forbidden error
func ForbiddenError() *ClientError {
	err := NewClientError(ErrorTypeForbidden, "Access denied", nil)
	return err
}

// ValidationError creates a validation error
func ValidationError(field, reason string) *ClientError {
	message := fmt.Sprintf("Validation error: %s - %s", field, reason)
	return NewClientError(ErrorTypeValidation, message, nil)
}

// ServerError creates a server error
func ServerError() *ClientError {
	err := NewClientError(ErrorTypeServer, "Server error", nil)
	err.Suggestion = "The server encountered an error. Try again in a few moments."
	return err
}

// NotFoundError creates a not found error
func NotFoundError(resourceType, identifier string) *ClientError {
	return NewClientError(ErrorTypeNotFound,
		fmt.Sprintf("%s not found: %s", resourceType, identifier),
		nil)
}

// RateLimitError creates a rate limit error
func RateLimitError(retryAfter int) *ClientError {
	err := NewClientError(ErrorTypeRateLimit,
		"Rate limit exceeded. Too many requests.",
		nil)
	err.RetryAfter = retryAfter
	err.Suggestion = fmt.Sprintf("Please wait %d seconds before trying again.", retryAfter)
	return err
}

// CategorizeError converts a standard error into a ClientError
func CategorizeError(err error) *ClientError {
	if err == nil {
		return nil
	}

	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr
	}

	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "connection refused"):
		return NetworkError("Could not connect to server. Make sure it's running.")
	case strings.Contains(errMsg, "timeout"):
		return TimeoutError()
	case strings.Contains(errMsg, "context deadline exceeded"):
		return TimeoutError()
	case strings.Contains(errMsg, "401") || strings.Contains(errMsg, "unauthorized"):
		return AuthError("Invalid credentials")
	case strings.Contains(errMsg, "403") || strings.Contains(errMsg, "forbidden"):
		return ForbiddenError()
	case strings.Contains(errMsg, "404") || strings.Contains(errMsg, "not found"):
		return NotFoundError("Resource", "unknown")
	case strings.Contains(errMsg, "429") || strings.Contains(errMsg, "rate limit"):
		return RateLimitError(60)
	case strings.Contains(errMsg, "500") || strings.Contains(errMsg, "server error"):
		return ServerError()
	default:
		return NewClientError(ErrorTypeUnknown, errMsg, err)
	}
}

// FormatError returns a user-friendly error message
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	clientErr := CategorizeError(err)
	var sb strings.Builder

	sb.WriteString("Error")
	if clientErr.Type != ErrorTypeUnknown {
		sb.WriteString(" (")
		sb.WriteString(string(clientErr.Type))
		sb.WriteString(")")
	}
	sb.WriteString(": ")
	sb.WriteString(clientErr.Message)
	sb.WriteString("\n")

	if clientErr.HasSuggestion() {
		sb.WriteString("\nSuggestion: ")
		sb.WriteString(clientErr.Suggestion)
		sb.WriteString("\n")
	}

	if clientErr.Type == ErrorTypeRateLimit && clientErr.RetryAfter > 0 {
		sb.WriteString("\nRetry in: ")
		sb.WriteString(fmt.Sprintf("%d seconds\n", clientErr.RetryAfter))
	}

	return sb.String()
}
