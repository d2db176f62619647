package lib

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

// ExitFailure is the process exit status for any unrecoverable error (the -1 status).
const ExitFailure = 255

// CLIError represents a user-facing error with context and guidance
type CLIError struct {
	Category   ErrorCategory
	Message    string   // Short description of what went wrong
	Cause      error    // Underlying error
	Details    string   // Server-provided detail message, if any
	Guidance   []string // What the user can do about it
	HTTPStatus int      // HTTP status code if applicable
}

// ErrorCategory classifies errors for better UX
type ErrorCategory string

const (
	CategoryNetwork       ErrorCategory = "network"
	CategoryService       ErrorCategory = "service"
	CategoryConfiguration ErrorCategory = "configuration"
	CategoryInput         ErrorCategory = "input"
	CategoryAborted       ErrorCategory = "aborted"
)

// ErrAborted is returned when the operator declines a confirmation or closes the input stream.
var ErrAborted = &CLIError{
	Category: CategoryAborted,
	Message:  "Aborted!",
}

// Error implements the error interface
func (e *CLIError) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] ", strings.ToUpper(string(e.Category))))
	sb.WriteString(e.Message)

	if e.Cause != nil {
		sb.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if e.HTTPStatus > 0 {
		sb.WriteString(fmt.Sprintf(" (HTTP %d)", e.HTTPStatus))
	}

	return sb.String()
}

// UserMessage returns a formatted message suitable for displaying to end users
func (e *CLIError) UserMessage() string {
	var sb strings.Builder

	sb.WriteString(e.Message)
	if e.HTTPStatus > 0 {
		sb.WriteString(fmt.Sprintf(" (HTTP %d)", e.HTTPStatus))
	}
	sb.WriteString("\n")

	if e.Details != "" {
		sb.WriteString(e.Details)
		sb.WriteString("\n")
	}

	if e.Cause != nil {
		sb.WriteString(fmt.Sprintf("Technical details: %v\n", e.Cause))
	}

	if len(e.Guidance) > 0 {
		sb.WriteString("How to fix:\n")
		for i, guide := range e.Guidance {
			sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, guide))
		}
	}

	return sb.String()
}

// Unwrap returns the underlying cause for errors.Is/As compatibility
func (e *CLIError) Unwrap() error {
	return e.Cause
}

// Network Errors

// ErrNetworkUnreachable creates an error for network connectivity issues
func ErrNetworkUnreachable(url string, cause error) *CLIError {
	return &CLIError{
		Category: CategoryNetwork,
		Message:  fmt.Sprintf("Cannot reach %s", url),
		Cause:    cause,
		Guidance: []string{
			"Check that the uData instance is running",
			"Verify the --url value (or UDATA_URL)",
			"Use --no-ssl-check only against test instances with self-signed certificates",
		},
	}
}

// ErrNetworkTimeout creates an error for request timeouts
func ErrNetworkTimeout(url string, cause error) *CLIError {
	return &CLIError{
		Category: CategoryNetwork,
		Message:  fmt.Sprintf("Request to %s timed out", url),
		Cause:    cause,
		Guidance: []string{
			"The instance may be overloaded or slow to respond",
			"Wait a moment and run the command again",
		},
	}
}

// Service Errors

// ErrHTTPStatus creates an error for a non-2xx API response.
// details is the message the API returned in its error body, if any.
func ErrHTTPStatus(method, url string, statusCode int, status string, details string) *CLIError {
	err := &CLIError{
		Category:   CategoryService,
		Message:    fmt.Sprintf("%s %s failed: %s", method, url, status),
		Details:    details,
		HTTPStatus: statusCode,
	}

	switch statusCode {
	case 401:
		err.Guidance = []string{"Check your API key (--token or UDATA_TOKEN)"}
	case 403:
		err.Guidance = []string{"Your account is not allowed to perform this operation"}
	}

	return err
}

// Configuration Errors

// ErrInvalidConfig creates an error for configuration validation failures
func ErrInvalidConfig(field string, reason string) *CLIError {
	return &CLIError{
		Category: CategoryConfiguration,
		Message:  fmt.Sprintf("Invalid configuration: %s", reason),
		Guidance: []string{
			fmt.Sprintf("Check the '%s' flag, UDATA_%s environment variable or config file entry", field, strings.ToUpper(strings.ReplaceAll(field, "-", "_"))),
		},
	}
}

// Input Errors

// ErrCSVColumn creates an error for a column missing from a CSV header
func ErrCSVColumn(path string, column string, available []string) *CLIError {
	return &CLIError{
		Category: CategoryInput,
		Message:  fmt.Sprintf("Column '%s' not found in %s", column, path),
		Guidance: []string{
			fmt.Sprintf("Available columns: %s", strings.Join(available, ", ")),
			"Use --column to select the identifier column",
		},
	}
}

// ErrInvalidInput creates an error for unusable local input (files, prompts)
func ErrInvalidInput(message string, cause error) *CLIError {
	return &CLIError{
		Category: CategoryInput,
		Message:  message,
		Cause:    cause,
	}
}

// Helper Functions

// ClassifyError examines an error and returns the matching CLIError
func ClassifyError(err error) *CLIError {
	if err == nil {
		return nil
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}

	if IsTimeoutError(err) {
		return ErrNetworkTimeout(requestURL(err), err)
	}

	if IsNetworkError(err) {
		return ErrNetworkUnreachable(requestURL(err), err)
	}

	return &CLIError{
		Category: CategoryInput,
		Message:  err.Error(),
	}
}

// ExitCode maps an error to the process exit status
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return ExitFailure
}

// IsTimeoutError reports whether err is a transport timeout
func IsTimeoutError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "deadline exceeded")
}

// IsNetworkError checks if an error is a transport-level failure
func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	errMsg := strings.ToLower(err.Error())
	for _, pattern := range []string{
		"connection refused",
		"connection reset",
		"no such host",
		"network is unreachable",
		"tls:",
		"x509:",
	} {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}

	return false
}

func requestURL(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.URL
	}
	return "the server"
}
