package lib_test

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendatateam/ucli/internal/lib"
)

func TestCLIError_Error(t *testing.T) {
	err := &lib.CLIError{
		Category: lib.CategoryNetwork,
		Message:  "Connection failed",
		Cause:    errors.New("dial tcp: connection refused"),
	}

	result := err.Error()
	assert.Contains(t, result, "[NETWORK]")
	assert.Contains(t, result, "Connection failed")
	assert.Contains(t, result, "connection refused")
}

func TestCLIError_ErrorWithHTTPStatus(t *testing.T) {
	err := &lib.CLIError{
		Category:   lib.CategoryService,
		Message:    "Service unavailable",
		HTTPStatus: 503,
	}

	result := err.Error()
	assert.Contains(t, result, "[SERVICE]")
	assert.Contains(t, result, "(HTTP 503)")
}

func TestCLIError_UserMessage(t *testing.T) {
	err := &lib.CLIError{
		Category: lib.CategoryInput,
		Message:  "Cannot read datasets.csv",
		Cause:    errors.New("permission denied"),
		Details:  "first detail line",
		Guidance: []string{
			"Check file permissions",
			"Run with appropriate access rights",
		},
	}

	msg := err.UserMessage()
	assert.Equal(t, "Cannot read datasets.csv\n"+
		"first detail line\n"+
		"Technical details: permission denied\n"+
		"How to fix:\n"+
		"  1. Check file permissions\n"+
		"  2. Run with appropriate access rights\n", msg)
}

func TestCLIError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := lib.ErrInvalidInput("wrapped", cause)

	assert.ErrorIs(t, err, cause)
}

func TestErrHTTPStatus(t *testing.T) {
	err := lib.ErrHTTPStatus("GET", "http://localhost:7000/api/1/me", 401, "401 UNAUTHORIZED", "Invalid API Key")

	assert.Equal(t, lib.CategoryService, err.Category)
	assert.Equal(t, 401, err.HTTPStatus)
	assert.Equal(t, "Invalid API Key", err.Details)
	assert.Contains(t, err.Message, "GET http://localhost:7000/api/1/me failed")
	require.Len(t, err.Guidance, 1)
	assert.Contains(t, err.Guidance[0], "UDATA_TOKEN")

	assert.Empty(t, lib.ErrHTTPStatus("GET", "u", 500, "500", "").Guidance)
}

func TestErrInvalidConfig(t *testing.T) {
	err := lib.ErrInvalidConfig("url", "url must use http or https")

	assert.Equal(t, lib.CategoryConfiguration, err.Category)
	assert.Contains(t, err.Message, "url must use http or https")
	assert.Contains(t, err.Guidance[0], "UDATA_URL")
}

func TestErrCSVColumn(t *testing.T) {
	err := lib.ErrCSVColumn("input.csv", "id", []string{"slug", "title"})

	assert.Equal(t, lib.CategoryInput, err.Category)
	assert.Equal(t, "Column 'id' not found in input.csv", err.Message)
	assert.Contains(t, err.UserMessage(), "Available columns: slug, title")
}

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestClassifyError(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		category lib.ErrorCategory
	}{
		{"cli error is kept", lib.ErrAborted, lib.CategoryAborted},
		{"wrapped cli error", fmt.Errorf("context: %w", lib.ErrInvalidInput("bad", nil)), lib.CategoryInput},
		{"url error", &url.Error{Op: "Get", URL: "http://x", Err: errors.New("connection refused")}, lib.CategoryNetwork},
		{"timeout", &url.Error{Op: "Get", URL: "http://x", Err: timeoutError{}}, lib.CategoryNetwork},
		{"op error", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("refused")}, lib.CategoryNetwork},
		{"certificate", errors.New("tls: failed to verify certificate: x509: unknown authority"), lib.CategoryNetwork},
		{"anything else", errors.New("accepts 1 arg(s), received 0"), lib.CategoryInput},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.category, lib.ClassifyError(tc.err).Category)
		})
	}

	assert.Nil(t, lib.ClassifyError(nil))
}

func TestClassifyError_Timeout(t *testing.T) {
	err := lib.ClassifyError(&url.Error{Op: "Get", URL: "http://host/api/1/me", Err: timeoutError{}})

	assert.Contains(t, err.Message, "timed out")
	assert.Contains(t, err.Message, "http://host/api/1/me")

	assert.True(t, lib.IsTimeoutError(context.DeadlineExceeded))
}

func TestClassifyError_PlainErrorKeepsItsMessage(t *testing.T) {
	err := lib.ClassifyError(errors.New("unknown flag: --foo"))

	assert.Equal(t, "unknown flag: --foo\n", err.UserMessage())
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, lib.ExitCode(nil))
	assert.Equal(t, 255, lib.ExitCode(errors.New("boom")))
	assert.Equal(t, 255, lib.ExitCode(lib.ErrAborted))
}
