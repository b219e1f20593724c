package errors

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error", err: nil, expected: 0},
		{name: "validation error", err: ValidationError("invalid input").Build(), expected: 2},
		{name: "config error", err: ConfigError("bad parameters").Build(), expected: 7},
		{name: "filesystem error", err: FileSystemError("manifest missing").Build(), expected: 9},
		{name: "engine error", err: EngineError("compile failed").Build(), expected: 11},
		{name: "verification error", err: VerificationError("bundles differ").Build(), expected: 13},
		{name: "wrapped classified error", err: fmt.Errorf("task verify: %w", ConfigError("simulate").Build()), expected: 7},
		{name: "unclassified error", err: &customError{msg: "unknown error"}, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, adapter.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	assert.Empty(t, adapter.FormatError(nil))
	assert.Equal(t, "Internal error occurred (use -v for details)", adapter.FormatError(InternalError("boom").Build()))
	assert.Equal(t, "Error: bad parameters", adapter.FormatError(ConfigError("bad parameters").Build()))
	assert.Equal(t, "Error: unknown error", adapter.FormatError(&customError{msg: "unknown error"}))

	verbose := NewCLIErrorAdapter(true, slog.Default())
	assert.Equal(t, "[internal:fatal] boom", verbose.FormatError(InternalError("boom").Build()))
}

func TestCLIErrorAdapter_Report(t *testing.T) {
	var logs, out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	adapter := NewCLIErrorAdapter(false, logger)

	code := adapter.Report(&out, VerificationError("build result verification failed").WithContext("mismatches", 2).Build())

	assert.Equal(t, 13, code)
	assert.Equal(t, "Error: build result verification failed\n", out.String())
	assert.Contains(t, logs.String(), "category=verification")
	assert.Contains(t, logs.String(), "mismatches=2")
}

// customError is a test helper for unclassified errors
type customError struct {
	msg string
}

func (e *customError) Error() string {
	return e.msg
}
