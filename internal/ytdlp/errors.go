package ytdlp

import (
	"strconv"
	"strings"
)

// Kind classifies failures at the tool boundary. Kinds are errors themselves
// so callers can match them with errors.Is.
type Kind string

// Error implements error
func (k Kind) Error() string {
	return string(k)
}

const (
	// ErrValidation means caller input was rejected before launching the tool
	ErrValidation Kind = "validation error"

	// ErrExecution means the tool could not be started or was interrupted
	ErrExecution Kind = "execution error"

	// ErrTool means the tool ran and exited with a non-zero status
	ErrTool Kind = "tool error"

	// ErrParse means the tool succeeded but its output was not well-formed
	ErrParse Kind = "parse error"

	// ErrConfiguration means the environment could not provide a required path
	ErrConfiguration Kind = "configuration error"
)

// InstallHint is appended to launch failures
const InstallHint = "Make sure yt-dlp is installed and available in PATH."

// Error is a classified failure with a human-readable message
type Error struct {
	Kind    Kind
	Message string
	// Stderr is the tool's standard error, verbatim, for ErrTool
	Stderr string
	Err    error
}

// Error returns the message, which already embeds the underlying diagnostic
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Err.Error()
	}
	return string(e.Kind)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the error's Kind
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// NewValidationError reports rejected caller input
func NewValidationError(message string) *Error {
	return &Error{Kind: ErrValidation, Message: message}
}

// NewConfigurationError reports a missing environment-derived setting
func NewConfigurationError(message string) *Error {
	return &Error{Kind: ErrConfiguration, Message: message}
}

// NewExecutionError reports a launch failure, with the install hint
func NewExecutionError(err error) *Error {
	return &Error{
		Kind:    ErrExecution,
		Message: "failed to execute yt-dlp: " + err.Error() + ". " + InstallHint,
		Err:     err,
	}
}

// NewToolError reports a non-zero exit; prefix names the failed operation
func NewToolError(prefix string, res *Result) *Error {
	stderr := string(res.Stderr)
	msg := prefix + ": " + stderr
	if strings.TrimSpace(stderr) == "" {
		msg = prefix + ": yt-dlp exited with status " + strconv.Itoa(res.ExitCode)
	}
	return &Error{Kind: ErrTool, Message: msg, Stderr: stderr}
}

// NewParseError reports malformed tool output
func NewParseError(err error) *Error {
	return &Error{
		Kind:    ErrParse,
		Message: "failed to parse yt-dlp response: " + err.Error(),
		Err:     err,
	}
}
