package schtasks

import (
	"fmt"
	"strings"
)

// ValidationError reports malformed or out-of-range input. Validation always
// happens before the external tool is invoked, so a ValidationError means no
// process was started.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func newValidationError(field, format string, v ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, v...)}
}

// CommandError reports a non-zero exit from the external scheduler tool.
// The captured output is kept verbatim for diagnostics.
type CommandError struct {
	ExitCode int
	Output   []string
}

func (e *CommandError) Error() string {
	out := strings.TrimSpace(strings.Join(e.Output, "\n"))
	if out == "" {
		return fmt.Sprintf("scheduler tool exited with code %d", e.ExitCode)
	}
	return fmt.Sprintf("scheduler tool exited with code %d: %s", e.ExitCode, out)
}

// InteractivityError reports that an operation needed a terminal prompt but
// no interactive session was available.
type InteractivityError struct {
	Op string
}

func (e *InteractivityError) Error() string {
	return fmt.Sprintf("%s requires an interactive session", e.Op)
}
